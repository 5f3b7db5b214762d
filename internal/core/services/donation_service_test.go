package services

import (
	"context"
	"errors"
	"testing"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/test/mocks"
)

func activeCampaign() domain.FundraisingCampaign {
	return domain.FundraisingCampaign{
		ID:            1,
		Title:         "Winter Shelter Fund",
		TargetAmount:  "100000.00",
		CurrentAmount: "30000.00",
		Currency:      "SEK",
		IsActive:      true,
	}
}

func TestCreateDonationIncrementsCampaignAndPublishes(t *testing.T) {
	repo := mocks.NewMockDonationRepository()
	repo.SeedCampaign(activeCampaign())
	publisher := mocks.NewMockCampaignEventPublisher()
	svc := NewDonationService(repo, publisher)

	created, err := svc.Create(context.Background(), domain.Donation{
		DonorName: "Astrid",
		Amount:    "5000.00",
		Currency:  "SEK",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Error("created donation should carry its assigned ID")
	}

	events := publisher.Events()
	if len(events) != 1 {
		t.Fatalf("published %d events, want 1", len(events))
	}
	evt := events[0]
	if evt.CampaignID != 1 {
		t.Errorf("CampaignID = %d, want 1", evt.CampaignID)
	}
	if evt.CurrentAmount != 35000 {
		t.Errorf("CurrentAmount = %v, want 35000", evt.CurrentAmount)
	}
	if evt.TargetAmount != 100000 {
		t.Errorf("TargetAmount = %v, want 100000", evt.TargetAmount)
	}

	campaign, ok := repo.Campaign(1)
	if !ok {
		t.Fatal("campaign disappeared")
	}
	if campaign.CurrentAmount != "35000.00" {
		t.Errorf("campaign accumulator = %q, want 35000.00", campaign.CurrentAmount)
	}
}

func TestCreateDonationCurrencyMismatchSkipsEvent(t *testing.T) {
	repo := mocks.NewMockDonationRepository()
	repo.SeedCampaign(activeCampaign())
	publisher := mocks.NewMockCampaignEventPublisher()
	svc := NewDonationService(repo, publisher)

	if _, err := svc.Create(context.Background(), domain.Donation{Amount: "100.00", Currency: "USD"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if publisher.PublishCallCount != 0 {
		t.Errorf("published %d events for a non-matching currency, want 0", publisher.PublishCallCount)
	}
	campaign, _ := repo.Campaign(1)
	if campaign.CurrentAmount != "30000.00" {
		t.Errorf("campaign accumulator = %q, want untouched 30000.00", campaign.CurrentAmount)
	}
}

func TestCreateDonationDefaultsCurrency(t *testing.T) {
	repo := mocks.NewMockDonationRepository()
	repo.SeedCampaign(activeCampaign())
	svc := NewDonationService(repo, mocks.NewMockCampaignEventPublisher())

	if _, err := svc.Create(context.Background(), domain.Donation{Amount: "10.00"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(repo.CreateCalls) != 1 || repo.CreateCalls[0].Currency != "SEK" {
		t.Errorf("stored currency = %q, want SEK by default", repo.CreateCalls[0].Currency)
	}
}

func TestCreateDonationRejectsBadAmount(t *testing.T) {
	repo := mocks.NewMockDonationRepository()
	svc := NewDonationService(repo, mocks.NewMockCampaignEventPublisher())

	for _, amount := range []string{"", "abc", "-5", "0", "NaN", "nan", "Inf", "+Inf", "-Inf", "Infinity"} {
		_, err := svc.Create(context.Background(), domain.Donation{Amount: amount})
		appErr, ok := err.(*domain.Error)
		if !ok || appErr.Status != 400 {
			t.Errorf("Create(%q) error = %v, want 400 domain error", amount, err)
		}
	}

	if len(repo.CreateCalls) != 0 {
		t.Errorf("invalid amounts must never reach the repository, got %d calls", len(repo.CreateCalls))
	}
}

// Even if the one-active-campaign-per-currency invariant breaks, a donation
// increments exactly one campaign and broadcasts exactly one event.
func TestCreateDonationIncrementsSingleCampaign(t *testing.T) {
	repo := mocks.NewMockDonationRepository()
	repo.SeedCampaign(activeCampaign())
	second := activeCampaign()
	second.ID = 2
	second.Title = "Duplicate Fund"
	repo.SeedCampaign(second)
	publisher := mocks.NewMockCampaignEventPublisher()
	svc := NewDonationService(repo, publisher)

	if _, err := svc.Create(context.Background(), domain.Donation{Amount: "1000.00", Currency: "SEK"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	events := publisher.Events()
	if len(events) != 1 || events[0].CampaignID != 1 {
		t.Fatalf("events = %+v, want exactly one for campaign 1", events)
	}

	first, _ := repo.Campaign(1)
	if first.CurrentAmount != "31000.00" {
		t.Errorf("campaign 1 accumulator = %q, want 31000.00", first.CurrentAmount)
	}
	duplicate, _ := repo.Campaign(2)
	if duplicate.CurrentAmount != "30000.00" {
		t.Errorf("campaign 2 accumulator = %q, want untouched 30000.00", duplicate.CurrentAmount)
	}
}

func TestCreateDonationSurvivesPublishFailure(t *testing.T) {
	repo := mocks.NewMockDonationRepository()
	repo.SeedCampaign(activeCampaign())
	publisher := mocks.NewMockCampaignEventPublisher()
	publisher.PublishError = errors.New("broker down")
	svc := NewDonationService(repo, publisher)

	created, err := svc.Create(context.Background(), domain.Donation{Amount: "100.00", Currency: "SEK"})
	if err != nil {
		t.Fatalf("a dead broker must not fail the donation, got %v", err)
	}
	if created == nil {
		t.Fatal("donation should still be returned")
	}

	// The increment is part of the repository transaction, so it stands
	// even when the broadcast is lost.
	campaign, _ := repo.Campaign(1)
	if campaign.CurrentAmount != "30100.00" {
		t.Errorf("campaign accumulator = %q, want 30100.00", campaign.CurrentAmount)
	}
}

func TestFindDonationByID(t *testing.T) {
	repo := mocks.NewMockDonationRepository()
	svc := NewDonationService(repo, mocks.NewMockCampaignEventPublisher())

	created, err := svc.Create(context.Background(), domain.Donation{Amount: "25.00", Currency: "SEK"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := svc.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Amount != "25.00" {
		t.Errorf("Amount = %q, want 25.00", found.Amount)
	}

	_, err = svc.FindByID(context.Background(), 999)
	appErr, ok := err.(*domain.Error)
	if !ok || appErr.Status != 404 || appErr.Message != "Donation not found" {
		t.Errorf("missing donation error = %v, want 404 Donation not found", err)
	}
}
