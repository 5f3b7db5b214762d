package services

import (
	"context"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/ports"
)

const defaultCurrency = "SEK"

// DonationService persists donations and propagates the campaign-updated
// signal. The campaign increment happens inside the repository transaction;
// the publish that follows is fire-and-forget so a broken broker never
// fails a donor's request.
type DonationService struct {
	donations ports.DonationRepository
	publisher ports.CampaignEventPublisher
}

var _ ports.DonationService = (*DonationService)(nil)

func NewDonationService(donations ports.DonationRepository, publisher ports.CampaignEventPublisher) *DonationService {
	return &DonationService{
		donations: donations,
		publisher: publisher,
	}
}

func (s *DonationService) Create(ctx context.Context, donation domain.Donation) (*domain.Donation, error) {
	// ParseFloat accepts "NaN" and "Inf", and NaN slips past the <= 0 guard.
	// Postgres numeric would happily store either, poisoning the campaign
	// accumulator, so non-finite parses are rejected here.
	amount, err := strconv.ParseFloat(donation.Amount, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, domain.NewError("Invalid donation amount. Use a positive decimal value.", http.StatusBadRequest)
	}
	if donation.Currency == "" {
		donation.Currency = defaultCurrency
	}

	created, event, err := s.donations.Create(ctx, donation)
	if err != nil {
		return nil, err
	}

	if event != nil {
		if err := s.publisher.PublishCampaignUpdated(ctx, *event); err != nil {
			log.Printf("donations: failed to publish %s for campaign %d: %v",
				ports.EventCampaignUpdated, event.CampaignID, err)
		}
	}

	return created, nil
}

func (s *DonationService) List(ctx context.Context) ([]domain.Donation, error) {
	return s.donations.List(ctx)
}

func (s *DonationService) FindByID(ctx context.Context, id int64) (*domain.Donation, error) {
	donation, err := s.donations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, domain.NewError("Donation not found", http.StatusNotFound)
	}
	return donation, nil
}

func (s *DonationService) ListCampaigns(ctx context.Context) ([]domain.FundraisingCampaign, error) {
	return s.donations.ListCampaigns(ctx)
}
