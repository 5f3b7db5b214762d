package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/services"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/test/mocks"
)

func donationHarness() (*DonationHandler, *mocks.MockDonationRepository, *mocks.MockCampaignEventPublisher) {
	repo := mocks.NewMockDonationRepository()
	publisher := mocks.NewMockCampaignEventPublisher()
	return NewDonationHandler(services.NewDonationService(repo, publisher)), repo, publisher
}

func TestCreateDonation(t *testing.T) {
	h, repo, publisher := donationHarness()
	repo.SeedCampaign(domain.FundraisingCampaign{
		ID:            1,
		TargetAmount:  "100000.00",
		CurrentAmount: "30000.00",
		Currency:      "SEK",
		IsActive:      true,
	})

	body := `{"donor_name":"Astrid","amount":"5000.00","currency":"SEK"}`
	req := httptest.NewRequest(http.MethodPost, "/api/donations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201\nbody: %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	var donation domain.Donation
	if err := json.Unmarshal(env.Data, &donation); err != nil {
		t.Fatalf("decode donation: %v", err)
	}
	if donation.ID == 0 || donation.Amount != "5000.00" {
		t.Errorf("donation = %+v, want stored with ID and amount", donation)
	}

	if publisher.PublishCallCount != 1 {
		t.Errorf("published %d events, want 1", publisher.PublishCallCount)
	}
}

func TestCreateDonationBadPayload(t *testing.T) {
	h, _, _ := donationHarness()

	req := httptest.NewRequest(http.MethodPost, "/api/donations", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Message != "Invalid request payload" {
		t.Errorf("error = %+v, want Invalid request payload", env.Error)
	}
}

func TestCreateDonationInvalidAmount(t *testing.T) {
	h, repo, _ := donationHarness()

	req := httptest.NewRequest(http.MethodPost, "/api/donations", strings.NewReader(`{"amount":"-10"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(repo.CreateCalls) != 0 {
		t.Error("invalid donation must not reach the repository")
	}
}

func TestFindDonationByID(t *testing.T) {
	h, _, _ := donationHarness()

	create := httptest.NewRequest(http.MethodPost, "/api/donations", strings.NewReader(`{"amount":"25.00"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/donations/1", nil)
	req.SetPathValue("id", "1")
	rec = httptest.NewRecorder()
	h.FindByID(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestFindDonationByIDMissing(t *testing.T) {
	h, _, _ := donationHarness()

	req := httptest.NewRequest(http.MethodGet, "/api/donations/99", nil)
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()
	h.FindByID(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Message != "Donation not found" {
		t.Errorf("error = %+v, want Donation not found", env.Error)
	}
}

func TestFindDonationByIDInvalid(t *testing.T) {
	h, _, _ := donationHarness()

	req := httptest.NewRequest(http.MethodGet, "/api/donations/abc", nil)
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()
	h.FindByID(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
