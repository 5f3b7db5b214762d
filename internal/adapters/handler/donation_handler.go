package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/ports"
)

type DonationHandler struct {
	donations ports.DonationService
}

func NewDonationHandler(donations ports.DonationService) *DonationHandler {
	return &DonationHandler{donations: donations}
}

type createDonationRequest struct {
	DonorName   string `json:"donor_name"`
	DonorEmail  string `json:"donor_email"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	IsAnonymous bool   `json:"is_anonymous"`
	Notes       string `json:"notes"`
}

func (h *DonationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewError("Invalid request payload", http.StatusBadRequest))
		return
	}

	donation, err := h.donations.Create(r.Context(), domain.Donation{
		DonorName:   req.DonorName,
		DonorEmail:  req.DonorEmail,
		Amount:      req.Amount,
		Currency:    req.Currency,
		IsAnonymous: req.IsAnonymous,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, donation)
}

func (h *DonationHandler) List(w http.ResponseWriter, r *http.Request) {
	donations, err := h.donations.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, donations)
}

func (h *DonationHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, domain.NewError("Invalid donation ID", http.StatusBadRequest))
		return
	}

	donation, err := h.donations.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, donation)
}

func (h *DonationHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.donations.ListCampaigns(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}
