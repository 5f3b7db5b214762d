package handler

import (
	"net/http"
	"time"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/adapters/middleware"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/ports"
)

type StatsHandler struct {
	stats ports.StatsService
}

func NewStatsHandler(stats ports.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) TotalAdoptions(w http.ResponseWriter, r *http.Request) {
	rng, err := parseDateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := h.stats.TotalAdoptions(r.Context(), rng)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *StatsHandler) CatsStatus(w http.ResponseWriter, r *http.Request) {
	report, err := h.stats.CatsStatus(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// IncomingCats is staff-gated but registered under optional auth: the
// denial has to come from here with a clean 403, not from the transport
// middleware, so anonymous callers are not silently served public data.
func (h *StatsHandler) IncomingCats(w http.ResponseWriter, r *http.Request) {
	if !staffOrAdmin(r) {
		writeError(w, domain.ErrStaffRequired)
		return
	}

	report, err := h.stats.IncomingCats(r.Context(), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *StatsHandler) NeuteredCats(w http.ResponseWriter, r *http.Request) {
	if !staffOrAdmin(r) {
		writeError(w, domain.ErrStaffRequired)
		return
	}

	report, err := h.stats.NeuteredCats(r.Context(), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *StatsHandler) Campaign(w http.ResponseWriter, r *http.Request) {
	report, err := h.stats.Campaign(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	// report is nil when no campaign is active; that renders as data: null.
	writeJSON(w, http.StatusOK, report)
}

func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	role := domain.RolePublic
	if claims, ok := middleware.GetClaims(r.Context()); ok {
		role = claims.Role
	}

	report, err := h.stats.Dashboard(r.Context(), role, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *StatsHandler) AdoptionHistory(w http.ResponseWriter, r *http.Request) {
	series, err := h.stats.AdoptionHistory(r.Context(), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func staffOrAdmin(r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	return ok && claims.Role.AtLeast(domain.RoleClinicStaff)
}

// parseDateRange validates the optional start_date/end_date query
// parameters before anything touches the store. The end bound is pushed to
// the last instant of its day so the filter is inclusive on both ends.
func parseDateRange(r *http.Request) (domain.DateRange, error) {
	var rng domain.DateRange

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return rng, domain.NewError("Invalid start_date format. Use YYYY-MM-DD", http.StatusBadRequest)
		}
		rng.Start = &start
	}

	if raw := r.URL.Query().Get("end_date"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return rng, domain.NewError("Invalid end_date format. Use YYYY-MM-DD", http.StatusBadRequest)
		}
		endOfDay := domain.EndOfDay(end)
		rng.End = &endOfDay
	}

	return rng, nil
}
