package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/ports"
)

// StatsService assembles the public report shapes out of the fixed
// aggregate catalogue. It never writes; the only stateful input is the
// caller-provided wall-clock for "this month" windows.
type StatsService struct {
	stats ports.StatsRepository
}

var _ ports.StatsService = (*StatsService)(nil)

func NewStatsService(stats ports.StatsRepository) *StatsService {
	return &StatsService{stats: stats}
}

func (s *StatsService) TotalAdoptions(ctx context.Context, rng domain.DateRange) (*domain.TotalAdoptionsReport, error) {
	total, err := s.stats.CountAdoptions(ctx, domain.AdoptionCompleted, rng)
	if err != nil {
		return nil, err
	}

	series, err := s.stats.AdoptionSeries(ctx, domain.AdoptionCompleted, rng)
	if err != nil {
		return nil, err
	}

	min, max := domain.SeriesExtremes(series)

	return &domain.TotalAdoptionsReport{
		Total:  total,
		Series: nonNil(series),
		Min:    min,
		Max:    max,
	}, nil
}

func (s *StatsService) CatsStatus(ctx context.Context) (*domain.CatsStatusReport, error) {
	available, err := s.countCats(ctx, domain.CatAvailable, nil)
	if err != nil {
		return nil, err
	}
	booked, err := s.countCats(ctx, domain.CatBooked, nil)
	if err != nil {
		return nil, err
	}

	var breakdown domain.AgeBreakdown
	for _, group := range []struct {
		age  domain.AgeGroup
		dest *int
	}{
		{domain.AgeKitten, &breakdown.Kittens},
		{domain.AgeAdult, &breakdown.Adults},
		{domain.AgeSenior, &breakdown.Seniors},
	} {
		age := group.age
		count, err := s.countCats(ctx, domain.CatAvailable, &age)
		if err != nil {
			return nil, err
		}
		*group.dest = count
	}

	availableSeries, err := s.catSeriesByStatus(ctx, domain.CatAvailable)
	if err != nil {
		return nil, err
	}
	bookedSeries, err := s.catSeriesByStatus(ctx, domain.CatBooked)
	if err != nil {
		return nil, err
	}

	min, max := domain.SeriesExtremes(availableSeries)

	return &domain.CatsStatusReport{
		Available:          available,
		Booked:             booked,
		AvailableBreakdown: breakdown,
		Series: domain.CatsStatusSeries{
			Available: nonNil(availableSeries),
			Booked:    nonNil(bookedSeries),
		},
		Min: min,
		Max: max,
	}, nil
}

func (s *StatsService) IncomingCats(ctx context.Context, now time.Time) (*domain.IncomingCatsReport, error) {
	window := domain.MonthWindow(now)

	rescuedThisMonth, err := s.stats.CountCats(ctx, ports.CatFilter{
		EntryTypes: []domain.EntryType{domain.EntryRescue},
		Range:      window,
	})
	if err != nil {
		return nil, err
	}
	surrenderedThisMonth, err := s.stats.CountCats(ctx, ports.CatFilter{
		EntryTypes: []domain.EntryType{domain.EntrySurrender},
		Range:      window,
	})
	if err != nil {
		return nil, err
	}

	rescued, err := s.stats.CatEntrySeries(ctx, ports.CatFilter{
		EntryTypes: []domain.EntryType{domain.EntryRescue},
	})
	if err != nil {
		return nil, err
	}
	surrendered, err := s.stats.CatEntrySeries(ctx, ports.CatFilter{
		EntryTypes: []domain.EntryType{domain.EntrySurrender},
	})
	if err != nil {
		return nil, err
	}
	total, err := s.stats.CatEntrySeries(ctx, ports.CatFilter{
		EntryTypes: []domain.EntryType{domain.EntryRescue, domain.EntrySurrender},
	})
	if err != nil {
		return nil, err
	}

	min, max := domain.SeriesExtremes(total)

	return &domain.IncomingCatsReport{
		RescuedThisMonth:     rescuedThisMonth,
		SurrenderedThisMonth: surrenderedThisMonth,
		Series: domain.IncomingSeries{
			Rescued:     nonNil(rescued),
			Surrendered: nonNil(surrendered),
			Total:       nonNil(total),
		},
		Min: min,
		Max: max,
	}, nil
}

func (s *StatsService) NeuteredCats(ctx context.Context, now time.Time) (*domain.NeuteredCatsReport, error) {
	window := domain.MonthWindow(now)

	neuteredThisMonth, err := s.stats.CountProcedures(ctx, []domain.ProcedureType{domain.ProcedureNeutered}, window)
	if err != nil {
		return nil, err
	}
	spayedThisMonth, err := s.stats.CountProcedures(ctx, []domain.ProcedureType{domain.ProcedureSpayed}, window)
	if err != nil {
		return nil, err
	}

	neutered, err := s.stats.ProcedureSeries(ctx, []domain.ProcedureType{domain.ProcedureNeutered}, domain.DateRange{})
	if err != nil {
		return nil, err
	}
	spayed, err := s.stats.ProcedureSeries(ctx, []domain.ProcedureType{domain.ProcedureSpayed}, domain.DateRange{})
	if err != nil {
		return nil, err
	}
	total, err := s.stats.ProcedureSeries(ctx, []domain.ProcedureType{domain.ProcedureNeutered, domain.ProcedureSpayed}, domain.DateRange{})
	if err != nil {
		return nil, err
	}

	min, max := domain.SeriesExtremes(total)

	return &domain.NeuteredCatsReport{
		NeuteredThisMonth: neuteredThisMonth,
		SpayedThisMonth:   spayedThisMonth,
		Series: domain.ProcedureSeries{
			Neutered: nonNil(neutered),
			Spayed:   nonNil(spayed),
			Total:    nonNil(total),
		},
		Min: min,
		Max: max,
	}, nil
}

// Campaign returns nil, nil when no campaign is active; the handler renders
// that as data: null rather than an error.
func (s *StatsService) Campaign(ctx context.Context) (*domain.CampaignReport, error) {
	campaign, err := s.stats.ActiveCampaign(ctx)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, nil
	}

	goal, err := parseAmount(campaign.TargetAmount)
	if err != nil {
		return nil, err
	}
	donated, err := parseAmount(campaign.CurrentAmount)
	if err != nil {
		return nil, err
	}

	var endDate *string
	if campaign.EndDate != nil {
		formatted := campaign.EndDate.Format("2006-01-02")
		endDate = &formatted
	}

	return &domain.CampaignReport{
		CampaignGoal:   goal,
		CurrentDonated: donated,
		StartDate:      campaign.StartDate.Format("2006-01-02"),
		EndDate:        endDate,
	}, nil
}

func (s *StatsService) Dashboard(ctx context.Context, role domain.Role, now time.Time) (*domain.DashboardReport, error) {
	monthWindow := domain.MonthWindow(now)
	startOfYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	yearRange := domain.DateRange{Start: &startOfYear}

	adoptionsThisMonth, err := s.stats.CountAdoptions(ctx, domain.AdoptionCompleted, monthWindow)
	if err != nil {
		return nil, err
	}
	adoptionsThisYear, err := s.stats.CountAdoptions(ctx, domain.AdoptionCompleted, yearRange)
	if err != nil {
		return nil, err
	}
	adoptionSeries, err := s.stats.AdoptionSeries(ctx, domain.AdoptionCompleted, domain.DateRange{})
	if err != nil {
		return nil, err
	}
	min, max := domain.SeriesExtremes(adoptionSeries)

	report := &domain.DashboardReport{
		Adoptions: domain.DashboardAdoptions{
			ThisMonth: adoptionsThisMonth,
			ThisYear:  adoptionsThisYear,
			Min:       min,
			Max:       max,
		},
	}

	report.Cats.TotalAvailable, err = s.countCats(ctx, domain.CatAvailable, nil)
	if err != nil {
		return nil, err
	}
	report.Cats.TotalBooked, err = s.countCats(ctx, domain.CatBooked, nil)
	if err != nil {
		return nil, err
	}
	kitten, senior := domain.AgeKitten, domain.AgeSenior
	report.Cats.Kittens, err = s.countCats(ctx, domain.CatAvailable, &kitten)
	if err != nil {
		return nil, err
	}
	report.Cats.Seniors, err = s.countCats(ctx, domain.CatAvailable, &senior)
	if err != nil {
		return nil, err
	}

	if role.AtLeast(domain.RoleClinicStaff) {
		incoming, err := s.stats.CountCats(ctx, ports.CatFilter{Range: monthWindow})
		if err != nil {
			return nil, err
		}
		report.IncomingCats = &domain.DashboardIncoming{ThisMonth: incoming}

		neutered, err := s.stats.CountProcedures(ctx, []domain.ProcedureType{domain.ProcedureNeutered}, monthWindow)
		if err != nil {
			return nil, err
		}
		spayed, err := s.stats.CountProcedures(ctx, []domain.ProcedureType{domain.ProcedureSpayed}, monthWindow)
		if err != nil {
			return nil, err
		}
		report.MedicalProcedures = &domain.DashboardProcedures{
			NeuteredThisMonth: neutered,
			SpayedThisMonth:   spayed,
		}
	}

	campaign, err := s.stats.ActiveCampaign(ctx)
	if err != nil {
		return nil, err
	}
	if campaign != nil {
		target, err := parseAmount(campaign.TargetAmount)
		if err != nil {
			return nil, err
		}
		current, err := parseAmount(campaign.CurrentAmount)
		if err != nil {
			return nil, err
		}
		progress := 0.0
		if target > 0 {
			progress = current / target * 100
		}
		report.Fundraising = &domain.DashboardFundraising{
			Title:         campaign.Title,
			CurrentAmount: current,
			TargetAmount:  target,
			Currency:      campaign.Currency,
			Progress:      progress,
		}
	}

	return report, nil
}

func (s *StatsService) AdoptionHistory(ctx context.Context, now time.Time) ([]domain.MonthCount, error) {
	since := now.AddDate(0, -12, 0)
	series, err := s.stats.AdoptionSeries(ctx, domain.AdoptionCompleted, domain.DateRange{Start: &since})
	if err != nil {
		return nil, err
	}
	return nonNil(series), nil
}

func (s *StatsService) countCats(ctx context.Context, status domain.CatStatus, age *domain.AgeGroup) (int, error) {
	return s.stats.CountCats(ctx, ports.CatFilter{Status: &status, AgeGroup: age})
}

func (s *StatsService) catSeriesByStatus(ctx context.Context, status domain.CatStatus) ([]domain.MonthCount, error) {
	return s.stats.CatEntrySeries(ctx, ports.CatFilter{Status: &status})
}

func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return amount, nil
}

// nonNil keeps empty series rendering as [] instead of null.
func nonNil(series []domain.MonthCount) []domain.MonthCount {
	if series == nil {
		return []domain.MonthCount{}
	}
	return series
}
