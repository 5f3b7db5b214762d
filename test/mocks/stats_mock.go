// Package mocks provides mock implementations of port interfaces for testing.
// Services depend on the port interfaces, so tests inject these in place of
// the SQL-backed adapters.
package mocks

import (
	"context"
	"sync"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/ports"
)

// MockStatsRepository implements ports.StatsRepository for testing.
// Aggregate queries are parameterized by filters, so instead of in-memory
// storage each method delegates to an optional function field. Unset fields
// return zero values, which keeps simple tests short.
type MockStatsRepository struct {
	mu sync.Mutex

	CountAdoptionsFn  func(status domain.AdoptionStatus, rng domain.DateRange) (int, error)
	AdoptionSeriesFn  func(status domain.AdoptionStatus, rng domain.DateRange) ([]domain.MonthCount, error)
	CountCatsFn       func(filter ports.CatFilter) (int, error)
	CatEntrySeriesFn  func(filter ports.CatFilter) ([]domain.MonthCount, error)
	CountProceduresFn func(types []domain.ProcedureType, rng domain.DateRange) (int, error)
	ProcedureSeriesFn func(types []domain.ProcedureType, rng domain.DateRange) ([]domain.MonthCount, error)
	ActiveCampaignFn  func() (*domain.FundraisingCampaign, error)

	// Call tracking for verification
	CountCatsCalls      []ports.CatFilter
	CatEntrySeriesCalls []ports.CatFilter
}

var _ ports.StatsRepository = (*MockStatsRepository)(nil)

func NewMockStatsRepository() *MockStatsRepository {
	return &MockStatsRepository{}
}

func (m *MockStatsRepository) CountAdoptions(ctx context.Context, status domain.AdoptionStatus, rng domain.DateRange) (int, error) {
	if m.CountAdoptionsFn != nil {
		return m.CountAdoptionsFn(status, rng)
	}
	return 0, nil
}

func (m *MockStatsRepository) AdoptionSeries(ctx context.Context, status domain.AdoptionStatus, rng domain.DateRange) ([]domain.MonthCount, error) {
	if m.AdoptionSeriesFn != nil {
		return m.AdoptionSeriesFn(status, rng)
	}
	return []domain.MonthCount{}, nil
}

func (m *MockStatsRepository) CountCats(ctx context.Context, filter ports.CatFilter) (int, error) {
	m.mu.Lock()
	m.CountCatsCalls = append(m.CountCatsCalls, filter)
	m.mu.Unlock()

	if m.CountCatsFn != nil {
		return m.CountCatsFn(filter)
	}
	return 0, nil
}

func (m *MockStatsRepository) CatEntrySeries(ctx context.Context, filter ports.CatFilter) ([]domain.MonthCount, error) {
	m.mu.Lock()
	m.CatEntrySeriesCalls = append(m.CatEntrySeriesCalls, filter)
	m.mu.Unlock()

	if m.CatEntrySeriesFn != nil {
		return m.CatEntrySeriesFn(filter)
	}
	return []domain.MonthCount{}, nil
}

func (m *MockStatsRepository) CountProcedures(ctx context.Context, types []domain.ProcedureType, rng domain.DateRange) (int, error) {
	if m.CountProceduresFn != nil {
		return m.CountProceduresFn(types, rng)
	}
	return 0, nil
}

func (m *MockStatsRepository) ProcedureSeries(ctx context.Context, types []domain.ProcedureType, rng domain.DateRange) ([]domain.MonthCount, error) {
	if m.ProcedureSeriesFn != nil {
		return m.ProcedureSeriesFn(types, rng)
	}
	return []domain.MonthCount{}, nil
}

func (m *MockStatsRepository) ActiveCampaign(ctx context.Context) (*domain.FundraisingCampaign, error) {
	if m.ActiveCampaignFn != nil {
		return m.ActiveCampaignFn()
	}
	return nil, nil
}
