package ports

import (
	"context"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
)

// CatFilter is the predicate for cat aggregates. Nil/empty fields impose
// no restriction; EntryTypes with more than one element matches their
// union.
type CatFilter struct {
	Status     *domain.CatStatus
	AgeGroup   *domain.AgeGroup
	EntryTypes []domain.EntryType
	Range      domain.DateRange
}

// StatsRepository is the fixed catalogue of read-only aggregates the
// report builders compose. Monthly series come back ordered ascending by
// month label, and empty when nothing matches.
type StatsRepository interface {
	CountAdoptions(ctx context.Context, status domain.AdoptionStatus, rng domain.DateRange) (int, error)
	AdoptionSeries(ctx context.Context, status domain.AdoptionStatus, rng domain.DateRange) ([]domain.MonthCount, error)

	CountCats(ctx context.Context, filter CatFilter) (int, error)
	CatEntrySeries(ctx context.Context, filter CatFilter) ([]domain.MonthCount, error)

	CountProcedures(ctx context.Context, types []domain.ProcedureType, rng domain.DateRange) (int, error)
	ProcedureSeries(ctx context.Context, types []domain.ProcedureType, rng domain.DateRange) ([]domain.MonthCount, error)

	// ActiveCampaign returns nil, nil when no campaign is active.
	ActiveCampaign(ctx context.Context) (*domain.FundraisingCampaign, error)
}

// DonationRepository owns donation writes. Create runs in a single
// transaction: insert the donation, apply the store-evaluated increment to
// the matching active campaign, and record the campaign:updated outbox row.
// The returned event is nil when no active campaign matched the donation's
// currency.
type DonationRepository interface {
	Create(ctx context.Context, donation domain.Donation) (*domain.Donation, *CampaignUpdatedEvent, error)
	List(ctx context.Context) ([]domain.Donation, error)
	FindByID(ctx context.Context, id int64) (*domain.Donation, error)
	ListCampaigns(ctx context.Context) ([]domain.FundraisingCampaign, error)
}

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user domain.User) (*domain.User, error)
}
