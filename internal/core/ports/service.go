package ports

import (
	"context"
	"time"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Register(ctx context.Context, user domain.User) (*domain.User, error)
}

// StatsService builders take the request's wall-clock where a report
// depends on "this month"; handlers pass time.Now() so tests can pin it.
type StatsService interface {
	TotalAdoptions(ctx context.Context, rng domain.DateRange) (*domain.TotalAdoptionsReport, error)
	CatsStatus(ctx context.Context) (*domain.CatsStatusReport, error)
	IncomingCats(ctx context.Context, now time.Time) (*domain.IncomingCatsReport, error)
	NeuteredCats(ctx context.Context, now time.Time) (*domain.NeuteredCatsReport, error)
	Campaign(ctx context.Context) (*domain.CampaignReport, error)
	Dashboard(ctx context.Context, role domain.Role, now time.Time) (*domain.DashboardReport, error)
	AdoptionHistory(ctx context.Context, now time.Time) ([]domain.MonthCount, error)
}

type DonationService interface {
	Create(ctx context.Context, donation domain.Donation) (*domain.Donation, error)
	List(ctx context.Context) ([]domain.Donation, error)
	FindByID(ctx context.Context, id int64) (*domain.Donation, error)
	ListCampaigns(ctx context.Context) ([]domain.FundraisingCampaign, error)
}
