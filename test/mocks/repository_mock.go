package mocks

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/ports"
)

// MockDonationRepository implements ports.DonationRepository for testing.
// It mirrors the SQL adapter's transactional contract in memory: Create
// stores the donation and, when a seeded active campaign matches the
// donation's currency, applies the increment and returns the resulting
// campaign:updated event.
type MockDonationRepository struct {
	mu sync.RWMutex

	donations []domain.Donation
	campaigns []domain.FundraisingCampaign
	nextID    int64

	// Call tracking for verification
	CreateCalls []domain.Donation

	// Error injection for testing error scenarios
	CreateError error
	ListError   error
	FindError   error
}

var _ ports.DonationRepository = (*MockDonationRepository)(nil)

func NewMockDonationRepository() *MockDonationRepository {
	return &MockDonationRepository{nextID: 1}
}

// SeedCampaign adds a campaign for test setup.
func (m *MockDonationRepository) SeedCampaign(campaign domain.FundraisingCampaign) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.campaigns = append(m.campaigns, campaign)
}

func (m *MockDonationRepository) Create(ctx context.Context, donation domain.Donation) (*domain.Donation, *ports.CampaignUpdatedEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, donation)

	if m.CreateError != nil {
		return nil, nil, m.CreateError
	}

	donation.ID = m.nextID
	m.nextID++
	m.donations = append(m.donations, donation)

	amount, err := strconv.ParseFloat(donation.Amount, 64)
	if err != nil {
		return nil, nil, err
	}

	for i := range m.campaigns {
		c := &m.campaigns[i]
		if !c.IsActive || c.Currency != donation.Currency {
			continue
		}

		current, err := strconv.ParseFloat(c.CurrentAmount, 64)
		if err != nil {
			return nil, nil, err
		}
		target, err := strconv.ParseFloat(c.TargetAmount, 64)
		if err != nil {
			return nil, nil, err
		}

		current += amount
		c.CurrentAmount = fmt.Sprintf("%.2f", current)

		return &donation, &ports.CampaignUpdatedEvent{
			CampaignID:    c.ID,
			CurrentAmount: current,
			TargetAmount:  target,
			Currency:      c.Currency,
		}, nil
	}

	// No matching active campaign: donation is stored, no event.
	return &donation, nil, nil
}

func (m *MockDonationRepository) List(ctx context.Context) ([]domain.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListError != nil {
		return nil, m.ListError
	}

	out := make([]domain.Donation, len(m.donations))
	copy(out, m.donations)
	return out, nil
}

func (m *MockDonationRepository) FindByID(ctx context.Context, id int64) (*domain.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FindError != nil {
		return nil, m.FindError
	}

	for _, d := range m.donations {
		if d.ID == id {
			found := d
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockDonationRepository) ListCampaigns(ctx context.Context) ([]domain.FundraisingCampaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.FundraisingCampaign, len(m.campaigns))
	copy(out, m.campaigns)
	return out, nil
}

// Campaign returns a seeded campaign by ID for assertions on the applied
// increment.
func (m *MockDonationRepository) Campaign(id int64) (domain.FundraisingCampaign, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.campaigns {
		if c.ID == id {
			return c, true
		}
	}
	return domain.FundraisingCampaign{}, false
}

// MockUserRepository implements ports.UserRepository with in-memory storage.
type MockUserRepository struct {
	mu sync.RWMutex

	users  map[string]*domain.User
	nextID int64

	// Call tracking for verification
	FindByUsernameCalls []string
	CreateCalls         []domain.User

	// Error injection for testing error scenarios
	FindByUsernameError error
	CreateError         error
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[string]*domain.User),
		nextID: 1,
	}
}

// SeedUser adds a user for test setup.
func (m *MockUserRepository) SeedUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Username] = user
}

// FindByUsername returns nil, nil when no user matches, like the SQL
// adapter does.
func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	m.FindByUsernameCalls = append(m.FindByUsernameCalls, username)
	m.mu.Unlock()

	if m.FindByUsernameError != nil {
		return nil, m.FindByUsernameError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[username], nil
}

func (m *MockUserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, user)

	if m.CreateError != nil {
		return nil, m.CreateError
	}

	user.ID = m.nextID
	m.nextID++
	m.users[user.Username] = &user
	return &user, nil
}
