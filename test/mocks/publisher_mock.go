package mocks

import (
	"context"
	"sync"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/ports"
)

// MockCampaignEventPublisher implements ports.CampaignEventPublisher for
// testing the donation service and the outbox relay without a broker.
type MockCampaignEventPublisher struct {
	mu sync.RWMutex

	// Track published events for verification
	PublishedEvents []ports.CampaignUpdatedEvent

	// Error injection for testing error scenarios
	PublishError error

	// Track number of calls
	PublishCallCount int
}

var _ ports.CampaignEventPublisher = (*MockCampaignEventPublisher)(nil)

func NewMockCampaignEventPublisher() *MockCampaignEventPublisher {
	return &MockCampaignEventPublisher{
		PublishedEvents: make([]ports.CampaignUpdatedEvent, 0),
	}
}

func (m *MockCampaignEventPublisher) PublishCampaignUpdated(ctx context.Context, evt ports.CampaignUpdatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++

	if m.PublishError != nil {
		return m.PublishError
	}

	m.PublishedEvents = append(m.PublishedEvents, evt)
	return nil
}

// Events returns a copy of everything published so far.
func (m *MockCampaignEventPublisher) Events() []ports.CampaignUpdatedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]ports.CampaignUpdatedEvent, len(m.PublishedEvents))
	copy(events, m.PublishedEvents)
	return events
}
