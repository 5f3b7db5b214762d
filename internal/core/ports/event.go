package ports

import (
	"context"
)

// EventCampaignUpdated is the only event name this service broadcasts.
// Clients treat it as an invalidation signal and re-fetch the campaign
// report; the payload is advisory, not the record of truth.
const EventCampaignUpdated = "campaign:updated"

type CampaignUpdatedEvent struct {
	CampaignID    int64   `json:"campaignId"`
	CurrentAmount float64 `json:"currentAmount"`
	TargetAmount  float64 `json:"targetAmount"`
	Currency      string  `json:"currency"`
}

type CampaignEventPublisher interface {
	PublishCampaignUpdated(ctx context.Context, evt CampaignUpdatedEvent) error
}
