package domain

import "time"

// Donation amounts are decimal strings as stored ("5000.00"); they are
// parsed to floats only at the reporting surface, never re-serialized back
// into the ledger.
type Donation struct {
	ID          int64     `json:"id"`
	DonorName   string    `json:"donor_name,omitempty"`
	DonorEmail  string    `json:"donor_email,omitempty"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	IsAnonymous bool      `json:"is_anonymous"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FundraisingCampaign.CurrentAmount is an accumulator maintained by the
// store (current_amount = current_amount + donation) rather than a derived
// sum over donations.
type FundraisingCampaign struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	TargetAmount  string     `json:"target_amount"`
	CurrentAmount string     `json:"current_amount"`
	Currency      string     `json:"currency"`
	IsActive      bool       `json:"is_active"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
}
