package domain

// MonthCount is one bucket of a monthly series: a calendar month label
// ("YYYY-MM") and the number of matching rows in that month.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// TotalAdoptionsReport covers completed adoptions within an optional
// date range.
type TotalAdoptionsReport struct {
	Total  int          `json:"total"`
	Series []MonthCount `json:"series"`
	Min    *MonthCount  `json:"min"`
	Max    *MonthCount  `json:"max"`
}

type AgeBreakdown struct {
	Kittens int `json:"kittens"`
	Adults  int `json:"adults"`
	Seniors int `json:"seniors"`
}

type CatsStatusSeries struct {
	Available []MonthCount `json:"available"`
	Booked    []MonthCount `json:"booked"`
}

type CatsStatusReport struct {
	Available          int              `json:"available"`
	Booked             int              `json:"booked"`
	AvailableBreakdown AgeBreakdown     `json:"available_breakdown"`
	Series             CatsStatusSeries `json:"series"`
	Min                *MonthCount      `json:"min"`
	Max                *MonthCount      `json:"max"`
}

type IncomingSeries struct {
	Rescued     []MonthCount `json:"rescued"`
	Surrendered []MonthCount `json:"surrendered"`
	Total       []MonthCount `json:"total"`
}

type IncomingCatsReport struct {
	RescuedThisMonth     int            `json:"rescued_this_month"`
	SurrenderedThisMonth int            `json:"surrendered_this_month"`
	Series               IncomingSeries `json:"series"`
	Min                  *MonthCount    `json:"min"`
	Max                  *MonthCount    `json:"max"`
}

type ProcedureSeries struct {
	Neutered []MonthCount `json:"neutered"`
	Spayed   []MonthCount `json:"spayed"`
	Total    []MonthCount `json:"total"`
}

type NeuteredCatsReport struct {
	NeuteredThisMonth int             `json:"neutered_this_month"`
	SpayedThisMonth   int             `json:"spayed_this_month"`
	Series            ProcedureSeries `json:"series"`
	Min               *MonthCount     `json:"min"`
	Max               *MonthCount     `json:"max"`
}

// CampaignReport exposes the active campaign's accumulator as floats;
// dates are date-only strings, end_date may be null for open-ended
// campaigns.
type CampaignReport struct {
	CampaignGoal   float64 `json:"campaign_goal"`
	CurrentDonated float64 `json:"current_donated"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date"`
}
