package domain

// DashboardReport is the role-shaped summary behind /api/metrics/dashboard.
// The staff-only blocks (IncomingCats, MedicalProcedures) are nil for
// public callers rather than omitted, so the front end can distinguish
// "not permitted" from "zero".
type DashboardReport struct {
	Adoptions         DashboardAdoptions    `json:"adoptions"`
	Cats              DashboardCats         `json:"cats"`
	IncomingCats      *DashboardIncoming    `json:"incomingCats"`
	MedicalProcedures *DashboardProcedures  `json:"medicalProcedures"`
	Fundraising       *DashboardFundraising `json:"fundraising"`
}

type DashboardAdoptions struct {
	ThisMonth int         `json:"thisMonth"`
	ThisYear  int         `json:"thisYear"`
	Min       *MonthCount `json:"min"`
	Max       *MonthCount `json:"max"`
}

type DashboardCats struct {
	TotalAvailable int `json:"totalAvailable"`
	TotalBooked    int `json:"totalBooked"`
	Kittens        int `json:"kittens"`
	Seniors        int `json:"seniors"`
}

type DashboardIncoming struct {
	ThisMonth int `json:"thisMonth"`
}

type DashboardProcedures struct {
	NeuteredThisMonth int `json:"neuteredThisMonth"`
	SpayedThisMonth   int `json:"spayedThisMonth"`
}

type DashboardFundraising struct {
	Title         string  `json:"title"`
	CurrentAmount float64 `json:"currentAmount"`
	TargetAmount  float64 `json:"targetAmount"`
	Currency      string  `json:"currency"`
	Progress      float64 `json:"progress"`
}
