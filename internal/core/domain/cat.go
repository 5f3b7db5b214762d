package domain

import "time"

type CatStatus string

const (
	CatAvailable CatStatus = "available"
	CatBooked    CatStatus = "booked"
	CatAdopted   CatStatus = "adopted"
	CatDeceased  CatStatus = "deceased"
)

type AgeGroup string

const (
	AgeKitten AgeGroup = "kitten"
	AgeAdult  AgeGroup = "adult"
	AgeSenior AgeGroup = "senior"
)

type EntryType string

const (
	EntryRescue    EntryType = "rescue"
	EntrySurrender EntryType = "surrender"
	EntryStray     EntryType = "stray"
)

type Cat struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    CatStatus `json:"status"`
	AgeGroup  AgeGroup  `json:"age_group"`
	EntryDate time.Time `json:"entry_date"`
	EntryType EntryType `json:"entry_type"`
}

type AdoptionStatus string

const (
	AdoptionPending   AdoptionStatus = "pending"
	AdoptionApproved  AdoptionStatus = "approved"
	AdoptionCompleted AdoptionStatus = "completed"
	AdoptionCancelled AdoptionStatus = "cancelled"
)

type Adoption struct {
	ID           int64          `json:"id"`
	CatID        int64          `json:"cat_id"`
	UserID       int64          `json:"user_id"`
	Status       AdoptionStatus `json:"status"`
	AdoptionDate time.Time      `json:"adoption_date"`
}

type ProcedureType string

const (
	ProcedureNeutered   ProcedureType = "neutered"
	ProcedureSpayed     ProcedureType = "spayed"
	ProcedureVaccinated ProcedureType = "vaccinated"
	ProcedureDewormed   ProcedureType = "dewormed"
)

type MedicalProcedure struct {
	ID            int64         `json:"id"`
	CatID         int64         `json:"cat_id"`
	ProcedureType ProcedureType `json:"procedure_type"`
	ProcedureDate time.Time     `json:"procedure_date"`
}
