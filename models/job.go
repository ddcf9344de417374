package models

import "time"

// Job is a full row from the jobs table. The id is assigned by the store.
type Job struct {
	ID            int64     `json:"id" db:"id" bson:"id"`
	Title         string    `json:"title" db:"title" bson:"title"`
	Salary        float64   `json:"salary" db:"salary" bson:"salary"`
	Equity        *float64  `json:"equity" db:"equity" bson:"equity"`
	CompanyHandle string    `json:"company_handle" db:"company_handle" bson:"company_handle"`
	DatePosted    time.Time `json:"date_posted" db:"date_posted" bson:"date_posted"`
}

// JobSummary is the list-view shape: title and company_handle only.
type JobSummary struct {
	Title         string `json:"title" db:"title" bson:"title"`
	CompanyHandle string `json:"company_handle" db:"company_handle" bson:"company_handle"`
}

// JobFilter narrows the job list. Search matches the title exactly; the
// salary bounds are inclusive.
type JobFilter struct {
	Search    string
	MinSalary *float64
	MaxSalary *float64
}

type JobCreate struct {
	Title         string   `json:"title" validate:"required"`
	Salary        *float64 `json:"salary" validate:"required,gte=0"`
	Equity        *float64 `json:"equity" validate:"omitempty,gte=0,lte=1"`
	CompanyHandle string   `json:"company_handle" validate:"required"`
}

type JobPatch struct {
	Title         *string  `json:"title"`
	Salary        *float64 `json:"salary" validate:"omitempty,gte=0"`
	Equity        *float64 `json:"equity" validate:"omitempty,gte=0,lte=1"`
	CompanyHandle *string  `json:"company_handle"`
}

func (p JobPatch) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.Salary != nil {
		changes["salary"] = *p.Salary
	}
	if p.Equity != nil {
		changes["equity"] = *p.Equity
	}
	if p.CompanyHandle != nil {
		changes["company_handle"] = *p.CompanyHandle
	}
	return changes
}
