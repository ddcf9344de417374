package models

// Company is a full row from the companies table. Handle is the primary
// key; optional columns stay nil when unset so they serialize as null.
type Company struct {
	Handle       string  `json:"handle" db:"handle" bson:"handle"`
	Name         string  `json:"name" db:"name" bson:"name"`
	NumEmployees *int    `json:"num_employees" db:"num_employees" bson:"num_employees"`
	Description  *string `json:"description" db:"description" bson:"description"`
	LogoURL      *string `json:"logo_url" db:"logo_url" bson:"logo_url"`
}

// CompanySummary is the list-view shape: handle and name only.
type CompanySummary struct {
	Handle string `json:"handle" db:"handle" bson:"handle"`
	Name   string `json:"name" db:"name" bson:"name"`
}

// CompanyFilter narrows the company list. Search matches the handle
// exactly; the employee bounds are inclusive.
type CompanyFilter struct {
	Search       string
	MinEmployees *int
	MaxEmployees *int
}

type CompanyCreate struct {
	Handle       string  `json:"handle" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	NumEmployees *int    `json:"num_employees" validate:"omitempty,gte=0"`
	Description  *string `json:"description"`
	LogoURL      *string `json:"logo_url" validate:"omitempty,url"`
}

type CompanyPatch struct {
	Handle       *string `json:"handle"`
	Name         *string `json:"name"`
	NumEmployees *int    `json:"num_employees" validate:"omitempty,gte=0"`
	Description  *string `json:"description"`
	LogoURL      *string `json:"logo_url" validate:"omitempty,url"`
}

// Changes maps the present fields to their column names for the store's
// partial update.
func (p CompanyPatch) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if p.Handle != nil {
		changes["handle"] = *p.Handle
	}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.NumEmployees != nil {
		changes["num_employees"] = *p.NumEmployees
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	if p.LogoURL != nil {
		changes["logo_url"] = *p.LogoURL
	}
	return changes
}
