package repository

import "jobly/models"

// CompanyRepository owns all reads and writes to the companies table.
type CompanyRepository interface {
	FindAll(filter models.CompanyFilter) ([]models.CompanySummary, error)
	FindOne(handle string) (*models.Company, error)
	Create(data models.CompanyCreate) (*models.Company, error)
	Update(handle string, changes map[string]interface{}) (*models.Company, error)
	Delete(handle string) (string, error)
}
