package repository

import "jobly/models"

// JobRepository owns all reads and writes to the jobs table.
type JobRepository interface {
	FindAll(filter models.JobFilter) ([]models.JobSummary, error)
	FindOne(id int64) (*models.Job, error)
	Create(data models.JobCreate) (*models.Job, error)
	Update(id int64, changes map[string]interface{}) (*models.Job, error)
	Delete(id int64) (int64, error)
}
