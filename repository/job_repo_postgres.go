package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"jobly/apperr"
	"jobly/models"
)

var jobColumns = map[string]bool{
	"title":          true,
	"salary":         true,
	"equity":         true,
	"company_handle": true,
}

type PostgresJobRepo struct {
	DB *sql.DB
}

func NewPostgresJobRepo(db *sql.DB) *PostgresJobRepo {
	return &PostgresJobRepo{DB: db}
}

func (r *PostgresJobRepo) FindAll(filter models.JobFilter) ([]models.JobSummary, error) {
	query := `SELECT title, company_handle FROM jobs`

	args := []interface{}{}
	where := []string{}
	i := 1
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("title = $%d", i))
		args = append(args, filter.Search)
		i++
	}
	if filter.MinSalary != nil {
		where = append(where, fmt.Sprintf("salary >= $%d", i))
		args = append(args, *filter.MinSalary)
		i++
	}
	if filter.MaxSalary != nil {
		where = append(where, fmt.Sprintf("salary <= $%d", i))
		args = append(args, *filter.MaxSalary)
		i++
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date_posted DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []models.JobSummary{}
	for rows.Next() {
		var j models.JobSummary
		if err := rows.Scan(&j.Title, &j.CompanyHandle); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *PostgresJobRepo) FindOne(id int64) (*models.Job, error) {
	job := &models.Job{}
	err := r.DB.QueryRow(`
		SELECT id, title, salary, equity, company_handle, date_posted
		FROM jobs
		WHERE id=$1
	`, id).Scan(&job.ID, &job.Title, &job.Salary, &job.Equity, &job.CompanyHandle, &job.DatePosted)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound(fmt.Sprintf("No jobs found with the id of %d", id))
		}
		return nil, err
	}
	return job, nil
}

func (r *PostgresJobRepo) Create(data models.JobCreate) (*models.Job, error) {
	job := &models.Job{}
	err := r.DB.QueryRow(`
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, salary, equity, company_handle, date_posted
	`, data.Title, data.Salary, data.Equity, data.CompanyHandle).
		Scan(&job.ID, &job.Title, &job.Salary, &job.Equity, &job.CompanyHandle, &job.DatePosted)

	if err != nil {
		return nil, mapPGError(err)
	}
	return job, nil
}

func (r *PostgresJobRepo) Update(id int64, changes map[string]interface{}) (*models.Job, error) {
	query, args, err := buildUpdate("jobs", "id", id, changes, jobColumns)
	if err != nil {
		return nil, err
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(query, args...)
	if err != nil {
		return nil, mapPGError(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("No jobs found with the id of %d", id))
	}

	job := &models.Job{}
	err = tx.QueryRow(`
		SELECT id, title, salary, equity, company_handle, date_posted
		FROM jobs
		WHERE id=$1
	`, id).Scan(&job.ID, &job.Title, &job.Salary, &job.Equity, &job.CompanyHandle, &job.DatePosted)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return job, nil
}

func (r *PostgresJobRepo) Delete(id int64) (int64, error) {
	var deleted int64
	err := r.DB.QueryRow(`DELETE FROM jobs WHERE id=$1 RETURNING id`, id).Scan(&deleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, apperr.NotFound(fmt.Sprintf("There is no job with the id of %d", id))
		}
		return 0, err
	}
	return deleted, nil
}
