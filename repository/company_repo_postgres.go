package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"jobly/apperr"
	"jobly/models"
)

var companyColumns = map[string]bool{
	"handle":        true,
	"name":          true,
	"num_employees": true,
	"description":   true,
	"logo_url":      true,
}

type PostgresCompanyRepo struct {
	DB *sql.DB
}

func NewPostgresCompanyRepo(db *sql.DB) *PostgresCompanyRepo {
	return &PostgresCompanyRepo{DB: db}
}

func (r *PostgresCompanyRepo) FindAll(filter models.CompanyFilter) ([]models.CompanySummary, error) {
	query := `SELECT handle, name FROM companies`

	args := []interface{}{}
	where := []string{}
	i := 1
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("handle = $%d", i))
		args = append(args, filter.Search)
		i++
	}
	if filter.MinEmployees != nil {
		where = append(where, fmt.Sprintf("num_employees >= $%d", i))
		args = append(args, *filter.MinEmployees)
		i++
	}
	if filter.MaxEmployees != nil {
		where = append(where, fmt.Sprintf("num_employees <= $%d", i))
		args = append(args, *filter.MaxEmployees)
		i++
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY handle"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []models.CompanySummary{}
	for rows.Next() {
		var c models.CompanySummary
		if err := rows.Scan(&c.Handle, &c.Name); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *PostgresCompanyRepo) FindOne(handle string) (*models.Company, error) {
	company := &models.Company{}
	err := r.DB.QueryRow(`
		SELECT handle, name, num_employees, description, logo_url
		FROM companies
		WHERE handle=$1
	`, handle).Scan(&company.Handle, &company.Name, &company.NumEmployees, &company.Description, &company.LogoURL)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound(fmt.Sprintf("There is no company with handle of %s", handle))
		}
		return nil, err
	}
	return company, nil
}

func (r *PostgresCompanyRepo) Create(data models.CompanyCreate) (*models.Company, error) {
	company := &models.Company{}
	err := r.DB.QueryRow(`
		INSERT INTO companies (handle, name, num_employees, description, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING handle, name, num_employees, description, logo_url
	`, data.Handle, data.Name, data.NumEmployees, data.Description, data.LogoURL).
		Scan(&company.Handle, &company.Name, &company.NumEmployees, &company.Description, &company.LogoURL)

	if err != nil {
		return nil, mapPGError(err)
	}
	return company, nil
}

// Update applies the changed columns as one statement inside a
// transaction and re-reads the row by its current key, which may have
// been renamed by the update itself.
func (r *PostgresCompanyRepo) Update(handle string, changes map[string]interface{}) (*models.Company, error) {
	query, args, err := buildUpdate("companies", "handle", handle, changes, companyColumns)
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
		return nil, apperr.NotFound(fmt.Sprintf("There is no company with handle of %s", handle))
	}

	currentHandle, err := updatedKey(handle, "handle", changes)
	if err != nil {
		return nil, err
	}

	company := &models.Company{}
	err = tx.QueryRow(`
		SELECT handle, name, num_employees, description, logo_url
		FROM companies
		WHERE handle=$1
	`, currentHandle).Scan(&company.Handle, &company.Name, &company.NumEmployees, &company.Description, &company.LogoURL)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return company, nil
}

func (r *PostgresCompanyRepo) Delete(handle string) (string, error) {
	var deleted string
	err := r.DB.QueryRow(`DELETE FROM companies WHERE handle=$1 RETURNING handle`, handle).Scan(&deleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", apperr.NotFound(fmt.Sprintf("There is no company with handle of %s", handle))
		}
		return "", mapPGError(err)
	}
	return deleted, nil
}
