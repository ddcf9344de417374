package repository

import (
	"database/sql"
	"fmt"

	"jobly/apperr"
	"jobly/models"
)

var userColumns = map[string]bool{
	"username":   true,
	"password":   true,
	"first_name": true,
	"last_name":  true,
	"email":      true,
	"photo_url":  true,
}

type PostgresUserRepo struct {
	DB *sql.DB
}

func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{DB: db}
}

func (r *PostgresUserRepo) FindAll() ([]models.UserSummary, error) {
	rows, err := r.DB.Query(`
		SELECT username, first_name, last_name, email
		FROM users
		ORDER BY last_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.UserSummary{}
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresUserRepo) FindOne(username string) (*models.User, error) {
	user := &models.User{}
	err := r.DB.QueryRow(`
		SELECT username, password, first_name, last_name, email, photo_url, is_admin
		FROM users
		WHERE username=$1
	`, username).Scan(&user.Username, &user.Password, &user.FirstName, &user.LastName, &user.Email, &user.PhotoURL, &user.IsAdmin)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound(fmt.Sprintf("Could not locate the user with username %s", username))
		}
		return nil, err
	}
	return user, nil
}

func (r *PostgresUserRepo) Create(data models.UserCreate, hashedPassword string) (*models.User, error) {
	user := &models.User{}
	err := r.DB.QueryRow(`
		INSERT INTO users (username, password, first_name, last_name, email, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING username, password, first_name, last_name, email, photo_url, is_admin
	`, data.Username, hashedPassword, data.FirstName, data.LastName, data.Email, data.PhotoURL).
		Scan(&user.Username, &user.Password, &user.FirstName, &user.LastName, &user.Email, &user.PhotoURL, &user.IsAdmin)

	if err != nil {
		return nil, mapPGError(err)
	}
	return user, nil
}

func (r *PostgresUserRepo) Update(username string, changes map[string]interface{}) (*models.User, error) {
	query, args, err := buildUpdate("users", "username", username, changes, userColumns)
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
		return nil, apperr.NotFound(fmt.Sprintf("Could not locate the user with username %s", username))
	}

	// A renamed username becomes the new key for the re-read.
	currentUsername, err := updatedKey(username, "username", changes)
	if err != nil {
		return nil, err
	}

	user := &models.User{}
	err = tx.QueryRow(`
		SELECT username, password, first_name, last_name, email, photo_url, is_admin
		FROM users
		WHERE username=$1
	`, currentUsername).Scan(&user.Username, &user.Password, &user.FirstName, &user.LastName, &user.Email, &user.PhotoURL, &user.IsAdmin)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PostgresUserRepo) Delete(username string) (string, error) {
	var deleted string
	err := r.DB.QueryRow(`DELETE FROM users WHERE username=$1 RETURNING username`, username).Scan(&deleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", apperr.NotFound(fmt.Sprintf("There is no user with the username of %s", username))
		}
		return "", err
	}
	return deleted, nil
}
