package repository

import "jobly/models"

// UserRepository owns all reads and writes to the users table. FindOne
// returns the full row including the password hash; callers are
// responsible for never serializing it.
type UserRepository interface {
	FindAll() ([]models.UserSummary, error)
	FindOne(username string) (*models.User, error)
	Create(data models.UserCreate, hashedPassword string) (*models.User, error)
	Update(username string, changes map[string]interface{}) (*models.User, error)
	Delete(username string) (string, error)
}
