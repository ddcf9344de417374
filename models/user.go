package models

// User is a full row from the users table. The password hash never leaves
// the server: it is excluded from every JSON shape.
type User struct {
	Username  string  `json:"username" db:"username" bson:"username"`
	Password  string  `json:"-" db:"password" bson:"password"`
	FirstName string  `json:"first_name" db:"first_name" bson:"first_name"`
	LastName  string  `json:"last_name" db:"last_name" bson:"last_name"`
	Email     string  `json:"email" db:"email" bson:"email"`
	PhotoURL  *string `json:"photo_url" db:"photo_url" bson:"photo_url"`
	IsAdmin   bool    `json:"is_admin" db:"is_admin" bson:"is_admin"`
}

// UserSummary is the list-view shape.
type UserSummary struct {
	Username  string `json:"username" db:"username" bson:"username"`
	FirstName string `json:"first_name" db:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" db:"last_name" bson:"last_name"`
	Email     string `json:"email" db:"email" bson:"email"`
}

type UserCreate struct {
	Username  string  `json:"username" validate:"required"`
	Password  string  `json:"password" validate:"required"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	PhotoURL  *string `json:"photo_url" validate:"omitempty,url"`
}

type UserPatch struct {
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	PhotoURL  *string `json:"photo_url" validate:"omitempty,url"`
}

// Changes maps the present fields to their column names. The password
// value must already be hashed by the caller.
func (p UserPatch) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if p.Username != nil {
		changes["username"] = *p.Username
	}
	if p.Password != nil {
		changes["password"] = *p.Password
	}
	if p.FirstName != nil {
		changes["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		changes["last_name"] = *p.LastName
	}
	if p.Email != nil {
		changes["email"] = *p.Email
	}
	if p.PhotoURL != nil {
		changes["photo_url"] = *p.PhotoURL
	}
	return changes
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
