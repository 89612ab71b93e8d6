package entity

import "time"

type User struct {
	ID             string    `db:"id"`
	Email          string    `db:"email"`
	FullName       string    `db:"full_name"`
	HashedPassword string    `db:"hashed_password"`
	IsActive       bool      `db:"is_active"`
	IsSuperuser    bool      `db:"is_superuser"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// UserLoginData is what the token middleware stores on the request.
type UserLoginData struct {
	ID          string
	Email       string
	IsSuperuser bool
}
