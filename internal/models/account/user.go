package models

import "time"

// User is an admin console operator as cached in Redis and stored in Postgres
type User struct {
	UID         string    `json:"uid" db:"uid"`
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"displayName" db:"display_name"`
	Token       string    `json:"token,omitempty" db:"token"`
	Role        string    `json:"role" db:"role"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
