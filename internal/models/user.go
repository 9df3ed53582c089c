package models

import "time"

type User struct {
	UserID        string    `db:"user_id" json:"user_id"`
	Email         string    `db:"email" json:"email"`
	Username      string    `db:"username" json:"username"`
	FullName      *string   `db:"full_name" json:"full_name,omitempty"`
	PhoneNumber   *string   `db:"phone_number" json:"phone_number,omitempty"`
	Password      string    `db:"password" json:"-"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	IsAdmin       bool      `db:"is_admin" json:"is_admin"`
	OAuthProvider *string   `db:"oauth_provider" json:"oauth_provider,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
