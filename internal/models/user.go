package models

import "time"

type User struct {
	UserID  string    `json:"user_id"`
	Email   string    `json:"email"`
	Created time.Time `json:"created_at"`
}
