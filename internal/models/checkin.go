package models

import "time"

type CheckIn struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	Hours      float64   `json:"hours"`
	Tag        string    `json:"tag"`
	Activities string    `json:"activities"`
	Date       time.Time `json:"date"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}

type UpdateCheckInRequest struct {
	Hours      *float64   `json:"hours,omitempty"`
	Tag        *string    `json:"tag,omitempty"`
	Activities *string    `json:"activities,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Department *string    `json:"department,omitempty"`
}
