package models

import "time"

type User struct {
	ID               int64      `json:"id"`
	Username         string     `json:"username"`
	Password         string     `json:"-"`
	Role             string     `json:"role"` // admin, user
	ConversionsUsed  int        `json:"conversions_used"`
	LastConversionAt *time.Time `json:"last_conversion_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
