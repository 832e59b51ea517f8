package models

import "time"

type Warehouse struct {
	ID                int64     `json:"id"`
	City              string    `json:"city"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	CreatedBy         *int64    `json:"created_by"` // nil if the creator was deleted
	CreatedByUsername string    `json:"created_by_username"`
}
