// model/hoarding.go
package model

import "time"

type Hoarding struct {
	ID               int64     `json:"id"`
	OwnerID          int64     `json:"owner_id"`
	Height           float64   `json:"height"`
	Width            float64   `json:"width"`
	Address          string    `json:"address"`
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	InstallationDate time.Time `json:"installation_date"`
	// IsAvailable is a cache derived from the placement set; the placement
	// repository recomputes it on every mutation.
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

// OwnerContact is the subset of owner details shown to advertisers.
type OwnerContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AvailableHoarding is a hoarding listing enriched with owner contact info.
type AvailableHoarding struct {
	Hoarding
	Owner OwnerContact `json:"owner"`
}
