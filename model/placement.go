// model/placement.go
package model

import "time"

// Placement binds one advertisement to one hoarding for the half-open
// date interval [StartDate, EndDate). Token is the opaque identifier
// encoded in the placement's QR code; it is assigned before insert and
// never mutated afterwards.
type Placement struct {
	ID              int64     `json:"id"`
	HoardingID      int64     `json:"hoarding_id"`
	AdvertisementID int64     `json:"advertisement_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Token           string    `json:"token"`
	CreatedAt       time.Time `json:"created_at"`
}

// Active reports whether the placement covers now or a future date.
func (p Placement) Active(now time.Time) bool {
	return p.EndDate.After(now)
}

// Overlaps applies the half-open interval test against [start, end).
func (p Placement) Overlaps(start, end time.Time) bool {
	return p.StartDate.Before(end) && start.Before(p.EndDate)
}
