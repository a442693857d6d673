package models

import "time"

// Column widths, in characters.
const (
	MaxRentalNameLen  = 255
	MaxDescriptionLen = 2000
)

// Rental is a property listing. Picture holds the public URL of the uploaded
// image and OwnerID the user that created the listing.
type Rental struct {
	ID          int64
	Name        string
	Surface     int
	Price       float64
	Picture     string
	Description string
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
