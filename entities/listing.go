package entities

import (
	"time"

	"github.com/google/uuid"
)

type Listing struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"` // "Fruits", "Vegetables", "Bakery", "Dairy", "Meals", "Other"
	Quantity    int       `json:"quantity"`
	// Latitude/Longitude are nullable so a listing posted without map
	// coordinates is distinguishable from one at (0,0).
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	Address   string     `json:"address,omitempty"`
	ImageURL  string     `json:"image_url,omitempty"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at,omitempty"`
	Status    string     `json:"status"` // Available, Reserved, Completed

	User     *User             `gorm:"foreignKey:UserID"`
	Requests []*ListingRequest `gorm:"foreignKey:ListingID"`
	Timestamp
}
