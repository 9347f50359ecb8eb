package entities

import (
	"time"

	"github.com/google/uuid"
)

type ListingRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ListingID   uuid.UUID  `json:"listing_id"`
	RequesterID uuid.UUID  `json:"requester_id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Message     string     `json:"message,omitempty"`
	Status      string     `json:"status"` // Pending, Accepted, Declined, Cancelled, Completed
	RespondedAt *time.Time `json:"responded_at,omitempty"`

	Listing   *Listing `gorm:"foreignKey:ListingID"`
	Requester *User    `gorm:"foreignKey:RequesterID"`
	Owner     *User    `gorm:"foreignKey:OwnerID"`
	Timestamp
}
