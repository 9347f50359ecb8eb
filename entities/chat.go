package entities

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ListingID       uuid.UUID `json:"listing_id"`
	RequesterID     uuid.UUID `json:"requester_id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Status          string    `json:"status"` // Active, Closed
	LastMessageTime time.Time `json:"last_message_time"`

	Listing   *Listing   `gorm:"foreignKey:ListingID"`
	Requester *User      `gorm:"foreignKey:RequesterID"`
	Owner     *User      `gorm:"foreignKey:OwnerID"`
	Messages  []*Message `gorm:"foreignKey:ChatID"`
	Timestamp
}

type Message struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ChatID   uuid.UUID `json:"chat_id"`
	SenderID uuid.UUID `json:"sender_id"`
	Content  string    `json:"content"`
	IsRead   bool      `json:"is_read"`

	Chat   *Chat `gorm:"foreignKey:ChatID"`
	Sender *User `gorm:"foreignKey:SenderID"`
	Timestamp
}
