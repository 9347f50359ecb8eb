package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessOpenChat    = "chat opened successfully"
	MessageSuccessGetChats    = "chats retrieved successfully"
	MessageSuccessGetMessages = "messages retrieved successfully"
	MessageSuccessSendMessage = "message sent successfully"
	MessageSuccessMarkRead    = "messages marked as read"
	MessageSuccessCloseChat   = "chat closed successfully"

	MessageFailedOpenChat    = "failed to open chat"
	MessageFailedGetChats    = "failed to retrieve chats"
	MessageFailedGetMessages = "failed to retrieve messages"
	MessageFailedSendMessage = "failed to send message"
	MessageFailedMarkRead    = "failed to mark messages as read"
	MessageFailedCloseChat   = "failed to close chat"

	ErrChatNotFound           = errors.New("chat not found")
	ErrUnauthorizedChatAccess = errors.New("unauthorized access to chat")
	ErrChatWithSelf           = errors.New("cannot open a chat with yourself")
	ErrChatClosed             = errors.New("chat is closed")
	ErrEmptyMessage           = errors.New("message content cannot be empty")
)

type (
	OpenChatRequest struct {
		ListingID string `json:"listing_id" validate:"required,uuid"`
		Message   string `json:"message" validate:"required,max=1000"`
	}

	SendMessageRequest struct {
		ChatID  string `json:"chat_id" validate:"required,uuid"`
		Content string `json:"content" validate:"required,max=1000"`
	}

	Chat struct {
		ID              string     `json:"id"`
		ListingID       string     `json:"listing_id"`
		ListingTitle    string     `json:"listing_title,omitempty"`
		RequesterID     string     `json:"requester_id"`
		RequesterName   string     `json:"requester_name,omitempty"`
		OwnerID         string     `json:"owner_id"`
		OwnerName       string     `json:"owner_name,omitempty"`
		Status          string     `json:"status"`
		LastMessage     string     `json:"last_message,omitempty"`
		LastMessageTime time.Time  `json:"last_message_time"`
		UnreadCount     int        `json:"unread_count"`
		Messages        []*Message `json:"messages,omitempty"`
		CreatedAt       time.Time  `json:"created_at"`
	}

	Message struct {
		ID         string    `json:"id"`
		ChatID     string    `json:"chat_id"`
		SenderID   string    `json:"sender_id"`
		SenderName string    `json:"sender_name,omitempty"`
		Content    string    `json:"content"`
		IsRead     bool      `json:"is_read"`
		CreatedAt  time.Time `json:"created_at"`
	}
)
