package chat

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pankaj377/swap-bite-find-sub000/entities"
)

type (
	ChatRepository interface {
		CreateChat(ctx context.Context, chat *entities.Chat) error
		GetChatByID(ctx context.Context, id string) (*entities.Chat, error)
		GetChatByListingAndUsers(ctx context.Context, listingID, requesterID, ownerID string) (*entities.Chat, error)
		GetUserChats(ctx context.Context, userID string, page, limit int) ([]*entities.Chat, int64, error)
		UpdateChatStatus(ctx context.Context, id string, status string) error
		UpdateLastMessageTime(ctx context.Context, chatID string, t time.Time) error

		AddMessage(ctx context.Context, message *entities.Message) error
		GetMessages(ctx context.Context, chatID string, page, limit int) ([]*entities.Message, int64, error)
		MarkMessagesAsRead(ctx context.Context, chatID, userID string) error
		GetUnreadMessageCount(ctx context.Context, chatID, userID string) (int, error)
	}

	chatRepository struct {
		db *gorm.DB
	}
)

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateChat(ctx context.Context, chat *entities.Chat) error {
	return r.db.WithContext(ctx).Create(chat).Error
}

func (r *chatRepository) GetChatByID(ctx context.Context, id string) (*entities.Chat, error) {
	var chat entities.Chat
	if err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Requester").
		Preload("Owner").
		Where("id = ?", id).
		First(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) GetChatByListingAndUsers(ctx context.Context, listingID, requesterID, ownerID string) (*entities.Chat, error) {
	var chat entities.Chat
	if err := r.db.WithContext(ctx).
		Where("listing_id = ? AND requester_id = ? AND owner_id = ?", listingID, requesterID, ownerID).
		First(&chat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) GetUserChats(ctx context.Context, userID string, page, limit int) ([]*entities.Chat, int64, error) {
	var chats []*entities.Chat
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).
		Where("requester_id = ? OR owner_id = ?", userID, userID)

	if err := query.Model(&entities.Chat{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Listing").
		Preload("Requester").
		Preload("Owner").
		Order("last_message_time DESC").
		Offset(offset).
		Limit(limit).
		Find(&chats).Error; err != nil {
		return nil, 0, err
	}

	return chats, count, nil
}

func (r *chatRepository) UpdateChatStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Chat{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *chatRepository) UpdateLastMessageTime(ctx context.Context, chatID string, t time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.Chat{}).
		Where("id = ?", chatID).
		Update("last_message_time", t).Error
}

func (r *chatRepository) AddMessage(ctx context.Context, message *entities.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *chatRepository) GetMessages(ctx context.Context, chatID string, page, limit int) ([]*entities.Message, int64, error) {
	var messages []*entities.Message
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("chat_id = ?", chatID)

	if err := query.Model(&entities.Message{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Sender").
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, count, nil
}

func (r *chatRepository) MarkMessagesAsRead(ctx context.Context, chatID, userID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Where("chat_id = ? AND sender_id != ? AND is_read = ?", chatID, userID, false).
		Update("is_read", true).Error
}

func (r *chatRepository) GetUnreadMessageCount(ctx context.Context, chatID, userID string) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Where("chat_id = ? AND sender_id != ? AND is_read = ?", chatID, userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}
