package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pankaj377/swap-bite-find-sub000/domain"
	"github.com/pankaj377/swap-bite-find-sub000/entities"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/listing"
)

type (
	ChatService interface {
		OpenChat(ctx context.Context, req domain.OpenChatRequest, userID string) (*domain.Chat, error)
		GetUserChats(ctx context.Context, userID string, page, limit int) ([]*domain.Chat, int64, error)
		GetChatByID(ctx context.Context, id string, userID string) (*domain.Chat, error)
		SendMessage(ctx context.Context, req domain.SendMessageRequest, userID string) (*domain.Message, error)
		MarkMessagesAsRead(ctx context.Context, chatID string, userID string) error
		CloseChat(ctx context.Context, chatID string, userID string) error
	}

	chatService struct {
		chatRepository    ChatRepository
		listingRepository listing.ListingRepository
	}
)

func NewChatService(chatRepository ChatRepository, listingRepository listing.ListingRepository) ChatService {
	return &chatService{
		chatRepository:    chatRepository,
		listingRepository: listingRepository,
	}
}

func (s *chatService) OpenChat(ctx context.Context, req domain.OpenChatRequest, userID string) (*domain.Chat, error) {
	l, err := s.listingRepository.GetListingByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}

	if l.UserID.String() == userID {
		return nil, domain.ErrChatWithSelf
	}

	requesterUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	// Reuse an existing chat for the same listing and participants.
	existing, err := s.chatRepository.GetChatByListingAndUsers(ctx, req.ListingID, userID, l.UserID.String())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	chat := existing
	if chat == nil {
		chat = &entities.Chat{
			ID:              uuid.New(),
			ListingID:       l.ID,
			RequesterID:     requesterUUID,
			OwnerID:         l.UserID,
			Status:          "Active",
			LastMessageTime: now,
		}
		if err := s.chatRepository.CreateChat(ctx, chat); err != nil {
			return nil, err
		}
	}

	message := &entities.Message{
		ID:       uuid.New(),
		ChatID:   chat.ID,
		SenderID: requesterUUID,
		Content:  req.Message,
	}

	if err := s.chatRepository.AddMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := s.chatRepository.UpdateLastMessageTime(ctx, chat.ID.String(), now); err != nil {
		return nil, err
	}

	return &domain.Chat{
		ID:              chat.ID.String(),
		ListingID:       chat.ListingID.String(),
		ListingTitle:    l.Title,
		RequesterID:     chat.RequesterID.String(),
		OwnerID:         chat.OwnerID.String(),
		Status:          chat.Status,
		LastMessage:     req.Message,
		LastMessageTime: now,
		CreatedAt:       chat.CreatedAt,
	}, nil
}

func (s *chatService) GetUserChats(ctx context.Context, userID string, page, limit int) ([]*domain.Chat, int64, error) {
	chats, count, err := s.chatRepository.GetUserChats(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Chat, 0, len(chats))
	for _, c := range chats {
		item := toDomainChat(c)

		unread, err := s.chatRepository.GetUnreadMessageCount(ctx, c.ID.String(), userID)
		if err == nil {
			item.UnreadCount = unread
		}

		result = append(result, item)
	}

	return result, count, nil
}

func (s *chatService) GetChatByID(ctx context.Context, id string, userID string) (*domain.Chat, error) {
	chat, err := s.chatRepository.GetChatByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChatNotFound
		}
		return nil, err
	}

	if chat.RequesterID.String() != userID && chat.OwnerID.String() != userID {
		return nil, domain.ErrUnauthorizedChatAccess
	}

	result := toDomainChat(chat)

	messages, _, err := s.chatRepository.GetMessages(ctx, id, 1, 100)
	if err != nil {
		return nil, err
	}

	result.Messages = make([]*domain.Message, 0, len(messages))
	for _, m := range messages {
		msg := &domain.Message{
			ID:        m.ID.String(),
			ChatID:    m.ChatID.String(),
			SenderID:  m.SenderID.String(),
			Content:   m.Content,
			IsRead:    m.IsRead,
			CreatedAt: m.CreatedAt,
		}
		if m.Sender != nil {
			msg.SenderName = m.Sender.Name
		}
		result.Messages = append(result.Messages, msg)
	}

	return result, nil
}

func (s *chatService) SendMessage(ctx context.Context, req domain.SendMessageRequest, userID string) (*domain.Message, error) {
	chat, err := s.chatRepository.GetChatByID(ctx, req.ChatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChatNotFound
		}
		return nil, err
	}

	if chat.RequesterID.String() != userID && chat.OwnerID.String() != userID {
		return nil, domain.ErrUnauthorizedChatAccess
	}

	if chat.Status != "Active" {
		return nil, domain.ErrChatClosed
	}

	senderUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	now := time.Now()
	message := &entities.Message{
		ID:       uuid.New(),
		ChatID:   chat.ID,
		SenderID: senderUUID,
		Content:  req.Content,
	}

	if err := s.chatRepository.AddMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := s.chatRepository.UpdateLastMessageTime(ctx, req.ChatID, now); err != nil {
		return nil, err
	}

	return &domain.Message{
		ID:        message.ID.String(),
		ChatID:    message.ChatID.String(),
		SenderID:  userID,
		Content:   message.Content,
		CreatedAt: now,
	}, nil
}

func (s *chatService) MarkMessagesAsRead(ctx context.Context, chatID string, userID string) error {
	chat, err := s.chatRepository.GetChatByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrChatNotFound
		}
		return err
	}

	if chat.RequesterID.String() != userID && chat.OwnerID.String() != userID {
		return domain.ErrUnauthorizedChatAccess
	}

	return s.chatRepository.MarkMessagesAsRead(ctx, chatID, userID)
}

// CloseChat ends a conversation, usually once the pickup is done. Either
// participant can close; a closed chat rejects further messages.
func (s *chatService) CloseChat(ctx context.Context, chatID string, userID string) error {
	chat, err := s.chatRepository.GetChatByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrChatNotFound
		}
		return err
	}

	if chat.RequesterID.String() != userID && chat.OwnerID.String() != userID {
		return domain.ErrUnauthorizedChatAccess
	}

	if chat.Status != "Active" {
		return domain.ErrChatClosed
	}

	return s.chatRepository.UpdateChatStatus(ctx, chatID, "Closed")
}

func toDomainChat(c *entities.Chat) *domain.Chat {
	result := &domain.Chat{
		ID:              c.ID.String(),
		ListingID:       c.ListingID.String(),
		RequesterID:     c.RequesterID.String(),
		OwnerID:         c.OwnerID.String(),
		Status:          c.Status,
		LastMessageTime: c.LastMessageTime,
		CreatedAt:       c.CreatedAt,
	}
	if c.Listing != nil {
		result.ListingTitle = c.Listing.Title
	}
	if c.Requester != nil {
		result.RequesterName = c.Requester.Name
	}
	if c.Owner != nil {
		result.OwnerName = c.Owner.Name
	}
	return result
}
