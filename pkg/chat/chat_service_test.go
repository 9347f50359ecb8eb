package chat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pankaj377/swap-bite-find-sub000/domain"
	"github.com/pankaj377/swap-bite-find-sub000/entities"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/listing"
)

// -------- test fakes --------

type fakeChatRepo struct {
	ChatRepository

	chats    map[string]*entities.Chat
	messages []*entities.Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[string]*entities.Chat)}
}

func (f *fakeChatRepo) put(requesterID, ownerID uuid.UUID, status string) *entities.Chat {
	c := &entities.Chat{
		ID:          uuid.New(),
		ListingID:   uuid.New(),
		RequesterID: requesterID,
		OwnerID:     ownerID,
		Status:      status,
	}
	f.chats[c.ID.String()] = c
	return c
}

func (f *fakeChatRepo) GetChatByID(ctx context.Context, id string) (*entities.Chat, error) {
	c, ok := f.chats[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeChatRepo) UpdateChatStatus(ctx context.Context, id string, status string) error {
	c, ok := f.chats[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeChatRepo) AddMessage(ctx context.Context, message *entities.Message) error {
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeChatRepo) UpdateLastMessageTime(ctx context.Context, chatID string, t time.Time) error {
	return nil
}

type stubListingRepo struct {
	listing.ListingRepository
}

// -------- tests --------

func TestCloseChatMarksChatClosed(t *testing.T) {
	repo := newFakeChatRepo()
	svc := NewChatService(repo, stubListingRepo{})

	requester := uuid.New()
	c := repo.put(requester, uuid.New(), "Active")

	err := svc.CloseChat(context.Background(), c.ID.String(), requester.String())

	require.NoError(t, err)
	assert.Equal(t, "Closed", repo.chats[c.ID.String()].Status)
}

func TestCloseChatRequiresParticipant(t *testing.T) {
	repo := newFakeChatRepo()
	svc := NewChatService(repo, stubListingRepo{})

	c := repo.put(uuid.New(), uuid.New(), "Active")

	err := svc.CloseChat(context.Background(), c.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedChatAccess)
	assert.Equal(t, "Active", repo.chats[c.ID.String()].Status)
}

func TestCloseChatAlreadyClosed(t *testing.T) {
	repo := newFakeChatRepo()
	svc := NewChatService(repo, stubListingRepo{})

	owner := uuid.New()
	c := repo.put(uuid.New(), owner, "Closed")

	err := svc.CloseChat(context.Background(), c.ID.String(), owner.String())
	assert.ErrorIs(t, err, domain.ErrChatClosed)
}

func TestCloseChatMissing(t *testing.T) {
	svc := NewChatService(newFakeChatRepo(), stubListingRepo{})

	err := svc.CloseChat(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrChatNotFound)
}

func TestSendMessageRejectsClosedChat(t *testing.T) {
	repo := newFakeChatRepo()
	svc := NewChatService(repo, stubListingRepo{})

	requester := uuid.New()
	c := repo.put(requester, uuid.New(), "Closed")

	_, err := svc.SendMessage(context.Background(), domain.SendMessageRequest{
		ChatID:  c.ID.String(),
		Content: "is this still available?",
	}, requester.String())

	assert.ErrorIs(t, err, domain.ErrChatClosed)
	assert.Empty(t, repo.messages)
}
