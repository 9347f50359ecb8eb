package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/pankaj377/swap-bite-find-sub000/domain"
	"github.com/pankaj377/swap-bite-find-sub000/internal/api/presenters"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/chat"
)

type (
	ChatHandler interface {
		OpenChat(c *fiber.Ctx) error
		GetUserChats(c *fiber.Ctx) error
		GetChatDetails(c *fiber.Ctx) error
		SendMessage(c *fiber.Ctx) error
		MarkMessagesAsRead(c *fiber.Ctx) error
		CloseChat(c *fiber.Ctx) error
	}

	chatHandler struct {
		chatService chat.ChatService
		validator   *validator.Validate
	}
)

func NewChatHandler(chatService chat.ChatService, validator *validator.Validate) ChatHandler {
	return &chatHandler{
		chatService: chatService,
		validator:   validator,
	}
}

func (h *chatHandler) OpenChat(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.OpenChatRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedOpenChat, err)
	}

	res, err := h.chatService.OpenChat(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedOpenChat, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedOpenChat, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessOpenChat)
}

func (h *chatHandler) GetUserChats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	chats, count, err := h.chatService.GetUserChats(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetChats, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"chats": chats,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetChats)
}

func (h *chatHandler) GetChatDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	chatID := c.Params("id")

	res, err := h.chatService.GetChatByID(c.Context(), chatID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrChatNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetMessages, err)
		}
		if errors.Is(err, domain.ErrUnauthorizedChatAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedGetMessages, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMessages, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMessages)
}

func (h *chatHandler) SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SendMessageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendMessage, err)
	}

	res, err := h.chatService.SendMessage(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrChatNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSendMessage, err)
		}
		if errors.Is(err, domain.ErrUnauthorizedChatAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedSendMessage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendMessage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSendMessage)
}

func (h *chatHandler) MarkMessagesAsRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	chatID := c.Params("id")

	if err := h.chatService.MarkMessagesAsRead(c.Context(), chatID, userID); err != nil {
		if errors.Is(err, domain.ErrChatNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedMarkRead, err)
		}
		if errors.Is(err, domain.ErrUnauthorizedChatAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedMarkRead, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkRead, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkRead)
}

func (h *chatHandler) CloseChat(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	chatID := c.Params("id")

	if err := h.chatService.CloseChat(c.Context(), chatID, userID); err != nil {
		if errors.Is(err, domain.ErrChatNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedCloseChat, err)
		}
		if errors.Is(err, domain.ErrUnauthorizedChatAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedCloseChat, err)
		}
		if errors.Is(err, domain.ErrChatClosed) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedCloseChat, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCloseChat, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCloseChat)
}
