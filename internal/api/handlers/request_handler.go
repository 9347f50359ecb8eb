package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/pankaj377/swap-bite-find-sub000/domain"
	"github.com/pankaj377/swap-bite-find-sub000/internal/api/presenters"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/request"
)

type (
	RequestHandler interface {
		CreateRequest(c *fiber.Ctx) error
		RespondToRequest(c *fiber.Ctx) error
		CancelRequest(c *fiber.Ctx) error
		CompletePickup(c *fiber.Ctx) error
		GetIncomingRequests(c *fiber.Ctx) error
		GetOutgoingRequests(c *fiber.Ctx) error
	}

	requestHandler struct {
		requestService request.RequestService
		validator      *validator.Validate
	}
)

func NewRequestHandler(requestService request.RequestService, validator *validator.Validate) RequestHandler {
	return &requestHandler{
		requestService: requestService,
		validator:      validator,
	}
}

func (h *requestHandler) CreateRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreatePickupRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRequest, err)
	}

	res, err := h.requestService.CreateRequest(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedCreateRequest, err)
		}
		if errors.Is(err, domain.ErrRequestAlreadyExists) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedCreateRequest, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRequest, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRequest)
}

func (h *requestHandler) RespondToRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.RespondPickupRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRespondRequest, err)
	}

	if err := h.requestService.RespondToRequest(c.Context(), *req, userID); err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedRespondRequest, err)
		}
		if errors.Is(err, domain.ErrUnauthorizedRequestAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedRespondRequest, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRespondRequest, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRespondRequest)
}

func (h *requestHandler) CancelRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	requestID := c.Params("id")

	if err := h.requestService.CancelRequest(c.Context(), requestID, userID); err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedCancelRequest, err)
		}
		if errors.Is(err, domain.ErrUnauthorizedRequestAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedCancelRequest, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCancelRequest, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelRequest)
}

func (h *requestHandler) CompletePickup(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CompletePickupRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCompletePickup, err)
	}

	if err := h.requestService.CompletePickup(c.Context(), *req, userID); err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedCompletePickup, err)
		}
		if errors.Is(err, domain.ErrUnauthorizedRequestAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedCompletePickup, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCompletePickup, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCompletePickup)
}

func (h *requestHandler) GetIncomingRequests(c *fiber.Ctx) error {
	return h.listRequests(c, h.requestService.GetIncomingRequests)
}

func (h *requestHandler) GetOutgoingRequests(c *fiber.Ctx) error {
	return h.listRequests(c, h.requestService.GetOutgoingRequests)
}

func (h *requestHandler) listRequests(
	c *fiber.Ctx,
	fetch func(ctx context.Context, userID string, status string, page, limit int) ([]*domain.PickupRequest, int64, error),
) error {
	userID := c.Locals("user_id").(string)
	status := c.Query("status", "all")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	requests, count, err := fetch(c.Context(), userID, status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRequests, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"requests": requests,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetRequests)
}
