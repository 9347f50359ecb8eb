package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/pankaj377/swap-bite-find-sub000/domain"
	"github.com/pankaj377/swap-bite-find-sub000/internal/api/presenters"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/listing"
)

type (
	ListingHandler interface {
		CreateListing(c *fiber.Ctx) error
		UpdateListing(c *fiber.Ctx) error
		DeleteListing(c *fiber.Ctx) error
		GetListingDetails(c *fiber.Ctx) error
		GetMyListings(c *fiber.Ctx) error
		GetNearbyListings(c *fiber.Ctx) error
		UploadListingImage(c *fiber.Ctx) error
	}

	listingHandler struct {
		listingService listing.ListingService
		validator      *validator.Validate
	}
)

func NewListingHandler(listingService listing.ListingService, validator *validator.Validate) ListingHandler {
	return &listingHandler{
		listingService: listingService,
		validator:      validator,
	}
}

func (h *listingHandler) CreateListing(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateListingRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	// The listing photo rides along as multipart when present.
	if file, err := c.FormFile("image"); err == nil {
		req.Image = file
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateListing, err)
	}

	res, err := h.listingService.CreateListing(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateListing, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateListing)
}

func (h *listingHandler) UpdateListing(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	listingID := c.Params("id")
	req := new(domain.UpdateListingRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateListing, err)
	}

	if err := h.listingService.UpdateListing(c.Context(), listingID, *req, userID); err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateListing, err)
		}
		if errors.Is(err, domain.ErrUnauthorizedListingAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedUpdateListing, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateListing, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateListing)
}

func (h *listingHandler) DeleteListing(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	listingID := c.Params("id")

	if err := h.listingService.DeleteListing(c.Context(), listingID, userID); err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteListing, err)
		}
		if errors.Is(err, domain.ErrUnauthorizedListingAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedDeleteListing, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteListing, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteListing)
}

func (h *listingHandler) GetListingDetails(c *fiber.Ctx) error {
	listingID := c.Params("id")

	res, err := h.listingService.GetListingByID(c.Context(), listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetListings, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetListings, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetListings)
}

func (h *listingHandler) GetMyListings(c *fiber.Ctx) error {
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

	listings, count, err := h.listingService.GetUserListings(c.Context(), userID, status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetListings, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"listings": listings,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetListings)
}

func (h *listingHandler) GetNearbyListings(c *fiber.Ctx) error {
	req := domain.GetNearbyListingsRequest{
		Category: c.Query("category"),
	}

	if raw := c.Query("latitude"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetNearbyListings, domain.ErrInvalidCoordinates)
		}
		req.Latitude = &lat
	}
	if raw := c.Query("longitude"); raw != "" {
		lng, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetNearbyListings, domain.ErrInvalidCoordinates)
		}
		req.Longitude = &lng
	}
	if raw := c.Query("radius_km"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetNearbyListings, err)
		}
		req.RadiusKm = radius
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetNearbyListings, err)
	}

	res, err := h.listingService.GetNearbyListings(c.Context(), req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetNearbyListings, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetNearbyListings)
}

func (h *listingHandler) UploadListingImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UploadListingImageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadListingImage, err)
	}

	if err := h.listingService.UploadListingImage(c.Context(), *req, userID); err != nil {
		if errors.Is(err, domain.ErrUnauthorizedListingAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedUploadListingImage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadListingImage, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUploadListingImage)
}
