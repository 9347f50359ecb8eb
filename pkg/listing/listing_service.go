package listing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pankaj377/swap-bite-find-sub000/domain"
	"github.com/pankaj377/swap-bite-find-sub000/entities"
	"github.com/pankaj377/swap-bite-find-sub000/internal/utils/storage"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/expiry"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/geo"
)

type (
	ListingService interface {
		CreateListing(ctx context.Context, req domain.CreateListingRequest, userID string) (*domain.Listing, error)
		UpdateListing(ctx context.Context, id string, req domain.UpdateListingRequest, userID string) error
		DeleteListing(ctx context.Context, id string, userID string) error
		GetListingByID(ctx context.Context, id string) (*domain.Listing, error)
		GetUserListings(ctx context.Context, userID string, status string, page, limit int) ([]*domain.Listing, int64, error)
		GetNearbyListings(ctx context.Context, req domain.GetNearbyListingsRequest) (*domain.NearbyListingsResponse, error)
		UploadListingImage(ctx context.Context, req domain.UploadListingImageRequest, userID string) error
	}

	listingService struct {
		listingRepository ListingRepository
		s3                storage.AwsS3
	}
)

func NewListingService(listingRepository ListingRepository, s3 storage.AwsS3) ListingService {
	return &listingService{
		listingRepository: listingRepository,
		s3:                s3,
	}
}

func (s *listingService) CreateListing(ctx context.Context, req domain.CreateListingRequest, userID string) (*domain.Listing, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	now := time.Now()

	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return nil, domain.ErrInvalidExpiryDate
		}
		// The UI enforces a future expiry, but the backend cannot trust it.
		if !parsed.After(now) {
			return nil, domain.ErrExpiryBeforeCreation
		}
		expiresAt = &parsed
	}

	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	listingID := uuid.New()

	var imageURL string
	if req.Image != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("listing-%s", listingID.String()),
			req.Image,
			"listings",
			storage.AllowImage...,
		)
		if err != nil {
			return nil, err
		}
		imageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	listing := &entities.Listing{
		ID:          listingID,
		UserID:      userUUID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     req.Address,
		ImageURL:    imageURL,
		ExpiresAt:   expiresAt,
		Status:      "Available",
	}

	if err := s.listingRepository.CreateListing(ctx, listing); err != nil {
		return nil, err
	}

	return toDomainListing(listing, now), nil
}

func (s *listingService) UpdateListing(ctx context.Context, id string, req domain.UpdateListingRequest, userID string) error {
	listing, err := s.listingRepository.GetListingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrListingNotFound
		}
		return err
	}

	if listing.UserID.String() != userID {
		return domain.ErrUnauthorizedListingAccess
	}

	if req.Title != "" {
		listing.Title = req.Title
	}
	if req.Description != "" {
		listing.Description = req.Description
	}
	if req.Category != "" {
		listing.Category = req.Category
	}
	if req.Quantity > 0 {
		listing.Quantity = req.Quantity
	}
	if req.Address != "" {
		listing.Address = req.Address
	}
	if req.Latitude != nil && req.Longitude != nil {
		if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
			return err
		}
		listing.Latitude = req.Latitude
		listing.Longitude = req.Longitude
	}
	if req.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return domain.ErrInvalidExpiryDate
		}
		if !parsed.After(time.Now()) {
			return domain.ErrExpiryBeforeCreation
		}
		listing.ExpiresAt = &parsed
	}

	return s.listingRepository.UpdateListing(ctx, listing)
}

func (s *listingService) DeleteListing(ctx context.Context, id string, userID string) error {
	listing, err := s.listingRepository.GetListingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrListingNotFound
		}
		return err
	}

	if listing.UserID.String() != userID {
		return domain.ErrUnauthorizedListingAccess
	}

	if listing.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(listing.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.listingRepository.DeleteListing(ctx, id)
}

func (s *listingService) GetListingByID(ctx context.Context, id string) (*domain.Listing, error) {
	listing, err := s.listingRepository.GetListingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}

	now := time.Now()
	// An expired listing is gone for every viewer, its owner included;
	// the sweeper may simply not have reclaimed it yet.
	if !expiry.IsVisible(listing.ExpiresAt, now) {
		return nil, domain.ErrListingNotFound
	}

	return toDomainListing(listing, now), nil
}

func (s *listingService) GetUserListings(ctx context.Context, userID string, status string, page, limit int) ([]*domain.Listing, int64, error) {
	listings, count, err := s.listingRepository.GetUserListings(ctx, userID, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	response := make([]*domain.Listing, 0, len(listings))
	for _, l := range listings {
		if !expiry.IsVisible(l.ExpiresAt, now) {
			continue
		}
		response = append(response, toDomainListing(l, now))
	}

	return response, count, nil
}

func (s *listingService) GetNearbyListings(ctx context.Context, req domain.GetNearbyListingsRequest) (*domain.NearbyListingsResponse, error) {
	now := time.Now()

	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	radius := req.RadiusKm
	if radius <= 0 {
		radius = 25
	}

	// A viewer without a position sees everything; (0,0) is a real place,
	// not a sentinel, so only a missing coordinate pair disables filtering.
	var center *geo.Coord
	if req.Latitude != nil && req.Longitude != nil {
		center = &geo.Coord{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	var (
		visible []*entities.Listing
		err     error
	)
	if center != nil {
		// The bounding-box query narrows the candidate set in the
		// database; the haversine pass below decides the exact radius.
		visible, err = s.listingRepository.GetNearbyListings(ctx, now, req.Category, center.Latitude, center.Longitude, radius)
	} else {
		visible, err = s.listingRepository.GetVisibleListings(ctx, now, req.Category)
	}
	if err != nil {
		return nil, err
	}

	candidates := make([]*domain.Listing, 0, len(visible))
	for _, l := range visible {
		if !expiry.IsVisible(l.ExpiresAt, now) {
			continue
		}
		candidates = append(candidates, toDomainListing(l, now))
	}

	nearby, skipped := geo.FilterNearby(candidates, center, radius)
	if skipped > 0 {
		log.Printf("nearby listings: skipped %d listings with invalid location data", skipped)
	}

	return &domain.NearbyListingsResponse{
		Listings:               nearby,
		SkippedInvalidLocation: skipped,
	}, nil
}

func (s *listingService) UploadListingImage(ctx context.Context, req domain.UploadListingImageRequest, userID string) error {
	listing, err := s.listingRepository.GetListingByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrListingNotFound
		}
		return err
	}

	if listing.UserID.String() != userID {
		return domain.ErrUnauthorizedListingAccess
	}

	fileName := fmt.Sprintf("listing-%s", listing.ID.String())
	var objectKey string
	var uploadErr error

	if listing.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(listing.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "listings", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "listings", storage.AllowImage...)
	}

	if uploadErr != nil {
		return uploadErr
	}

	listing.ImageURL = s.s3.GetPublicLinkKey(objectKey)

	return s.listingRepository.UpdateListing(ctx, listing)
}

func toDomainListing(l *entities.Listing, now time.Time) *domain.Listing {
	result := &domain.Listing{
		ID:          l.ID.String(),
		UserID:      l.UserID.String(),
		Title:       l.Title,
		Description: l.Description,
		Category:    l.Category,
		Quantity:    l.Quantity,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		Address:     l.Address,
		ImageURL:    l.ImageURL,
		ExpiresAt:   l.ExpiresAt,
		Status:      l.Status,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}

	if l.User != nil {
		result.UserName = l.User.Name
	}

	if l.ExpiresAt != nil {
		c := expiry.Classify(*l.ExpiresAt, now)
		result.ExpiryLabel = c.Label
		result.Urgent = c.Urgent
	}

	return result
}

func validateCoordinates(lat, lng *float64) error {
	if lat == nil && lng == nil {
		return nil
	}
	if lat == nil || lng == nil {
		return domain.ErrInvalidCoordinates
	}
	if math.IsNaN(*lat) || math.IsInf(*lat, 0) || math.IsNaN(*lng) || math.IsInf(*lng, 0) {
		return domain.ErrInvalidCoordinates
	}
	return nil
}
