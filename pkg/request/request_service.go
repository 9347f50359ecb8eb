package request

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pankaj377/swap-bite-find-sub000/domain"
	"github.com/pankaj377/swap-bite-find-sub000/entities"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/expiry"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/listing"
)

type (
	RequestService interface {
		CreateRequest(ctx context.Context, req domain.CreatePickupRequest, userID string) (*domain.PickupRequest, error)
		RespondToRequest(ctx context.Context, req domain.RespondPickupRequest, userID string) error
		CancelRequest(ctx context.Context, id string, userID string) error
		CompletePickup(ctx context.Context, req domain.CompletePickupRequest, userID string) error
		GetIncomingRequests(ctx context.Context, userID string, status string, page, limit int) ([]*domain.PickupRequest, int64, error)
		GetOutgoingRequests(ctx context.Context, userID string, status string, page, limit int) ([]*domain.PickupRequest, int64, error)
	}

	requestService struct {
		requestRepository RequestRepository
		listingRepository listing.ListingRepository
	}
)

func NewRequestService(requestRepository RequestRepository, listingRepository listing.ListingRepository) RequestService {
	return &requestService{
		requestRepository: requestRepository,
		listingRepository: listingRepository,
	}
}

func (s *requestService) CreateRequest(ctx context.Context, req domain.CreatePickupRequest, userID string) (*domain.PickupRequest, error) {
	l, err := s.listingRepository.GetListingByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}

	// An expired listing is unrequestable even before the sweeper gets to it.
	if !expiry.IsVisible(l.ExpiresAt, time.Now()) {
		return nil, domain.ErrListingNotFound
	}

	if l.UserID.String() == userID {
		return nil, domain.ErrRequestOwnListing
	}

	pending, err := s.requestRepository.HasPendingRequest(ctx, req.ListingID, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.ErrRequestAlreadyExists
	}

	requesterUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	request := &entities.ListingRequest{
		ID:          uuid.New(),
		ListingID:   l.ID,
		RequesterID: requesterUUID,
		OwnerID:     l.UserID,
		Message:     req.Message,
		Status:      "Pending",
	}

	if err := s.requestRepository.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	return &domain.PickupRequest{
		ID:           request.ID.String(),
		ListingID:    request.ListingID.String(),
		ListingTitle: l.Title,
		RequesterID:  userID,
		OwnerID:      l.UserID.String(),
		Message:      request.Message,
		Status:       request.Status,
		CreatedAt:    time.Now(),
	}, nil
}

func (s *requestService) RespondToRequest(ctx context.Context, req domain.RespondPickupRequest, userID string) error {
	request, err := s.requestRepository.GetRequestByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRequestNotFound
		}
		return err
	}

	if request.OwnerID.String() != userID {
		return domain.ErrUnauthorizedRequestAccess
	}

	if request.Status != "Pending" {
		return domain.ErrRequestAlreadyResolved
	}

	if req.Status != "Accepted" && req.Status != "Declined" {
		return domain.ErrInvalidRequestStatus
	}

	now := time.Now()
	if err := s.requestRepository.UpdateRequestStatus(ctx, req.RequestID, req.Status, &now); err != nil {
		return err
	}

	if req.Status == "Accepted" {
		return s.listingRepository.UpdateListingStatus(ctx, request.ListingID.String(), "Reserved")
	}

	return nil
}

func (s *requestService) CancelRequest(ctx context.Context, id string, userID string) error {
	request, err := s.requestRepository.GetRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRequestNotFound
		}
		return err
	}

	if request.RequesterID.String() != userID {
		return domain.ErrUnauthorizedRequestAccess
	}

	if request.Status != "Pending" && request.Status != "Accepted" {
		return domain.ErrRequestAlreadyResolved
	}

	now := time.Now()
	if err := s.requestRepository.UpdateRequestStatus(ctx, id, "Cancelled", &now); err != nil {
		return err
	}

	// Free the listing again if the cancelled request had reserved it.
	if request.Status == "Accepted" {
		return s.listingRepository.UpdateListingStatus(ctx, request.ListingID.String(), "Available")
	}

	return nil
}

func (s *requestService) CompletePickup(ctx context.Context, req domain.CompletePickupRequest, userID string) error {
	request, err := s.requestRepository.GetRequestByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRequestNotFound
		}
		return err
	}

	if request.OwnerID.String() != userID {
		return domain.ErrUnauthorizedRequestAccess
	}

	if request.Status != "Accepted" {
		return domain.ErrInvalidRequestStatus
	}

	now := time.Now()
	if err := s.requestRepository.UpdateRequestStatus(ctx, req.RequestID, "Completed", &now); err != nil {
		return err
	}

	return s.listingRepository.UpdateListingStatus(ctx, request.ListingID.String(), "Completed")
}

func (s *requestService) GetIncomingRequests(ctx context.Context, userID string, status string, page, limit int) ([]*domain.PickupRequest, int64, error) {
	requests, count, err := s.requestRepository.GetIncomingRequests(ctx, userID, status, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return toDomainRequests(requests), count, nil
}

func (s *requestService) GetOutgoingRequests(ctx context.Context, userID string, status string, page, limit int) ([]*domain.PickupRequest, int64, error) {
	requests, count, err := s.requestRepository.GetOutgoingRequests(ctx, userID, status, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return toDomainRequests(requests), count, nil
}

func toDomainRequests(requests []*entities.ListingRequest) []*domain.PickupRequest {
	result := make([]*domain.PickupRequest, 0, len(requests))
	for _, r := range requests {
		item := &domain.PickupRequest{
			ID:          r.ID.String(),
			ListingID:   r.ListingID.String(),
			RequesterID: r.RequesterID.String(),
			OwnerID:     r.OwnerID.String(),
			Message:     r.Message,
			Status:      r.Status,
			RespondedAt: r.RespondedAt,
			CreatedAt:   r.CreatedAt,
		}
		if r.Listing != nil {
			item.ListingTitle = r.Listing.Title
		}
		if r.Requester != nil {
			item.RequesterName = r.Requester.Name
		}
		if r.Owner != nil {
			item.OwnerName = r.Owner.Name
		}
		result = append(result, item)
	}
	return result
}
