package request

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pankaj377/swap-bite-find-sub000/entities"
)

type (
	RequestRepository interface {
		CreateRequest(ctx context.Context, request *entities.ListingRequest) error
		GetRequestByID(ctx context.Context, id string) (*entities.ListingRequest, error)
		GetIncomingRequests(ctx context.Context, ownerID string, status string, page, limit int) ([]*entities.ListingRequest, int64, error)
		GetOutgoingRequests(ctx context.Context, requesterID string, status string, page, limit int) ([]*entities.ListingRequest, int64, error)
		HasPendingRequest(ctx context.Context, listingID, requesterID string) (bool, error)
		UpdateRequestStatus(ctx context.Context, id string, status string, respondedAt *time.Time) error
	}

	requestRepository struct {
		db *gorm.DB
	}
)

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) CreateRequest(ctx context.Context, request *entities.ListingRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepository) GetRequestByID(ctx context.Context, id string) (*entities.ListingRequest, error) {
	var request entities.ListingRequest
	if err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Requester").
		Preload("Owner").
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) GetIncomingRequests(ctx context.Context, ownerID string, status string, page, limit int) ([]*entities.ListingRequest, int64, error) {
	return r.listRequests(ctx, "owner_id = ?", ownerID, status, page, limit)
}

func (r *requestRepository) GetOutgoingRequests(ctx context.Context, requesterID string, status string, page, limit int) ([]*entities.ListingRequest, int64, error) {
	return r.listRequests(ctx, "requester_id = ?", requesterID, status, page, limit)
}

func (r *requestRepository) listRequests(ctx context.Context, cond string, userID string, status string, page, limit int) ([]*entities.ListingRequest, int64, error) {
	var requests []*entities.ListingRequest
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where(cond, userID)

	if status != "all" && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Model(&entities.ListingRequest{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Listing").
		Preload("Requester").
		Preload("Owner").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, count, nil
}

func (r *requestRepository) HasPendingRequest(ctx context.Context, listingID, requesterID string) (bool, error) {
	var request entities.ListingRequest
	err := r.db.WithContext(ctx).
		Where("listing_id = ? AND requester_id = ? AND status = ?", listingID, requesterID, "Pending").
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *requestRepository) UpdateRequestStatus(ctx context.Context, id string, status string, respondedAt *time.Time) error {
	updates := map[string]interface{}{
		"status": status,
	}

	if respondedAt != nil {
		updates["responded_at"] = respondedAt
	}

	return r.db.WithContext(ctx).
		Model(&entities.ListingRequest{}).
		Where("id = ?", id).
		Updates(updates).Error
}
