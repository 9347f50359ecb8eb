package listing

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pankaj377/swap-bite-find-sub000/entities"
)

type (
	ListingRepository interface {
		CreateListing(ctx context.Context, listing *entities.Listing) error
		GetListingByID(ctx context.Context, id string) (*entities.Listing, error)
		UpdateListing(ctx context.Context, listing *entities.Listing) error
		DeleteListing(ctx context.Context, id string) error
		GetUserListings(ctx context.Context, userID string, status string, page, limit int) ([]*entities.Listing, int64, error)
		GetVisibleListings(ctx context.Context, now time.Time, category string) ([]*entities.Listing, error)
		GetNearbyListings(ctx context.Context, now time.Time, category string, lat, lng, radiusKm float64) ([]*entities.Listing, error)
		UpdateListingStatus(ctx context.Context, id string, status string) error

		// Sweeper support
		GetExpiredListings(ctx context.Context, now time.Time) ([]*entities.Listing, error)
		DeleteListings(ctx context.Context, ids []string) error
	}

	listingRepository struct {
		db *gorm.DB
	}
)

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) CreateListing(ctx context.Context, listing *entities.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) GetListingByID(ctx context.Context, id string) (*entities.Listing, error) {
	var listing entities.Listing
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) UpdateListing(ctx context.Context, listing *entities.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

func (r *listingRepository) DeleteListing(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Listing{}).Error
}

func (r *listingRepository) GetUserListings(ctx context.Context, userID string, status string, page, limit int) ([]*entities.Listing, int64, error) {
	var listings []*entities.Listing
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if status != "all" && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Model(&entities.Listing{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&listings).Error; err != nil {
		return nil, 0, err
	}

	return listings, count, nil
}

// GetVisibleListings returns available listings that have not expired at
// the given instant. The expiry comparison is strict so it mirrors the
// visibility rule used for display: expires_at > now or no expiry at all.
func (r *listingRepository) GetVisibleListings(ctx context.Context, now time.Time, category string) ([]*entities.Listing, error) {
	var listings []*entities.Listing

	query := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", "Available").
		Where("expires_at IS NULL OR expires_at > ?", now)

	if category != "" && category != "All" {
		query = query.Where("category = ?", category)
	}

	if err := query.Order("created_at desc").Find(&listings).Error; err != nil {
		return nil, err
	}

	return listings, nil
}

// GetNearbyListings narrows the visible set to a bounding box around the
// caller using PostgreSQL's earthdistance extension.
// Make sure you've installed the extension with:
// CREATE EXTENSION IF NOT EXISTS "earthdistance" CASCADE;
// CREATE EXTENSION IF NOT EXISTS "cube";
// earth_box over-includes the box corners and rows without a stored
// location pass through untouched, so callers must still run the exact
// haversine filter and count the unlocatable rows themselves.
func (r *listingRepository) GetNearbyListings(ctx context.Context, now time.Time, category string, lat, lng, radiusKm float64) ([]*entities.Listing, error) {
	var listings []*entities.Listing

	// radius in km, convert to meters for the query
	radiusMeters := radiusKm * 1000

	query := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", "Available").
		Where("expires_at IS NULL OR expires_at > ?", now).
		Where(
			"latitude IS NULL OR longitude IS NULL OR earth_box(ll_to_earth(?, ?), ?) @> ll_to_earth(latitude, longitude)",
			lat, lng, radiusMeters,
		)

	if category != "" && category != "All" {
		query = query.Where("category = ?", category)
	}

	order := fmt.Sprintf("earth_distance(ll_to_earth(%v, %v), ll_to_earth(latitude, longitude)) ASC", lat, lng)
	if err := query.Order(order).Find(&listings).Error; err != nil {
		return nil, err
	}

	return listings, nil
}

func (r *listingRepository) UpdateListingStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).Model(&entities.Listing{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// GetExpiredListings returns every listing, regardless of owner, whose
// expiry has strictly passed. The strict comparison is the mirror of
// GetVisibleListings so a listing is never both visible and sweepable.
func (r *listingRepository) GetExpiredListings(ctx context.Context, now time.Time) ([]*entities.Listing, error) {
	var listings []*entities.Listing

	if err := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", now).
		Find(&listings).Error; err != nil {
		return nil, err
	}

	return listings, nil
}

func (r *listingRepository) DeleteListings(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&entities.Listing{}).Error
}
