package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateListing      = "listing created successfully"
	MessageSuccessUpdateListing      = "listing updated successfully"
	MessageSuccessDeleteListing      = "listing deleted successfully"
	MessageSuccessGetListings        = "listings retrieved successfully"
	MessageSuccessGetNearbyListings  = "nearby listings retrieved successfully"
	MessageSuccessUploadListingImage = "listing image uploaded successfully"

	MessageFailedCreateListing      = "failed to create listing"
	MessageFailedUpdateListing      = "failed to update listing"
	MessageFailedDeleteListing      = "failed to delete listing"
	MessageFailedGetListings        = "failed to retrieve listings"
	MessageFailedGetNearbyListings  = "failed to retrieve nearby listings"
	MessageFailedUploadListingImage = "failed to upload listing image"

	ErrListingNotFound           = errors.New("listing not found")
	ErrUnauthorizedListingAccess = errors.New("unauthorized access to listing")
	ErrInvalidExpiryDate         = errors.New("invalid expiry date")
	ErrExpiryBeforeCreation      = errors.New("expiry date must be in the future")
	ErrInvalidCoordinates        = errors.New("invalid coordinates")
)

type (
	CreateListingRequest struct {
		Title       string                `json:"title" validate:"required"`
		Description string                `json:"description" validate:"required"`
		Category    string                `json:"category" validate:"required,oneof=Fruits Vegetables Bakery Dairy Meals Other"`
		Quantity    int                   `json:"quantity" validate:"required,min=1"`
		Latitude    *float64              `json:"latitude" validate:"omitempty,min=-90,max=90"`
		Longitude   *float64              `json:"longitude" validate:"omitempty,min=-180,max=180"`
		Address     string                `json:"address" validate:"omitempty"`
		ExpiresAt   string                `json:"expires_at" validate:"omitempty"` // RFC3339; empty means the listing never auto-expires
		Image       *multipart.FileHeader `json:"image" form:"image"`
	}

	UpdateListingRequest struct {
		Title       string   `json:"title" validate:"omitempty"`
		Description string   `json:"description" validate:"omitempty"`
		Category    string   `json:"category" validate:"omitempty,oneof=Fruits Vegetables Bakery Dairy Meals Other"`
		Quantity    int      `json:"quantity" validate:"omitempty,min=1"`
		Latitude    *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
		Longitude   *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
		Address     string   `json:"address" validate:"omitempty"`
		ExpiresAt   string   `json:"expires_at" validate:"omitempty"`
	}

	Listing struct {
		ID          string     `json:"id"`
		UserID      string     `json:"user_id"`
		UserName    string     `json:"user_name,omitempty"`
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Category    string     `json:"category"`
		Quantity    int        `json:"quantity"`
		Latitude    *float64   `json:"latitude,omitempty"`
		Longitude   *float64   `json:"longitude,omitempty"`
		Address     string     `json:"address,omitempty"`
		ImageURL    string     `json:"image_url,omitempty"`
		ExpiresAt   *time.Time `json:"expires_at,omitempty"`
		ExpiryLabel string     `json:"expiry_label,omitempty"`
		Urgent      bool       `json:"urgent"`
		Status      string     `json:"status"`
		DistanceKm  float64    `json:"distance_km,omitempty"`
		CreatedAt   time.Time  `json:"created_at"`
		UpdatedAt   time.Time  `json:"updated_at"`
	}

	GetNearbyListingsRequest struct {
		Latitude  *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
		Longitude *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
		RadiusKm  float64  `json:"radius_km" validate:"omitempty,min=1,max=100"`
		Category  string   `json:"category,omitempty" validate:"omitempty,oneof=Fruits Vegetables Bakery Dairy Meals Other"`
	}

	NearbyListingsResponse struct {
		Listings []*Listing `json:"listings"`
		// SkippedInvalidLocation counts listings dropped from the nearby
		// result because their stored coordinates were missing or not
		// finite. Surfaced so bad records can be tracked down.
		SkippedInvalidLocation int `json:"skipped_invalid_location"`
	}

	UploadListingImageRequest struct {
		ListingID string                `json:"listing_id" form:"listing_id" validate:"required,uuid"`
		Image     *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}
)
