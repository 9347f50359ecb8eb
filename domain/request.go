package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateRequest  = "pickup request sent successfully"
	MessageSuccessGetRequests    = "pickup requests retrieved successfully"
	MessageSuccessRespondRequest = "pickup request updated successfully"
	MessageSuccessCancelRequest  = "pickup request cancelled successfully"
	MessageSuccessCompletePickup = "pickup confirmed successfully"

	MessageFailedCreateRequest  = "failed to send pickup request"
	MessageFailedGetRequests    = "failed to retrieve pickup requests"
	MessageFailedRespondRequest = "failed to update pickup request"
	MessageFailedCancelRequest  = "failed to cancel pickup request"
	MessageFailedCompletePickup = "failed to confirm pickup"

	ErrRequestNotFound           = errors.New("pickup request not found")
	ErrUnauthorizedRequestAccess = errors.New("unauthorized access to pickup request")
	ErrRequestOwnListing         = errors.New("cannot request your own listing")
	ErrRequestAlreadyExists      = errors.New("a pending request for this listing already exists")
	ErrRequestAlreadyResolved    = errors.New("pickup request has already been resolved")
	ErrInvalidRequestStatus      = errors.New("invalid pickup request status")
)

type (
	CreatePickupRequest struct {
		ListingID string `json:"listing_id" validate:"required,uuid"`
		Message   string `json:"message" validate:"omitempty,max=500"`
	}

	RespondPickupRequest struct {
		RequestID string `json:"request_id" validate:"required,uuid"`
		Status    string `json:"status" validate:"required,oneof=Accepted Declined"`
	}

	CompletePickupRequest struct {
		RequestID string `json:"request_id" validate:"required,uuid"`
	}

	PickupRequest struct {
		ID            string     `json:"id"`
		ListingID     string     `json:"listing_id"`
		ListingTitle  string     `json:"listing_title,omitempty"`
		RequesterID   string     `json:"requester_id"`
		RequesterName string     `json:"requester_name,omitempty"`
		OwnerID       string     `json:"owner_id"`
		OwnerName     string     `json:"owner_name,omitempty"`
		Message       string     `json:"message,omitempty"`
		Status        string     `json:"status"`
		RespondedAt   *time.Time `json:"responded_at,omitempty"`
		CreatedAt     time.Time  `json:"created_at"`
	}
)
