package listing

import (
	"context"
	"math"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pankaj377/swap-bite-find-sub000/domain"
	"github.com/pankaj377/swap-bite-find-sub000/entities"
)

// -------- test fakes --------

type fakeListingRepo struct {
	ListingRepository

	listings map[string]*entities.Listing

	visibleCalls int
	nearbyCalls  int
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*entities.Listing)}
}

func (f *fakeListingRepo) put(l *entities.Listing) *entities.Listing {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Status == "" {
		l.Status = "Available"
	}
	f.listings[l.ID.String()] = l
	return l
}

func (f *fakeListingRepo) CreateListing(ctx context.Context, listing *entities.Listing) error {
	f.listings[listing.ID.String()] = listing
	return nil
}

func (f *fakeListingRepo) GetListingByID(ctx context.Context, id string) (*entities.Listing, error) {
	l, ok := f.listings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (f *fakeListingRepo) UpdateListing(ctx context.Context, listing *entities.Listing) error {
	f.listings[listing.ID.String()] = listing
	return nil
}

func (f *fakeListingRepo) DeleteListing(ctx context.Context, id string) error {
	delete(f.listings, id)
	return nil
}

func (f *fakeListingRepo) GetUserListings(ctx context.Context, userID string, status string, page, limit int) ([]*entities.Listing, int64, error) {
	var out []*entities.Listing
	for _, l := range f.listings {
		if l.UserID.String() == userID {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeListingRepo) GetVisibleListings(ctx context.Context, now time.Time, category string) ([]*entities.Listing, error) {
	f.visibleCalls++
	return f.visible(now, category), nil
}

// The real bounding box only narrows the candidate set, so returning
// every visible listing stays within its contract and leaves the exact
// radius decision to the caller.
func (f *fakeListingRepo) GetNearbyListings(ctx context.Context, now time.Time, category string, lat, lng, radiusKm float64) ([]*entities.Listing, error) {
	f.nearbyCalls++
	return f.visible(now, category), nil
}

func (f *fakeListingRepo) visible(now time.Time, category string) []*entities.Listing {
	var out []*entities.Listing
	for _, l := range f.listings {
		if l.Status != "Available" {
			continue
		}
		if l.ExpiresAt != nil && !l.ExpiresAt.After(now) {
			continue
		}
		if category != "" && category != "All" && l.Category != category {
			continue
		}
		out = append(out, l)
	}
	return out
}

type stubS3 struct{}

func (stubS3) UploadFile(fileName string, file *multipart.FileHeader, dir string, allowedTypes ...string) (string, error) {
	return dir + "/" + fileName + ".jpg", nil
}

func (stubS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowedTypes ...string) (string, error) {
	return objectKey, nil
}

func (stubS3) DeleteFile(objectKey string) error { return nil }

func (stubS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.s3.region.amazonaws.com/" + objectKey
}

func (stubS3) GetObjectKeyFromLink(link string) string {
	const prefix = "https://bucket.s3.region.amazonaws.com/"
	if len(link) <= len(prefix) {
		return ""
	}
	return link[len(prefix):]
}

func ptr(v float64) *float64 { return &v }

// -------- tests --------

func TestCreateListingRejectsPastExpiry(t *testing.T) {
	svc := NewListingService(newFakeListingRepo(), stubS3{})

	req := domain.CreateListingRequest{
		Title:       "Sourdough loaf",
		Description: "Baked this morning",
		Category:    "Bakery",
		Quantity:    1,
		ExpiresAt:   time.Now().Add(-time.Hour).Format(time.RFC3339),
	}

	_, err := svc.CreateListing(context.Background(), req, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrExpiryBeforeCreation)
}

func TestCreateListingRejectsMalformedExpiry(t *testing.T) {
	svc := NewListingService(newFakeListingRepo(), stubS3{})

	req := domain.CreateListingRequest{
		Title:       "Sourdough loaf",
		Description: "Baked this morning",
		Category:    "Bakery",
		Quantity:    1,
		ExpiresAt:   "tomorrow evening",
	}

	_, err := svc.CreateListing(context.Background(), req, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrInvalidExpiryDate)
}

func TestCreateListingRejectsHalfCoordinatePair(t *testing.T) {
	svc := NewListingService(newFakeListingRepo(), stubS3{})

	req := domain.CreateListingRequest{
		Title:       "Apples",
		Description: "A bag of apples",
		Category:    "Fruits",
		Quantity:    5,
		Latitude:    ptr(-6.2),
	}

	_, err := svc.CreateListing(context.Background(), req, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
}

func TestCreateListingClassifiesUrgentExpiry(t *testing.T) {
	repo := newFakeListingRepo()
	svc := NewListingService(repo, stubS3{})

	req := domain.CreateListingRequest{
		Title:       "Leftover curry",
		Description: "Feeds two",
		Category:    "Meals",
		Quantity:    2,
		ExpiresAt:   time.Now().Add(5 * time.Hour).Format(time.RFC3339),
	}

	res, err := svc.CreateListing(context.Background(), req, uuid.NewString())
	require.NoError(t, err)
	assert.True(t, res.Urgent)
	assert.Contains(t, res.ExpiryLabel, "hours left")
	assert.Equal(t, "Available", res.Status)
	assert.Len(t, repo.listings, 1)
}

func TestGetListingByIDHidesExpired(t *testing.T) {
	repo := newFakeListingRepo()
	svc := NewListingService(repo, stubS3{})

	past := time.Now().Add(-time.Minute)
	l := repo.put(&entities.Listing{UserID: uuid.New(), ExpiresAt: &past})

	// The sweeper has not reclaimed it yet, but no viewer should see it.
	_, err := svc.GetListingByID(context.Background(), l.ID.String())
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestGetListingByIDMissing(t *testing.T) {
	svc := NewListingService(newFakeListingRepo(), stubS3{})

	_, err := svc.GetListingByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestUpdateListingRequiresOwnership(t *testing.T) {
	repo := newFakeListingRepo()
	svc := NewListingService(repo, stubS3{})

	l := repo.put(&entities.Listing{UserID: uuid.New()})

	err := svc.UpdateListing(context.Background(), l.ID.String(), domain.UpdateListingRequest{Title: "New title"}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedListingAccess)
}

func TestGetNearbyListingsFiltersByRadius(t *testing.T) {
	repo := newFakeListingRepo()
	svc := NewListingService(repo, stubS3{})

	// Jakarta and Bandung are roughly 115 km apart.
	near := repo.put(&entities.Listing{UserID: uuid.New(), Latitude: ptr(-6.21), Longitude: ptr(106.85)})
	far := repo.put(&entities.Listing{UserID: uuid.New(), Latitude: ptr(-6.917), Longitude: ptr(107.619)})

	res, err := svc.GetNearbyListings(context.Background(), domain.GetNearbyListingsRequest{
		Latitude:  ptr(-6.2),
		Longitude: ptr(106.8167),
		RadiusKm:  25,
	})

	require.NoError(t, err)
	require.Len(t, res.Listings, 1)
	assert.Equal(t, near.ID.String(), res.Listings[0].ID)
	assert.NotEqual(t, far.ID.String(), res.Listings[0].ID)
	assert.Greater(t, res.Listings[0].DistanceKm, 0.0)

	// A located viewer goes through the database-side bounding box.
	assert.Equal(t, 1, repo.nearbyCalls)
	assert.Zero(t, repo.visibleCalls)
}

func TestGetNearbyListingsRejectsNonFiniteCenter(t *testing.T) {
	svc := NewListingService(newFakeListingRepo(), stubS3{})

	_, err := svc.GetNearbyListings(context.Background(), domain.GetNearbyListingsRequest{
		Latitude:  ptr(math.NaN()),
		Longitude: ptr(106.8167),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
}

func TestGetNearbyListingsWithoutCenterReturnsAll(t *testing.T) {
	repo := newFakeListingRepo()
	svc := NewListingService(repo, stubS3{})

	repo.put(&entities.Listing{UserID: uuid.New(), Latitude: ptr(-6.2), Longitude: ptr(106.8)})
	repo.put(&entities.Listing{UserID: uuid.New(), Latitude: ptr(51.5), Longitude: ptr(-0.12)})
	repo.put(&entities.Listing{UserID: uuid.New()})

	res, err := svc.GetNearbyListings(context.Background(), domain.GetNearbyListingsRequest{})

	require.NoError(t, err)
	assert.Len(t, res.Listings, 3)
	assert.Zero(t, res.SkippedInvalidLocation)

	// Without a center there is no box to narrow by.
	assert.Equal(t, 1, repo.visibleCalls)
	assert.Zero(t, repo.nearbyCalls)
}

func TestGetNearbyListingsCountsInvalidLocations(t *testing.T) {
	repo := newFakeListingRepo()
	svc := NewListingService(repo, stubS3{})

	repo.put(&entities.Listing{UserID: uuid.New(), Latitude: ptr(-6.21), Longitude: ptr(106.85)})
	repo.put(&entities.Listing{UserID: uuid.New(), Latitude: ptr(math.NaN()), Longitude: ptr(106.85)})
	repo.put(&entities.Listing{UserID: uuid.New()}) // no stored location

	res, err := svc.GetNearbyListings(context.Background(), domain.GetNearbyListingsRequest{
		Latitude:  ptr(-6.2),
		Longitude: ptr(106.8167),
		RadiusKm:  25,
	})

	require.NoError(t, err)
	assert.Len(t, res.Listings, 1)
	assert.Equal(t, 2, res.SkippedInvalidLocation)
}

func TestGetNearbyListingsExcludesExpired(t *testing.T) {
	repo := newFakeListingRepo()
	svc := NewListingService(repo, stubS3{})

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)
	repo.put(&entities.Listing{UserID: uuid.New(), Latitude: ptr(-6.21), Longitude: ptr(106.85), ExpiresAt: &past})
	fresh := repo.put(&entities.Listing{UserID: uuid.New(), Latitude: ptr(-6.21), Longitude: ptr(106.85), ExpiresAt: &future})

	res, err := svc.GetNearbyListings(context.Background(), domain.GetNearbyListingsRequest{
		Latitude:  ptr(-6.2),
		Longitude: ptr(106.8167),
	})

	require.NoError(t, err)
	require.Len(t, res.Listings, 1)
	assert.Equal(t, fresh.ID.String(), res.Listings[0].ID)
}
