package sweeper

import (
	"context"
	"errors"
	"mime/multipart"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pankaj377/swap-bite-find-sub000/entities"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/listing"
)

// -------- test fakes --------

type fakeListingRepo struct {
	listing.ListingRepository

	listings map[string]*entities.Listing

	fetchErr  error
	deleteErr error

	fetchCalls  atomic.Int32
	deleteCalls int
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*entities.Listing)}
}

func (f *fakeListingRepo) add(expiresAt *time.Time, imageURL string) *entities.Listing {
	l := &entities.Listing{
		ID:        uuid.New(),
		ExpiresAt: expiresAt,
		ImageURL:  imageURL,
		Status:    "Available",
	}
	f.listings[l.ID.String()] = l
	return l
}

func (f *fakeListingRepo) GetExpiredListings(ctx context.Context, now time.Time) ([]*entities.Listing, error) {
	f.fetchCalls.Add(1)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var expired []*entities.Listing
	for _, l := range f.listings {
		if l.ExpiresAt != nil && l.ExpiresAt.Before(now) {
			expired = append(expired, l)
		}
	}
	return expired, nil
}

func (f *fakeListingRepo) DeleteListings(ctx context.Context, ids []string) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for _, id := range ids {
		delete(f.listings, id)
	}
	return nil
}

type fakeS3 struct {
	deleted   []string
	deleteErr map[string]error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{deleteErr: make(map[string]error)}
}

func (f *fakeS3) UploadFile(fileName string, file *multipart.FileHeader, dir string, allowedTypes ...string) (string, error) {
	return "", nil
}

func (f *fakeS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowedTypes ...string) (string, error) {
	return "", nil
}

func (f *fakeS3) DeleteFile(objectKey string) error {
	if err := f.deleteErr[objectKey]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.s3.region.amazonaws.com/" + objectKey
}

func (f *fakeS3) GetObjectKeyFromLink(link string) string {
	const prefix = "https://bucket.s3.region.amazonaws.com/"
	if len(link) <= len(prefix) {
		return ""
	}
	return link[len(prefix):]
}

// -------- tests --------

func TestRunOnceDeletesExpiredListingsAndMedia(t *testing.T) {
	repo := newFakeListingRepo()
	s3 := newFakeS3()

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	expired := repo.add(&past, s3.GetPublicLinkKey("listings/old.jpg"))
	kept := repo.add(&future, s3.GetPublicLinkKey("listings/fresh.jpg"))
	noExpiry := repo.add(nil, "")

	sw := NewSweeper(repo, s3, time.Minute)
	deleted, err := sw.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.NotContains(t, repo.listings, expired.ID.String())
	assert.Contains(t, repo.listings, kept.ID.String())
	assert.Contains(t, repo.listings, noExpiry.ID.String())
	assert.Equal(t, []string{"listings/old.jpg"}, s3.deleted)
}

func TestRunOnceIsIdempotent(t *testing.T) {
	repo := newFakeListingRepo()
	s3 := newFakeS3()

	past := time.Now().Add(-time.Hour)
	repo.add(&past, "")

	sw := NewSweeper(repo, s3, time.Minute)

	deleted, err := sw.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	// Immediate second run with no new expirations finds nothing.
	deleted, err = sw.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestRunOnceMediaFailureDoesNotAbortOthers(t *testing.T) {
	repo := newFakeListingRepo()
	s3 := newFakeS3()
	s3.deleteErr["listings/broken.jpg"] = errors.New("s3 unavailable")

	past := time.Now().Add(-time.Minute)
	repo.add(&past, s3.GetPublicLinkKey("listings/broken.jpg"))
	repo.add(&past, s3.GetPublicLinkKey("listings/ok.jpg"))

	sw := NewSweeper(repo, s3, time.Minute)
	deleted, err := sw.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Empty(t, repo.listings)
	assert.Equal(t, []string{"listings/ok.jpg"}, s3.deleted)
}

func TestRunOnceFetchErrorLeavesStoreUntouched(t *testing.T) {
	repo := newFakeListingRepo()
	repo.fetchErr = errors.New("store unreachable")

	past := time.Now().Add(-time.Minute)
	repo.add(&past, "")

	sw := NewSweeper(repo, newFakeS3(), time.Minute)
	deleted, err := sw.RunOnce(context.Background())

	require.Error(t, err)
	assert.Zero(t, deleted)
	assert.Zero(t, repo.deleteCalls)
	assert.Len(t, repo.listings, 1)
}

func TestRunOnceDeleteErrorIsReported(t *testing.T) {
	repo := newFakeListingRepo()
	repo.deleteErr = errors.New("store unreachable")

	past := time.Now().Add(-time.Minute)
	repo.add(&past, "")

	sw := NewSweeper(repo, newFakeS3(), time.Minute)
	deleted, err := sw.RunOnce(context.Background())

	require.Error(t, err)
	assert.Zero(t, deleted)
}

func TestRunOnceEmptyStore(t *testing.T) {
	sw := NewSweeper(newFakeListingRepo(), newFakeS3(), time.Minute)

	deleted, err := sw.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestStartStopsOnContextCancel(t *testing.T) {
	repo := newFakeListingRepo()
	sw := NewSweeper(repo, newFakeS3(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}

func TestStartKeepsTickingThroughErrors(t *testing.T) {
	repo := newFakeListingRepo()
	repo.fetchErr = errors.New("store unreachable")

	sw := NewSweeper(repo, newFakeS3(), 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Start(ctx)
		close(done)
	}()

	// Every tick fails; the loop must keep going regardless.
	deadline := time.After(2 * time.Second)
	for repo.fetchCalls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d ticks ran before the deadline", repo.fetchCalls.Load())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}

func TestNewSweeperDefaultsInterval(t *testing.T) {
	sw := NewSweeper(newFakeListingRepo(), newFakeS3(), 0)
	assert.Equal(t, DefaultInterval, sw.interval)
}
