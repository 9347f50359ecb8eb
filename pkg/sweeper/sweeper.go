// Package sweeper reclaims storage held by expired listings. Visibility
// is already enforced at read time, so the sweep is a best-effort
// background pass: a stale record is invisible to clients either way and
// just waits for the next tick.
package sweeper

import (
	"context"
	"log"
	"time"

	"github.com/pankaj377/swap-bite-find-sub000/internal/utils/storage"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/listing"
)

const DefaultInterval = 15 * time.Minute

type Sweeper struct {
	listingRepository listing.ListingRepository
	s3                storage.AwsS3
	interval          time.Duration
}

func NewSweeper(listingRepository listing.ListingRepository, s3 storage.AwsS3, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{
		listingRepository: listingRepository,
		s3:                s3,
		interval:          interval,
	}
}

// Start runs the sweep loop until ctx is cancelled. Tick errors are
// logged and never stop the loop; the fixed interval is the only retry
// cadence a failed tick needs.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("sweeper: started, interval %s", s.interval)

	if _, err := s.RunOnce(ctx); err != nil {
		log.Printf("sweeper: tick failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("sweeper: stopped")
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				log.Printf("sweeper: tick failed: %v", err)
			}
		}
	}
}

// RunOnce performs a single sweep: fetch listings whose expiry has
// strictly passed, delete their media, then delete the records in one
// batch. A media deletion failure for one listing never aborts the
// others. Returns the number of records deleted.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	now := time.Now()

	expired, err := s.listingRepository.GetExpiredListings(ctx, now)
	if err != nil {
		return 0, err
	}

	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(expired))
	for _, l := range expired {
		ids = append(ids, l.ID.String())

		if l.ImageURL == "" {
			continue
		}
		objectKey := s.s3.GetObjectKeyFromLink(l.ImageURL)
		if objectKey == "" {
			continue
		}
		if err := s.s3.DeleteFile(objectKey); err != nil {
			log.Printf("sweeper: failed to delete media for listing %s: %v", l.ID, err)
		}
	}

	if err := s.listingRepository.DeleteListings(ctx, ids); err != nil {
		return 0, err
	}

	log.Printf("sweeper: deleted %d expired listings", len(ids))
	return len(ids), nil
}
