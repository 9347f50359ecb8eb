package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pankaj377/swap-bite-find-sub000/domain"
)

func TestHaversineDistanceKm(t *testing.T) {
	jakarta := Coord{Latitude: -6.2088, Longitude: 106.8456}
	bandung := Coord{Latitude: -6.9175, Longitude: 107.6191}

	t.Run("identical points are zero", func(t *testing.T) {
		assert.Zero(t, HaversineDistanceKm(jakarta, jakarta))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, HaversineDistanceKm(jakarta, bandung), HaversineDistanceKm(bandung, jakarta))
	})

	t.Run("known distance", func(t *testing.T) {
		// Jakarta to Bandung is roughly 115 km as the crow flies.
		d := HaversineDistanceKm(jakarta, bandung)
		assert.InDelta(t, 115, d, 5)
	})

	t.Run("tenth of a degree on the equator", func(t *testing.T) {
		d := HaversineDistanceKm(Coord{0, 0}, Coord{0, 0.1})
		assert.InDelta(t, 11.1, d, 0.1)
	})

	t.Run("antipodal points stay finite", func(t *testing.T) {
		d := HaversineDistanceKm(Coord{0, 0}, Coord{0, 180})
		require.False(t, math.IsNaN(d))
		assert.InDelta(t, math.Pi*earthRadiusKm, d, 1)
	})

	t.Run("poles", func(t *testing.T) {
		d := HaversineDistanceKm(Coord{90, 0}, Coord{-90, 0})
		require.False(t, math.IsNaN(d))
		assert.InDelta(t, math.Pi*earthRadiusKm, d, 1)
	})
}

func TestFilterNearbyNilCenter(t *testing.T) {
	listings := []*domain.Listing{
		listingAt(t, "a", 0, 0.1),
		{ID: "no-location"},
	}

	nearby, skipped := FilterNearby(listings, nil, 5)

	assert.Equal(t, listings, nearby)
	assert.Zero(t, skipped)
}

func TestFilterNearbyRadius(t *testing.T) {
	center := &Coord{Latitude: 0, Longitude: 0}
	listing := listingAt(t, "a", 0, 0.1) // ~11.1 km east

	nearby, skipped := FilterNearby([]*domain.Listing{listing}, center, 25)
	require.Len(t, nearby, 1)
	assert.Zero(t, skipped)
	assert.InDelta(t, 11.1, nearby[0].DistanceKm, 0.1)

	nearby, skipped = FilterNearby([]*domain.Listing{listing}, center, 5)
	assert.Empty(t, nearby)
	assert.Zero(t, skipped)
}

func TestFilterNearbySkipsInvalidCoordinates(t *testing.T) {
	center := &Coord{Latitude: 0, Longitude: 0}

	listings := []*domain.Listing{
		listingAt(t, "ok-1", 0, 0.05),
		{ID: "missing"},
		listingAt(t, "nan", math.NaN(), 0.01),
		listingAt(t, "ok-2", 0.01, 0),
		listingAt(t, "inf", 0, math.Inf(1)),
	}

	nearby, skipped := FilterNearby(listings, center, 50)

	require.Len(t, nearby, 2)
	assert.Equal(t, 3, skipped)
	// Input order must be preserved.
	assert.Equal(t, "ok-1", nearby[0].ID)
	assert.Equal(t, "ok-2", nearby[1].ID)
}

func TestFilterNearbyPreservesOrder(t *testing.T) {
	center := &Coord{Latitude: 0, Longitude: 0}

	// Farther listing first: FilterNearby must not reorder by distance.
	listings := []*domain.Listing{
		listingAt(t, "far", 0, 0.2),
		listingAt(t, "near", 0, 0.01),
	}

	nearby, _ := FilterNearby(listings, center, 100)
	require.Len(t, nearby, 2)
	assert.Equal(t, "far", nearby[0].ID)
	assert.Equal(t, "near", nearby[1].ID)
}

func listingAt(t *testing.T, id string, lat, lng float64) *domain.Listing {
	t.Helper()
	return &domain.Listing{ID: id, Latitude: &lat, Longitude: &lng}
}
