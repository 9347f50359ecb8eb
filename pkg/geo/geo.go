// Package geo provides great-circle distance math and radius filtering
// for listing collections. Functions are pure so render paths can call
// them on every pass.
package geo

import (
	"math"

	"github.com/pankaj377/swap-bite-find-sub000/domain"
)

const earthRadiusKm = 6371.0

type Coord struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HaversineDistanceKm returns the great-circle distance between two
// coordinates in kilometers. The asin argument is clamped so antipodal
// points never overshoot 1.0 into NaN.
func HaversineDistanceKm(a, b Coord) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLng := toRadians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	arg := math.Sqrt(h)
	if arg > 1 {
		arg = 1
	}

	return 2 * earthRadiusKm * math.Asin(arg)
}

// FilterNearby keeps the listings whose location lies within radiusKm of
// center, inclusive, preserving input order. A nil center means the
// viewer's position is unknown and everything is returned unfiltered;
// hiding the whole feed for lack of a position would be worse than not
// filtering. Listings with missing or non-finite coordinates are
// excluded and counted so callers can surface the data-quality problem
// instead of treating bad records as merely far away. Each kept listing
// has its DistanceKm set; that enrichment is the only mutation, so pass
// fresh DTOs, not shared state.
func FilterNearby(listings []*domain.Listing, center *Coord, radiusKm float64) (nearby []*domain.Listing, skipped int) {
	if center == nil {
		return listings, 0
	}

	nearby = make([]*domain.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Latitude == nil || l.Longitude == nil || !finite(*l.Latitude) || !finite(*l.Longitude) {
			skipped++
			continue
		}

		d := HaversineDistanceKm(*center, Coord{Latitude: *l.Latitude, Longitude: *l.Longitude})
		if d <= radiusKm {
			l.DistanceKm = d
			nearby = append(nearby, l)
		}
	}

	return nearby, skipped
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
