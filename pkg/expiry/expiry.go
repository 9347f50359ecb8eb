// Package expiry decides listing visibility and display urgency purely
// from timestamps. Every function here is side-effect free so callers can
// run them on each render or query pass with a fresh "now".
package expiry

import (
	"fmt"
	"math"
	"time"
)

const urgentWindow = 24 * time.Hour

type Classification struct {
	Label  string `json:"label"`
	Urgent bool   `json:"urgent"`
}

// IsVisible reports whether a listing may be shown at the given instant.
// A nil expiry means the listing never auto-expires. The boundary is
// strict: a listing expiring exactly at now is already expired. The
// sweeper deletes on the mirrored condition (expires_at < now) so no
// listing is ever both visible and swept.
func IsVisible(expiresAt *time.Time, now time.Time) bool {
	if expiresAt == nil {
		return true
	}
	return expiresAt.After(now)
}

// Classify produces the display label and urgency flag for a still-visible
// listing. Callers must pre-filter with IsVisible; an already-expired
// timestamp is a caller bug and yields a conservative non-urgent label
// instead of panicking on the render path.
//
// Listings under 24 hours from expiry are urgent and labeled with the
// clock time plus whole hours remaining. Beyond that the label switches
// to calendar days: "tomorrow" means the next calendar day in now's
// location, not now+24h, so day boundaries follow local midnight.
func Classify(expiresAt, now time.Time) Classification {
	expiresAt = expiresAt.In(now.Location())
	clock := expiresAt.Format("3:04 PM")

	remaining := expiresAt.Sub(now)
	if remaining <= 0 {
		return Classification{
			Label:  fmt.Sprintf("expires %s at %s", expiresAt.Format("Jan 2"), clock),
			Urgent: false,
		}
	}

	if remaining < urgentWindow {
		hoursLeft := int(remaining.Hours())
		return Classification{
			Label:  fmt.Sprintf("expires at %s (%d hours left)", clock, hoursLeft),
			Urgent: true,
		}
	}

	days := calendarDaysBetween(now, expiresAt)
	if days == 1 {
		return Classification{
			Label:  fmt.Sprintf("expires tomorrow at %s", clock),
			Urgent: false,
		}
	}

	return Classification{
		Label:  fmt.Sprintf("expires in %d days at %s", days, clock),
		Urgent: false,
	}
}

// calendarDaysBetween counts midnight crossings from a to b in a's
// location. It is 0 for same-day, 1 for tomorrow, regardless of the
// clock-time distance between the two instants.
func calendarDaysBetween(a, b time.Time) int {
	loc := a.Location()
	aDay := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, loc)
	bb := b.In(loc)
	bDay := time.Date(bb.Year(), bb.Month(), bb.Day(), 0, 0, 0, 0, loc)
	// Rounding keeps DST-shortened or -lengthened days from skewing the count.
	return int(math.Round(bDay.Sub(aDay).Hours() / 24))
}
