// Package recommend scores listings and inventory for the marketplace:
// expiry urgency, price suggestions, buyer matching, similar-product
// lookup and notifications.
// Every function takes the current time as an argument so results are
// deterministic.
package recommend

import (
	"math"
	"time"
)

// UrgencyScore maps an expiry date to a 0..1 urgency (1 = most urgent).
// A nil expiry is neutral (0.5). Already-expired items score 1.0.
func UrgencyScore(expiry *time.Time, now time.Time) float64 {
	if expiry == nil {
		return 0.5
	}

	days := int(math.Floor(expiry.Sub(now).Hours() / 24))
	switch {
	case days <= 0:
		return 1.0
	case days <= 1:
		return 0.95
	case days <= 3:
		return 0.8
	case days <= 7:
		return 0.5
	case days <= 14:
		return 0.3
	default:
		return 0.1
	}
}

// UrgencyLevel buckets an urgency score for display.
func UrgencyLevel(score float64) string {
	switch {
	case score >= 0.9:
		return "critical"
	case score >= 0.7:
		return "high"
	case score >= 0.4:
		return "medium"
	default:
		return "low"
	}
}
