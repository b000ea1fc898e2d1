package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ecoplate/go-ecoplate/internal/models"
)

// InventoryProduct is a seller-owned item under expiry analysis.
type InventoryProduct struct {
	ProductID   string
	ProductName string
	Category    string
	Expiry      *time.Time
}

// Notification is an actionable message for a seller or buyer.
type Notification struct {
	ID                string
	Type              string
	Priority          string
	ProductID         string
	ProductName       string
	ListingID         string
	Message           string
	Action            string
	SuggestedDiscount int
}

var priorityOrder = map[string]int{"high": 0, "medium": 1, "low": 2}

// SellerNotifications scans a seller's inventory and emits expiry
// notifications ordered by priority. Items with more than a week of shelf
// life produce nothing.
func SellerNotifications(products []InventoryProduct, now time.Time) []Notification {
	notifications := make([]Notification, 0, len(products))

	for _, p := range products {
		urgency := UrgencyScore(p.Expiry, now)

		switch {
		case urgency >= 0.9:
			notifications = append(notifications, Notification{
				ID:                uuid.NewString(),
				Type:              "critical_expiry",
				Priority:          "high",
				ProductID:         p.ProductID,
				ProductName:       p.ProductName,
				Message:           fmt.Sprintf("%s expires today/tomorrow! List now at 50%%+ discount.", p.ProductName),
				Action:            "list_urgent",
				SuggestedDiscount: 50,
			})
		case urgency >= 0.7:
			notifications = append(notifications, Notification{
				ID:                uuid.NewString(),
				Type:              "expiring_soon",
				Priority:          "medium",
				ProductID:         p.ProductID,
				ProductName:       p.ProductName,
				Message:           fmt.Sprintf("%s expires in 2-3 days. Consider listing on marketplace.", p.ProductName),
				Action:            "list_soon",
				SuggestedDiscount: 30,
			})
		case urgency >= 0.5:
			notifications = append(notifications, Notification{
				ID:                uuid.NewString(),
				Type:              "plan_ahead",
				Priority:          "low",
				ProductID:         p.ProductID,
				ProductName:       p.ProductName,
				Message:           fmt.Sprintf("%s expires within a week. Plan to use or sell.", p.ProductName),
				Action:            "plan",
				SuggestedDiscount: 15,
			})
		}
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return priorityOrder[notifications[i].Priority] < priorityOrder[notifications[j].Priority]
	})

	return notifications
}

func buyerNotification(l models.Listing, score float64, now time.Time) Notification {
	urgency := UrgencyScore(l.ExpiryDate, now)

	var message string
	switch {
	case score >= 0.8:
		message = fmt.Sprintf("Perfect match! %s at great price.", l.Title)
	case score >= 0.6:
		message = fmt.Sprintf("Good deal: %s matches your preferences.", l.Title)
	default:
		message = fmt.Sprintf("You might like: %s", l.Title)
	}
	if urgency >= 0.8 {
		message += " Act fast - expiring soon!"
	}

	priority := "medium"
	if score >= 0.7 {
		priority = "high"
	}

	return Notification{
		ID:        uuid.NewString(),
		Type:      "match_found",
		Priority:  priority,
		ListingID: l.ID,
		Message:   message,
	}
}
