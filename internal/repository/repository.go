package repository

import (
	"context"
	"time"

	"github.com/ecoplate/go-ecoplate/internal/models"
)

// Filter narrows ListListings. Nil pointer fields are ignored. Geographic
// filtering is not done here; the proximity engine handles radius filtering
// on the result set because location strings are stored in mixed formats.
type Filter struct {
	Limit    int
	Offset   int
	Category *string
	MaxPrice *float64
	Since    *time.Time
}

type ListingRepository interface {
	Add(ctx context.Context, l *models.Listing) error
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListListings(ctx context.Context, opts Filter) ([]models.Listing, error)
}
