// Package catalog loads marketplace listings from a seed file into the
// repository through a worker pool, broadcasting each new listing.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ecoplate/go-ecoplate/internal/config"
	"github.com/ecoplate/go-ecoplate/internal/geo"
	"github.com/ecoplate/go-ecoplate/internal/models"
	"github.com/ecoplate/go-ecoplate/internal/notify"
	"github.com/ecoplate/go-ecoplate/internal/repository"
	"github.com/ecoplate/go-ecoplate/internal/worker"
)

type Importer struct {
	cfg         *config.Config
	repo        repository.ListingRepository
	broadcaster *notify.Broadcaster
	pool        *worker.Pool
}

// seedListing is one entry of the seed JSON file.
type seedListing struct {
	ID          string  `json:"id"`
	SellerID    string  `json:"seller_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Location    string  `json:"location"`
	ExpiryDate  string  `json:"expiry_date"`
}

func NewImporter(cfg *config.Config, repo repository.ListingRepository, broadcaster *notify.Broadcaster) *Importer {
	return &Importer{
		cfg:         cfg,
		repo:        repo,
		broadcaster: broadcaster,
	}
}

func (im *Importer) Start(ctx context.Context) {
	processor := func(ctx context.Context, l *models.Listing) error {
		exists, err := im.repo.Exists(ctx, l.ID)
		if err != nil {
			slog.Error("error checking existence", "id", l.ID, "error", err)
			return err
		}
		if exists {
			return nil
		}

		if err := im.repo.Add(ctx, l); err != nil {
			slog.Error("error adding listing", "id", l.ID, "error", err)
			return err
		}

		if c := geo.ParseCoordinates(l.Location); c != nil && !geo.IsValidSingaporeCoordinates(*c) {
			slog.Warn("listing located outside Singapore", "id", l.ID, "location", l.Location)
		}

		if im.broadcaster != nil {
			im.broadcaster.Broadcast(l)
		}

		slog.Info("imported listing", "id", l.ID, "category", l.Category)
		return nil
	}

	im.pool = worker.NewPool(im.cfg.Importer.Workers, im.cfg.Importer.BufferSize, processor)
	im.pool.Start(ctx)
}

// ImportFile reads a seed file and submits every entry to the pool.
// Returns the number of entries submitted.
func (im *Importer) ImportFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("error reading seed file %s: %w", path, err)
	}

	var seeds []seedListing
	if err := json.Unmarshal(data, &seeds); err != nil {
		return 0, fmt.Errorf("error parsing seed file %s: %w", path, err)
	}

	for _, s := range seeds {
		im.pool.Submit(toListing(s))
	}

	slog.Debug("seed file submitted", "path", path, "count", len(seeds))
	return len(seeds), nil
}

func (im *Importer) Stop() {
	im.pool.Stop()
	slog.Info("catalog importer stopped")
}

func toListing(s seedListing) *models.Listing {
	l := &models.Listing{
		ID:          s.ID,
		SellerID:    s.SellerID,
		Title:       s.Title,
		Description: s.Description,
		Category:    s.Category,
		Price:       s.Price,
		Quantity:    s.Quantity,
		Unit:        s.Unit,
		Location:    s.Location,
		CreatedAt:   time.Now(),
	}

	if l.ID == "" {
		l.ID = "seed_" + uuid.NewString()
	}

	// Seed files use either full RFC 3339 timestamps or bare dates.
	if s.ExpiryDate != "" {
		if t, err := time.Parse(time.RFC3339, s.ExpiryDate); err == nil {
			l.ExpiryDate = &t
		} else if t, err := time.Parse("2006-01-02", s.ExpiryDate); err == nil {
			l.ExpiryDate = &t
		}
	}

	return l
}
