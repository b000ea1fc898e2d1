package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ecoplate/go-ecoplate/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS listings (
			id TEXT PRIMARY KEY,
			seller_id TEXT,
			title TEXT NOT NULL,
			description TEXT,
			category TEXT NOT NULL,
			price REAL NOT NULL,
			quantity REAL NOT NULL,
			unit TEXT,
			location TEXT,
			expiry_date DATETIME,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_listings_category ON listings(category);
		CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings(created_at);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) Add(ctx context.Context, l *models.Listing) error {
	query := `
		INSERT INTO listings (id, seller_id, title, description, category, price, quantity, unit, location, expiry_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var expiry any
	if l.ExpiryDate != nil {
		expiry = *l.ExpiryDate
	}

	_, err := s.db.ExecContext(ctx, query,
		l.ID, l.SellerID, l.Title, l.Description, l.Category,
		l.Price, l.Quantity, l.Unit, l.Location,
		expiry, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting listing %s: %w", l.ID, err)
	}

	return nil
}

func (s *SQLiteDB) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	query := `
		SELECT id, seller_id, title, description, category, price, quantity, unit, location, expiry_date, created_at
		FROM listings WHERE id = ?
	`

	l, err := scanListing(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching listing %s: %w", id, err)
	}

	return l, nil
}

func (s *SQLiteDB) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM listings WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking listing %s: %w", id, err)
	}

	return true, nil
}

func (s *SQLiteDB) ListListings(ctx context.Context, opts Filter) ([]models.Listing, error) {
	var (
		where []string
		args  []any
	)

	if opts.Category != nil {
		where = append(where, "category = ?")
		args = append(args, *opts.Category)
	}
	if opts.MaxPrice != nil {
		where = append(where, "price <= ?")
		args = append(args, *opts.MaxPrice)
	}
	if opts.Since != nil {
		where = append(where, "created_at >= ?")
		args = append(args, *opts.Since)
	}

	query := `
		SELECT id, seller_id, title, description, category, price, quantity, unit, location, expiry_date, created_at
		FROM listings
	`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing listings: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning listing: %w", err)
		}
		listings = append(listings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listings: %w", err)
	}

	return listings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*models.Listing, error) {
	var (
		l           models.Listing
		sellerID    sql.NullString
		description sql.NullString
		unit        sql.NullString
		location    sql.NullString
		expiry      sql.NullTime
	)

	err := row.Scan(
		&l.ID, &sellerID, &l.Title, &description, &l.Category,
		&l.Price, &l.Quantity, &unit, &location,
		&expiry, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.SellerID = sellerID.String
	l.Description = description.String
	l.Unit = unit.String
	l.Location = location.String
	if expiry.Valid {
		t := expiry.Time
		l.ExpiryDate = &t
	}

	return &l, nil
}
