package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"log-stats/internal/models"

	_ "modernc.org/sqlite"
)

var ErrGeolocationNotFound = errors.New("geolocation not found")

const geolocationSchema = `
	CREATE TABLE IF NOT EXISTS geolocations (
		ip TEXT,
		geolocation TEXT,
		timestamp TEXT
	);
	CREATE INDEX IF NOT EXISTS index_geolocations ON geolocations (ip);
`

// GeolocationStore caches geolocation lookups, failures included, in SQLite.
//
//go:generate mockgen -source=geolocation_store.go -destination=./mocks/geolocation_store_mock.go -package=mocks
type GeolocationStore interface {
	// Get returns the first record stored for ip or ErrGeolocationNotFound.
	Get(ctx context.Context, ip string) (*models.GeolocationRecord, error)
	// Insert stores geolocation for ip stamped with today's date.
	Insert(ctx context.Context, ip, geolocation string) error
	All(ctx context.Context) ([]models.GeolocationRecord, error)
	Close() error
}

type geolocationStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewGeolocationStore opens the database at path and creates the table when missing.
// ":memory:" keeps it in memory.
func NewGeolocationStore(ctx context.Context, path string) (GeolocationStore, error) {
	return newGeolocationStore(ctx, path, time.Now)
}

func newGeolocationStore(ctx context.Context, path string, now func() time.Time) (*geolocationStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geolocation db: %w", err)
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, geolocationSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create geolocation table: %w", err)
	}
	return &geolocationStore{db: db, now: now}, nil
}

func (s *geolocationStore) Get(ctx context.Context, ip string) (*models.GeolocationRecord, error) {
	record := models.GeolocationRecord{IP: ip}
	err := s.db.QueryRowContext(ctx,
		`SELECT geolocation, timestamp FROM geolocations WHERE ip = ? LIMIT 1`, ip,
	).Scan(&record.Geolocation, &record.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metricGeolocationQueriesTotal.WithLabelValues(outcomeMiss).Inc()
			return nil, ErrGeolocationNotFound
		}
		metricGeolocationQueriesTotal.WithLabelValues(outcomeError).Inc()
		return nil, fmt.Errorf("failed to query geolocation: %w", err)
	}
	metricGeolocationQueriesTotal.WithLabelValues(outcomeHit).Inc()
	return &record, nil
}

func (s *geolocationStore) Insert(ctx context.Context, ip, geolocation string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO geolocations (ip, geolocation, timestamp) VALUES (?, ?, ?)`,
		ip, geolocation, s.now().Format(models.DateLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert geolocation: %w", err)
	}
	return nil
}

func (s *geolocationStore) All(ctx context.Context) ([]models.GeolocationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ip, geolocation, timestamp FROM geolocations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query geolocations: %w", err)
	}
	defer rows.Close()

	var records []models.GeolocationRecord
	for rows.Next() {
		var record models.GeolocationRecord
		if err := rows.Scan(&record.IP, &record.Geolocation, &record.Date); err != nil {
			return nil, fmt.Errorf("failed to scan geolocation: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate geolocations: %w", err)
	}
	return records, nil
}

func (s *geolocationStore) Close() error {
	return s.db.Close()
}
