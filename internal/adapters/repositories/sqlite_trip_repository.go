package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eld-trip-service/internal/domain"
)

// SQL-backed implementation of the TripRepository port. The schedule is
// stored as a JSON document beside indexed columns for listing. Queries are
// written with ? placeholders and rebound for drivers that number them.
type SQLTripRepository struct {
	DB     *sql.DB
	rebind func(string) string
}

func NewSQLTripRepository(db *sql.DB) *SQLTripRepository {
	return &SQLTripRepository{DB: db, rebind: func(q string) string { return q }}
}

func NewPostgresTripRepository(db *sql.DB) *SQLTripRepository {
	return &SQLTripRepository{DB: db, rebind: rebindPositional}
}

// rebindPositional rewrites ? placeholders to the $1, $2, ... form the pgx
// driver expects.
func rebindPositional(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SaveTrip persists a finished trip and returns its assigned ID.
func (s *SQLTripRepository) SaveTrip(ctx context.Context, trip *domain.Trip) (string, error) {
	if s.DB == nil {
		return "", errors.New("trip repository: DB is nil")
	}
	if trip == nil {
		return "", errors.New("trip repository: trip is nil")
	}

	if trip.TripID == "" {
		trip.TripID = uuid.NewString()
	}
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now().UTC()
	}

	doc, err := json.Marshal(trip)
	if err != nil {
		return "", fmt.Errorf("save trip: encode document: %w", err)
	}

	query := `
	INSERT INTO trips (trip_id, created_at, driver_name, total_miles, document)
	VALUES (?, ?, ?, ?, ?);
	`
	_, err = s.DB.ExecContext(ctx, s.rebind(query),
		trip.TripID,
		trip.CreatedAt.Format(time.RFC3339Nano),
		trip.Driver.DriverName,
		trip.Plan.TotalDistanceMiles(),
		string(doc),
	)
	if err != nil {
		return "", fmt.Errorf("save trip: insert trip_id=%s: %w", trip.TripID, err)
	}

	return trip.TripID, nil
}

// GetTrip returns the stored trip, or nil when it does not exist.
func (s *SQLTripRepository) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}

	query := `
	SELECT document
	FROM trips
	WHERE trip_id = ?;
	`
	var doc string
	err := s.DB.QueryRowContext(ctx, s.rebind(query), tripID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %s: query trips table: %w", tripID, err)
	}

	var trip domain.Trip
	if err := json.Unmarshal([]byte(doc), &trip); err != nil {
		return nil, fmt.Errorf("get trip %s: decode document: %w", tripID, err)
	}
	return &trip, nil
}

// ListTrips returns the most recent trips, newest first.
func (s *SQLTripRepository) ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
	SELECT document
	FROM trips
	ORDER BY created_at DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, s.rebind(query), limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, limit)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}

		var trip domain.Trip
		if err := json.Unmarshal([]byte(doc), &trip); err != nil {
			return nil, fmt.Errorf("list trips: decode document: %w", err)
		}
		trips = append(trips, &trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}
