package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Store persists users, watch-list entries and alerts in PostgreSQL.
// Each operation acquires a connection from the pool for its own scope;
// nothing is shared or transactional across calls.
type Store struct {
	pool *pgxpool.Pool
}

// User is one registered chat user.
type User struct {
	UserID      int64
	Username    string
	DisplayName string
	CreatedAt   time.Time
}

// Alert is the reserved price-alert row shape. The schema is created and
// the type kept for forward compatibility; no handler drives it yet.
type Alert struct {
	ID          int64
	UserID      int64
	Ticker      string
	TargetPrice float64
	AlertType   string
	IsActive    bool
	CreatedAt   time.Time
}

// New connects to PostgreSQL and verifies the connection.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	log.Info().Msg("Closing PostgreSQL connection pool...")
	s.pool.Close()
}

// EnsureSchema creates the three tables if they do not exist. The alerts
// table is reserved capacity with no control path behind it.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id      BIGINT PRIMARY KEY,
			username     TEXT NOT NULL DEFAULT '',
			display_name TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS watchlist (
			id       BIGSERIAL PRIMARY KEY,
			user_id  BIGINT NOT NULL REFERENCES users (user_id),
			ticker   TEXT NOT NULL,
			added_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS alerts (
			id           BIGSERIAL PRIMARY KEY,
			user_id      BIGINT NOT NULL REFERENCES users (user_id),
			ticker       TEXT NOT NULL,
			target_price DOUBLE PRECISION NOT NULL,
			alert_type   TEXT NOT NULL,
			is_active    BOOLEAN NOT NULL DEFAULT TRUE,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// UpsertUser inserts a user row or overwrites its display fields when the
// id already exists. Last writer wins; duplicate ids never error.
func (s *Store) UpsertUser(ctx context.Context, id int64, username, displayName string) error {
	query := `
		INSERT INTO users (user_id, username, display_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username, display_name = EXCLUDED.display_name
	`
	if _, err := s.pool.Exec(ctx, query, id, username, displayName); err != nil {
		return fmt.Errorf("failed to upsert user %d: %w", id, err)
	}
	return nil
}

// User returns the stored row for id. The user_id primary key means there
// is at most one.
func (s *Store) User(ctx context.Context, id int64) (*User, error) {
	query := `SELECT user_id, username, display_name, created_at FROM users WHERE user_id = $1`
	var u User
	err := s.pool.QueryRow(ctx, query, id).Scan(&u.UserID, &u.Username, &u.DisplayName, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return &u, nil
}

// AddToWatchlist appends an entry with the ticker upper-cased. Duplicates
// are permitted: there is no uniqueness constraint by design.
func (s *Store) AddToWatchlist(ctx context.Context, userID int64, ticker string) error {
	query := `INSERT INTO watchlist (user_id, ticker) VALUES ($1, $2)`
	normalized := strings.ToUpper(strings.TrimSpace(ticker))
	if _, err := s.pool.Exec(ctx, query, userID, normalized); err != nil {
		return fmt.Errorf("failed to add %s to watchlist: %w", normalized, err)
	}
	return nil
}

// Watchlist returns the user's tickers in insertion order. A user with no
// entries gets an empty slice, never an error.
func (s *Store) Watchlist(ctx context.Context, userID int64) ([]string, error) {
	query := `SELECT ticker FROM watchlist WHERE user_id = $1 ORDER BY id`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	tickers := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}
		tickers = append(tickers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read watchlist: %w", err)
	}
	return tickers, nil
}
