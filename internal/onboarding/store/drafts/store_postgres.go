package drafts

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"carehub/internal/onboarding/draft"
	"carehub/pkg/platform/sentinel"
	"carehub/pkg/platform/tx"
)

// DefaultTable holds drafts when no table is configured.
const DefaultTable = "onboarding_drafts"

// PostgresStore keeps drafts in a jsonb column. The table is expected to be:
//
//	CREATE TABLE onboarding_drafts (
//	    draft_key  text PRIMARY KEY,
//	    document   jsonb NOT NULL,
//	    updated_at timestamptz NOT NULL
//	);
//
// Queries join a transaction carried in the context by tx.WithTx.
type PostgresStore struct {
	db     *sql.DB
	table  string
	prefix string
	clock  func() time.Time
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*PostgresStore)

// WithTable overrides DefaultTable. The name is quoted, not interpolated raw.
func WithTable(table string) PostgresOption {
	return func(s *PostgresStore) {
		if table != "" {
			s.table = table
		}
	}
}

// WithPostgresKeyPrefix overrides DefaultKeyPrefix.
func WithPostgresKeyPrefix(prefix string) PostgresOption {
	return func(s *PostgresStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithClock sets the clock used for updated_at.
func WithClock(clock func() time.Time) PostgresOption {
	return func(s *PostgresStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewPostgres constructs a PostgreSQL-backed draft store.
func NewPostgres(db *sql.DB, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{db: db, table: DefaultTable, prefix: DefaultKeyPrefix, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// EnsureSchema creates the drafts table when it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			draft_key  text PRIMARY KEY,
			document   jsonb NOT NULL,
			updated_at timestamptz NOT NULL
		)`, pq.QuoteIdentifier(s.table))
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure drafts schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, draftID string) (draft.Document, error) {
	query := fmt.Sprintf(`SELECT document FROM %s WHERE draft_key = $1`, pq.QuoteIdentifier(s.table))
	var data []byte
	err := tx.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query, key(s.prefix, draftID)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", translate(err))
	}
	return draft.Parse(data)
}

func (s *PostgresStore) Set(ctx context.Context, draftID string, doc draft.Document) error {
	data, err := encode(doc)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (draft_key, document, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (draft_key) DO UPDATE SET
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at
	`, pq.QuoteIdentifier(s.table))
	if _, err := tx.QuerierFrom(ctx, s.db).ExecContext(ctx, query, key(s.prefix, draftID), data, s.clock()); err != nil {
		return fmt.Errorf("set draft: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, draftID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE draft_key = $1`, pq.QuoteIdentifier(s.table))
	if _, err := tx.QuerierFrom(ctx, s.db).ExecContext(ctx, query, key(s.prefix, draftID)); err != nil {
		return fmt.Errorf("delete draft: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// translate maps connection failures to ErrUnavailable: SQLSTATE class 08
// from either driver, or a connection pgx could not establish.
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "08") {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	return err
}
