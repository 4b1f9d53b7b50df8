package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const lookupColumns = `id, vin, provider, status, attributes, error_message, created_at`

type LookupRepository struct {
	db *pgxpool.Pool
}

func NewLookupRepository(db *pgxpool.Pool) *LookupRepository {
	return &LookupRepository{db: db}
}

func (r *LookupRepository) Save(ctx context.Context, lookup *domain.Lookup) error {
	query := `
		INSERT INTO lookups (` + lookupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	m, err := toDBModel(lookup)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, query,
		m.ID,
		m.VIN,
		m.Provider,
		m.Status,
		m.Attributes,
		m.ErrorMessage,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save lookup: %w", err)
	}

	return nil
}

func (r *LookupRepository) FindByID(ctx context.Context, id string) (*domain.Lookup, error) {
	query := `SELECT ` + lookupColumns + ` FROM lookups WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	return scanLookup(row)
}

// FindLatestSuccess returns the newest SUCCEEDED lookup for the pair.
func (r *LookupRepository) FindLatestSuccess(ctx context.Context, vin domain.VIN, provider domain.Provider) (*domain.Lookup, error) {
	query := `
		SELECT ` + lookupColumns + `
		FROM lookups
		WHERE vin = $1
		  AND provider = $2
		  AND status = 'SUCCEEDED'
		ORDER BY created_at DESC
		LIMIT 1
	`

	row := r.db.QueryRow(ctx, query, string(vin), string(provider))
	return scanLookup(row)
}

func (r *LookupRepository) ListByVIN(ctx context.Context, vin domain.VIN, limit, offset int) ([]*domain.Lookup, error) {
	query := `
		SELECT ` + lookupColumns + `
		FROM lookups
		WHERE vin = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, string(vin), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query lookups by vin: %w", err)
	}
	return collectLookups(rows)
}

func (r *LookupRepository) ListRecent(ctx context.Context, limit, offset int) ([]*domain.Lookup, error) {
	query := `
		SELECT ` + lookupColumns + `
		FROM lookups
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query recent lookups: %w", err)
	}
	return collectLookups(rows)
}

// DeleteOlderThan removes lookups created before cutoff and reports how many went.
func (r *LookupRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM lookups WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete lookups older than %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return tag.RowsAffected(), nil
}

func collectLookups(rows pgx.Rows) ([]*domain.Lookup, error) {
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Lookup, error) {
		var m LookupModel
		if err := row.Scan(
			&m.ID, &m.VIN, &m.Provider, &m.Status, &m.Attributes, &m.ErrorMessage, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		return toDomainModel(m)
	})
	if err != nil {
		return nil, fmt.Errorf("error occurred while scanning rows: %w", err)
	}
	return results, nil
}

// scanLookup converts a database row into a domain Lookup.
// Returns domain.ErrLookupNotFound if the row doesn't exist.
func scanLookup(row pgx.Row) (*domain.Lookup, error) {
	var m LookupModel
	err := row.Scan(
		&m.ID, &m.VIN, &m.Provider, &m.Status, &m.Attributes, &m.ErrorMessage, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLookupNotFound
		}
		return nil, fmt.Errorf("failed to scan lookup: %w", err)
	}
	return toDomainModel(m)
}
