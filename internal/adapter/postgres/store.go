package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trbngr/refdata/internal/domain/gender"
)

// Store implements lookup.Lookup using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func scanGender(row scannable) (gender.Gender, error) {
	var g gender.Gender
	err := row.Scan(&g.ID, &g.Name)
	return g, err
}

// GetGender fetches a single gender row by id.
func (s *Store) GetGender(ctx context.Context, id uuid.UUID) (*gender.Gender, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name FROM genders WHERE id = $1`, id)

	g, err := scanGender(row)
	if err != nil {
		return nil, notFoundWrap(err, "get gender %s", id)
	}
	return &g, nil
}

// ListGenders returns every gender row ordered by name.
func (s *Store) ListGenders(ctx context.Context) ([]gender.Gender, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name FROM genders ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list genders: %w", err)
	}
	defer rows.Close()

	var genders []gender.Gender
	for rows.Next() {
		g, err := scanGender(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gender: %w", err)
		}
		genders = append(genders, g)
	}
	return genders, rows.Err()
}
