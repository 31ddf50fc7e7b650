// README: Supplier rate records backed by PostgreSQL (read only).
package pricing

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ActiveRates returns the hourly rates of active suppliers in a service category.
func (s *Store) ActiveRates(ctx context.Context, category string) ([]int64, error) {
	rows, err := s.db.Query(ctx, `
		SELECT hourly_rate_cents
		FROM supplier_rates
		WHERE service_category = $1 AND active
		ORDER BY hourly_rate_cents`, category)
	if err != nil {
		return nil, fmt.Errorf("query supplier rates: %w", err)
	}
	defer rows.Close()

	var rates []int64
	for rows.Next() {
		var r int64
		if err := rows.Scan(&r); err != nil {
			return nil, fmt.Errorf("scan supplier rate: %w", err)
		}
		rates = append(rates, r)
	}
	return rates, rows.Err()
}
