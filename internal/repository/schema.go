package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateFlightsTable(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `CREATE TABLE IF NOT EXISTS flights (
		id BIGSERIAL PRIMARY KEY,
		from_airport TEXT NOT NULL,
		to_airport TEXT NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		delayed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("creating flights table: %w", err)
	}
	return nil
}
