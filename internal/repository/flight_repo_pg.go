package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FlightRepository is the flight store behind the flight service. Both the
// postgres repository and the remote flight API client satisfy it.
type FlightRepository interface {
	Find(ctx context.Context, from, to string) ([]domain.Flight, error)
	Save(ctx context.Context, flight domain.Flight) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// Find matches airports case-insensitively and exactly; an empty airport
// matches any.
func (r *PGFlightRepository) Find(ctx context.Context, from, to string) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT id, from_airport, to_airport, date, delayed FROM flights
		WHERE ($1 = '' OR lower(from_airport) = lower($1)) AND ($2 = '' OR lower(to_airport) = lower($2))
		ORDER BY date, id`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Flight, error) {
		var f domain.Flight
		err := row.Scan(&f.ID, &f.From, &f.To, &f.Date, &f.Delayed)
		return f, err
	})
}

// Save inserts flights without an ID and upserts the rest. An upsert moves
// the id sequence past the highest stored id so later inserts cannot collide.
func (r *PGFlightRepository) Save(ctx context.Context, flight domain.Flight) error {
	if flight.ID == 0 {
		_, err := r.db.Exec(ctx, `INSERT INTO flights (from_airport, to_airport, date, delayed, updated_at)
			VALUES ($1, $2, $3, $4, now())`, flight.From, flight.To, flight.Date, flight.Delayed)
		return err
	}

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO flights (id, from_airport, to_airport, date, delayed, updated_at)
			VALUES ($1, $2, $3, $4, $5, now())
			ON CONFLICT (id) DO UPDATE SET
				from_airport = EXCLUDED.from_airport,
				to_airport = EXCLUDED.to_airport,
				date = EXCLUDED.date,
				delayed = EXCLUDED.delayed,
				updated_at = now()`, flight.ID, flight.From, flight.To, flight.Date, flight.Delayed)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `SELECT setval(pg_get_serial_sequence('flights', 'id'),
			GREATEST((SELECT max(id) FROM flights), 1))`)
		return err
	})
}

var _ FlightRepository = (*PGFlightRepository)(nil)
