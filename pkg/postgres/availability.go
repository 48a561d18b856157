package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dnminh/restaff/pkg/db"
)

// GetWeekAvailability retrieves the declared free windows falling inside
// the week starting on the given Monday.
func (d *DB) GetWeekAvailability(ctx context.Context, weekStart string) ([]db.Availability, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, user_id, shift_date, start_time, end_time
		FROM availability
		WHERE shift_date >= $1::date AND shift_date < $1::date + 7
		ORDER BY user_id, shift_date, start_time
	`, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	var records []db.Availability
	for rows.Next() {
		var a db.Availability
		var date time.Time
		if err := rows.Scan(&a.ID, &a.UserID, &date, &a.StartTime, &a.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		a.ShiftDate = date.Format("2006-01-02")
		records = append(records, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating availability: %w", err)
	}

	return records, nil
}

// InsertAvailability inserts availability records in a single transaction
func (d *DB) InsertAvailability(ctx context.Context, records []db.Availability) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range records {
		_, err := tx.Exec(ctx, `
			INSERT INTO availability (user_id, shift_date, start_time, end_time)
			VALUES ($1, $2, $3, $4)
		`, a.UserID, a.ShiftDate, a.StartTime, a.EndTime)
		if err != nil {
			return fmt.Errorf("failed to insert availability for %s: %w", a.UserID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
