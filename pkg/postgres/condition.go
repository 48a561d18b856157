package postgres

import (
	"context"
	"fmt"

	"github.com/dnminh/restaff/pkg/db"
)

// GetConditions retrieves all scheduling condition records, enabled or
// not; filtering disabled records is the engine's concern.
func (d *DB) GetConditions(ctx context.Context) ([]db.Condition, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, kind, enabled, payload
		FROM condition
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query conditions: %w", err)
	}
	defer rows.Close()

	var records []db.Condition
	for rows.Next() {
		var c db.Condition
		if err := rows.Scan(&c.ID, &c.Kind, &c.Enabled, &c.Payload); err != nil {
			return nil, fmt.Errorf("failed to scan condition: %w", err)
		}
		records = append(records, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conditions: %w", err)
	}

	return records, nil
}

// InsertConditions upserts condition records in a single transaction;
// reauthoring a condition under the same id replaces it.
func (d *DB) InsertConditions(ctx context.Context, records []db.Condition) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range records {
		_, err := tx.Exec(ctx, `
			INSERT INTO condition (id, kind, enabled, payload)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE
			SET kind = EXCLUDED.kind, enabled = EXCLUDED.enabled, payload = EXCLUDED.payload
		`, c.ID, c.Kind, c.Enabled, c.Payload)
		if err != nil {
			return fmt.Errorf("failed to insert condition %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
