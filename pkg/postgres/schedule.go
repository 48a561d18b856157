package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dnminh/restaff/pkg/db"
)

// GetWeekShifts retrieves the shift records of the week starting on the
// given Monday, ordered for deterministic processing.
func (d *DB) GetWeekShifts(ctx context.Context, weekStart string) ([]db.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, template_id, shift_date, start_time, end_time, role, staffing, min_headcount
		FROM shift
		WHERE shift_date >= $1::date AND shift_date < $1::date + 7
		ORDER BY shift_date, start_time, template_id, id
	`, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []db.Shift
	for rows.Next() {
		var s db.Shift
		var date time.Time
		if err := rows.Scan(&s.ID, &s.TemplateID, &date, &s.StartTime, &s.EndTime, &s.Role, &s.Staffing, &s.MinHeadcount); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		s.ShiftDate = date.Format("2006-01-02")
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// GetWeekAssignments retrieves the assignment records attached to the
// given week's shifts.
func (d *DB) GetWeekAssignments(ctx context.Context, weekStart string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT a.id, a.shift_id, a.user_id, a.role
		FROM assignment a
		JOIN shift s ON s.id = a.shift_id
		WHERE s.shift_date >= $1::date AND s.shift_date < $1::date + 7
		ORDER BY a.shift_id, a.user_id
	`, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		if err := rows.Scan(&a.ID, &a.ShiftID, &a.UserID, &a.Role); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// InsertShifts inserts shift records in a single transaction
func (d *DB) InsertShifts(ctx context.Context, shifts []db.Shift) error {
	if len(shifts) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range shifts {
		_, err := tx.Exec(ctx, `
			INSERT INTO shift (id, template_id, shift_date, start_time, end_time, role, staffing, min_headcount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, s.ID, s.TemplateID, s.ShiftDate, s.StartTime, s.EndTime, s.Role, s.Staffing, s.MinHeadcount)
		if err != nil {
			return fmt.Errorf("failed to insert shift %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ReplaceWeekAssignments deletes the week's assignment rows and writes
// the given set in their place, atomically.
func (d *DB) ReplaceWeekAssignments(ctx context.Context, weekStart string, assignments []db.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM assignment
		USING shift
		WHERE assignment.shift_id = shift.id
		  AND shift.shift_date >= $1::date AND shift.shift_date < $1::date + 7
	`, weekStart)
	if err != nil {
		return fmt.Errorf("failed to clear week assignments: %w", err)
	}

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (shift_id, user_id, role)
			VALUES ($1, $2, $3)
		`, a.ShiftID, a.UserID, a.Role)
		if err != nil {
			return fmt.Errorf("failed to insert assignment for shift %s: %w", a.ShiftID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
