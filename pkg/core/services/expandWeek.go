package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/dnminh/restaff/internal/config"
	"github.com/dnminh/restaff/pkg/core/model"
	"github.com/dnminh/restaff/pkg/db"
)

// ExpandWeekResult contains the shifts materialized for one week
type ExpandWeekResult struct {
	WeekStart string
	Created   []db.Shift
	Skipped   int
}

// ExpandWeekStore defines the database operations needed for expanding a week
type ExpandWeekStore interface {
	GetWeekShifts(ctx context.Context, weekStart string) ([]db.Shift, error)
	InsertShifts(ctx context.Context, shifts []db.Shift) error
}

// ExpandWeek materializes the configured shift templates into concrete
// shift rows for the week starting on the given Monday. Dates that
// already carry a shift from the same template are skipped, so the
// operation is safe to rerun.
func ExpandWeek(
	ctx context.Context,
	database ExpandWeekStore,
	cfg *config.Config,
	logger *zap.Logger,
	weekStart string,
) (*ExpandWeekResult, error) {
	start, err := parseWeekStart(weekStart)
	if err != nil {
		return nil, err
	}
	weekEnd := start.AddDate(0, 0, 7)

	logger.Info("Expanding week from templates",
		zap.String("week_start", weekStart),
		zap.Int("template_count", len(cfg.Templates)))

	logger.Debug("Fetching existing shifts")
	existing, err := database.GetWeekShifts(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing shifts: %w", err)
	}
	logger.Debug("Found existing shifts", zap.Int("count", len(existing)))

	occupied := make(map[string]bool, len(existing))
	for _, s := range existing {
		occupied[s.TemplateID+"|"+s.ShiftDate] = true
	}

	result := &ExpandWeekResult{WeekStart: weekStart}

	for _, tmpl := range cfg.Templates {
		rule, err := rrule.StrToRRule(tmpl.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule for template %s: %w", tmpl.ID, err)
		}
		rule.DTStart(start)

		dates := rule.Between(start, weekEnd.Add(-time.Nanosecond), true)
		logger.Debug("Template occurrences",
			zap.String("template_id", tmpl.ID),
			zap.Int("count", len(dates)))

		for _, date := range dates {
			shiftDate := date.Format("2006-01-02")
			if occupied[tmpl.ID+"|"+shiftDate] {
				result.Skipped++
				continue
			}

			record, err := shiftFromTemplate(tmpl, shiftDate)
			if err != nil {
				return nil, err
			}
			result.Created = append(result.Created, record)
		}
	}

	if len(result.Created) == 0 {
		logger.Info("No new shifts to create", zap.Int("skipped", result.Skipped))
		return result, nil
	}

	logger.Info("Inserting shifts",
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", result.Skipped))

	if err := database.InsertShifts(ctx, result.Created); err != nil {
		return nil, fmt.Errorf("failed to insert shifts: %w", err)
	}

	return result, nil
}

// shiftFromTemplate builds one shift record for a template landing on a date
func shiftFromTemplate(tmpl config.ShiftTemplate, shiftDate string) (db.Shift, error) {
	record := db.Shift{
		ID:           uuid.New().String(),
		TemplateID:   tmpl.ID,
		ShiftDate:    shiftDate,
		StartTime:    tmpl.Start,
		EndTime:      tmpl.End,
		Role:         tmpl.Role,
		MinHeadcount: tmpl.MinHeadcount,
	}

	if len(tmpl.Staffing) > 0 {
		staffing := make([]model.RoleCount, len(tmpl.Staffing))
		for i, rule := range tmpl.Staffing {
			staffing[i] = model.RoleCount{Role: model.Role(rule.Role), Count: rule.Count}
		}
		encoded, err := json.Marshal(staffing)
		if err != nil {
			return db.Shift{}, fmt.Errorf("failed to encode staffing for template %s: %w", tmpl.ID, err)
		}
		record.Staffing = encoded
	}

	return record, nil
}
