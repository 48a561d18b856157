package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dnminh/restaff/internal/config"
	"github.com/dnminh/restaff/pkg/core/allocator"
	"github.com/dnminh/restaff/pkg/core/model"
	"github.com/dnminh/restaff/pkg/db"
)

// ProposeScheduleResult contains the engine outcome for one week plus
// the combined schedule the chosen strategy produced.
type ProposeScheduleResult struct {
	WeekStart        string
	Result           *model.ScheduleRunResult
	ValidationErrors []string
	Applied          []*model.ShiftSlot
	Persisted        bool
}

// ProposeScheduleStore defines the database operations needed for
// proposing a week's schedule
type ProposeScheduleStore interface {
	GetWeekShifts(ctx context.Context, weekStart string) ([]db.Shift, error)
	GetWeekAssignments(ctx context.Context, weekStart string) ([]db.Assignment, error)
	GetWeekAvailability(ctx context.Context, weekStart string) ([]db.Availability, error)
	GetEmployees(ctx context.Context) ([]db.Employee, error)
	GetConditions(ctx context.Context) ([]db.Condition, error)
	ReplaceWeekAssignments(ctx context.Context, weekStart string, assignments []db.Assignment) error
}

// ProposeSchedule runs the allocation engine over one week and combines
// the proposal with the stored schedule using the given strategy.
// If dryRun is true the combined schedule is computed but not saved.
// Blocking condition errors are reported in the result, not as an error.
func ProposeSchedule(
	ctx context.Context,
	database ProposeScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	weekStart string,
	strategy allocator.Strategy,
	dryRun bool,
) (*ProposeScheduleResult, error) {
	if _, err := parseWeekStart(weekStart); err != nil {
		return nil, err
	}

	logger.Info("Proposing schedule",
		zap.String("week_start", weekStart),
		zap.String("strategy", string(strategy)),
		zap.Bool("dry_run", dryRun))

	logger.Debug("Fetching week shifts")
	shiftRecords, err := database.GetWeekShifts(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	if len(shiftRecords) == 0 {
		return nil, fmt.Errorf("no shifts found for week %s - please run expandWeek first", weekStart)
	}
	logger.Debug("Found shifts", zap.Int("count", len(shiftRecords)))

	logger.Debug("Fetching week assignments")
	assignmentRecords, err := database.GetWeekAssignments(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	logger.Debug("Found assignments", zap.Int("count", len(assignmentRecords)))

	logger.Debug("Fetching roster")
	employeeRecords, err := database.GetEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	if len(employeeRecords) == 0 {
		return nil, fmt.Errorf("roster is empty - please add employees first")
	}
	logger.Debug("Found employees", zap.Int("count", len(employeeRecords)))

	logger.Debug("Fetching week availability")
	availabilityRecords, err := database.GetWeekAvailability(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	logger.Debug("Found availability records", zap.Int("count", len(availabilityRecords)))

	logger.Debug("Fetching conditions")
	conditionRecords, err := database.GetConditions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conditions: %w", err)
	}
	conditions, err := db.DecodeConditions(conditionRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to decode conditions: %w", err)
	}
	logger.Debug("Found conditions", zap.Int("count", len(conditions)))

	baseline, err := slotModels(shiftRecords, assignmentRecords)
	if err != nil {
		return nil, err
	}

	registry, err := allocator.NormalizeConditions(conditions)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize conditions: %w", err)
	}

	index, err := allocator.BuildAvailabilityIndex(availabilityModels(availabilityRecords))
	if err != nil {
		return nil, fmt.Errorf("failed to build availability index: %w", err)
	}

	outcome, err := allocator.Run(allocator.RunInput{
		Shifts:       baseline,
		Roster:       employeeModels(employeeRecords),
		Availability: index,
		Constraints:  registry,
		Weights:      cfg.EngineWeights(),
	})
	if err != nil {
		return nil, fmt.Errorf("allocation run failed: %w", err)
	}

	if len(outcome.ValidationErrors) > 0 {
		logger.Warn("Conditions failed validation, no assignments computed",
			zap.Strings("errors", outcome.ValidationErrors))
		return &ProposeScheduleResult{
			WeekStart:        weekStart,
			ValidationErrors: outcome.ValidationErrors,
		}, nil
	}

	logger.Info("Allocation complete",
		zap.Int("assignments", len(outcome.Result.Assignments)),
		zap.Int("unfilled", len(outcome.Result.Unfilled)),
		zap.Int("warnings", len(outcome.Result.Warnings)))
	for _, warning := range outcome.Result.Warnings {
		logger.Warn(warning)
	}

	applied, err := allocator.ApplyResult(baseline, outcome.Result, strategy)
	if err != nil {
		return nil, fmt.Errorf("failed to apply result: %w", err)
	}

	result := &ProposeScheduleResult{
		WeekStart: weekStart,
		Result:    outcome.Result,
		Applied:   applied,
	}

	if dryRun {
		logger.Info("Dry run - not saving assignments")
		return result, nil
	}

	var assignments []db.Assignment
	for _, slot := range applied {
		for _, a := range slot.Assigned {
			assignments = append(assignments, db.Assignment{
				ShiftID: slot.ID,
				UserID:  a.UserID,
				Role:    string(a.Role),
			})
		}
	}

	logger.Info("Saving assignments", zap.Int("count", len(assignments)))
	if err := database.ReplaceWeekAssignments(ctx, weekStart, assignments); err != nil {
		return nil, fmt.Errorf("failed to save assignments: %w", err)
	}
	result.Persisted = true

	return result, nil
}
