package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dnminh/restaff/internal/config"
	"github.com/dnminh/restaff/pkg/clients/sheetsclient"
	"github.com/dnminh/restaff/pkg/db"
)

// PublishScheduleResult contains the published week summary
type PublishScheduleResult struct {
	WeekStart string
	RowCount  int
}

// PublishScheduleStore defines the database operations needed for
// publishing a week
type PublishScheduleStore interface {
	GetWeekShifts(ctx context.Context, weekStart string) ([]db.Shift, error)
	GetWeekAssignments(ctx context.Context, weekStart string) ([]db.Assignment, error)
	GetEmployees(ctx context.Context) ([]db.Employee, error)
}

// SchedulePublisher is the sheets surface the service needs
type SchedulePublisher interface {
	PublishSchedule(spreadsheetID string, schedule *sheetsclient.PublishedSchedule) error
}

// PublishSchedule writes a week's stored schedule to the configured
// spreadsheet, one row per shift with the assignees' display names.
func PublishSchedule(
	ctx context.Context,
	database PublishScheduleStore,
	client SchedulePublisher,
	cfg *config.Config,
	logger *zap.Logger,
	weekStart string,
) (*PublishScheduleResult, error) {
	if _, err := parseWeekStart(weekStart); err != nil {
		return nil, err
	}

	logger.Info("Publishing schedule", zap.String("week_start", weekStart))

	logger.Debug("Fetching week shifts")
	shiftRecords, err := database.GetWeekShifts(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	if len(shiftRecords) == 0 {
		return nil, fmt.Errorf("no shifts found for week %s - nothing to publish", weekStart)
	}

	assignmentRecords, err := database.GetWeekAssignments(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	employeeRecords, err := database.GetEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	nameOf := displayNames(employeeModels(employeeRecords))

	slots, err := slotModels(shiftRecords, assignmentRecords)
	if err != nil {
		return nil, err
	}

	schedule := &sheetsclient.PublishedSchedule{
		WeekStart: weekStart,
		TabPrefix: cfg.ScheduleTab,
	}
	for _, slot := range slots {
		date, err := time.Parse("2006-01-02", slot.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date on shift %s: %w", slot.ID, err)
		}

		row := sheetsclient.PublishedScheduleRow{
			Date:  date.Format("Mon Jan 02 2006"),
			Shift: slot.TemplateID,
			Time:  fmt.Sprintf("%s - %s", slot.Start, slot.End),
			Role:  string(slot.Role),
		}
		for _, a := range slot.Assigned {
			row.Employees = append(row.Employees, nameOf(a.UserID))
		}
		schedule.Rows = append(schedule.Rows, row)
	}

	logger.Info("Writing schedule to spreadsheet",
		zap.String("spreadsheet_id", cfg.ScheduleSheetID),
		zap.Int("rows", len(schedule.Rows)))

	if err := client.PublishSchedule(cfg.ScheduleSheetID, schedule); err != nil {
		return nil, fmt.Errorf("failed to publish schedule: %w", err)
	}

	return &PublishScheduleResult{
		WeekStart: weekStart,
		RowCount:  len(schedule.Rows),
	}, nil
}
