package sheetsclient

import (
	"fmt"
	"time"
)

// PublishedScheduleRow represents a single shift row in the published week
type PublishedScheduleRow struct {
	Date      string   // Format: "Mon Jan 02 2006"
	Shift     string   // Template id of the shift
	Time      string   // Format: "08:00 - 12:00"
	Role      string   // Role the positions are for
	Employees []string // Display names of the assigned employees
}

// PublishedSchedule represents one week of shifts ready for publication
type PublishedSchedule struct {
	WeekStart string // Format: "2006-01-02", a Monday
	TabPrefix string // Tab title prefix, e.g. "Week of"
	Rows      []PublishedScheduleRow
}

// PublishSchedule writes a week's schedule to its own tab in the
// spreadsheet. The tab is created on first publication and fully
// rewritten on every republication, so the sheet always mirrors the
// database.
func (c *Client) PublishSchedule(spreadsheetID string, schedule *PublishedSchedule) error {
	tabTitle, err := weekTabTitle(schedule.TabPrefix, schedule.WeekStart)
	if err != nil {
		return fmt.Errorf("failed to generate tab title: %w", err)
	}

	exists, err := c.HasSheet(spreadsheetID, tabTitle)
	if err != nil {
		return err
	}
	if !exists {
		if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	} else {
		if err := c.ClearValues(spreadsheetID, tabTitle); err != nil {
			return fmt.Errorf("failed to clear tab: %w", err)
		}
	}

	maxEmployees := 0
	for _, row := range schedule.Rows {
		if len(row.Employees) > maxEmployees {
			maxEmployees = len(row.Employees)
		}
	}

	header := []interface{}{"Date", "Shift", "Time", "Role"}
	for i := 0; i < maxEmployees; i++ {
		header = append(header, fmt.Sprintf("Employee %d", i+1))
	}

	values := [][]interface{}{header}
	for _, row := range schedule.Rows {
		cells := []interface{}{row.Date, row.Shift, row.Time, row.Role}
		for _, name := range row.Employees {
			cells = append(cells, name)
		}
		values = append(values, cells)
	}

	writeRange := fmt.Sprintf("%s!A1", tabTitle)
	if err := c.UpdateValues(spreadsheetID, writeRange, values); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}

	return nil
}

// weekTabTitle creates a tab title in the format "Week of Mon Jan 06 2025"
func weekTabTitle(prefix, weekStart string) (string, error) {
	start, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		return "", fmt.Errorf("invalid week start date: %w", err)
	}

	if prefix == "" {
		prefix = "Week of"
	}

	return prefix + " " + start.Format("Mon Jan 02 2006"), nil
}
