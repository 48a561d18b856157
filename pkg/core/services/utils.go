package services

import (
	"fmt"
	"time"

	"github.com/dnminh/restaff/pkg/core/model"
	"github.com/dnminh/restaff/pkg/db"
)

// parseWeekStart parses a week-start date and checks it is a Monday,
// since every week of shifts is addressed by its Monday.
func parseWeekStart(weekStart string) (time.Time, error) {
	start, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week start date %q: %w", weekStart, err)
	}
	if start.Weekday() != time.Monday {
		return time.Time{}, fmt.Errorf("week start %s is a %s, expected a Monday", weekStart, start.Weekday())
	}
	return start, nil
}

// slotModels converts shift and assignment records into engine slots
func slotModels(shifts []db.Shift, assignments []db.Assignment) ([]*model.ShiftSlot, error) {
	slots := make([]*model.ShiftSlot, 0, len(shifts))
	for _, s := range shifts {
		slot, err := s.ToModel(assignments)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// availabilityModels converts availability records into engine intervals
func availabilityModels(records []db.Availability) []model.AvailabilityInterval {
	intervals := make([]model.AvailabilityInterval, len(records))
	for i, r := range records {
		intervals[i] = r.ToModel()
	}
	return intervals
}

// employeeModels converts roster records into engine employees
func employeeModels(records []db.Employee) []model.Employee {
	employees := make([]model.Employee, len(records))
	for i, r := range records {
		employees[i] = r.ToModel()
	}
	return employees
}

// displayNames maps employee ids to display names, falling back to the
// id when the roster has no record for it.
func displayNames(employees []model.Employee) func(userID string) string {
	byID := make(map[string]string, len(employees))
	for _, e := range employees {
		byID[e.ID] = e.DisplayName
	}
	return func(userID string) string {
		if name, ok := byID[userID]; ok && name != "" {
			return name
		}
		return userID
	}
}
