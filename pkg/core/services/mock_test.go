package services

import (
	"context"

	"github.com/dnminh/restaff/pkg/db"
)

// mockDB implements a test double for the service store interfaces
type mockDB struct {
	shifts       []db.Shift
	assignments  []db.Assignment
	availability []db.Availability
	employees    []db.Employee
	conditions   []db.Condition

	insertedShifts       []db.Shift
	replacedWeek         string
	replacedAssignments  []db.Assignment
	replaceCalls         int
	getShiftsErr         error
	insertShiftsErr      error
	replaceAssignmentErr error
}

func (m *mockDB) GetWeekShifts(ctx context.Context, weekStart string) ([]db.Shift, error) {
	if m.getShiftsErr != nil {
		return nil, m.getShiftsErr
	}
	return m.shifts, nil
}

func (m *mockDB) GetWeekAssignments(ctx context.Context, weekStart string) ([]db.Assignment, error) {
	return m.assignments, nil
}

func (m *mockDB) GetWeekAvailability(ctx context.Context, weekStart string) ([]db.Availability, error) {
	return m.availability, nil
}

func (m *mockDB) GetEmployees(ctx context.Context) ([]db.Employee, error) {
	return m.employees, nil
}

func (m *mockDB) InsertEmployees(ctx context.Context, employees []db.Employee) error {
	return nil
}

func (m *mockDB) GetConditions(ctx context.Context) ([]db.Condition, error) {
	return m.conditions, nil
}

func (m *mockDB) InsertConditions(ctx context.Context, records []db.Condition) error {
	return nil
}

func (m *mockDB) InsertShifts(ctx context.Context, shifts []db.Shift) error {
	if m.insertShiftsErr != nil {
		return m.insertShiftsErr
	}
	m.insertedShifts = append(m.insertedShifts, shifts...)
	return nil
}

func (m *mockDB) ReplaceWeekAssignments(ctx context.Context, weekStart string, assignments []db.Assignment) error {
	if m.replaceAssignmentErr != nil {
		return m.replaceAssignmentErr
	}
	m.replaceCalls++
	m.replacedWeek = weekStart
	m.replacedAssignments = assignments
	return nil
}
