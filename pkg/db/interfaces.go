package db

import "context"

// RosterStore defines the interface for roster database operations
type RosterStore interface {
	GetEmployees(ctx context.Context) ([]Employee, error)
	InsertEmployees(ctx context.Context, employees []Employee) error
}

// ScheduleStore defines the interface for shift and assignment database
// operations. Weeks are addressed by their Monday date.
type ScheduleStore interface {
	GetWeekShifts(ctx context.Context, weekStart string) ([]Shift, error)
	GetWeekAssignments(ctx context.Context, weekStart string) ([]Assignment, error)
	InsertShifts(ctx context.Context, shifts []Shift) error
	ReplaceWeekAssignments(ctx context.Context, weekStart string, assignments []Assignment) error
}

// AvailabilityStore defines the interface for availability database operations
type AvailabilityStore interface {
	GetWeekAvailability(ctx context.Context, weekStart string) ([]Availability, error)
	InsertAvailability(ctx context.Context, records []Availability) error
}

// ConditionStore defines the interface for scheduling condition database
// operations
type ConditionStore interface {
	GetConditions(ctx context.Context) ([]Condition, error)
	InsertConditions(ctx context.Context, records []Condition) error
}

// Database defines the interface for all database operations; postgres.DB
// implements it.
type Database interface {
	RosterStore
	ScheduleStore
	AvailabilityStore
	ConditionStore
}
