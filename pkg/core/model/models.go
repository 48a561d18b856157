package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Role identifies a staff role (e.g. "Phục vụ", "Bếp", "Thu ngân").
type Role string

const (
	// RoleAny marks a shift or requirement that accepts any non-owner role.
	RoleAny Role = "any"

	// RoleOwner is excluded from generic "any" requirements; owners assign
	// themselves through explicit force links if they want to work a shift.
	RoleOwner Role = "owner"
)

// Employee represents one member of the staff roster.
// Immutable for the duration of a scheduling run.
type Employee struct {
	ID             string
	DisplayName    string
	Role           Role
	SecondaryRoles []Role
}

// HasRole returns true if the role is the employee's primary or one of
// their secondary roles.
func (e Employee) HasRole(role Role) bool {
	if e.Role == role {
		return true
	}
	for _, r := range e.SecondaryRoles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleCount is a per-role staffing need on a shift slot.
type RoleCount struct {
	Role  Role
	Count int
}

// AssignedEmployee is one employee currently on a shift slot, with the
// role they effectively fill there (which may be a secondary role).
type AssignedEmployee struct {
	UserID string
	Role   Role
}

// ShiftSlot is one dated instantiation of a shift template.
// Created by expanding templates into a week; mutated only when an
// allocation result is applied.
type ShiftSlot struct {
	ID           string
	TemplateID   string
	Date         string // "2006-01-02"
	Start        string // "15:04"
	End          string // "15:04", exclusive
	Role         Role
	Staffing     []RoleCount
	MinHeadcount int
	Assigned     []AssignedEmployee
}

// Minutes returns the slot's duration in minutes.
func (s *ShiftSlot) Minutes() int {
	start, err1 := MinuteOfDay(s.Start)
	end, err2 := MinuteOfDay(s.End)
	if err1 != nil || err2 != nil || end < start {
		return 0
	}
	return end - start
}

// HasAssignee returns true if the employee is already on this slot.
func (s *ShiftSlot) HasAssignee(userID string) bool {
	for _, a := range s.Assigned {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the slot. Apply works on clones so the
// caller's baseline schedule is never written.
func (s *ShiftSlot) Clone() *ShiftSlot {
	out := *s
	out.Staffing = append([]RoleCount(nil), s.Staffing...)
	out.Assigned = append([]AssignedEmployee(nil), s.Assigned...)
	return &out
}

// AvailabilityInterval is one contiguous free-time window declared by an
// employee. A user may have zero, one, or many per date.
type AvailabilityInterval struct {
	UserID string
	Date   string // "2006-01-02"
	Start  string // "15:04"
	End    string // "15:04", exclusive
}

// Assignment is one proposed (shift, employee) pairing with the role the
// employee fills on that shift.
type Assignment struct {
	ShiftID string
	UserID  string
	Role    Role
}

// UnfilledSlot reports a shift that still has open requirement units
// after a run.
type UnfilledSlot struct {
	ShiftID   string
	Remaining int
}

// ScheduleRunResult is the pure output of one allocation run. It is a
// proposal: nothing is persisted until the caller applies it.
type ScheduleRunResult struct {
	Assignments []Assignment
	Unfilled    []UnfilledSlot
	Warnings    []string
}

// MinuteOfDay parses a "15:04" clock string into minutes since midnight.
func MinuteOfDay(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q: expected HH:MM", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	if hours < 0 || hours > 24 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid clock value %q: out of range", clock)
	}
	return hours*60 + minutes, nil
}
