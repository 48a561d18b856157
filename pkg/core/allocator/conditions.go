package allocator

import "github.com/dnminh/restaff/pkg/core/model"

// ScheduleCondition is one structured scheduling constraint authored by a
// manager. The set of variants is closed: WorkloadLimit, ShiftStaffing,
// StaffPriority and StaffShiftLink. The original UI carried these as
// loosely-typed records guarded by runtime tag checks; here an invalid
// shape is unrepresentable and normalization is exhaustive by construction.
type ScheduleCondition interface {
	// ConditionID returns the record's unique id.
	ConditionID() string

	// IsEnabled reports whether the record participates in a run at all.
	// Disabled records are ignored entirely.
	IsEnabled() bool

	isCondition()
}

// LimitScope says whether a WorkloadLimit applies to everyone or to one
// employee. A user-scoped record fully overrides the global one for that
// employee; there is no field-level merge.
type LimitScope string

const (
	ScopeGlobal LimitScope = "global"
	ScopeUser   LimitScope = "user"
)

// WorkloadLimit caps how much one employee may be scheduled in a week.
// Nil fields mean "no bound on this axis".
type WorkloadLimit struct {
	ID      string
	Enabled bool
	Scope   LimitScope
	UserID  string // required when Scope is ScopeUser

	MinShiftsPerWeek *int
	MaxShiftsPerWeek *int
	MinHoursPerWeek  *float64
	MaxHoursPerWeek  *float64
}

func (c WorkloadLimit) ConditionID() string { return c.ID }
func (c WorkloadLimit) IsEnabled() bool     { return c.Enabled }
func (c WorkloadLimit) isCondition()        {}

// ShiftStaffing declares how many employees of a role a shift template
// needs. Multiple records may target the same template with different
// roles.
type ShiftStaffing struct {
	ID         string
	Enabled    bool
	TemplateID string
	Role       model.Role
	Count      int
	Mandatory  bool
}

func (c ShiftStaffing) ConditionID() string { return c.ID }
func (c ShiftStaffing) IsEnabled() bool     { return c.Enabled }
func (c ShiftStaffing) isCondition()        {}

// StaffPriority expresses how strongly an employee should be preferred
// for a shift template. Weight runs 0-5. Mandatory means the employee
// must be assigned if role, availability-override and ban rules allow
// it, even past workload maxima.
type StaffPriority struct {
	ID         string
	Enabled    bool
	TemplateID string
	UserID     string
	Weight     int
	Mandatory  bool
}

func (c StaffPriority) ConditionID() string { return c.ID }
func (c StaffPriority) IsEnabled() bool     { return c.Enabled }
func (c StaffPriority) isCondition()        {}

// LinkKind is the direction of a hard staff-shift pairing.
type LinkKind string

const (
	// LinkForce behaves like a mandatory priority with maximum weight.
	LinkForce LinkKind = "force"

	// LinkBan makes the pairing ineligible regardless of anything else.
	LinkBan LinkKind = "ban"
)

// StaffShiftLink hard-wires or forbids one (template, employee) pairing.
// A pair must not carry both kinds; that is a blocking validation error.
type StaffShiftLink struct {
	ID         string
	Enabled    bool
	TemplateID string
	UserID     string
	Link       LinkKind
}

func (c StaffShiftLink) ConditionID() string { return c.ID }
func (c StaffShiftLink) IsEnabled() bool     { return c.Enabled }
func (c StaffShiftLink) isCondition()        {}
