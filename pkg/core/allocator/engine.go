package allocator

import (
	"fmt"
	"sort"

	"github.com/dnminh/restaff/pkg/core/model"
)

// RunInput is the immutable snapshot one allocation run works from.
// The engine never mutates the caller's shifts; it clones them internally
// and reports proposals through the outcome only.
type RunInput struct {
	// Shifts are the week's slots, including any existing assignments.
	Shifts []*model.ShiftSlot

	// Roster is the staff available for assignment.
	Roster []model.Employee

	// Availability is the week's free-time index.
	Availability *AvailabilityIndex

	// Constraints is the normalized condition set.
	Constraints *Registry

	// Weights tunes candidate scoring. Zero value means DefaultWeights.
	Weights Weights
}

// RunOutcome is what a run produces. When ValidationErrors is non-empty
// the constraints contradicted each other, no allocation was attempted
// and Result is nil.
type RunOutcome struct {
	Result           *model.ScheduleRunResult
	ValidationErrors []string
}

// requirementUnit is one open headcount position within a shift slot.
type requirementUnit struct {
	slot     *model.ShiftSlot
	role     model.Role
	startMin int
	endMin   int
}

// candidate is one scored, eligible employee for a requirement unit.
type candidate struct {
	employee model.Employee
	score    float64
	warnings []string
}

// Run proposes an assignment of employees to the week's open shift
// positions. It is a pure, synchronous, single-pass computation: two runs
// with identical inputs produce identical outcomes.
//
// A structural impossibility (no eligible candidate for a position) never
// aborts the run; it degrades to an unfilled entry and a warning.
func Run(input RunInput) (*RunOutcome, error) {
	if input.Availability == nil {
		return nil, fmt.Errorf("availability index is required")
	}
	if input.Constraints == nil {
		return nil, fmt.Errorf("constraint registry is required")
	}

	if errs := input.Constraints.Validate(); len(errs) > 0 {
		return &RunOutcome{ValidationErrors: errs}, nil
	}

	weights := input.Weights.orDefault()

	// Work on clones so the caller's baseline is never written.
	shifts := make([]*model.ShiftSlot, len(input.Shifts))
	for i, slot := range input.Shifts {
		shifts[i] = slot.Clone()
	}
	sort.Slice(shifts, func(i, j int) bool {
		a, b := shifts[i], shifts[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.TemplateID != b.TemplateID {
			return a.TemplateID < b.TemplateID
		}
		return a.ID < b.ID
	})

	roster := make([]model.Employee, len(input.Roster))
	copy(roster, input.Roster)
	sort.Slice(roster, func(i, j int) bool { return roster[i].ID < roster[j].ID })

	shiftsByDate := make(map[string][]*model.ShiftSlot)
	for _, slot := range shifts {
		shiftsByDate[slot.Date] = append(shiftsByDate[slot.Date], slot)
	}

	state := newRunState(shifts)

	units, err := expandRequirementUnits(shifts, input.Constraints)
	if err != nil {
		return nil, err
	}

	result := &model.ScheduleRunResult{
		Assignments: []model.Assignment{},
		Unfilled:    []model.UnfilledSlot{},
		Warnings:    []string{},
	}
	openUnits := make(map[string]int)

	// The proposal is authoritative for every shift it touches, so the
	// first assignment to a shift carries that shift's retained baseline
	// assignees into the proposal ahead of the new pairing.
	baseline := make(map[string][]model.AssignedEmployee, len(shifts))
	for _, slot := range shifts {
		baseline[slot.ID] = append([]model.AssignedEmployee(nil), slot.Assigned...)
	}
	touched := make(map[string]bool)

	for _, unit := range units {
		best := pickCandidate(unit, roster, input, state, shiftsByDate, weights)
		if best == nil {
			openUnits[unit.slot.ID]++
			continue
		}

		role := unit.role
		if role == model.RoleAny {
			role = best.employee.Role
		}

		if !touched[unit.slot.ID] {
			touched[unit.slot.ID] = true
			for _, kept := range baseline[unit.slot.ID] {
				result.Assignments = append(result.Assignments, model.Assignment{
					ShiftID: unit.slot.ID,
					UserID:  kept.UserID,
					Role:    kept.Role,
				})
			}
		}

		unit.slot.Assigned = append(unit.slot.Assigned, model.AssignedEmployee{
			UserID: best.employee.ID,
			Role:   role,
		})
		result.Assignments = append(result.Assignments, model.Assignment{
			ShiftID: unit.slot.ID,
			UserID:  best.employee.ID,
			Role:    role,
		})
		result.Warnings = append(result.Warnings, best.warnings...)

		minutes := unit.endMin - unit.startMin
		state.weekShifts[best.employee.ID]++
		state.weekMinutes[best.employee.ID] += minutes
		state.runMinutes[best.employee.ID] += minutes
	}

	// Report shifts left with open positions, in processing order.
	for _, slot := range shifts {
		remaining := openUnits[slot.ID]
		if remaining == 0 {
			continue
		}
		result.Unfilled = append(result.Unfilled, model.UnfilledSlot{
			ShiftID:   slot.ID,
			Remaining: remaining,
		})
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"shift %s on %s: %d position(s) left unfilled, no eligible candidates",
			slot.ID, slot.Date, remaining))
	}

	return &RunOutcome{Result: result}, nil
}

// runState tracks per-employee totals as the run assigns positions.
// Week totals start from the baseline assignments already on the shifts;
// run minutes count only what this run adds (the fairness signal).
type runState struct {
	weekShifts  map[string]int
	weekMinutes map[string]int
	runMinutes  map[string]int
}

func newRunState(shifts []*model.ShiftSlot) *runState {
	state := &runState{
		weekShifts:  make(map[string]int),
		weekMinutes: make(map[string]int),
		runMinutes:  make(map[string]int),
	}
	for _, slot := range shifts {
		minutes := slot.Minutes()
		for _, assigned := range slot.Assigned {
			state.weekShifts[assigned.UserID]++
			state.weekMinutes[assigned.UserID] += minutes
		}
	}
	return state
}

// expandRequirementUnits turns each shift slot into its open positions.
// Staffing conditions targeting the slot's template take precedence; then
// the slot's own per-role staffing list; with neither, one generic unit
// per unfilled headcount up to the slot's flat minimum.
func expandRequirementUnits(shifts []*model.ShiftSlot, constraints *Registry) ([]requirementUnit, error) {
	var units []requirementUnit

	for _, slot := range shifts {
		startMin, err := model.MinuteOfDay(slot.Start)
		if err != nil {
			return nil, fmt.Errorf("shift %s: %w", slot.ID, err)
		}
		endMin, err := model.MinuteOfDay(slot.End)
		if err != nil {
			return nil, fmt.Errorf("shift %s: %w", slot.ID, err)
		}
		if endMin <= startMin {
			return nil, fmt.Errorf("shift %s: end %s not after start %s", slot.ID, slot.End, slot.Start)
		}

		needs := make([]model.RoleCount, 0, len(slot.Staffing))
		if staffing := constraints.StaffingFor(slot.TemplateID); len(staffing) > 0 {
			for _, entry := range staffing {
				needs = append(needs, model.RoleCount{Role: entry.Role, Count: entry.Count})
			}
		} else if len(slot.Staffing) > 0 {
			needs = append(needs, slot.Staffing...)
		}

		if len(needs) > 0 {
			for _, need := range needs {
				filled := 0
				for _, assigned := range slot.Assigned {
					if assigned.Role == need.Role {
						filled++
					}
				}
				for i := filled; i < need.Count; i++ {
					units = append(units, requirementUnit{slot, need.Role, startMin, endMin})
				}
			}
			continue
		}

		for i := len(slot.Assigned); i < slot.MinHeadcount; i++ {
			units = append(units, requirementUnit{slot, slot.Role, startMin, endMin})
		}
	}

	// Earliest-in-week first, so early scarcity is resolved before later,
	// more flexible slots.
	sort.SliceStable(units, func(i, j int) bool {
		a, b := units[i], units[j]
		if a.slot.Date != b.slot.Date {
			return a.slot.Date < b.slot.Date
		}
		if a.startMin != b.startMin {
			return a.startMin < b.startMin
		}
		if a.slot.TemplateID != b.slot.TemplateID {
			return a.slot.TemplateID < b.slot.TemplateID
		}
		return a.role < b.role
	})

	return units, nil
}

// pickCandidate builds the eligible pool for one requirement unit and
// returns the highest-scoring candidate, or nil if the pool is empty.
// The roster is iterated in ascending employee id, and a later candidate
// must strictly beat the incumbent, so ties resolve to the lowest id.
func pickCandidate(
	unit requirementUnit,
	roster []model.Employee,
	input RunInput,
	state *runState,
	shiftsByDate map[string][]*model.ShiftSlot,
	weights Weights,
) *candidate {
	slot := unit.slot
	minutes := unit.endMin - unit.startMin

	var best *candidate

	for _, emp := range roster {
		if unit.role == model.RoleAny {
			if emp.Role == model.RoleOwner {
				continue
			}
		} else if !emp.HasRole(unit.role) {
			continue
		}

		if slot.HasAssignee(emp.ID) {
			continue
		}
		if input.Constraints.IsBanned(slot.TemplateID, emp.ID) {
			continue
		}

		// Time conflicts are never overridden: the same body cannot be
		// in two places.
		if FindConflict(emp.ID, slot, shiftsByDate[slot.Date]) != nil {
			continue
		}

		forced, priorityWeight := input.Constraints.pairingPreference(slot.TemplateID, emp.ID)

		var warnings []string
		if !input.Availability.IsAvailable(emp.ID, slot.Date, unit.startMin, unit.endMin) {
			if !forced {
				continue
			}
			warnings = append(warnings, fmt.Sprintf(
				"%s assigned despite unavailability: shift %s on %s",
				emp.DisplayName, slot.ID, slot.Date))
		}

		if limit := input.Constraints.EffectiveLimit(emp.ID); limit != nil {
			exceeded := false
			if limit.MaxShiftsPerWeek != nil && state.weekShifts[emp.ID]+1 > *limit.MaxShiftsPerWeek {
				exceeded = true
			}
			if limit.MaxHoursPerWeek != nil &&
				float64(state.weekMinutes[emp.ID]+minutes) > *limit.MaxHoursPerWeek*60 {
				exceeded = true
			}
			if exceeded {
				if !forced {
					continue
				}
				warnings = append(warnings, fmt.Sprintf(
					"%s exceeded workload limit due to mandatory assignment: shift %s on %s",
					emp.DisplayName, slot.ID, slot.Date))
			}
		}

		score := weights.Priority * float64(priorityWeight)
		if forced {
			score += weights.Forced
		}
		score += weights.Proportional * proportionalFactor(
			input.Availability.TotalFreeMinutes(emp.ID),
			state.runMinutes[emp.ID],
			minutes,
		)

		if best == nil || score > best.score {
			best = &candidate{employee: emp, score: score, warnings: warnings}
		}
	}

	return best
}

// proportionalFactor rewards employees whose projected ratio of assigned
// minutes to declared free minutes is lowest, spreading shifts toward
// staff with more free time relative to what they have already received.
// Always inside [0, 1), so priority and forced terms dominate it.
func proportionalFactor(freeMinutes, assignedMinutes, unitMinutes int) float64 {
	if freeMinutes <= 0 {
		return 0
	}
	return float64(freeMinutes) / float64(freeMinutes+assignedMinutes+unitMinutes)
}
