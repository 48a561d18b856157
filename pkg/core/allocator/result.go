package allocator

import (
	"fmt"

	"github.com/dnminh/restaff/pkg/core/model"
)

// Strategy selects how a proposal is combined with the baseline schedule
// when committed.
type Strategy string

const (
	// StrategyMerge rewrites only the shifts the proposal touches;
	// everything else is left exactly as it was. For a touched shift the
	// proposal is authoritative: existing assignments are overwritten,
	// not appended.
	StrategyMerge Strategy = "merge"

	// StrategyReplace clears every shift in scope first, then repopulates
	// from the proposal alone. Shifts the proposal does not mention end
	// up empty.
	StrategyReplace Strategy = "replace"
)

// ParseStrategy converts a configuration string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyMerge:
		return StrategyMerge, nil
	case StrategyReplace:
		return StrategyReplace, nil
	default:
		return "", fmt.Errorf("unknown apply strategy %q: expected merge or replace", s)
	}
}

// ApplyResult merges or replaces the proposal into the baseline schedule
// and returns the combined week as a new slice of copied slots. The
// baseline is never written; persisting the returned slots is the
// caller's concern.
func ApplyResult(baseline []*model.ShiftSlot, result *model.ScheduleRunResult, strategy Strategy) ([]*model.ShiftSlot, error) {
	if result == nil {
		return nil, fmt.Errorf("result is required")
	}
	if strategy != StrategyMerge && strategy != StrategyReplace {
		return nil, fmt.Errorf("unknown apply strategy %q", strategy)
	}

	proposed := make(map[string][]model.AssignedEmployee)
	for _, a := range result.Assignments {
		proposed[a.ShiftID] = append(proposed[a.ShiftID], model.AssignedEmployee{
			UserID: a.UserID,
			Role:   a.Role,
		})
	}

	applied := make([]*model.ShiftSlot, len(baseline))
	for i, slot := range baseline {
		out := slot.Clone()
		assignments, touched := proposed[slot.ID]
		switch {
		case strategy == StrategyReplace:
			out.Assigned = assignments
		case touched:
			out.Assigned = assignments
		}
		applied[i] = out
	}

	return applied, nil
}
