package allocator

import "github.com/dnminh/restaff/pkg/core/model"

// FindConflict returns the first shift in otherShifts that the employee
// already holds on the candidate's date with a time interval intersecting
// the candidate's [start, end). Returns nil if there is no conflict.
//
// This is the shared contract for double-booking checks: the engine uses
// it to reject candidates during allocation, and the manual-assignment
// collaborator consumes the same rule.
func FindConflict(userID string, candidate *model.ShiftSlot, otherShifts []*model.ShiftSlot) *model.ShiftSlot {
	candStart, err := model.MinuteOfDay(candidate.Start)
	if err != nil {
		return nil
	}
	candEnd, err := model.MinuteOfDay(candidate.End)
	if err != nil {
		return nil
	}

	for _, other := range otherShifts {
		if other.ID == candidate.ID || other.Date != candidate.Date {
			continue
		}
		if !other.HasAssignee(userID) {
			continue
		}
		otherStart, err := model.MinuteOfDay(other.Start)
		if err != nil {
			continue
		}
		otherEnd, err := model.MinuteOfDay(other.End)
		if err != nil {
			continue
		}
		if candStart < otherEnd && otherStart < candEnd {
			return other
		}
	}

	return nil
}
