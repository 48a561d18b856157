package db

import (
	"encoding/json"
	"fmt"

	"github.com/dnminh/restaff/pkg/core/allocator"
	"github.com/dnminh/restaff/pkg/core/model"
)

// Condition kinds as stored in the kind column.
const (
	KindWorkloadLimit  = "workload_limit"
	KindShiftStaffing  = "shift_staffing"
	KindStaffPriority  = "staff_priority"
	KindStaffShiftLink = "staff_shift_link"
)

type workloadLimitPayload struct {
	Scope            string   `json:"scope"`
	UserID           string   `json:"user_id,omitempty"`
	MinShiftsPerWeek *int     `json:"min_shifts_per_week,omitempty"`
	MaxShiftsPerWeek *int     `json:"max_shifts_per_week,omitempty"`
	MinHoursPerWeek  *float64 `json:"min_hours_per_week,omitempty"`
	MaxHoursPerWeek  *float64 `json:"max_hours_per_week,omitempty"`
}

type shiftStaffingPayload struct {
	TemplateID string `json:"template_id"`
	Role       string `json:"role"`
	Count      int    `json:"count"`
	Mandatory  bool   `json:"mandatory,omitempty"`
}

type staffPriorityPayload struct {
	TemplateID string `json:"template_id"`
	UserID     string `json:"user_id"`
	Weight     int    `json:"weight"`
	Mandatory  bool   `json:"mandatory,omitempty"`
}

type staffShiftLinkPayload struct {
	TemplateID string `json:"template_id"`
	UserID     string `json:"user_id"`
	Link       string `json:"link"`
}

// EncodeCondition converts a typed scheduling condition into its
// database record.
func EncodeCondition(condition allocator.ScheduleCondition) (Condition, error) {
	record := Condition{
		ID:      condition.ConditionID(),
		Enabled: condition.IsEnabled(),
	}

	var payload any
	switch c := condition.(type) {
	case allocator.WorkloadLimit:
		record.Kind = KindWorkloadLimit
		payload = workloadLimitPayload{
			Scope:            string(c.Scope),
			UserID:           c.UserID,
			MinShiftsPerWeek: c.MinShiftsPerWeek,
			MaxShiftsPerWeek: c.MaxShiftsPerWeek,
			MinHoursPerWeek:  c.MinHoursPerWeek,
			MaxHoursPerWeek:  c.MaxHoursPerWeek,
		}
	case allocator.ShiftStaffing:
		record.Kind = KindShiftStaffing
		payload = shiftStaffingPayload{
			TemplateID: c.TemplateID,
			Role:       string(c.Role),
			Count:      c.Count,
			Mandatory:  c.Mandatory,
		}
	case allocator.StaffPriority:
		record.Kind = KindStaffPriority
		payload = staffPriorityPayload{
			TemplateID: c.TemplateID,
			UserID:     c.UserID,
			Weight:     c.Weight,
			Mandatory:  c.Mandatory,
		}
	case allocator.StaffShiftLink:
		record.Kind = KindStaffShiftLink
		payload = staffShiftLinkPayload{
			TemplateID: c.TemplateID,
			UserID:     c.UserID,
			Link:       string(c.Link),
		}
	default:
		return Condition{}, fmt.Errorf("unknown condition type %T", condition)
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return Condition{}, fmt.Errorf("failed to encode condition %s: %w", record.ID, err)
	}
	record.Payload = encoded
	return record, nil
}

// DecodeCondition converts a database record back into its typed
// scheduling condition.
func DecodeCondition(record Condition) (allocator.ScheduleCondition, error) {
	switch record.Kind {
	case KindWorkloadLimit:
		var p workloadLimitPayload
		if err := json.Unmarshal(record.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode condition %s: %w", record.ID, err)
		}
		return allocator.WorkloadLimit{
			ID:               record.ID,
			Enabled:          record.Enabled,
			Scope:            allocator.LimitScope(p.Scope),
			UserID:           p.UserID,
			MinShiftsPerWeek: p.MinShiftsPerWeek,
			MaxShiftsPerWeek: p.MaxShiftsPerWeek,
			MinHoursPerWeek:  p.MinHoursPerWeek,
			MaxHoursPerWeek:  p.MaxHoursPerWeek,
		}, nil
	case KindShiftStaffing:
		var p shiftStaffingPayload
		if err := json.Unmarshal(record.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode condition %s: %w", record.ID, err)
		}
		return allocator.ShiftStaffing{
			ID:         record.ID,
			Enabled:    record.Enabled,
			TemplateID: p.TemplateID,
			Role:       model.Role(p.Role),
			Count:      p.Count,
			Mandatory:  p.Mandatory,
		}, nil
	case KindStaffPriority:
		var p staffPriorityPayload
		if err := json.Unmarshal(record.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode condition %s: %w", record.ID, err)
		}
		return allocator.StaffPriority{
			ID:         record.ID,
			Enabled:    record.Enabled,
			TemplateID: p.TemplateID,
			UserID:     p.UserID,
			Weight:     p.Weight,
			Mandatory:  p.Mandatory,
		}, nil
	case KindStaffShiftLink:
		var p staffShiftLinkPayload
		if err := json.Unmarshal(record.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode condition %s: %w", record.ID, err)
		}
		return allocator.StaffShiftLink{
			ID:         record.ID,
			Enabled:    record.Enabled,
			TemplateID: p.TemplateID,
			UserID:     p.UserID,
			Link:       allocator.LinkKind(p.Link),
		}, nil
	default:
		return nil, fmt.Errorf("unknown condition kind %q for record %s", record.Kind, record.ID)
	}
}

// DecodeConditions converts a batch of records, failing on the first bad one
func DecodeConditions(records []Condition) ([]allocator.ScheduleCondition, error) {
	conditions := make([]allocator.ScheduleCondition, 0, len(records))
	for _, record := range records {
		condition, err := DecodeCondition(record)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, condition)
	}
	return conditions, nil
}
