package db

import (
	"encoding/json"
	"fmt"

	"github.com/dnminh/restaff/pkg/core/model"
)

// Employee represents a database roster record
type Employee struct {
	ID             string
	DisplayName    string
	Role           string
	SecondaryRoles []string
}

// Shift represents a database shift slot record. Staffing holds the
// per-role headcount as JSON so templates with mixed role needs stay a
// single row.
type Shift struct {
	ID           string
	TemplateID   string
	ShiftDate    string
	StartTime    string
	EndTime      string
	Role         string
	Staffing     []byte
	MinHeadcount int
}

// Assignment represents one employee placed on one shift
type Assignment struct {
	ID      string
	ShiftID string
	UserID  string
	Role    string
}

// Availability represents one declared free window of an employee
type Availability struct {
	ID        string
	UserID    string
	ShiftDate string
	StartTime string
	EndTime   string
}

// Condition represents a scheduling condition record. Kind selects the
// variant and Payload carries the variant's fields as JSON; decoding
// back into a typed condition lives in conditions.go.
type Condition struct {
	ID      string
	Kind    string
	Enabled bool
	Payload []byte
}

// ToModel converts a roster record into the engine's employee type
func (e Employee) ToModel() model.Employee {
	secondary := make([]model.Role, len(e.SecondaryRoles))
	for i, r := range e.SecondaryRoles {
		secondary[i] = model.Role(r)
	}
	return model.Employee{
		ID:             e.ID,
		DisplayName:    e.DisplayName,
		Role:           model.Role(e.Role),
		SecondaryRoles: secondary,
	}
}

// ToModel converts a shift record and its assignment rows into the
// engine's slot type.
func (s Shift) ToModel(assignments []Assignment) (*model.ShiftSlot, error) {
	var staffing []model.RoleCount
	if len(s.Staffing) > 0 {
		if err := json.Unmarshal(s.Staffing, &staffing); err != nil {
			return nil, fmt.Errorf("failed to decode staffing for shift %s: %w", s.ID, err)
		}
	}

	slot := &model.ShiftSlot{
		ID:           s.ID,
		TemplateID:   s.TemplateID,
		Date:         s.ShiftDate,
		Start:        s.StartTime,
		End:          s.EndTime,
		Role:         model.Role(s.Role),
		Staffing:     staffing,
		MinHeadcount: s.MinHeadcount,
	}
	for _, a := range assignments {
		if a.ShiftID != s.ID {
			continue
		}
		slot.Assigned = append(slot.Assigned, model.AssignedEmployee{
			UserID: a.UserID,
			Role:   model.Role(a.Role),
		})
	}
	return slot, nil
}

// NewShift converts an engine slot back into a shift record plus its
// assignment rows. Assignment ids are left blank for the store to fill.
func NewShift(slot *model.ShiftSlot) (Shift, []Assignment, error) {
	var staffing []byte
	if len(slot.Staffing) > 0 {
		encoded, err := json.Marshal(slot.Staffing)
		if err != nil {
			return Shift{}, nil, fmt.Errorf("failed to encode staffing for shift %s: %w", slot.ID, err)
		}
		staffing = encoded
	}

	record := Shift{
		ID:           slot.ID,
		TemplateID:   slot.TemplateID,
		ShiftDate:    slot.Date,
		StartTime:    slot.Start,
		EndTime:      slot.End,
		Role:         string(slot.Role),
		Staffing:     staffing,
		MinHeadcount: slot.MinHeadcount,
	}

	assignments := make([]Assignment, 0, len(slot.Assigned))
	for _, a := range slot.Assigned {
		assignments = append(assignments, Assignment{
			ShiftID: slot.ID,
			UserID:  a.UserID,
			Role:    string(a.Role),
		})
	}
	return record, assignments, nil
}

// ToModel converts an availability record into the engine's interval type
func (a Availability) ToModel() model.AvailabilityInterval {
	return model.AvailabilityInterval{
		UserID: a.UserID,
		Date:   a.ShiftDate,
		Start:  a.StartTime,
		End:    a.EndTime,
	}
}
