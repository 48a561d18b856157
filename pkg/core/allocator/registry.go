package allocator

import (
	"fmt"
)

// pairKey identifies one (template, employee) pairing.
type pairKey struct {
	TemplateID string
	UserID     string
}

// Registry holds a condition list normalized into the four typed views
// the engine queries. Build one per run with NormalizeConditions.
type Registry struct {
	global     *WorkloadLimit
	byUser     map[string]*WorkloadLimit
	limits     []WorkloadLimit // enabled records in input order, for validation
	staffing   map[string][]ShiftStaffing
	priorities map[pairKey]StaffPriority
	links      map[pairKey]LinkKind

	// linkConflicts records pairs that carried both force and ban,
	// in the order the second kind was seen. Surfaced by Validate.
	linkConflicts []pairKey
}

// NormalizeConditions turns a heterogeneous condition list into a
// Registry. Disabled records are skipped entirely. A record whose shape
// is malformed for its variant is a hard error: silently dropping it
// would produce a misleading "clean" run.
func NormalizeConditions(conditions []ScheduleCondition) (*Registry, error) {
	reg := &Registry{
		byUser:     make(map[string]*WorkloadLimit),
		staffing:   make(map[string][]ShiftStaffing),
		priorities: make(map[pairKey]StaffPriority),
		links:      make(map[pairKey]LinkKind),
	}

	for i, cond := range conditions {
		if cond == nil {
			return nil, fmt.Errorf("condition %d is nil", i)
		}
		if !cond.IsEnabled() {
			continue
		}

		switch c := cond.(type) {
		case WorkloadLimit:
			if err := checkWorkloadShape(c); err != nil {
				return nil, err
			}
			reg.limits = append(reg.limits, c)
			limit := c
			if c.Scope == ScopeGlobal {
				reg.global = &limit
			} else {
				reg.byUser[c.UserID] = &limit
			}

		case ShiftStaffing:
			if c.TemplateID == "" || c.Role == "" {
				return nil, fmt.Errorf("staffing condition %q: template id and role are required", c.ID)
			}
			if c.Count < 1 {
				return nil, fmt.Errorf("staffing condition %q: count must be at least 1, got %d", c.ID, c.Count)
			}
			reg.staffing[c.TemplateID] = append(reg.staffing[c.TemplateID], c)

		case StaffPriority:
			if c.TemplateID == "" || c.UserID == "" {
				return nil, fmt.Errorf("priority condition %q: template id and user id are required", c.ID)
			}
			if c.Weight < 0 || c.Weight > 5 {
				return nil, fmt.Errorf("priority condition %q: weight must be 0-5, got %d", c.ID, c.Weight)
			}
			reg.priorities[pairKey{c.TemplateID, c.UserID}] = c

		case StaffShiftLink:
			if c.TemplateID == "" || c.UserID == "" {
				return nil, fmt.Errorf("link condition %q: template id and user id are required", c.ID)
			}
			if c.Link != LinkForce && c.Link != LinkBan {
				return nil, fmt.Errorf("link condition %q: link must be force or ban, got %q", c.ID, c.Link)
			}
			key := pairKey{c.TemplateID, c.UserID}
			if existing, ok := reg.links[key]; ok && existing != c.Link {
				reg.linkConflicts = append(reg.linkConflicts, key)
				continue
			}
			reg.links[key] = c.Link

		default:
			return nil, fmt.Errorf("condition %d: unknown variant %T", i, cond)
		}
	}

	return reg, nil
}

// checkWorkloadShape rejects malformed workload records. Min/max ordering
// is deliberately not checked here: that is a validation finding, not a
// shape problem.
func checkWorkloadShape(c WorkloadLimit) error {
	switch c.Scope {
	case ScopeGlobal:
		// no extra fields required
	case ScopeUser:
		if c.UserID == "" {
			return fmt.Errorf("workload condition %q: user scope requires a user id", c.ID)
		}
	default:
		return fmt.Errorf("workload condition %q: scope must be global or user, got %q", c.ID, c.Scope)
	}
	for _, v := range []*int{c.MinShiftsPerWeek, c.MaxShiftsPerWeek} {
		if v != nil && *v < 0 {
			return fmt.Errorf("workload condition %q: shift counts must not be negative", c.ID)
		}
	}
	for _, v := range []*float64{c.MinHoursPerWeek, c.MaxHoursPerWeek} {
		if v != nil && *v < 0 {
			return fmt.Errorf("workload condition %q: hour counts must not be negative", c.ID)
		}
	}
	return nil
}

// Validate checks the normalized set for internal contradictions and
// returns them as human-readable blocking errors. A non-empty result
// means the engine refuses to run.
func (r *Registry) Validate() []string {
	var errors []string

	for _, limit := range r.limits {
		subject := "all staff"
		if limit.Scope == ScopeUser {
			subject = "user " + limit.UserID
		}
		if limit.MinShiftsPerWeek != nil && limit.MaxShiftsPerWeek != nil &&
			*limit.MinShiftsPerWeek > *limit.MaxShiftsPerWeek {
			errors = append(errors, fmt.Sprintf(
				"workload limit %q (%s): min shifts per week %d exceeds max %d",
				limit.ID, subject, *limit.MinShiftsPerWeek, *limit.MaxShiftsPerWeek))
		}
		if limit.MinHoursPerWeek != nil && limit.MaxHoursPerWeek != nil &&
			*limit.MinHoursPerWeek > *limit.MaxHoursPerWeek {
			errors = append(errors, fmt.Sprintf(
				"workload limit %q (%s): min hours per week %g exceeds max %g",
				limit.ID, subject, *limit.MinHoursPerWeek, *limit.MaxHoursPerWeek))
		}
	}

	for _, key := range r.linkConflicts {
		errors = append(errors, fmt.Sprintf(
			"conflicting link: template %s and user %s carry both force and ban",
			key.TemplateID, key.UserID))
	}

	return errors
}

// EffectiveLimit returns the workload limit that applies to the employee:
// the user-scoped record if one exists, else the global one, else nil.
func (r *Registry) EffectiveLimit(userID string) *WorkloadLimit {
	if limit, ok := r.byUser[userID]; ok {
		return limit
	}
	return r.global
}

// StaffingFor returns the staffing requirements targeting a template, in
// the order they appeared in the condition list.
func (r *Registry) StaffingFor(templateID string) []ShiftStaffing {
	return r.staffing[templateID]
}

// PriorityFor returns the staff priority for a pairing, if one is set.
func (r *Registry) PriorityFor(templateID, userID string) (StaffPriority, bool) {
	p, ok := r.priorities[pairKey{templateID, userID}]
	return p, ok
}

// LinkFor returns the hard link for a pairing, if one is set.
func (r *Registry) LinkFor(templateID, userID string) (LinkKind, bool) {
	link, ok := r.links[pairKey{templateID, userID}]
	return link, ok
}

// IsBanned reports whether the pairing carries a ban link.
func (r *Registry) IsBanned(templateID, userID string) bool {
	link, ok := r.LinkFor(templateID, userID)
	return ok && link == LinkBan
}

// pairingPreference resolves the scoring inputs for one pairing: whether
// it is forced or mandatory, and the priority weight to apply. A force
// link behaves like a mandatory priority with maximum weight.
func (r *Registry) pairingPreference(templateID, userID string) (forced bool, weight int) {
	if p, ok := r.PriorityFor(templateID, userID); ok {
		weight = p.Weight
		forced = p.Mandatory
	}
	if link, ok := r.LinkFor(templateID, userID); ok && link == LinkForce {
		forced = true
		if weight < 5 {
			weight = 5
		}
	}
	return forced, weight
}
