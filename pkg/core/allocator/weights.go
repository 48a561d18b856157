package allocator

// Weights controls the candidate scoring formula:
//
//	score = Forced·isForcedOrMandatory + Priority·priorityWeight + Proportional·proportionalFactor
//
// The defaults keep the three terms strictly ordered: a forced pairing
// always beats any priority, and any priority beats the fairness term,
// because proportionalFactor stays inside [0, 1).
type Weights struct {
	// Forced is applied when the pairing carries a force link or a
	// mandatory staff priority.
	Forced float64

	// Priority multiplies the pairing's priority weight (0-5).
	Priority float64

	// Proportional multiplies the availability-fairness factor, which
	// rewards employees with the lowest ratio of assigned minutes to
	// declared free minutes.
	Proportional float64
}

// DefaultWeights returns the standard scoring weights.
func DefaultWeights() Weights {
	return Weights{
		Forced:       1000,
		Priority:     100,
		Proportional: 1,
	}
}

// orDefault substitutes the defaults for a zero value.
func (w Weights) orDefault() Weights {
	if w == (Weights{}) {
		return DefaultWeights()
	}
	return w
}
