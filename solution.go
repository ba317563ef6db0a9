package goqubo

// ConstraintState records whether a constraint's predicate held for a
// sample and the energy of its polynomial at that sample.
type ConstraintState struct {
	Satisfied bool
	Energy    float64
}

// DecodedSolution is a scored sample: the binary assignment, its total
// energy, the energies of the labelled sub-Hamiltonians and the state of
// every constraint.
type DecodedSolution struct {
	Sample       map[string]int
	Energy       float64
	SubHEnergies map[string]float64

	constraints map[string]ConstraintState
}

// Constraints returns the constraint states, optionally restricted to the
// broken ones.
func (s *DecodedSolution) Constraints(onlyBroken bool) map[string]ConstraintState {
	if !onlyBroken {
		result := make(map[string]ConstraintState, len(s.constraints))
		for label, state := range s.constraints {
			result[label] = state
		}
		return result
	}
	broken := make(map[string]ConstraintState)
	for label, state := range s.constraints {
		if !state.Satisfied {
			broken[label] = state
		}
	}
	return broken
}
