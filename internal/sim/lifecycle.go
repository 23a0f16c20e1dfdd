package sim

// MergeScan merges every pair of entities of the given kind whose centers
// are closer than threshold. The earlier-indexed entity survives and absorb
// is called with (survivor, absorbed) before the absorbed one is removed.
// After a removal the inner index is not advanced, so every remaining pair
// is compared exactly once. Returns the number of merges.
func MergeScan(s *Store, kind Kind, threshold float64, absorb func(keep, gone *Entity)) int {
	merged := 0
	for i := 0; i < s.Len(); i++ {
		a := s.At(i)
		if a.Kind != kind {
			continue
		}
		for j := i + 1; j < s.Len(); j++ {
			b := s.At(j)
			if b.Kind != kind || !Within(a.Pos, b.Pos, threshold) {
				continue
			}
			if absorb != nil {
				absorb(a, b)
			}
			s.RemoveAt(j, ReasonMerged)
			j--
			merged++
		}
	}
	return merged
}

// AbsorbMass is the default merge rule: the survivor takes the mass of the
// absorbed entity.
func AbsorbMass(keep, gone *Entity) {
	keep.Mass += gone.Mass
}

// Milestone converts a running total into discrete rewards. Progress is
// reduced by Every each time it is reached; the remainder carries forward.
type Milestone struct {
	Every    float64
	Progress float64
	Reached  int
}

// Credit adds amount to the running total and returns how many milestones
// were reached by it.
func (m *Milestone) Credit(amount float64) int {
	m.Progress += amount
	if m.Every <= 0 {
		return 0
	}
	n := 0
	for m.Progress >= m.Every {
		m.Progress -= m.Every
		m.Reached++
		n++
	}
	return n
}

// Reset zeroes progress and the reached count.
func (m *Milestone) Reset() {
	m.Progress = 0
	m.Reached = 0
}
