package suppress

import "slices"

// entry is one active block disable. An empty ruleID disables every rule
// except those in exempt.
type entry struct {
	directive int
	ruleID    string
	exempt    []string
}

func (e entry) matches(ruleID string) bool {
	if e.ruleID == "" {
		return !slices.Contains(e.exempt, ruleID)
	}
	return e.ruleID == ruleID
}

// blockState is the set of active block disables. Transitions return a new
// value and never modify the receiver.
type blockState struct {
	entries []entry
}

func (s blockState) empty() bool {
	return len(s.entries) == 0
}

// disable adds one entry per rule, or a single all-rules entry.
func (s blockState) disable(directive int, ruleIDs []string) blockState {
	next := make([]entry, len(s.entries), len(s.entries)+max(1, len(ruleIDs)))
	copy(next, s.entries)
	if len(ruleIDs) == 0 {
		next = append(next, entry{directive: directive})
	}
	for _, id := range ruleIDs {
		next = append(next, entry{directive: directive, ruleID: id})
	}
	return blockState{entries: next}
}

// enableAll clears every entry regardless of granularity.
func (s blockState) enableAll() blockState {
	return blockState{}
}

// enable removes entries for ruleID and exempts it from all-rules entries.
func (s blockState) enable(ruleID string) blockState {
	next := make([]entry, 0, len(s.entries))
	for _, e := range s.entries {
		switch {
		case e.ruleID == ruleID:
			continue
		case e.ruleID == "" && !slices.Contains(e.exempt, ruleID):
			e.exempt = append(slices.Clip(e.exempt), ruleID)
		}
		next = append(next, e)
	}
	return blockState{entries: next}
}

// query returns the directives whose entries cover ruleID, in the order the
// entries were added.
func (s blockState) query(ruleID string) []int {
	var out []int
	for _, e := range s.entries {
		if e.matches(ruleID) {
			out = append(out, e.directive)
		}
	}
	return out
}
