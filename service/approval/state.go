package approval

import "fmt"

// State holds the decisions for the authorities matched by one purpose query.
// Its key set is fixed at Reset; a new purpose requires a new State. State is
// owned by a single widget and is not safe for concurrent use.
type State struct {
	ids      []string
	statuses map[string]Status
	outcome  Outcome
}

// Reset returns a fresh state with every id Unset. Duplicate ids collapse to
// a single entry. Nothing is carried over from any previous state.
func Reset(ids []string) *State {
	ret := &State{statuses: make(map[string]Status, len(ids))}
	for _, id := range ids {
		if _, ok := ret.statuses[id]; ok {
			continue
		}
		ret.ids = append(ret.ids, id)
		ret.statuses[id] = StatusUnset
	}
	return ret
}

// Decide records approved or denied for id and derives the aggregate outcome.
//
// An approval resolves the state as approved regardless of other entries.
// A denial resolves it as denied only when every entry, including this one,
// is denied; otherwise the outcome stays pending.
//
// Deciding an id outside the state returns OutcomePending with
// ErrUnknownAuthority, without any change. Deciding after a terminal outcome returns that outcome with
// ErrResolved, also without any change.
func (s *State) Decide(id string, approved bool) (Outcome, error) {
	if _, ok := s.statuses[id]; !ok {
		return OutcomePending, fmt.Errorf("%w: %q", ErrUnknownAuthority, id)
	}
	if s.outcome.Terminal() {
		return s.outcome, ErrResolved
	}
	if approved {
		s.statuses[id] = StatusApproved
		s.outcome = OutcomeApproved
		return s.outcome, nil
	}
	s.statuses[id] = StatusDenied
	if s.allDenied() {
		s.outcome = OutcomeDenied
	}
	return s.outcome, nil
}

func (s *State) allDenied() bool {
	for _, status := range s.statuses {
		if status != StatusDenied {
			return false
		}
	}
	return true
}

// Status returns decision for id and whether id is tracked
func (s *State) Status(id string) (Status, bool) {
	status, ok := s.statuses[id]
	return status, ok
}

// Has reports whether id is tracked
func (s *State) Has(id string) bool {
	_, ok := s.statuses[id]
	return ok
}

// IDs returns tracked ids in reset order
func (s *State) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Len returns number of tracked ids
func (s *State) Len() int { return len(s.ids) }

// Snapshot returns a copy of the decision map
func (s *State) Snapshot() map[string]Status {
	ret := make(map[string]Status, len(s.statuses))
	for k, v := range s.statuses {
		ret[k] = v
	}
	return ret
}

// Outcome returns the current aggregate outcome
func (s *State) Outcome() Outcome { return s.outcome }

// Resolved reports whether a terminal outcome has been reached
func (s *State) Resolved() bool { return s.outcome.Terminal() }

// Counts returns number of approved, denied and unset entries
func (s *State) Counts() (approved, denied, unset int) {
	for _, status := range s.statuses {
		switch status {
		case StatusApproved:
			approved++
		case StatusDenied:
			denied++
		default:
			unset++
		}
	}
	return approved, denied, unset
}
