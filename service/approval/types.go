package approval

import (
	"time"

	"github.com/viant/visitgate/model"
)

// Status is a single authority decision
type Status int

const (
	// StatusUnset means no decision yet
	StatusUnset Status = iota
	StatusApproved
	StatusDenied
)

func (s Status) String() string {
	switch s {
	case StatusApproved:
		return "approved"
	case StatusDenied:
		return "denied"
	}
	return "unset"
}

// Outcome is the aggregate visit decision
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeApproved
	OutcomeDenied
)

// Terminal reports whether outcome ends the flow
func (o Outcome) Terminal() bool { return o != OutcomePending }

func (o Outcome) String() string {
	switch o {
	case OutcomeApproved:
		return "approved"
	case OutcomeDenied:
		return "denied"
	}
	return "pending"
}

// Report paths
const (
	PathAuthority = "authority" // decided through the matched authority list
	PathFallback  = "fallback"  // decided through the no-match fallback
)

// Report is the outcome handed to the calling flow
type Report struct {
	SessionID string           `json:"sessionId,omitempty"`
	Purpose   string           `json:"purpose"`
	Approved  bool             `json:"approved"`
	Authority *model.Authority `json:"authority,omitempty"` // nil for fallback and all-denied outcomes
	Path      string           `json:"path"`
	DecidedAt time.Time        `json:"decidedAt"`
}

// Outcome returns report outcome
func (r *Report) Outcome() Outcome {
	if r.Approved {
		return OutcomeApproved
	}
	return OutcomeDenied
}

// Decision records a single authority decision
type Decision struct {
	SessionID   string    `json:"sessionId,omitempty"`
	AuthorityID string    `json:"authorityId"`
	Approved    bool      `json:"approved"`
	Outcome     string    `json:"outcome"`
	DecidedAt   time.Time `json:"decidedAt"`
}

// Event envelope published on the reporting queue
type Event struct {
	Topic   string            // see topic constants below
	Data    interface{}       // *Report | *Decision | *StateReset
	Headers map[string]string `json:"headers,omitempty"`
}

// StateReset describes a state reset caused by a purpose change
type StateReset struct {
	SessionID    string    `json:"sessionId"`
	Purpose      string    `json:"purpose"`
	AuthorityIDs []string  `json:"authorityIds"`
	ResetAt      time.Time `json:"resetAt"`
}

// Event topics
const (
	TopicStateReset       = "state.reset"
	TopicDecisionRecorded = "decision.recorded"
	TopicOutcomeReported  = "outcome.reported"
)
