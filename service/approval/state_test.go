package approval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/visitgate/service/approval"
)

func TestReset(t *testing.T) {
	state := approval.Reset([]string{"a", "b", "c", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, state.IDs())
	assert.EqualValues(t, map[string]approval.Status{
		"a": approval.StatusUnset,
		"b": approval.StatusUnset,
		"c": approval.StatusUnset,
	}, state.Snapshot())
	assert.Equal(t, approval.OutcomePending, state.Outcome())
	assert.False(t, state.Resolved())

	// a later reset never carries entries over, even for recurring ids
	_, _ = state.Decide("a", false)
	next := approval.Reset([]string{"a", "d"})
	assert.EqualValues(t, map[string]approval.Status{
		"a": approval.StatusUnset,
		"d": approval.StatusUnset,
	}, next.Snapshot())
	assert.False(t, next.Has("b"))
}

func TestState_Decide(t *testing.T) {
	type step struct {
		id       string
		approved bool
		expect   approval.Outcome
		err      error
	}
	testCases := []struct {
		description string
		ids         []string
		steps       []step
	}{
		{
			description: "single approval resolves regardless of others",
			ids:         []string{"a", "b", "c"},
			steps: []step{
				{id: "a", approved: false, expect: approval.OutcomePending},
				{id: "b", approved: true, expect: approval.OutcomeApproved},
			},
		},
		{
			description: "approval as first decision",
			ids:         []string{"a", "b"},
			steps:       []step{{id: "b", approved: true, expect: approval.OutcomeApproved}},
		},
		{
			description: "n-1 denials pending, nth denial denied",
			ids:         []string{"a", "b", "c"},
			steps: []step{
				{id: "a", approved: false, expect: approval.OutcomePending},
				{id: "b", approved: false, expect: approval.OutcomePending},
				{id: "c", approved: false, expect: approval.OutcomeDenied},
			},
		},
		{
			description: "single authority denial resolves",
			ids:         []string{"a"},
			steps:       []step{{id: "a", approved: false, expect: approval.OutcomeDenied}},
		},
		{
			description: "repeated denial by same authority stays pending",
			ids:         []string{"a", "b"},
			steps: []step{
				{id: "a", approved: false, expect: approval.OutcomePending},
				{id: "a", approved: false, expect: approval.OutcomePending},
				{id: "b", approved: false, expect: approval.OutcomeDenied},
			},
		},
		{
			description: "unknown authority is rejected",
			ids:         []string{"a"},
			steps: []step{
				{id: "x", approved: true, expect: approval.OutcomePending, err: approval.ErrUnknownAuthority},
				{id: "a", approved: false, expect: approval.OutcomeDenied},
			},
		},
		{
			description: "decisions after resolution are rejected",
			ids:         []string{"a", "b"},
			steps: []step{
				{id: "a", approved: true, expect: approval.OutcomeApproved},
				{id: "b", approved: false, expect: approval.OutcomeApproved, err: approval.ErrResolved},
			},
		},
		{
			description: "unknown authority after resolution stays pending",
			ids:         []string{"a"},
			steps: []step{
				{id: "a", approved: false, expect: approval.OutcomeDenied},
				{id: "x", approved: true, expect: approval.OutcomePending, err: approval.ErrUnknownAuthority},
			},
		},
		{
			description: "empty state",
			steps:       []step{{id: "a", approved: true, expect: approval.OutcomePending, err: approval.ErrUnknownAuthority}},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			state := approval.Reset(testCase.ids)
			for i, s := range testCase.steps {
				outcome, err := state.Decide(s.id, s.approved)
				if s.err != nil {
					assert.ErrorIs(t, err, s.err, "step %d", i)
				} else {
					assert.NoError(t, err, "step %d", i)
				}
				assert.Equal(t, s.expect, outcome, "step %d", i)
			}
		})
	}
}

func TestState_UnknownDoesNotMutate(t *testing.T) {
	state := approval.Reset([]string{"a"})
	before := state.Snapshot()
	_, err := state.Decide("ghost", false)
	assert.ErrorIs(t, err, approval.ErrUnknownAuthority)
	assert.EqualValues(t, before, state.Snapshot())
	assert.False(t, state.Has("ghost"))
}

func TestState_Counts(t *testing.T) {
	state := approval.Reset([]string{"a", "b", "c"})
	_, _ = state.Decide("a", false)
	approved, denied, unset := state.Counts()
	assert.Equal(t, []int{0, 1, 2}, []int{approved, denied, unset})
	status, ok := state.Status("a")
	assert.True(t, ok)
	assert.Equal(t, approval.StatusDenied, status)
	assert.Equal(t, "denied", status.String())
	assert.Equal(t, 3, state.Len())
}
