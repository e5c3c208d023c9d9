// Package view builds the headless view model rendered for a widget: one card
// per matched authority, or the no-match fallback card.
package view

import (
	"context"

	"github.com/viant/visitgate/model"
	"github.com/viant/visitgate/service/approval"
)

// Highlight is the card visual status
type Highlight string

const (
	HighlightNeutral  Highlight = "neutral"
	HighlightApproved Highlight = "approved"
	HighlightDenied   Highlight = "denied"
)

// Action identifies a user affordance
type Action string

const (
	ActionCall           Action = "call"
	ActionDeny           Action = "deny"
	ActionApprove        Action = "approve"
	ActionDenyEntry      Action = "denyEntry"
	ActionManualApproval Action = "manualApproval"
)

// Button is an action affordance
type Button struct {
	Action Action `json:"action"`
	Label  string `json:"label"`
	// Target is the authority id for card actions, empty for fallback actions
	Target string `json:"target,omitempty"`
}

// Card renders a single matched authority
type Card struct {
	Authority *model.Authority `json:"authority"`
	Badges    []string         `json:"badges"`
	Highlight Highlight        `json:"highlight"`
	Buttons   []*Button        `json:"buttons"`
}

// Fallback is shown when no authority matches the purpose
type Fallback struct {
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Buttons []*Button `json:"buttons"`
}

// View is the full widget view
type View struct {
	Purpose  string    `json:"purpose"`
	Title    string    `json:"title,omitempty"`
	Cards    []*Card   `json:"cards,omitempty"`
	Fallback *Fallback `json:"fallback,omitempty"`
	Outcome  string    `json:"outcome"`
}

// Renderer draws a view
type Renderer interface {
	Render(ctx context.Context, v *View) error
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(ctx context.Context, v *View) error

func (f RendererFunc) Render(ctx context.Context, v *View) error { return f(ctx, v) }

// Build creates the view for the matched authorities and their decisions.
// state may be nil before the first purpose is set.
func Build(purpose string, matched []*model.Authority, state *approval.State) *View {
	ret := &View{Purpose: purpose, Outcome: approval.OutcomePending.String()}
	if state != nil {
		ret.Outcome = state.Outcome().String()
	}
	if len(matched) == 0 {
		ret.Fallback = &Fallback{
			Title:   "No Authority Found",
			Message: "No relevant authority found for purpose: \"" + purpose + "\"",
			Buttons: []*Button{
				{Action: ActionDenyEntry, Label: "Deny Entry"},
				{Action: ActionManualApproval, Label: "Manual Approval"},
			},
		}
		return ret
	}
	ret.Title = "Relevant Authorities"
	for _, authority := range matched {
		card := &Card{
			Authority: authority,
			Badges:    append([]string(nil), authority.Purposes...),
			Highlight: HighlightNeutral,
			Buttons: []*Button{
				{Action: ActionCall, Label: "Call " + authority.Name, Target: authority.ID},
				{Action: ActionDeny, Label: "Deny Entry", Target: authority.ID},
				{Action: ActionApprove, Label: "Approve Entry", Target: authority.ID},
			},
		}
		if state != nil {
			card.Highlight = highlightOf(state, authority.ID)
		}
		ret.Cards = append(ret.Cards, card)
	}
	return ret
}

func highlightOf(state *approval.State, id string) Highlight {
	status, _ := state.Status(id)
	switch status {
	case approval.StatusApproved:
		return HighlightApproved
	case approval.StatusDenied:
		return HighlightDenied
	}
	return HighlightNeutral
}
