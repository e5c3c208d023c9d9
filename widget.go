package visitgate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/viant/visitgate/internal/clock"
	"github.com/viant/visitgate/internal/idgen"
	"github.com/viant/visitgate/model"
	"github.com/viant/visitgate/service/approval"
	"github.com/viant/visitgate/service/view"
	"github.com/viant/visitgate/tracing"
)

// Widget tracks a single visit: the current purpose, the authorities it
// matches and their decisions. Operations are expected to run one at a time
// from user action handlers; the mutex only guards against accidental
// concurrent use.
type Widget struct {
	service   *Service
	mux       sync.Mutex
	sessionID string
	purpose   string
	hasQuery  bool
	matched   model.Authorities
	state     *approval.State
	closed    bool
}

// SetPurpose matches purpose against the directory and replaces the approval
// state with a fresh one for the matched authorities. It must be called on
// every purpose change. The returned error reports collaborator failures
// (observer, renderer); the new state is in place regardless.
func (w *Widget) SetPurpose(ctx context.Context, purpose string) (model.Authorities, error) {
	w.mux.Lock()
	defer w.mux.Unlock()
	if w.closed {
		return nil, ErrClosed
	}
	ctx, span := tracing.StartSpan(ctx, "widget.setPurpose", tracing.KindInternal)
	matched := w.service.Match(ctx, purpose)
	w.purpose = purpose
	w.hasQuery = true
	w.matched = matched
	w.state = approval.Reset(matched.IDs())
	w.sessionID = idgen.New()
	span.Attr("session", w.sessionID).Attr("matched", len(matched))
	w.service.metrics.PurposeQuery(len(matched))
	w.service.logger.Debug("purpose matched",
		"session", w.sessionID, "purpose", purpose, "authorities", matched.IDs())

	var errs []error
	if observer := w.service.observer; observer != nil {
		if err := observer.OnReset(ctx, &approval.StateReset{
			SessionID:    w.sessionID,
			Purpose:      purpose,
			AuthorityIDs: matched.IDs(),
			ResetAt:      clock.Now(),
		}); err != nil {
			errs = append(errs, fmt.Errorf("failed to publish reset: %w", err))
		}
	}
	errs = append(errs, w.render(ctx))
	err := errors.Join(errs...)
	span.End(err)
	return matched.Clone(), err
}

// Decide records a decision of authority id and reports a terminal outcome
// exactly once. A decision for an authority outside the matched set is a
// usage error: it is logged and rejected with ErrUnknownAuthority without
// changing the state.
func (w *Widget) Decide(ctx context.Context, id string, approved bool) (outcome approval.Outcome, err error) {
	w.mux.Lock()
	defer w.mux.Unlock()
	if w.closed {
		return approval.OutcomePending, ErrClosed
	}
	ctx, span := tracing.StartSpan(ctx, "widget.decide", tracing.KindInternal)
	span.Attr("session", w.sessionID).Attr("authority", id).Attr("approved", approved)
	defer func() { span.End(err) }()

	if w.state == nil {
		w.usageError("no_purpose", id)
		return approval.OutcomePending, fmt.Errorf("%w: %q (no purpose set)", ErrUnknownAuthority, id)
	}
	outcome, err = w.state.Decide(id, approved)
	switch {
	case errors.Is(err, approval.ErrUnknownAuthority):
		w.usageError("unknown_authority", id)
		return outcome, err
	case errors.Is(err, approval.ErrResolved):
		w.usageError("already_resolved", id)
		return outcome, err
	}
	w.service.metrics.Decision(approved)
	w.service.logger.Info("authority decision",
		"session", w.sessionID, "authority", id, "approved", approved, "outcome", outcome.String())

	var errs []error
	if observer := w.service.observer; observer != nil {
		if oErr := observer.OnDecision(ctx, &approval.Decision{
			SessionID:   w.sessionID,
			AuthorityID: id,
			Approved:    approved,
			Outcome:     outcome.String(),
			DecidedAt:   clock.Now(),
		}); oErr != nil {
			errs = append(errs, fmt.Errorf("failed to publish decision: %w", oErr))
		}
	}
	errs = append(errs, w.render(ctx))
	if outcome.Terminal() {
		var authority *model.Authority
		if outcome == approval.OutcomeApproved {
			authority = w.matched.Lookup(id)
		}
		errs = append(errs, w.report(ctx, outcome == approval.OutcomeApproved, authority, approval.PathAuthority))
	}
	return outcome, errors.Join(errs...)
}

// DenyEntry is the no-match fallback denial. It reports a denied outcome
// without an authority on every call.
func (w *Widget) DenyEntry(ctx context.Context) error {
	return w.fallback(ctx, false)
}

// ManualApproval is the no-match fallback approval. It reports an approved
// outcome without an authority on every call.
func (w *Widget) ManualApproval(ctx context.Context) error {
	return w.fallback(ctx, true)
}

func (w *Widget) fallback(ctx context.Context, approved bool) (err error) {
	w.mux.Lock()
	defer w.mux.Unlock()
	if w.closed {
		return ErrClosed
	}
	if !w.hasQuery || len(w.matched) > 0 {
		w.usageError("fallback_unavailable", "")
		return ErrFallbackUnavailable
	}
	ctx, span := tracing.StartSpan(ctx, "widget.fallback", tracing.KindInternal)
	span.Attr("session", w.sessionID).Attr("approved", approved)
	defer func() { span.End(err) }()
	return w.report(ctx, approved, nil, approval.PathFallback)
}

// Call dials the phone number of a matched authority
func (w *Widget) Call(ctx context.Context, id string) error {
	w.mux.Lock()
	defer w.mux.Unlock()
	if w.closed {
		return ErrClosed
	}
	authority := w.matched.Lookup(id)
	if authority == nil {
		w.usageError("unknown_authority", id)
		return fmt.Errorf("%w: %q", ErrUnknownAuthority, id)
	}
	if w.service.dialer == nil {
		return ErrNoDialer
	}
	err := w.service.dialer.Dial(ctx, authority.Phone)
	w.service.metrics.Dial(err)
	if err != nil {
		w.service.logger.Error("dial failed", "session", w.sessionID, "authority", id, "error", err)
		return fmt.Errorf("failed to call %s: %w", authority.Name, err)
	}
	return nil
}

func (w *Widget) report(ctx context.Context, approved bool, authority *model.Authority, path string) error {
	w.service.metrics.Outcome(approved, path)
	w.service.logger.Info("outcome reported",
		"session", w.sessionID, "purpose", w.purpose, "approved", approved, "path", path)
	if w.service.reporter == nil {
		return nil
	}
	if err := w.service.reporter.Report(ctx, &approval.Report{
		SessionID: w.sessionID,
		Purpose:   w.purpose,
		Approved:  approved,
		Authority: authority,
		Path:      path,
		DecidedAt: clock.Now(),
	}); err != nil {
		return fmt.Errorf("failed to report outcome: %w", err)
	}
	return nil
}

func (w *Widget) render(ctx context.Context) error {
	if w.service.renderer == nil {
		return nil
	}
	if err := w.service.renderer.Render(ctx, view.Build(w.purpose, w.matched, w.state)); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	return nil
}

// usageError records a rejected operation; usage errors never panic
func (w *Widget) usageError(reason, id string) {
	w.service.metrics.UsageError(reason)
	w.service.logger.Warn("widget usage error",
		"reason", reason, "session", w.sessionID, "authority", id, "purpose", w.purpose)
}

// View returns the current view model
func (w *Widget) View() *view.View {
	w.mux.Lock()
	defer w.mux.Unlock()
	return view.Build(w.purpose, w.matched, w.state)
}

// Purpose returns the current purpose
func (w *Widget) Purpose() string {
	w.mux.Lock()
	defer w.mux.Unlock()
	return w.purpose
}

// SessionID returns the id assigned by the latest SetPurpose
func (w *Widget) SessionID() string {
	w.mux.Lock()
	defer w.mux.Unlock()
	return w.sessionID
}

// Matched returns authorities matched by the current purpose
func (w *Widget) Matched() model.Authorities {
	w.mux.Lock()
	defer w.mux.Unlock()
	return w.matched.Clone()
}

// Statuses returns a copy of the per-authority decisions, nil before any purpose
func (w *Widget) Statuses() map[string]approval.Status {
	w.mux.Lock()
	defer w.mux.Unlock()
	if w.state == nil {
		return nil
	}
	return w.state.Snapshot()
}

// Outcome returns the aggregate outcome of the current state
func (w *Widget) Outcome() approval.Outcome {
	w.mux.Lock()
	defer w.mux.Unlock()
	if w.state == nil {
		return approval.OutcomePending
	}
	return w.state.Outcome()
}

// Close discards the widget state; later operations return ErrClosed
func (w *Widget) Close() {
	w.mux.Lock()
	defer w.mux.Unlock()
	w.closed = true
	w.state = nil
	w.matched = nil
}
