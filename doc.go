// Package visitgate provides the visitor entry approval widget core.
//
// A Service owns the static authority directory and the collaborators
// (reporter, dialer, renderer). Each Widget created from it tracks one visit:
//
//	srv, _ := visitgate.New(visitgate.WithDirectory(dir),
//		visitgate.WithOutcomeFunc(func(approved bool, a *model.Authority) { ... }))
//	w := srv.NewWidget()
//	matched, _ := w.SetPurpose(ctx, "fire safety inspection")
//	_ = w.Call(ctx, matched[0].ID)
//	outcome, _ := w.Decide(ctx, matched[0].ID, true)
//
// Any single approval resolves the visit as approved. The visit is denied only
// once every matched authority has denied it. When no authority matches, the
// DenyEntry and ManualApproval fallback actions report the outcome directly.
package visitgate
