// Package dialer hands authority phone numbers to a device-level call
// initiator. Numbers are passed through unvalidated.
package dialer

import (
	"context"
	"net/url"
	"strings"
	"sync"
)

// Dialer initiates a call
type Dialer interface {
	Dial(ctx context.Context, phone string) error
}

// Func adapts a function to Dialer
type Func func(ctx context.Context, phone string) error

func (f Func) Dial(ctx context.Context, phone string) error { return f(ctx, phone) }

// TelURI returns RFC 3966 style tel URI for phone; spaces are dropped and
// the remainder is escaped as an opaque URI part.
func TelURI(phone string) string {
	compact := strings.Join(strings.Fields(phone), "")
	return (&url.URL{Scheme: "tel", Opaque: url.PathEscape(compact)}).String()
}

// URIOpener dials by handing a tel URI to an opener (for example a platform
// intent or browser bridge)
type URIOpener struct {
	Open func(ctx context.Context, uri string) error
}

func (o *URIOpener) Dial(ctx context.Context, phone string) error {
	return o.Open(ctx, TelURI(phone))
}

// Recorder keeps every dialed number
type Recorder struct {
	mu     sync.Mutex
	dialed []string
}

func (r *Recorder) Dial(_ context.Context, phone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dialed = append(r.dialed, phone)
	return nil
}

// Dialed returns dialed numbers in call order
func (r *Recorder) Dialed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.dialed...)
}

var (
	_ Dialer = Func(nil)
	_ Dialer = (*URIOpener)(nil)
	_ Dialer = (*Recorder)(nil)
)
