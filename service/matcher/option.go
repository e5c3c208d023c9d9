package matcher

import (
	"fmt"
	"strings"
)

// Option configures Matcher
type Option func(m *Matcher)

// WithFold sets custom fold function
func WithFold(fn FoldFunc) Option {
	return func(m *Matcher) {
		if fn != nil {
			m.fold = fn
		}
	}
}

// WithUnicodeFold enables NFKC normalization before lower-casing
func WithUnicodeFold() Option {
	return WithFold(UnicodeFold)
}

// ModeFold returns fold option for a configured mode name
func ModeFold(mode string) (Option, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", FoldLower:
		return WithFold(strings.ToLower), nil
	case FoldUnicode:
		return WithUnicodeFold(), nil
	}
	return nil, fmt.Errorf("unsupported matcher fold: %q", mode)
}
