// Package matcher selects authorities whose purpose tags overlap a free-text
// visit purpose.
package matcher

import (
	"strings"

	"github.com/viant/visitgate/model"
	"golang.org/x/text/unicode/norm"
)

// FoldFunc maps text to its comparison form
type FoldFunc func(string) string

// Fold modes accepted by ModeFold
const (
	FoldLower   = "lower"
	FoldUnicode = "unicode"
)

// Matcher matches purpose queries against an authority directory.
// The zero value uses strings.ToLower folding.
type Matcher struct {
	fold FoldFunc
}

// Match returns authorities having at least one purpose tag that contains
// the query or is contained in it, after folding both sides. The result keeps
// directory order. An empty query matches every authority with at least one
// tag, since "" is a substring of any string.
func (m *Matcher) Match(query string, directory []*model.Authority) []*model.Authority {
	fold := m.foldFunc()
	q := fold(query)
	var ret []*model.Authority
	for _, candidate := range directory {
		if candidate == nil {
			continue
		}
		if m.overlaps(q, candidate.Purposes, fold) {
			ret = append(ret, candidate)
		}
	}
	return ret
}

// Overlaps reports whether query overlaps any of the supplied tags
func (m *Matcher) Overlaps(query string, tags []string) bool {
	fold := m.foldFunc()
	return m.overlaps(fold(query), tags, fold)
}

func (m *Matcher) overlaps(query string, tags []string, fold FoldFunc) bool {
	for _, tag := range tags {
		t := fold(tag)
		if strings.Contains(t, query) || strings.Contains(query, t) {
			return true
		}
	}
	return false
}

func (m *Matcher) foldFunc() FoldFunc {
	if m == nil || m.fold == nil {
		return strings.ToLower
	}
	return m.fold
}

// New creates a matcher
func New(options ...Option) *Matcher {
	ret := &Matcher{fold: strings.ToLower}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Match matches with default lower-case folding
func Match(query string, directory []*model.Authority) []*model.Authority {
	return (*Matcher)(nil).Match(query, directory)
}

// UnicodeFold applies NFKC compatibility normalization before lower-casing,
// so that full-width letters or ligatures compare equal to their plain form.
func UnicodeFold(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}
