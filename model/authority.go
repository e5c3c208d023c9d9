package model

import (
	"fmt"
	"strings"
)

// Authority represents an on-site person or role that can approve entry for
// one or more visit purposes.
type Authority struct {
	// ID uniquely identifies the authority within a directory
	ID string `json:"id" yaml:"id"`

	Name        string `json:"name" yaml:"name"`
	Designation string `json:"designation,omitempty" yaml:"designation,omitempty"`
	Department  string `json:"department,omitempty" yaml:"department,omitempty"`

	// Phone is handed to the dialer as-is, no format validation is applied
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Purposes lists the visit purpose tags this authority handles
	Purposes []string `json:"purposes" yaml:"purposes"`
}

// Clone returns a deep copy so callers can never mutate directory records.
func (a *Authority) Clone() *Authority {
	if a == nil {
		return nil
	}
	ret := *a
	ret.Purposes = append([]string(nil), a.Purposes...)
	return &ret
}

// Validate performs a structural validation of a single authority record.
func (a *Authority) Validate() []error {
	var issues []error
	if strings.TrimSpace(a.ID) == "" {
		issues = append(issues, fmt.Errorf("authority id is empty"))
	}
	if strings.TrimSpace(a.Name) == "" {
		issues = append(issues, fmt.Errorf("authority %q: name is empty", a.ID))
	}
	return issues
}

// Authorities is an ordered authority collection
type Authorities []*Authority

// IDs returns authority ids in collection order
func (a Authorities) IDs() []string {
	ret := make([]string, 0, len(a))
	for _, item := range a {
		ret = append(ret, item.ID)
	}
	return ret
}

// Clone returns a deep copy of every record
func (a Authorities) Clone() Authorities {
	if a == nil {
		return nil
	}
	ret := make(Authorities, 0, len(a))
	for _, item := range a {
		ret = append(ret, item.Clone())
	}
	return ret
}

// Lookup returns authority with the supplied id or nil
func (a Authorities) Lookup(id string) *Authority {
	for _, item := range a {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// Validate checks every record and id uniqueness. The returned slice is empty
// when the collection is sound.
func (a Authorities) Validate() []error {
	var issues []error
	seen := make(map[string]bool, len(a))
	for i, item := range a {
		if item == nil {
			issues = append(issues, fmt.Errorf("authority #%d is nil", i))
			continue
		}
		issues = append(issues, item.Validate()...)
		if item.ID == "" {
			continue
		}
		if seen[item.ID] {
			issues = append(issues, fmt.Errorf("duplicate authority id %q", item.ID))
		}
		seen[item.ID] = true
	}
	return issues
}
