package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorities_Validate(t *testing.T) {
	testCases := []struct {
		description string
		authorities Authorities
		issues      int
	}{
		{
			description: "valid directory",
			authorities: Authorities{
				{ID: "1", Name: "Ravi", Purposes: []string{"Fire Safety"}},
				{ID: "2", Name: "Meena", Purposes: []string{"Delivery"}},
			},
		},
		{
			description: "duplicate id",
			authorities: Authorities{
				{ID: "1", Name: "Ravi"},
				{ID: "1", Name: "Meena"},
			},
			issues: 1,
		},
		{
			description: "missing id and name",
			authorities: Authorities{{}},
			issues:      2,
		},
		{
			description: "nil record",
			authorities: Authorities{nil},
			issues:      1,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Len(t, testCase.authorities.Validate(), testCase.issues)
		})
	}
}

func TestAuthority_Clone(t *testing.T) {
	src := &Authority{ID: "1", Name: "Ravi", Purposes: []string{"Fire Safety"}}
	clone := src.Clone()
	clone.Purposes[0] = "changed"
	assert.Equal(t, "Fire Safety", src.Purposes[0])
	assert.Nil(t, (*Authority)(nil).Clone())
}

func TestAuthorities_Lookup(t *testing.T) {
	items := Authorities{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, []string{"a", "b"}, items.IDs())
	assert.Equal(t, "b", items.Lookup("b").ID)
	assert.Nil(t, items.Lookup("c"))
}
