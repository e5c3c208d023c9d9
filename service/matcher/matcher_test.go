package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/visitgate/model"
)

func testDirectory() []*model.Authority {
	return []*model.Authority{
		{ID: "1", Name: "Ravi Kumar", Purposes: []string{"Fire Safety", "Evacuation Drill"}},
		{ID: "2", Name: "Meena Iyer", Purposes: []string{"Delivery", "Courier"}},
		{ID: "3", Name: "Arjun Rao", Purposes: []string{"Safety Audit"}},
		{ID: "4", Name: "Priya Nair", Purposes: []string{"Maintenance", "Electrical"}},
		{ID: "5", Name: "No Tags"},
	}
}

func ids(authorities []*model.Authority) []string {
	ret := make([]string, 0, len(authorities))
	for _, a := range authorities {
		ret = append(ret, a.ID)
	}
	return ret
}

func TestMatch(t *testing.T) {
	testCases := []struct {
		description string
		query       string
		expect      []string
	}{
		{description: "query contained in tag", query: "fire", expect: []string{"1"}},
		{description: "tag contained in query", query: "FIRE SAFETY INSPECTION", expect: []string{"1"}},
		{description: "shared word in two tags", query: "safety", expect: []string{"1", "3"}},
		{description: "mixed case", query: "CoUrIeR", expect: []string{"2"}},
		{description: "substring not word", query: "tric", expect: []string{"4"}},
		{description: "empty query matches every tagged authority", query: "", expect: []string{"1", "2", "3", "4"}},
		{description: "no match", query: "xyzzy-nonexistent", expect: []string{}},
		{description: "tag inside longer sentence", query: "parcel delivery for floor 3", expect: []string{"2"}},
		{description: "not tokenized", query: "fire audit", expect: []string{}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual := Match(testCase.query, testDirectory())
			assert.EqualValues(t, testCase.expect, ids(actual))
		})
	}
}

func TestMatch_SubsetOrder(t *testing.T) {
	directory := testDirectory()
	for _, query := range []string{"", "a", "safety", "e", "Drill"} {
		actual := New().Match(query, directory)
		seen := map[string]bool{}
		last := -1
		for _, item := range actual {
			assert.False(t, seen[item.ID], "duplicate %v", item.ID)
			seen[item.ID] = true
			index := -1
			for i, candidate := range directory {
				if candidate == item {
					index = i
				}
			}
			assert.Greater(t, index, last, "order for %q", query)
			last = index
		}
	}
}

func TestMatch_EmptyDirectory(t *testing.T) {
	assert.Empty(t, Match("fire", nil))
	assert.Empty(t, Match("", []*model.Authority{nil}))
}

func TestMatcher_UnicodeFold(t *testing.T) {
	directory := []*model.Authority{{ID: "1", Purposes: []string{"Fire Safety"}}}
	// full-width latin letters
	query := "ＦＩＲＥ"
	assert.Empty(t, New().Match(query, directory))
	assert.Len(t, New(WithUnicodeFold()).Match(query, directory), 1)
	assert.True(t, New(WithUnicodeFold()).Overlaps(query, directory[0].Purposes))
}

func TestModeFold(t *testing.T) {
	for _, mode := range []string{"", "lower", "Unicode"} {
		opt, err := ModeFold(mode)
		assert.NoError(t, err)
		assert.NotNil(t, opt)
	}
	_, err := ModeFold("soundex")
	assert.Error(t, err)
}
