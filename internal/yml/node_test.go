package yml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNode_Interface(t *testing.T) {
	node, err := Parse([]byte(`
Authorities:
  - id: 1
    name: Ravi
    active: true
    weight: 1.5
    purposes: [Fire Safety, Audit]
    note: ~
`))
	if !assert.NoError(t, err) {
		return
	}
	root := node.Root()
	authorities := root.Lookup("authorities")
	if !assert.NotNil(t, authorities) {
		return
	}
	assert.Nil(t, root.Lookup("missing"))
	assert.EqualValues(t, []interface{}{
		map[string]interface{}{
			"id":       1,
			"name":     "Ravi",
			"active":   true,
			"weight":   1.5,
			"purposes": []interface{}{"Fire Safety", "Audit"},
			"note":     nil,
		},
	}, authorities.Interface())

	var count int
	assert.NoError(t, authorities.Items(func(index int, item *Node) error {
		count++
		assert.Equal(t, "Ravi", item.Lookup("name").Value)
		return nil
	}))
	assert.Equal(t, 1, count)
}

func TestParse_JSON(t *testing.T) {
	node, err := Parse([]byte(`[{"id":"a","purposes":["x"]}]`))
	assert.NoError(t, err)
	assert.EqualValues(t, []interface{}{map[string]interface{}{"id": "a", "purposes": []interface{}{"x"}}}, node.Interface())
}
