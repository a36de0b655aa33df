package duco

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeGet(t *testing.T) {
	data := map[string]interface{}{
		"Ventilation": map[string]interface{}{
			"Sensor": map[string]interface{}{
				"TempOda": map[string]interface{}{"Val": 108},
			},
		},
		"Scalar": 42,
	}

	assert.Equal(t, map[string]interface{}{"Val": 108}, SafeGet(data, "Ventilation", "Sensor", "TempOda"))
	assert.Equal(t, 108, SafeGet(data, "Ventilation", "Sensor", "TempOda", "Val"))
	assert.Nil(t, SafeGet(data, "Ventilation", "Missing"))
	assert.Nil(t, SafeGet(data, "Missing", "Sensor"))
	// An intermediate scalar ends the walk without panicking.
	assert.Nil(t, SafeGet(data, "Scalar", "Deeper"))
	// The empty path returns the input unchanged.
	assert.Equal(t, data, SafeGet(data))
	assert.Nil(t, SafeGet(nil, "Anything"))
}

func TestSafeGetOnDocument(t *testing.T) {
	document := documentFixture()

	assert.Equal(t, 108, SafeGet(document, SectionInfo, "Ventilation", "Sensor", "TempOda", "Val"))
	assert.Nil(t, SafeGet(document, SectionInfo, "Ventilation", "Nope"))
}

func TestExtractVal(t *testing.T) {
	assert.Equal(t, 108, ExtractVal(map[string]interface{}{"Val": 108}))
	assert.Equal(t, "AUTO", ExtractVal(map[string]interface{}{"Val": "AUTO"}))
	// Falsy stored values survive the unwrap.
	assert.Equal(t, 0, ExtractVal(map[string]interface{}{"Val": 0}))
	assert.Equal(t, false, ExtractVal(map[string]interface{}{"Val": false}))
	assert.Nil(t, ExtractVal(map[string]interface{}{"Val": nil}))
	// Non-envelope values pass through unchanged.
	assert.Equal(t, 42, ExtractVal(42))
	assert.Equal(t, "raw", ExtractVal("raw"))
	assert.Nil(t, ExtractVal(nil))
	assert.Equal(t, map[string]interface{}{"NoVal": 1}, ExtractVal(map[string]interface{}{"NoVal": 1}))
}

func TestParseLeaf(t *testing.T) {
	scalar, ok := ParseLeaf(map[string]interface{}{"Val": 108})
	assert.True(t, ok)
	assert.Equal(t, 108, scalar.Value)
	assert.False(t, scalar.Tunable())
	assert.False(t, scalar.Fixed())
	assert.False(t, scalar.Boolean())

	tunable, ok := ParseLeaf(map[string]interface{}{"Val": 30, "Min": 10, "Max": 80, "Inc": 5})
	assert.True(t, ok)
	assert.True(t, tunable.Tunable())
	assert.Equal(t, &Bounds{Min: 10, Max: 80, Inc: 5}, tunable.Bounds)
	assert.False(t, tunable.Fixed())
	assert.False(t, tunable.Boolean())

	fixed, ok := ParseLeaf(map[string]interface{}{"Val": 1, "Min": 1, "Max": 1, "Inc": 1})
	assert.True(t, ok)
	assert.True(t, fixed.Fixed())

	boolean, ok := ParseLeaf(map[string]interface{}{"Val": 1, "Min": 0, "Max": 1, "Inc": 1})
	assert.True(t, ok)
	assert.True(t, boolean.Boolean())
	assert.False(t, boolean.Fixed())

	_, ok = ParseLeaf(42)
	assert.False(t, ok)
	_, ok = ParseLeaf(map[string]interface{}{"NoVal": 1})
	assert.False(t, ok)
	// A partial range does not make the leaf tunable.
	partial, ok := ParseLeaf(map[string]interface{}{"Val": 30, "Min": 10, "Inc": 5})
	assert.True(t, ok)
	assert.False(t, partial.Tunable())
}

func TestDocumentAccessors(t *testing.T) {
	document := documentFixture()

	assert.NotNil(t, document.Info())
	assert.NotNil(t, document.Config())
	assert.Len(t, document.Nodes(), 2)
	assert.Len(t, document.ConfigNodes(), 2)
	assert.Len(t, document.Actions(), 5)
	assert.Len(t, document.ActionNodes(), 2)

	node := document.Node(3)
	assert.NotNil(t, node)
	assert.Equal(t, "UCCO2", ExtractVal(SafeGet(node, "General", "Type")))
	assert.Nil(t, document.Node(99))

	empty := Document{}
	assert.Nil(t, empty.Info())
	assert.Nil(t, empty.Nodes())
	assert.Nil(t, empty.Node(1))
}
