package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionStateLabel(t *testing.T) {
	assert.Equal(t, "AUTO", actionStateLabel("AUTO"))
	assert.Equal(t, "MAN1", actionStateLabel("MAN1"))

	// Numeric readbacks are coerced instead of dropped.
	assert.Equal(t, "2", actionStateLabel(2.0))
	assert.Equal(t, "3", actionStateLabel(3))

	assert.Equal(t, "", actionStateLabel(nil))
	assert.Equal(t, "", actionStateLabel(""))
}
