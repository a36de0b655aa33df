package duco

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeActions(t *testing.T) {
	actions := DecodeActions(actionsFixture())

	assert.Len(t, actions, 5)
	assert.Equal(t, "ResetFilterTimeRemain", actions[0].Action)
	assert.Equal(t, "None", actions[0].ValType)
	assert.Empty(t, actions[0].Enum)

	assert.Empty(t, DecodeActions(Section{}))
	assert.Empty(t, DecodeActions(Section{"Actions": "garbage"}))
}

func TestDecodeNodeActions(t *testing.T) {
	nodeActions := DecodeNodeActions(actionNodesFixture())

	assert.Len(t, nodeActions, 2)
	assert.Equal(t, 1, nodeActions[0].Node)
	assert.Len(t, nodeActions[0].Actions, 1)
	assert.Equal(t, "SetVentilationState", nodeActions[0].Actions[0].Action)
	assert.Equal(t, []string{"AUTO", "MAN1", "MAN2", "MAN3"}, nodeActions[0].Actions[0].Enum)

	assert.Empty(t, DecodeNodeActions(Section{}))
}

func TestBoxButtonsExcludeReboot(t *testing.T) {
	for _, button := range BoxButtons {
		assert.NotEqual(t, "RebootBox", button.Action)
	}
	assert.Len(t, BoxButtons, 4)
}
