package duco

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemperature(t *testing.T) {
	value, err := Temperature(108)
	assert.NoError(t, err)
	assert.Equal(t, 10.8, value)

	value, err = Temperature(float64(-56))
	assert.NoError(t, err)
	assert.Equal(t, -5.6, value)

	// The API sporadically reports numbers as strings.
	value, err = Temperature("167")
	assert.NoError(t, err)
	assert.Equal(t, 16.7, value)

	value, err = Temperature(nil)
	assert.NoError(t, err)
	assert.Nil(t, value)

	_, err = Temperature("not-a-number")
	assert.Error(t, err)
}

func TestPressure(t *testing.T) {
	value, err := Pressure(89)
	assert.NoError(t, err)
	assert.InDelta(t, 8.9, value.(float64), 1e-9)

	value, err = Pressure("167")
	assert.NoError(t, err)
	assert.InDelta(t, 16.7, value.(float64), 1e-9)

	value, err = Pressure(nil)
	assert.NoError(t, err)
	assert.Nil(t, value)

	_, err = Pressure([]interface{}{1})
	assert.Error(t, err)
}

func TestBypassPosition(t *testing.T) {
	value, err := BypassPosition(49.6)
	assert.NoError(t, err)
	assert.Equal(t, 50, value)

	value, err = BypassPosition(49.4)
	assert.NoError(t, err)
	assert.Equal(t, 49, value)

	// Ties round away from zero.
	value, err = BypassPosition(49.5)
	assert.NoError(t, err)
	assert.Equal(t, 50, value)

	value, err = BypassPosition("50.7")
	assert.NoError(t, err)
	assert.Equal(t, 51, value)

	value, err = BypassPosition(0)
	assert.NoError(t, err)
	assert.Equal(t, 0, value)

	value, err = BypassPosition(nil)
	assert.NoError(t, err)
	assert.Nil(t, value)

	_, err = BypassPosition("open")
	assert.Error(t, err)
}

func TestIdentity(t *testing.T) {
	value, err := Identity(688)
	assert.NoError(t, err)
	assert.Equal(t, 688, value)

	value, err = Identity("AUTO")
	assert.NoError(t, err)
	assert.Equal(t, "AUTO", value)

	value, err = Identity(nil)
	assert.NoError(t, err)
	assert.Nil(t, value)
}
