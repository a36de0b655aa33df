package duco

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boxSensorByKey(t *testing.T, key string) BoxSensor {
	for _, sensor := range BoxSensors {
		if sensor.Key == key {
			return sensor
		}
	}
	t.Fatalf("no box sensor with key '%s'", key)
	return BoxSensor{}
}

func TestBoxSensorValues(t *testing.T) {
	document := documentFixture()

	value, err := boxSensorByKey(t, "TempOda").Value(document)
	assert.NoError(t, err)
	assert.Equal(t, 10.8, value)

	value, err = boxSensorByKey(t, "PressSup").Value(document)
	assert.NoError(t, err)
	assert.InDelta(t, 8.9, value.(float64), 1e-9)

	// String-typed reading from the API.
	value, err = boxSensorByKey(t, "PressEha").Value(document)
	assert.NoError(t, err)
	assert.InDelta(t, 16.7, value.(float64), 1e-9)

	value, err = boxSensorByKey(t, "BypassPos").Value(document)
	assert.NoError(t, err)
	assert.Equal(t, 50, value)

	value, err = boxSensorByKey(t, "SpeedSup").Value(document)
	assert.NoError(t, err)
	assert.Equal(t, 688, value)

	value, err = boxSensorByKey(t, "RssiWifi").Value(document)
	assert.NoError(t, err)
	assert.Equal(t, -56, value)
}

func TestBoxSensorPresent(t *testing.T) {
	document := documentFixture()

	assert.True(t, boxSensorByKey(t, "TempOda").Present(document))
	assert.True(t, boxSensorByKey(t, "DiagStatus").Present(document))

	// A box without heat recovery simply lacks the section.
	info := infoFixture()
	delete(info, "HeatRecovery")
	trimmed := Document{SectionInfo: map[string]interface{}(info)}
	assert.False(t, boxSensorByKey(t, "BypassPos").Present(trimmed))
	assert.False(t, boxSensorByKey(t, "TimeFilterRemain").Present(trimmed))
	assert.True(t, boxSensorByKey(t, "TempOda").Present(trimmed))
}

func TestDiagStatusFirstItem(t *testing.T) {
	document := documentFixture()
	sensor := boxSensorByKey(t, "DiagStatus")

	value, err := sensor.Value(document)
	assert.NoError(t, err)
	assert.Equal(t, "Ok", value)

	// An empty subsystem list yields no value instead of an error.
	info := infoFixture()
	info["Diag"] = map[string]interface{}{"SubSystems": []interface{}{}}
	value, err = sensor.Value(Document{SectionInfo: map[string]interface{}(info)})
	assert.NoError(t, err)
	assert.Nil(t, value)
}

func TestBoxSensorKeysAreUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for _, sensor := range BoxSensors {
		_, duplicate := seen[sensor.Key]
		assert.False(t, duplicate, "duplicate box sensor key '%s'", sensor.Key)
		seen[sensor.Key] = struct{}{}
	}
}
