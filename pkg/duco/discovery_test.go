package duco

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sensorKeys(sensors []NodeSensor) []string {
	keys := make([]string, len(sensors))
	for i, sensor := range sensors {
		keys[i] = sensor.Key
	}
	return keys
}

func TestDiscoverNodeSensors(t *testing.T) {
	node := nodesFixture()[0]
	sensors := DiscoverNodeSensors(node)

	keys := sensorKeys(sensors)
	assert.Contains(t, keys, "Sensor_Temp")
	assert.Contains(t, keys, "Sensor_Rh")
	assert.Contains(t, keys, "Sensor_IaqRh")
	assert.Contains(t, keys, "Ventilation_State")
	assert.Contains(t, keys, "Ventilation_FlowLvlTgt")
	assert.Contains(t, keys, "NetworkDuco_CommErrorCtr")
	assert.Contains(t, keys, "General_UpTime")

	// Administrative General leaves share the leaf shape but are not
	// readings.
	assert.NotContains(t, keys, "General_Type")
	assert.NotContains(t, keys, "General_SwVersion")
	assert.NotContains(t, keys, "General_SerialDuco")
	assert.NotContains(t, keys, "General_Name")
}

func TestDiscoverNodeSensorsMetadata(t *testing.T) {
	node := nodesFixture()[1]
	sensors := DiscoverNodeSensors(node)

	var co2 NodeSensor
	for _, sensor := range sensors {
		if sensor.Key == "Sensor_Co2" {
			co2 = sensor
		}
	}
	assert.Equal(t, "CO₂", co2.Name)
	assert.Equal(t, UnitPpm, co2.Unit)
	assert.Equal(t, DeviceClassCo2, co2.DeviceClass)

	value, err := co2.Value(node)
	assert.NoError(t, err)
	assert.Equal(t, 1056, value)
}

func TestDiscoverNodeSensorsUnknownKeyFallback(t *testing.T) {
	node := Section{
		"Node": 7,
		"Sensor": map[string]interface{}{
			"NewSensor": leaf(123),
		},
	}
	sensors := DiscoverNodeSensors(node)

	assert.Len(t, sensors, 1)
	assert.Equal(t, "Sensor_NewSensor", sensors[0].Key)
	assert.Equal(t, "Sensor New Sensor", sensors[0].Name)
	assert.Equal(t, StateClassMeasurement, sensors[0].StateClass)

	value, err := sensors[0].Value(node)
	assert.NoError(t, err)
	assert.Equal(t, 123, value)
}

func TestDiscoverNodeSensorsMissingModules(t *testing.T) {
	node := Section{
		"Node": 2,
		"Ventilation": map[string]interface{}{
			"State": leaf("AUTO"),
		},
	}
	sensors := DiscoverNodeSensors(node)

	assert.Equal(t, []string{"Ventilation_State"}, sensorKeys(sensors))
}

func TestDiscoverNodeSensorsIsDeterministic(t *testing.T) {
	node := nodesFixture()[0]

	first := sensorKeys(DiscoverNodeSensors(node))
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, sensorKeys(DiscoverNodeSensors(node)))
	}
}

func TestDiscoverNodeSensorsSkipsNonLeafValues(t *testing.T) {
	node := Section{
		"Node": 4,
		"Sensor": map[string]interface{}{
			"Temp":   leaf(20.5),
			"Raw":    42,
			"Nested": map[string]interface{}{"NoVal": 1},
		},
	}
	sensors := DiscoverNodeSensors(node)

	assert.Equal(t, []string{"Sensor_Temp"}, sensorKeys(sensors))
}
