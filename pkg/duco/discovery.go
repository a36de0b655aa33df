package duco

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
)

// NodeSensorMeta is the registry metadata for a known (module, key) pair.
type NodeSensorMeta struct {
	Name        string
	Unit        string
	DeviceClass string
	StateClass  string
	Icon        string
	Convert     Converter
}

// nodeScanModules are the node sub-sections searched for leaf readings, in
// scan order.
var nodeScanModules = []string{"Sensor", "Ventilation", "NetworkDuco", "General"}

// generalAdminKeys are General leaves that describe the node itself (identity,
// addressing, firmware) rather than a reading. They share the {"Val": ...}
// shape with genuine sensors so they have to be excluded by name.
var generalAdminKeys = map[string]struct{}{
	"Type":        {},
	"SubType":     {},
	"NetworkType": {},
	"Addr":        {},
	"SwVersion":   {},
	"SerialDuco":  {},
	"SerialBoard": {},
	"Name":        {},
}

// NodeSensorRegistry enriches known node sensor keys with display metadata.
// Keys not found here are still discovered, with humanized defaults; the
// registry only improves presentation, it never gates discovery.
var NodeSensorRegistry = map[string]map[string]NodeSensorMeta{
	"Sensor": {
		"Temp": {
			Name:        "Temperature",
			Unit:        UnitCelsius,
			DeviceClass: DeviceClassTemperature,
			StateClass:  StateClassMeasurement,
			Convert:     Identity,
		},
		"Rh": {
			Name:        "Relative Humidity",
			Unit:        UnitPercent,
			DeviceClass: DeviceClassHumidity,
			StateClass:  StateClassMeasurement,
			Convert:     Identity,
		},
		"IaqRh": {
			Name:       "Humidity Air Quality",
			Unit:       UnitPercent,
			StateClass: StateClassMeasurement,
			Icon:       "mdi:air-filter",
			Convert:    Identity,
		},
		"Co2": {
			Name:        "CO₂",
			Unit:        UnitPpm,
			DeviceClass: DeviceClassCo2,
			StateClass:  StateClassMeasurement,
			Convert:     Identity,
		},
		"IaqCo2": {
			Name:       "CO₂ Air Quality",
			Unit:       UnitPercent,
			StateClass: StateClassMeasurement,
			Icon:       "mdi:air-filter",
			Convert:    Identity,
		},
	},
	"Ventilation": {
		"State": {
			Name: "Ventilation State",
			Icon: "mdi:hvac",
		},
		"Mode": {
			Name: "Ventilation Mode",
			Icon: "mdi:hvac",
		},
		"FlowLvlTgt": {
			Name:       "Flow Level Target",
			Unit:       UnitPercent,
			StateClass: StateClassMeasurement,
			Icon:       "mdi:fan",
		},
		"TimeStateRemain": {
			Name:       "Time State Remaining",
			Unit:       UnitSeconds,
			StateClass: StateClassMeasurement,
			Icon:       "mdi:timer-outline",
		},
		"TimeStateEnd": {
			Name:       "Time State End",
			Unit:       UnitSeconds,
			StateClass: StateClassMeasurement,
			Icon:       "mdi:timer-outline",
		},
		"Pos": {
			Name:       "Valve Position",
			Unit:       UnitPercent,
			StateClass: StateClassMeasurement,
			Icon:       "mdi:valve",
		},
		"FlowLvlOvrl": {
			Name:       "Flow Level Override",
			Unit:       UnitPercent,
			StateClass: StateClassMeasurement,
			Icon:       "mdi:fan",
		},
		"FlowLvlReqSensor": {
			Name:       "Flow Level Sensor Request",
			Unit:       UnitPercent,
			StateClass: StateClassMeasurement,
			Icon:       "mdi:fan",
		},
	},
	"NetworkDuco": {
		"CommErrorCtr": {
			Name:       "Communication Error Counter",
			StateClass: StateClassTotalIncreasing,
			Icon:       "mdi:alert-circle-outline",
		},
		"RssiRfN2M": {
			Name:        "RF Signal Strength (Node to Master)",
			Unit:        UnitDbm,
			DeviceClass: DeviceClassSignalStrength,
			StateClass:  StateClassMeasurement,
		},
		"RssiRfN2H": {
			Name:        "RF Signal Strength (Node to Hub)",
			Unit:        UnitDbm,
			DeviceClass: DeviceClassSignalStrength,
			StateClass:  StateClassMeasurement,
		},
		"HopRf": {
			Name:       "RF Hop Count",
			StateClass: StateClassMeasurement,
			Icon:       "mdi:access-point-network",
		},
	},
	"General": {
		"UpTime": {
			Name:        "Uptime",
			Unit:        UnitSeconds,
			DeviceClass: DeviceClassDuration,
			StateClass:  StateClassTotalIncreasing,
		},
	},
}

// NodeSensor describes one discovered node sensor. The identity string is
// "{module}_{key}", unique within a node; (Module, Param) is the existence
// path into the node sub-document.
type NodeSensor struct {
	Key         string
	Name        string
	Unit        string
	DeviceClass string
	StateClass  string
	Icon        string

	Module  string
	Param   string
	Convert Converter
}

// Value extracts and converts the reading from the given node sub-document.
func (s NodeSensor) Value(node Section) (interface{}, error) {
	value := ExtractVal(SafeGet(node, s.Module, s.Param))
	if s.Convert == nil {
		return value, nil
	}
	return s.Convert(value)
}

// DiscoverNodeSensors derives the sensor descriptors for one node purely from
// the keys present in its document. Known keys are enriched from
// NodeSensorRegistry; unknown keys fall back to a humanized name with
// measurement defaults. Discovery never fails: missing modules and malformed
// values are simply skipped.
//
// Keys within a module are visited in sorted order so the result is
// deterministic for a fixed input.
func DiscoverNodeSensors(node Section) []NodeSensor {
	sensors := []NodeSensor{}

	for _, module := range nodeScanModules {
		moduleData, ok := node[module].(map[string]interface{})
		if !ok {
			continue
		}
		registry := NodeSensorRegistry[module]

		keys := make([]string, 0, len(moduleData))
		for key := range moduleData {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			value, isLeaf := moduleData[key].(map[string]interface{})
			if !isLeaf {
				continue
			}
			if _, hasVal := value["Val"]; !hasVal {
				continue
			}
			if module == "General" {
				if _, admin := generalAdminKeys[key]; admin {
					continue
				}
			}

			sensor := NodeSensor{
				Key:    fmt.Sprintf("%s_%s", module, key),
				Module: module,
				Param:  key,
			}
			if meta, known := registry[key]; known {
				sensor.Name = meta.Name
				sensor.Unit = meta.Unit
				sensor.DeviceClass = meta.DeviceClass
				sensor.StateClass = meta.StateClass
				sensor.Icon = meta.Icon
				sensor.Convert = meta.Convert
			} else {
				sensor.Name = fmt.Sprintf("%s %s", module, HumanizeKey(key))
				sensor.StateClass = StateClassMeasurement

				log.Info().
					Str("module", module).
					Str("key", key).
					Interface("node", node["Node"]).
					Interface("type", ExtractVal(SafeGet(node, "General", "Type"))).
					Msg("Auto-discovered unknown node sensor, consider adding it to the registry.")
			}
			sensors = append(sensors, sensor)
		}
	}
	return sensors
}
