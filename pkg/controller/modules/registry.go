package modules

import (
	"fmt"

	"github.com/ducobridge/ducobox-mqtt/pkg/config"
	"github.com/ducobridge/ducobox-mqtt/pkg/duco"
	"github.com/ducobridge/ducobox-mqtt/pkg/homeassistant"
	"github.com/ducobridge/ducobox-mqtt/pkg/mqtt"
)

// Interface for the different modules being
type Module interface {
	Start() error
	Stop() error
}

type ModuleBuilder func(mqtt.Client, duco.Client, duco.Registry, *config.Config) Module

// Register stores a builder function into the registy for external access.
// Register() can be called from init() on a module in this package and will
// automatically register a module.
func Register(name string, builder ModuleBuilder) {
	Modules[name] = builder
}

var Modules = map[string]ModuleBuilder{}

// boxDevice builds the Home Assistant device entry for the box itself.
func boxDevice(ducoRegistry duco.Registry) homeassistant.Device {
	return homeassistant.Device{
		Identifiers: []string{ducoRegistry.DeviceId()},
		Model:       ducoRegistry.Model(),
		Name:        "DucoBox",
		SwVersion:   ducoRegistry.SwVersion(),
	}
}

// nodeDevice builds the Home Assistant device entry for one network node.
func nodeDevice(ducoRegistry duco.Registry, deviceId string, id int) homeassistant.Device {
	return homeassistant.Device{
		Identifiers: []string{nodeDeviceId(deviceId, id)},
		Model:       ducoRegistry.NodeType(id),
		Name:        "DucoBox Node " + ducoRegistry.NodeName(id),
	}
}

func nodeDeviceId(deviceId string, id int) string {
	return fmt.Sprintf("%s_node_%d", deviceId, id)
}

// nodeId reads the node number out of a node document entry. JSON decoding
// yields float64, fixtures may carry plain ints.
func nodeId(node duco.Section) (int, bool) {
	switch value := node["Node"].(type) {
	case float64:
		return int(value), true
	case int:
		return value, true
	default:
		return 0, false
	}
}

func normalizeForTopicName(item string) string {
	output := ""
	for i := 0; i < len(item); i++ {
		c := item[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-' {
			output += string(c)
		} else if c == ' ' || c == '/' || c == ':' {
			output += "_"
		}
	}
	return output
}
