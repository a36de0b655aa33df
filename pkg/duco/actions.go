package duco

import (
	"github.com/mitchellh/mapstructure"
)

// Action is one entry of the /action or /action/nodes action lists. Enum is
// only present for actions taking one value out of a fixed option set.
type Action struct {
	Action  string   `mapstructure:"Action"`
	ValType string   `mapstructure:"ValType"`
	Enum    []string `mapstructure:"Enum"`
}

// NodeActions is the action list of one node from /action/nodes.
type NodeActions struct {
	Node    int      `mapstructure:"Node"`
	Actions []Action `mapstructure:"Actions"`
}

// DecodeActions extracts the box action list from a raw /action payload.
// Malformed payloads decode to an empty list, never an error.
func DecodeActions(section Section) []Action {
	var payload struct {
		Actions []Action `mapstructure:"Actions"`
	}
	if err := mapstructure.Decode(section, &payload); err != nil {
		return nil
	}
	return payload.Actions
}

// DecodeNodeActions extracts the per-node action lists from a raw
// /action/nodes payload.
func DecodeNodeActions(section Section) []NodeActions {
	var payload struct {
		Nodes []NodeActions `mapstructure:"Nodes"`
	}
	if err := mapstructure.Decode(section, &payload); err != nil {
		return nil
	}
	return payload.Nodes
}

// ButtonSpec describes one box-level action exposed as a press button.
type ButtonSpec struct {
	Key    string
	Name   string
	Action string
	Icon   string
}

// BoxButtons lists the non-destructive box actions. RebootBox exists in the
// API but is deliberately not exposed.
var BoxButtons = []ButtonSpec{
	{
		Key:    "reset_filter_time_remain",
		Name:   "Reset Filter Timer",
		Action: "ResetFilterTimeRemain",
		Icon:   "mdi:air-filter",
	},
	{
		Key:    "update_node_data",
		Name:   "Update Node Data",
		Action: "UpdateNodeData",
		Icon:   "mdi:refresh",
	},
	{
		Key:    "reconnect_wifi",
		Name:   "Reconnect Wi-Fi",
		Action: "ReconnectWifi",
		Icon:   "mdi:wifi-sync",
	},
	{
		Key:    "scan_wifi",
		Name:   "Scan Wi-Fi Networks",
		Action: "ScanWifi",
		Icon:   "mdi:wifi-find",
	},
}

// ActionStatePaths maps an enum action name to the (module, key) in the
// node's /info/nodes document where its current state can be read back.
var ActionStatePaths = map[string][2]string{
	"SetVentilationState": {"Ventilation", "State"},
}
