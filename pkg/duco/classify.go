package duco

import (
	"fmt"
	"sort"
)

// ParamRef addresses one leaf parameter in the box /config document.
type ParamRef struct {
	Module    string
	Submodule string
	Key       string
}

// Name builds the readable entity name for the parameter.
func (r ParamRef) Name() string {
	return fmt.Sprintf("%s %s %s", r.Module, r.Submodule, HumanizeKey(r.Key))
}

// Value reads the parameter's current value from a config snapshot.
func (r ParamRef) Value(config Section) interface{} {
	return SafeGet(config, r.Module, r.Submodule, r.Key, "Val")
}

// NumberParam is a user-adjustable numeric config parameter.
type NumberParam struct {
	Ref    ParamRef
	Bounds Bounds
}

// SwitchParam is a 0/1 config parameter exposed as a toggle.
type SwitchParam struct {
	Ref ParamRef
}

// SelectParam is an enum-like config parameter with labeled options.
type SelectParam struct {
	Ref     ParamRef
	Options EnumTable
}

// Classification partitions the tunable leaves of /config. Each leaf lands in
// exactly one bucket or is ignored, never in two.
type Classification struct {
	Numbers  []NumberParam
	Switches []SwitchParam
	Selects  []SelectParam
}

// submoduleSkip excludes whole (module, submodule) groups from configuration
// entities: setup wizard state, bus addressing, auto-reboot scheduling,
// internal API counters, firmware downgrade and cloud connectivity toggles.
var submoduleSkip = map[[2]string]struct{}{
	{"General", "Setup"}:          {},
	{"General", "Modbus"}:         {},
	{"General", "AutoRebootComm"}: {},
	{"General", "PublicApi"}:      {},
	{"Firmware", "General"}:       {},
	{"Azure", "Connection"}:       {},
}

// keySkip excludes individual leaves whose shape misclassifies them: enum-like
// or internal fields that look like tunable numbers.
var keySkip = map[ParamRef]struct{}{
	{Module: "General", Submodule: "Lan", Key: "Mode"}:             {},
	{Module: "General", Submodule: "Lan", Key: "Dhcp"}:             {},
	{Module: "General", Submodule: "Lan", Key: "TimeDucoClientIp"}: {},
}

// ClassifyConfig walks the /config section (module -> submodule -> key ->
// leaf) and partitions every tunable leaf into number, switch or select
// candidates. Non-tunable leaves, skipped groups and fixed (Min == Max)
// parameters are ignored. A leaf registered in ConfigEnums is always a
// select, even when its range is 0..1.
//
// Iteration is sorted on every level so the result is deterministic for a
// fixed snapshot.
func ClassifyConfig(config Section) Classification {
	result := Classification{}
	if config == nil {
		return result
	}

	for _, module := range sortedKeys(config) {
		moduleData, ok := config[module].(map[string]interface{})
		if !ok {
			continue
		}
		for _, submodule := range sortedKeys(moduleData) {
			subData, ok := moduleData[submodule].(map[string]interface{})
			if !ok {
				continue
			}
			if _, skip := submoduleSkip[[2]string{module, submodule}]; skip {
				continue
			}
			for _, key := range sortedKeys(subData) {
				leaf, isLeaf := ParseLeaf(subData[key])
				if !isLeaf || !leaf.Tunable() {
					continue
				}
				ref := ParamRef{Module: module, Submodule: submodule, Key: key}
				if _, skip := keySkip[ref]; skip {
					continue
				}
				if leaf.Fixed() {
					continue
				}
				if options, isEnum := ConfigEnums[ref]; isEnum {
					result.Selects = append(result.Selects, SelectParam{Ref: ref, Options: options})
					continue
				}
				if leaf.Boolean() {
					result.Switches = append(result.Switches, SwitchParam{Ref: ref})
					continue
				}
				result.Numbers = append(result.Numbers, NumberParam{Ref: ref, Bounds: *leaf.Bounds})
			}
		}
	}
	return result
}

// NodeNumberParam is a tunable parameter on one node in /config/nodes.
type NodeNumberParam struct {
	Key    string
	Name   string
	Bounds Bounds
}

// Value reads the parameter's current value from the node's config
// sub-document.
func (p NodeNumberParam) Value(node Section) interface{} {
	return ExtractVal(node[p.Key])
}

// ClassifyNodeConfig lists the tunable parameters of one /config/nodes entry.
// Node-level parameters are exposed as numbers only: the observed API has no
// boolean- or enum-shaped node parameters, so no skip sets or enum tables
// apply here.
func ClassifyNodeConfig(node Section) []NodeNumberParam {
	params := []NodeNumberParam{}
	for _, key := range sortedKeys(node) {
		leaf, isLeaf := ParseLeaf(node[key])
		if !isLeaf || !leaf.Tunable() {
			continue
		}
		params = append(params, NodeNumberParam{
			Key:    key,
			Name:   HumanizeKey(key),
			Bounds: *leaf.Bounds,
		})
	}
	return params
}

func sortedKeys(section map[string]interface{}) []string {
	keys := make([]string, 0, len(section))
	for key := range section {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
