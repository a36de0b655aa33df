package duco

import (
	"regexp"
	"strings"
)

var (
	lowerToUpper  = regexp.MustCompile(`([a-z])([A-Z])`)
	acronymToWord = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	setActionName = regexp.MustCompile(`^Set`)
)

// HumanizeKey turns a CamelCase API key into a readable name:
// "FlowLvlTgt" -> "Flow Lvl Tgt", "RSSIWifi" -> "RSSI Wifi". A single
// all-caps token such as "RF" is left unchanged.
func HumanizeKey(key string) string {
	name := lowerToUpper.ReplaceAllString(key, "$1 $2")
	name = acronymToWord.ReplaceAllString(name, "$1 $2")
	return name
}

// HumanizeAction turns an action name into a readable entity name:
// "SetVentilationState" -> "Ventilation State".
func HumanizeAction(action string) string {
	name := setActionName.ReplaceAllString(action, "")
	return HumanizeKey(strings.TrimSpace(name))
}
