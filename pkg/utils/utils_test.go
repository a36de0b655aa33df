package utils

import (
	"testing"
)

func TestRemoveRegexp(t *testing.T) {
	expect(t, RemoveRegexp("Ventilation Box", "box"), "Ventilation")
	expect(t, RemoveRegexp("ventilation box", "box"), "ventilation")
	expect(t, RemoveRegexp("box ventilation", "box"), "ventilation")
	expect(t, RemoveRegexp("Ventilation Box", ""), "Ventilation Box")
	expect(t, RemoveRegexp("Ventilation Box", "(box|valve)"), "Ventilation")
	expect(t, RemoveRegexp("Ventilation Valve", "(box|valve)"), "Ventilation")
	expect(t, RemoveRegexp("box_ventilation", "(box|valve)_"), "ventilation")
}

func expect(t *testing.T, result string, expect string) {
	if expect != result {
		t.Errorf("Expected='%s' but got '%s'", expect, result)
	}
}
