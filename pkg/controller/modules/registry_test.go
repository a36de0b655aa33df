package modules

import (
	"testing"
)

func TestNormalizeForTopicName(t *testing.T) {
	expect(t, normalizeForTopicName("ducobox"), "ducobox")
	expect(t, normalizeForTopicName("duco_box-1"), "duco_box-1")
	expect(t, normalizeForTopicName("DucoBox"), "DucoBox")
	expect(t, normalizeForTopicName("duco box"), "duco_box")
	expect(t, normalizeForTopicName("duco/box"), "duco_box")
	expect(t, normalizeForTopicName("1:BOX"), "1_BOX")
	expect(t, normalizeForTopicName("3:UCCO2"), "3_UCCO2")
	expect(t, normalizeForTopicName("dé$`^'co"), "dco")
	expect(t, normalizeForTopicName("box325"), "box325")
}

func expect(t *testing.T, result string, expected string) {
	if expected != result {
		t.Errorf("Expected='%s' but got '%s'", expected, result)
	}
}
