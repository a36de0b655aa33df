package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadConfig(t *testing.T) {
	os.Setenv("DUCO_HOST", "192.168.1.34")
	os.Setenv("MQTT_URL", "tcp://broker:1883")

	c, err := ReadConfig()
	if err != nil {
		t.Fail()
		t.Logf("Error found: %s", err.Error())
	}

	assert.Equal(t, "192.168.1.34", c.Duco.Host, "Duco host is wrong.")
	assert.Equal(t, 443, c.Duco.Port, "Duco port is wrong.")
	assert.Equal(t, 30*time.Second, c.Duco.PollInterval, "Poll interval is wrong.")
	assert.Equal(t, "tcp://broker:1883", c.Mqtt.MqttUrl, "MQTT url is wrong.")
	assert.Equal(t, "ducobox", c.Mqtt.TopicPrefix, "MQTT prefix is wrong.")
	assert.Equal(t, byte(0), c.Mqtt.Qos, "MQTT QoS is wrong.")
	assert.Equal(t, "homeassistant", c.HomeAssistant.DiscoveryTopicPrefix, "Discovery prefix is wrong.")
	assert.Equal(t, "192.168.1.34", c.HomeAssistant.DucoHost, "Discovery duco host is wrong.")
	os.Clearenv()
}

func TestReadConfigMissingRequiredField(t *testing.T) {
	os.Setenv("MQTT_URL", "tcp://broker:1883")

	_, err := ReadConfig()
	assert.EqualError(t, err, "required field not found in config: duco_host")
	os.Clearenv()
}
