package homeassistant

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/ducobridge/ducobox-mqtt/pkg/config"
	"github.com/ducobridge/ducobox-mqtt/pkg/mqtt"
	"github.com/ducobridge/ducobox-mqtt/pkg/utils"
)

type Domain string

const (
	Sensor Domain = "sensor"
	Number Domain = "number"
	Switch Domain = "switch"
	Select Domain = "select"
	Button Domain = "button"
)

// DiscoveryConfig ties one entity config to the discovery topic coordinates
// it will be announced under.
type DiscoveryConfig struct {
	Domain   Domain
	DeviceId string
	ObjectId string
	Config   MqttConfig
}

// HomeAssistantDiscoveryInterface is implemented by modules that announce
// entities. It is queried after Start, so implementations can rely on their
// startup work being done.
type HomeAssistantDiscoveryInterface interface {
	GetHomeAssistantEntities() ([]DiscoveryConfig, error)
}

// HomeAssistantDiscovery collects entity configs from the modules and
// announces them on the discovery prefix.
type HomeAssistantDiscovery struct {
	mqttClient mqtt.Client
	config     *config.ConfigHomeAssistant

	discoveryConfigs []DiscoveryConfig
}

func NewHomeAssistantDiscovery(mqttClient mqtt.Client, config *config.ConfigHomeAssistant) *HomeAssistantDiscovery {
	return &HomeAssistantDiscovery{
		mqttClient:       mqttClient,
		config:           config,
		discoveryConfigs: []DiscoveryConfig{},
	}
}

// AddConfigs decorates the given configs with the attributes shared by every
// entity of the bridge and queues them for publishing.
func (hass *HomeAssistantDiscovery) AddConfigs(configs []DiscoveryConfig) {
	for _, config := range configs {
		hass.decorate(config.Config)
		hass.discoveryConfigs = append(hass.discoveryConfigs, config)
	}
}

func (hass *HomeAssistantDiscovery) decorate(entity MqttConfig) {
	entity.
		SetName(utils.RemoveRegexp(entity.GetName(), hass.config.RemoveRegexpFromName)).
		SetRetain(hass.config.Retain).
		AddAvailability(Availability{
			Topic:               hass.mqttClient.ServerStatusTopic(),
			PayloadAvailable:    mqtt.Online,
			PayloadNotAvailable: mqtt.Offline,
		}).
		SetAvailabilityMode("all")

	device := entity.GetDevice()
	device.Manufacturer = "Duco"
	device.ConfigurationUrl = "https://" + hass.config.DucoHost
}

// PublishDiscoveryMessages announces every queued config as a retained
// message, so entities survive a Home Assistant restart.
func (hass *HomeAssistantDiscovery) PublishDiscoveryMessages() error {
	if !hass.config.DiscoveryEnabled {
		return nil
	}

	for _, config := range hass.discoveryConfigs {
		payload, err := json.Marshal(config.Config)
		if err != nil {
			return fmt.Errorf("error serializing discovery config to JSON: %w", err)
		}
		topic := path.Join(
			hass.config.DiscoveryTopicPrefix,
			string(config.Domain),
			config.DeviceId,
			config.ObjectId,
			"config")
		t := hass.mqttClient.RawClient().Publish(topic, 0, true, payload)
		<-t.Done()
		if t.Error() != nil {
			return fmt.Errorf("error publishing discovery message to MQTT: %w", t.Error())
		}
	}
	return nil
}
