package modules

import (
	"fmt"
	"strings"

	"github.com/ducobridge/ducobox-mqtt/pkg/config"
	"github.com/ducobridge/ducobox-mqtt/pkg/duco"
	"github.com/ducobridge/ducobox-mqtt/pkg/homeassistant"
	"github.com/ducobridge/ducobox-mqtt/pkg/mqtt"
	mqtt_base "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const (
	payloadOn  string = "ON"
	payloadOff string = "OFF"

	switchesSubscriptionId string = "switches-module"
)

// Switches Module exposes the 0/1 config parameters as toggles. The box
// stores them as numbers with range 0..1; the module translates between the
// raw value and the ON/OFF payloads Home Assistant expects.
type SwitchesModule struct {
	mqttClient   mqtt.Client
	ducoClient   duco.Client
	ducoRegistry duco.Registry

	switches []duco.SwitchParam
}

func (c *SwitchesModule) Start() error {
	document := c.ducoRegistry.Document()
	classification := duco.ClassifyConfig(document.Config())
	c.switches = classification.Switches

	for _, boxSwitch := range c.switches {
		ref := boxSwitch.Ref
		topic := boxConfigTopic(ref, mqtt.Command)
		err := c.mqttClient.Subscribe(topic, func(client mqtt_base.Client, message mqtt_base.Message) {
			payload := string(message.Payload())
			if err := c.onCommand(ref, payload); err != nil {
				log.Error().
					Err(err).
					Str("parameter", ref.Name()).
					Str("payload", payload).
					Msg("Error handling switch command.")
			}
		})
		if err != nil {
			return err
		}
	}

	c.ducoRegistry.Subscribe(switchesSubscriptionId, func(document duco.Document) {
		c.publishSwitchValues(document)
	})
	return nil
}

func (c *SwitchesModule) Stop() error {
	c.ducoRegistry.Unsubscribe(switchesSubscriptionId)
	return nil
}

func (c *SwitchesModule) onCommand(ref duco.ParamRef, payload string) error {
	var value float64
	switch strings.ToUpper(payload) {
	case payloadOn:
		value = 1
	case payloadOff:
		value = 0
	default:
		return fmt.Errorf("unexpected switch payload '%s'", payload)
	}
	log.Info().
		Str("parameter", ref.Name()).
		Float64("value", value).
		Msg("Setting switch value.")
	if err := c.ducoClient.SetConfigValue(ref.Module, ref.Submodule, ref.Key, value); err != nil {
		return err
	}
	return c.ducoRegistry.Refresh()
}

func (c *SwitchesModule) publishSwitchValues(document duco.Document) {
	config := document.Config()
	for _, boxSwitch := range c.switches {
		raw := boxSwitch.Ref.Value(config)
		if raw == nil {
			continue
		}
		state := payloadOff
		switch value := raw.(type) {
		case float64:
			if value != 0 {
				state = payloadOn
			}
		case int:
			if value != 0 {
				state = payloadOn
			}
		}
		topic := boxConfigTopic(boxSwitch.Ref, mqtt.State)
		if err := c.mqttClient.Publish(topic, state); err != nil {
			log.Error().Err(err).Str("parameter", boxSwitch.Ref.Name()).Msg("Error publishing switch value")
		}
	}
}

func (c *SwitchesModule) GetHomeAssistantEntities() ([]homeassistant.DiscoveryConfig, error) {
	configs := []homeassistant.DiscoveryConfig{}
	deviceId := c.ducoRegistry.DeviceId()

	for _, boxSwitch := range c.switches {
		ref := boxSwitch.Ref
		objectId := normalizeForTopicName(ref.Module + "_" + ref.Submodule + "_" + ref.Key)
		switchConfig := homeassistant.DiscoveryConfig{
			Domain:   homeassistant.Switch,
			DeviceId: deviceId,
			ObjectId: objectId,
			Config: &homeassistant.SwitchConfig{
				BaseConfig: homeassistant.BaseConfig{
					Device:   boxDevice(c.ducoRegistry),
					Name:     ref.Name(),
					UniqueId: deviceId + "_" + objectId,
				},
				CommandTopic:   c.mqttClient.GetFullTopic(boxConfigTopic(ref, mqtt.Command)),
				StateTopic:     c.mqttClient.GetFullTopic(boxConfigTopic(ref, mqtt.State)),
				PayloadOn:      payloadOn,
				PayloadOff:     payloadOff,
				EntityCategory: "config",
			},
		}
		configs = append(configs, switchConfig)
	}
	return configs, nil
}

func NewSwitchesModule(mqttClient mqtt.Client, ducoClient duco.Client, ducoRegistry duco.Registry, config *config.Config) Module {
	return &SwitchesModule{
		mqttClient:   mqttClient,
		ducoClient:   ducoClient,
		ducoRegistry: ducoRegistry,
	}
}

func init() {
	Register("switches", NewSwitchesModule)
}
