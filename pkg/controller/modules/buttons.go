package modules

import (
	"fmt"
	"path"

	"github.com/ducobridge/ducobox-mqtt/pkg/config"
	"github.com/ducobridge/ducobox-mqtt/pkg/duco"
	"github.com/ducobridge/ducobox-mqtt/pkg/homeassistant"
	"github.com/ducobridge/ducobox-mqtt/pkg/mqtt"
	mqtt_base "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const payloadPress string = "PRESS"

// Buttons Module exposes the safe box-level actions as press buttons. Only
// actions the firmware actually reports in /action are offered; the curated
// list keeps destructive actions like RebootBox out.
type ButtonsModule struct {
	mqttClient   mqtt.Client
	ducoClient   duco.Client
	ducoRegistry duco.Registry

	buttons []duco.ButtonSpec
}

func (c *ButtonsModule) Start() error {
	document := c.ducoRegistry.Document()
	available := map[string]struct{}{}
	for _, action := range document.Actions() {
		available[action.Action] = struct{}{}
	}
	for _, button := range duco.BoxButtons {
		if _, ok := available[button.Action]; ok {
			c.buttons = append(c.buttons, button)
		}
	}

	for _, button := range c.buttons {
		buttonCopy := button
		topic := buttonTopic(button.Key)
		err := c.mqttClient.Subscribe(topic, func(client mqtt_base.Client, message mqtt_base.Message) {
			payload := string(message.Payload())
			if err := c.onCommand(buttonCopy, payload); err != nil {
				log.Error().
					Err(err).
					Str("button", buttonCopy.Key).
					Str("payload", payload).
					Msg("Error handling button command.")
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *ButtonsModule) Stop() error {
	return nil
}

func (c *ButtonsModule) onCommand(button duco.ButtonSpec, payload string) error {
	if payload != payloadPress {
		return fmt.Errorf("unexpected button payload '%s'", payload)
	}
	log.Info().Str("action", button.Action).Msg("Executing box action.")
	if err := c.ducoClient.ExecuteAction(button.Action); err != nil {
		return err
	}
	return c.ducoRegistry.Refresh()
}

func buttonTopic(buttonKey string) string {
	return path.Join(actions, buttonKey, mqtt.Command)
}

func (c *ButtonsModule) GetHomeAssistantEntities() ([]homeassistant.DiscoveryConfig, error) {
	configs := []homeassistant.DiscoveryConfig{}
	deviceId := c.ducoRegistry.DeviceId()

	for _, button := range c.buttons {
		buttonConfig := homeassistant.DiscoveryConfig{
			Domain:   homeassistant.Button,
			DeviceId: deviceId,
			ObjectId: button.Key,
			Config: &homeassistant.ButtonConfig{
				BaseConfig: homeassistant.BaseConfig{
					Device:   boxDevice(c.ducoRegistry),
					Name:     button.Name,
					UniqueId: deviceId + "_" + button.Key,
				},
				CommandTopic: c.mqttClient.GetFullTopic(buttonTopic(button.Key)),
				PayloadPress: payloadPress,
				Icon:         button.Icon,
			},
		}
		configs = append(configs, buttonConfig)
	}
	return configs, nil
}

func NewButtonsModule(mqttClient mqtt.Client, ducoClient duco.Client, ducoRegistry duco.Registry, config *config.Config) Module {
	return &ButtonsModule{
		mqttClient:   mqttClient,
		ducoClient:   ducoClient,
		ducoRegistry: ducoRegistry,
	}
}

func init() {
	Register("buttons", NewButtonsModule)
}
