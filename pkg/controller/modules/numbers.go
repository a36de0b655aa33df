package modules

import (
	"fmt"
	"path"
	"strconv"

	"github.com/ducobridge/ducobox-mqtt/pkg/config"
	"github.com/ducobridge/ducobox-mqtt/pkg/duco"
	"github.com/ducobridge/ducobox-mqtt/pkg/homeassistant"
	"github.com/ducobridge/ducobox-mqtt/pkg/mqtt"
	mqtt_base "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const (
	configTopic string = "config"

	numbersSubscriptionId string = "numbers-module"
)

// Numbers Module exposes the tunable numeric parameters from /config and
// /config/nodes as writable entities. The parameter set is classified once at
// startup from the current document; values are re-published on every
// refresh, and writes go back to the box followed by an immediate refresh so
// the state topics reconcile without waiting for the next poll.
type NumbersModule struct {
	mqttClient   mqtt.Client
	ducoClient   duco.Client
	ducoRegistry duco.Registry

	normalizeDeviceName bool

	numbers     []duco.NumberParam
	nodeNumbers map[int][]duco.NodeNumberParam
}

func (c *NumbersModule) Start() error {
	document := c.ducoRegistry.Document()
	classification := duco.ClassifyConfig(document.Config())
	c.numbers = classification.Numbers
	for _, node := range document.ConfigNodes() {
		id, ok := nodeId(node)
		if !ok {
			continue
		}
		c.nodeNumbers[id] = duco.ClassifyNodeConfig(node)
	}

	for _, number := range c.numbers {
		ref := number.Ref
		topic := boxConfigTopic(ref, mqtt.Command)
		err := c.mqttClient.Subscribe(topic, func(client mqtt_base.Client, message mqtt_base.Message) {
			payload := string(message.Payload())
			if err := c.onBoxCommand(ref, payload); err != nil {
				log.Error().
					Err(err).
					Str("parameter", ref.Name()).
					Str("payload", payload).
					Msg("Error handling number command.")
			}
		})
		if err != nil {
			return err
		}
	}
	for id, params := range c.nodeNumbers {
		nodeId := id
		nodeName := c.nodeTopicName(id)
		for _, param := range params {
			key := param.Key
			topic := nodeConfigTopic(nodeName, key, mqtt.Command)
			err := c.mqttClient.Subscribe(topic, func(client mqtt_base.Client, message mqtt_base.Message) {
				payload := string(message.Payload())
				if err := c.onNodeCommand(nodeId, key, payload); err != nil {
					log.Error().
						Err(err).
						Int("node", nodeId).
						Str("parameter", key).
						Str("payload", payload).
						Msg("Error handling node number command.")
				}
			})
			if err != nil {
				return err
			}
		}
	}

	c.ducoRegistry.Subscribe(numbersSubscriptionId, func(document duco.Document) {
		c.publishNumberValues(document)
	})
	return nil
}

func (c *NumbersModule) Stop() error {
	c.ducoRegistry.Unsubscribe(numbersSubscriptionId)
	return nil
}

func (c *NumbersModule) onBoxCommand(ref duco.ParamRef, payload string) error {
	value, err := strconv.ParseFloat(payload, 64)
	if err != nil {
		return fmt.Errorf("error parsing message as float value: %w", err)
	}
	log.Info().
		Str("parameter", ref.Name()).
		Float64("value", value).
		Msg("Setting config value.")
	if err := c.ducoClient.SetConfigValue(ref.Module, ref.Submodule, ref.Key, value); err != nil {
		return err
	}
	return c.ducoRegistry.Refresh()
}

func (c *NumbersModule) onNodeCommand(nodeId int, key string, payload string) error {
	value, err := strconv.ParseFloat(payload, 64)
	if err != nil {
		return fmt.Errorf("error parsing message as float value: %w", err)
	}
	log.Info().
		Int("node", nodeId).
		Str("parameter", key).
		Float64("value", value).
		Msg("Setting node config value.")
	if err := c.ducoClient.SetNodeConfigValue(nodeId, key, value); err != nil {
		return err
	}
	return c.ducoRegistry.Refresh()
}

func (c *NumbersModule) publishNumberValues(document duco.Document) {
	config := document.Config()
	for _, number := range c.numbers {
		value := number.Ref.Value(config)
		if value == nil {
			continue
		}
		topic := boxConfigTopic(number.Ref, mqtt.State)
		if err := c.mqttClient.Publish(topic, fmt.Sprintf("%v", value)); err != nil {
			log.Error().Err(err).Str("parameter", number.Ref.Name()).Msg("Error publishing config value")
		}
	}
	for _, node := range document.ConfigNodes() {
		id, ok := nodeId(node)
		if !ok {
			continue
		}
		nodeName := c.nodeTopicName(id)
		for _, param := range c.nodeNumbers[id] {
			value := param.Value(node)
			if value == nil {
				continue
			}
			topic := nodeConfigTopic(nodeName, param.Key, mqtt.State)
			if err := c.mqttClient.Publish(topic, fmt.Sprintf("%v", value)); err != nil {
				log.Error().
					Err(err).
					Int("node", id).
					Str("parameter", param.Key).
					Msg("Error publishing node config value")
			}
		}
	}
}

func (c *NumbersModule) nodeTopicName(id int) string {
	name := c.ducoRegistry.NodeName(id)
	if c.normalizeDeviceName {
		name = normalizeForTopicName(name)
	}
	return name
}

func boxConfigTopic(ref duco.ParamRef, suffix string) string {
	return path.Join(configTopic, ref.Module, ref.Submodule, ref.Key, suffix)
}

func nodeConfigTopic(nodeName string, key string, suffix string) string {
	return path.Join(nodes, nodeName, configTopic, key, suffix)
}

func (c *NumbersModule) GetHomeAssistantEntities() ([]homeassistant.DiscoveryConfig, error) {
	configs := []homeassistant.DiscoveryConfig{}
	deviceId := c.ducoRegistry.DeviceId()

	for _, number := range c.numbers {
		ref := number.Ref
		objectId := normalizeForTopicName(ref.Module + "_" + ref.Submodule + "_" + ref.Key)
		numberConfig := homeassistant.DiscoveryConfig{
			Domain:   homeassistant.Number,
			DeviceId: deviceId,
			ObjectId: objectId,
			Config: &homeassistant.NumberConfig{
				BaseConfig: homeassistant.BaseConfig{
					Device:   boxDevice(c.ducoRegistry),
					Name:     ref.Name(),
					UniqueId: deviceId + "_" + objectId,
				},
				CommandTopic:   c.mqttClient.GetFullTopic(boxConfigTopic(ref, mqtt.Command)),
				StateTopic:     c.mqttClient.GetFullTopic(boxConfigTopic(ref, mqtt.State)),
				Min:            number.Bounds.Min,
				Max:            number.Bounds.Max,
				Step:           number.Bounds.Inc,
				Mode:           "box",
				EntityCategory: "config",
			},
		}
		configs = append(configs, numberConfig)
	}

	for id, params := range c.nodeNumbers {
		nodeName := c.nodeTopicName(id)
		deviceIdForNode := nodeDeviceId(deviceId, id)
		for _, param := range params {
			numberConfig := homeassistant.DiscoveryConfig{
				Domain:   homeassistant.Number,
				DeviceId: deviceIdForNode,
				ObjectId: param.Key,
				Config: &homeassistant.NumberConfig{
					BaseConfig: homeassistant.BaseConfig{
						Device:   nodeDevice(c.ducoRegistry, deviceId, id),
						Name:     param.Name,
						UniqueId: deviceIdForNode + "_" + param.Key,
					},
					CommandTopic:   c.mqttClient.GetFullTopic(nodeConfigTopic(nodeName, param.Key, mqtt.Command)),
					StateTopic:     c.mqttClient.GetFullTopic(nodeConfigTopic(nodeName, param.Key, mqtt.State)),
					Min:            param.Bounds.Min,
					Max:            param.Bounds.Max,
					Step:           param.Bounds.Inc,
					Mode:           "box",
					EntityCategory: "config",
				},
			}
			configs = append(configs, numberConfig)
		}
	}
	return configs, nil
}

func NewNumbersModule(mqttClient mqtt.Client, ducoClient duco.Client, ducoRegistry duco.Registry, config *config.Config) Module {
	return &NumbersModule{
		mqttClient:          mqttClient,
		ducoClient:          ducoClient,
		ducoRegistry:        ducoRegistry,
		normalizeDeviceName: config.Mqtt.NormalizeDeviceName,
		nodeNumbers:         map[int][]duco.NodeNumberParam{},
	}
}

func init() {
	Register("numbers", NewNumbersModule)
}
