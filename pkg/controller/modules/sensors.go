package modules

import (
	"fmt"
	"path"

	"github.com/ducobridge/ducobox-mqtt/pkg/config"
	"github.com/ducobridge/ducobox-mqtt/pkg/duco"
	"github.com/ducobridge/ducobox-mqtt/pkg/homeassistant"
	"github.com/ducobridge/ducobox-mqtt/pkg/mqtt"
	"github.com/rs/zerolog/log"
)

const (
	sensors string = "sensors"
	nodes   string = "nodes"

	sensorsSubscriptionId string = "sensors-module"
)

// Sensors Module encapsulates the read-only side of the bridge: on every
// document refresh the box readings from /info and the discovered node
// readings from /info/nodes are pushed to their MQTT state topics.
type SensorsModule struct {
	mqttClient   mqtt.Client
	ducoRegistry duco.Registry

	normalizeDeviceName bool
}

func (c *SensorsModule) Start() error {
	c.ducoRegistry.Subscribe(sensorsSubscriptionId, func(document duco.Document) {
		c.publishSensorValues(document)
	})
	return nil
}

func (c *SensorsModule) Stop() error {
	c.ducoRegistry.Unsubscribe(sensorsSubscriptionId)
	return nil
}

func (c *SensorsModule) publishSensorValues(document duco.Document) {
	log.Debug().Msg("Publishing sensor values.")

	for _, sensor := range duco.BoxSensors {
		if !sensor.Present(document) {
			continue
		}
		value, err := sensor.Value(document)
		if err != nil {
			log.Error().Err(err).Str("sensor", sensor.Key).Msg("Error converting sensor value")
			continue
		}
		if value == nil {
			continue
		}
		if err := c.mqttClient.Publish(boxSensorTopic(sensor.Key), fmt.Sprintf("%v", value)); err != nil {
			log.Error().Err(err).Str("sensor", sensor.Key).Msg("Error publishing sensor value")
		}
	}

	for _, node := range document.Nodes() {
		id, ok := nodeId(node)
		if !ok {
			continue
		}
		nodeName := c.nodeTopicName(id)
		for _, sensor := range duco.DiscoverNodeSensors(node) {
			value, err := sensor.Value(node)
			if err != nil {
				log.Error().
					Err(err).
					Int("node", id).
					Str("sensor", sensor.Key).
					Msg("Error converting node sensor value")
				continue
			}
			if value == nil {
				continue
			}
			topic := nodeSensorTopic(nodeName, sensor.Key)
			if err := c.mqttClient.Publish(topic, fmt.Sprintf("%v", value)); err != nil {
				log.Error().
					Err(err).
					Int("node", id).
					Str("sensor", sensor.Key).
					Msg("Error publishing node sensor value")
			}
		}
	}
}

func (c *SensorsModule) nodeTopicName(id int) string {
	name := c.ducoRegistry.NodeName(id)
	if c.normalizeDeviceName {
		name = normalizeForTopicName(name)
	}
	return name
}

func boxSensorTopic(sensorKey string) string {
	return path.Join(sensors, sensorKey, mqtt.State)
}

func nodeSensorTopic(nodeName string, sensorKey string) string {
	return path.Join(nodes, nodeName, sensors, sensorKey, mqtt.State)
}

func (c *SensorsModule) GetHomeAssistantEntities() ([]homeassistant.DiscoveryConfig, error) {
	configs := []homeassistant.DiscoveryConfig{}
	document := c.ducoRegistry.Document()
	deviceId := c.ducoRegistry.DeviceId()

	for _, sensor := range duco.BoxSensors {
		if !sensor.Present(document) {
			continue
		}
		sensorConfig := homeassistant.DiscoveryConfig{
			Domain:   homeassistant.Sensor,
			DeviceId: deviceId,
			ObjectId: sensor.Key,
			Config: &homeassistant.SensorConfig{
				BaseConfig: homeassistant.BaseConfig{
					Device:   boxDevice(c.ducoRegistry),
					Name:     sensor.Name,
					UniqueId: deviceId + "_" + sensor.Key,
				},
				StateTopic:        c.mqttClient.GetFullTopic(boxSensorTopic(sensor.Key)),
				UnitOfMeasurement: sensor.Unit,
				DeviceClass:       sensor.DeviceClass,
				StateClass:        sensor.StateClass,
				Icon:              sensor.Icon,
			},
		}
		configs = append(configs, sensorConfig)
	}

	for _, node := range document.Nodes() {
		id, ok := nodeId(node)
		if !ok {
			continue
		}
		nodeName := c.nodeTopicName(id)
		deviceIdForNode := nodeDeviceId(deviceId, id)
		for _, sensor := range duco.DiscoverNodeSensors(node) {
			sensorConfig := homeassistant.DiscoveryConfig{
				Domain:   homeassistant.Sensor,
				DeviceId: deviceIdForNode,
				ObjectId: sensor.Key,
				Config: &homeassistant.SensorConfig{
					BaseConfig: homeassistant.BaseConfig{
						Device:   nodeDevice(c.ducoRegistry, deviceId, id),
						Name:     sensor.Name,
						UniqueId: deviceIdForNode + "_" + sensor.Key,
					},
					StateTopic:        c.mqttClient.GetFullTopic(nodeSensorTopic(nodeName, sensor.Key)),
					UnitOfMeasurement: sensor.Unit,
					DeviceClass:       sensor.DeviceClass,
					StateClass:        sensor.StateClass,
					Icon:              sensor.Icon,
				},
			}
			configs = append(configs, sensorConfig)
		}
	}
	return configs, nil
}

func NewSensorsModule(mqttClient mqtt.Client, ducoClient duco.Client, ducoRegistry duco.Registry, config *config.Config) Module {
	return &SensorsModule{
		mqttClient:          mqttClient,
		ducoRegistry:        ducoRegistry,
		normalizeDeviceName: config.Mqtt.NormalizeDeviceName,
	}
}

func init() {
	Register("sensors", NewSensorsModule)
}
