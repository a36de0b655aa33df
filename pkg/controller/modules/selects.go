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

const (
	actions string = "actions"

	selectsSubscriptionId string = "selects-module"
)

// nodeActionSelect is one enum action on a node exposed as a select entity.
// The current option is read back from the node's info document at the
// registered state path.
type nodeActionSelect struct {
	nodeId    int
	action    string
	options   []string
	statePath [2]string
}

// Selects Module exposes two kinds of option entities: config parameters with
// a known enum table (published as their label instead of the raw number) and
// node enum actions such as SetVentilationState.
type SelectsModule struct {
	mqttClient   mqtt.Client
	ducoClient   duco.Client
	ducoRegistry duco.Registry

	normalizeDeviceName bool

	selects     []duco.SelectParam
	nodeSelects []nodeActionSelect
}

func (c *SelectsModule) Start() error {
	document := c.ducoRegistry.Document()
	classification := duco.ClassifyConfig(document.Config())
	c.selects = classification.Selects

	for _, nodeActions := range document.ActionNodes() {
		for _, action := range nodeActions.Actions {
			statePath, ok := duco.ActionStatePaths[action.Action]
			if !ok || len(action.Enum) == 0 {
				continue
			}
			c.nodeSelects = append(c.nodeSelects, nodeActionSelect{
				nodeId:    nodeActions.Node,
				action:    action.Action,
				options:   action.Enum,
				statePath: statePath,
			})
		}
	}

	for _, boxSelect := range c.selects {
		ref := boxSelect.Ref
		options := boxSelect.Options
		topic := boxConfigTopic(ref, mqtt.Command)
		err := c.mqttClient.Subscribe(topic, func(client mqtt_base.Client, message mqtt_base.Message) {
			payload := string(message.Payload())
			if err := c.onBoxCommand(ref, options, payload); err != nil {
				log.Error().
					Err(err).
					Str("parameter", ref.Name()).
					Str("payload", payload).
					Msg("Error handling select command.")
			}
		})
		if err != nil {
			return err
		}
	}
	for _, nodeSelect := range c.nodeSelects {
		nodeSelectCopy := nodeSelect
		topic := nodeActionTopic(c.nodeTopicName(nodeSelect.nodeId), nodeSelect.action, mqtt.Command)
		err := c.mqttClient.Subscribe(topic, func(client mqtt_base.Client, message mqtt_base.Message) {
			payload := string(message.Payload())
			if err := c.onNodeCommand(nodeSelectCopy, payload); err != nil {
				log.Error().
					Err(err).
					Int("node", nodeSelectCopy.nodeId).
					Str("action", nodeSelectCopy.action).
					Str("payload", payload).
					Msg("Error handling node action command.")
			}
		})
		if err != nil {
			return err
		}
	}

	c.ducoRegistry.Subscribe(selectsSubscriptionId, func(document duco.Document) {
		c.publishSelectValues(document)
	})
	return nil
}

func (c *SelectsModule) Stop() error {
	c.ducoRegistry.Unsubscribe(selectsSubscriptionId)
	return nil
}

func (c *SelectsModule) onBoxCommand(ref duco.ParamRef, options duco.EnumTable, payload string) error {
	value, ok := options.ValueFor(payload)
	if !ok {
		return fmt.Errorf("unknown option '%s' for parameter '%s'", payload, ref.Name())
	}
	log.Info().
		Str("parameter", ref.Name()).
		Str("option", payload).
		Int("value", value).
		Msg("Setting select value.")
	if err := c.ducoClient.SetConfigValue(ref.Module, ref.Submodule, ref.Key, float64(value)); err != nil {
		return err
	}
	return c.ducoRegistry.Refresh()
}

func (c *SelectsModule) onNodeCommand(nodeSelect nodeActionSelect, payload string) error {
	valid := false
	for _, option := range nodeSelect.options {
		if option == payload {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown option '%s' for action '%s'", payload, nodeSelect.action)
	}
	log.Info().
		Int("node", nodeSelect.nodeId).
		Str("action", nodeSelect.action).
		Str("option", payload).
		Msg("Executing node action.")
	if err := c.ducoClient.ExecuteNodeAction(nodeSelect.nodeId, nodeSelect.action, payload); err != nil {
		return err
	}
	return c.ducoRegistry.Refresh()
}

func (c *SelectsModule) publishSelectValues(document duco.Document) {
	config := document.Config()
	for _, boxSelect := range c.selects {
		raw := boxSelect.Ref.Value(config)
		if raw == nil {
			continue
		}
		value, ok := rawToInt(raw)
		if !ok {
			continue
		}
		label, ok := boxSelect.Options.LabelFor(value)
		if !ok {
			log.Warn().
				Str("parameter", boxSelect.Ref.Name()).
				Int("value", value).
				Msg("Config value outside the known option set")
			continue
		}
		topic := boxConfigTopic(boxSelect.Ref, mqtt.State)
		if err := c.mqttClient.Publish(topic, label); err != nil {
			log.Error().Err(err).Str("parameter", boxSelect.Ref.Name()).Msg("Error publishing select value")
		}
	}

	for _, nodeSelect := range c.nodeSelects {
		node := document.Node(nodeSelect.nodeId)
		if node == nil {
			continue
		}
		state := actionStateLabel(duco.ExtractVal(duco.SafeGet(node, nodeSelect.statePath[0], nodeSelect.statePath[1])))
		if state == "" {
			continue
		}
		topic := nodeActionTopic(c.nodeTopicName(nodeSelect.nodeId), nodeSelect.action, mqtt.State)
		if err := c.mqttClient.Publish(topic, state); err != nil {
			log.Error().
				Err(err).
				Int("node", nodeSelect.nodeId).
				Str("action", nodeSelect.action).
				Msg("Error publishing node action state")
		}
	}
}

func (c *SelectsModule) nodeTopicName(id int) string {
	name := c.ducoRegistry.NodeName(id)
	if c.normalizeDeviceName {
		name = normalizeForTopicName(name)
	}
	return name
}

func nodeActionTopic(nodeName string, action string, suffix string) string {
	return path.Join(nodes, nodeName, actions, action, suffix)
}

// actionStateLabel renders the readback value of an enum action. The board
// reports option labels as strings, but numeric firmware fields are coerced
// rather than dropped.
func actionStateLabel(value interface{}) string {
	if value == nil {
		return ""
	}
	if label, ok := value.(string); ok {
		return label
	}
	return fmt.Sprintf("%v", value)
}

func rawToInt(raw interface{}) (int, bool) {
	switch value := raw.(type) {
	case float64:
		return int(value), true
	case int:
		return value, true
	default:
		return 0, false
	}
}

func (c *SelectsModule) GetHomeAssistantEntities() ([]homeassistant.DiscoveryConfig, error) {
	configs := []homeassistant.DiscoveryConfig{}
	deviceId := c.ducoRegistry.DeviceId()

	for _, boxSelect := range c.selects {
		ref := boxSelect.Ref
		objectId := normalizeForTopicName(ref.Module + "_" + ref.Submodule + "_" + ref.Key)
		selectConfig := homeassistant.DiscoveryConfig{
			Domain:   homeassistant.Select,
			DeviceId: deviceId,
			ObjectId: objectId,
			Config: &homeassistant.SelectConfig{
				BaseConfig: homeassistant.BaseConfig{
					Device:   boxDevice(c.ducoRegistry),
					Name:     ref.Name(),
					UniqueId: deviceId + "_" + objectId,
				},
				CommandTopic:   c.mqttClient.GetFullTopic(boxConfigTopic(ref, mqtt.Command)),
				StateTopic:     c.mqttClient.GetFullTopic(boxConfigTopic(ref, mqtt.State)),
				Options:        boxSelect.Options.Labels(),
				EntityCategory: "config",
			},
		}
		configs = append(configs, selectConfig)
	}

	for _, nodeSelect := range c.nodeSelects {
		id := nodeSelect.nodeId
		nodeName := c.nodeTopicName(id)
		deviceIdForNode := nodeDeviceId(deviceId, id)
		objectId := normalizeForTopicName(nodeSelect.action)
		selectConfig := homeassistant.DiscoveryConfig{
			Domain:   homeassistant.Select,
			DeviceId: deviceIdForNode,
			ObjectId: objectId,
			Config: &homeassistant.SelectConfig{
				BaseConfig: homeassistant.BaseConfig{
					Device:   nodeDevice(c.ducoRegistry, deviceId, id),
					Name:     duco.HumanizeAction(nodeSelect.action),
					UniqueId: deviceIdForNode + "_" + objectId,
				},
				CommandTopic: c.mqttClient.GetFullTopic(nodeActionTopic(nodeName, nodeSelect.action, mqtt.Command)),
				StateTopic:   c.mqttClient.GetFullTopic(nodeActionTopic(nodeName, nodeSelect.action, mqtt.State)),
				Options:      nodeSelect.options,
				Icon:         "mdi:hvac",
			},
		}
		configs = append(configs, selectConfig)
	}
	return configs, nil
}

func NewSelectsModule(mqttClient mqtt.Client, ducoClient duco.Client, ducoRegistry duco.Registry, config *config.Config) Module {
	return &SelectsModule{
		mqttClient:          mqttClient,
		ducoClient:          ducoClient,
		ducoRegistry:        ducoRegistry,
		normalizeDeviceName: config.Mqtt.NormalizeDeviceName,
		nodeSelects:         []nodeActionSelect{},
	}
}

func init() {
	Register("selects", NewSelectsModule)
}
