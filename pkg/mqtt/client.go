package mqtt

import (
	"fmt"
	"path"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Payloads for the server status topic. Home Assistant availability configs
// reference both.
const (
	Online  string = "online"
	Offline string = "offline"
)

// Topic leaves.
const (
	State        string = "state"
	Command      string = "command"
	serverStatus string = "server/status"
)

// Client wraps the paho client with the topic prefix handling and the
// bookkeeping needed to survive broker reconnections.
type Client interface {
	Connect() error
	Disconnect() error

	// Publish sends a message below the configured topic prefix. The retain
	// flag follows the configuration.
	Publish(topic string, message interface{}) error
	// PublishAndRetain sends a retained message regardless of the configured
	// retain flag.
	PublishAndRetain(topic string, message interface{}) error
	// Subscribe registers a handler below the configured topic prefix. The
	// subscription is replayed automatically after a reconnection.
	Subscribe(topic string, messageHandler mqtt.MessageHandler) error

	// GetFullTopic prepends the topic prefix to the given subpath.
	GetFullTopic(topic string) string
	// ServerStatusTopic returns the absolute topic carrying Online/Offline.
	ServerStatusTopic() string

	RawClient() mqtt.Client
}

type subscription struct {
	topic   string
	handler mqtt.MessageHandler
}

type subscriptionList struct {
	sync.Mutex
	resubscribe bool
	entries     []subscription
}

type client struct {
	mqttClient    mqtt.Client
	options       ClientOptions
	subscriptions *subscriptionList
}

func NewClient(options *ClientOptions) Client {
	subscriptions := &subscriptionList{}

	// The will makes the broker flip the status topic to Offline when the
	// bridge dies without a clean disconnect.
	mqttOptions := mqtt.NewClientOptions().
		AddBroker(options.MqttUrl).
		SetClientID("ducobox-mqtt-" + uuid.New().String()).
		SetOrderMatters(false).
		SetUsername(options.Username).
		SetPassword(options.Password).
		SetAutoReconnect(true).
		SetWill(path.Join(options.TopicPrefix, serverStatus), Offline, options.QoS, true).
		SetReconnectingHandler(func(_ mqtt.Client, _ *mqtt.ClientOptions) {
			log.Info().Str("url", options.MqttUrl).Msg("Reconnecting to MQTT server.")
			subscriptions.Lock()
			subscriptions.resubscribe = true
			subscriptions.Unlock()
		}).
		SetOnConnectHandler(func(pahoClient mqtt.Client) {
			log.Info().Str("url", options.MqttUrl).Msg("Connected to MQTT server.")

			subscriptions.Lock()
			defer subscriptions.Unlock()
			if !subscriptions.resubscribe {
				return
			}
			subscriptions.resubscribe = false
			log.Info().Int("count", len(subscriptions.entries)).Msg("Restoring subscriptions")
			for _, sub := range subscriptions.entries {
				t := pahoClient.Subscribe(sub.topic, options.QoS, sub.handler)
				<-t.Done()
				if t.Error() != nil {
					log.Error().Err(t.Error()).Str("topic", sub.topic).Msg("Error restoring subscription")
				}
			}
		})

	return &client{
		mqttClient:    mqtt.NewClient(mqttOptions),
		options:       *options,
		subscriptions: subscriptions,
	}
}

func (c *client) Connect() error {
	t := c.mqttClient.Connect()
	<-t.Done()
	if t.Error() != nil {
		return fmt.Errorf("error connecting to MQTT broker: %w", t.Error())
	}
	return c.publishServerStatus(Online)
}

func (c *client) Disconnect() error {
	if err := c.publishServerStatus(Offline); err != nil {
		return err
	}
	c.mqttClient.Disconnect(uint(c.options.DisconnectTimeout.Milliseconds()))
	log.Info().Msg("Disconnected from MQTT server.")
	return nil
}

func (c *client) publish(topic string, message interface{}, forceRetain bool) error {
	t := c.mqttClient.Publish(
		c.GetFullTopic(topic),
		c.options.QoS,
		c.options.Retain || forceRetain,
		message)
	<-t.Done()
	return t.Error()
}

func (c *client) Publish(topic string, message interface{}) error {
	return c.publish(topic, message, false)
}

func (c *client) PublishAndRetain(topic string, message interface{}) error {
	return c.publish(topic, message, true)
}

func (c *client) Subscribe(topic string, messageHandler mqtt.MessageHandler) error {
	fullTopic := c.GetFullTopic(topic)

	c.subscriptions.Lock()
	c.subscriptions.entries = append(c.subscriptions.entries, subscription{
		topic:   fullTopic,
		handler: messageHandler,
	})
	count := len(c.subscriptions.entries)
	c.subscriptions.Unlock()

	log.Debug().Int("count", count).Str("topic", fullTopic).Msg("Subscribing to topic")
	t := c.mqttClient.Subscribe(fullTopic, c.options.QoS, messageHandler)
	<-t.Done()
	return t.Error()
}

func (c *client) publishServerStatus(status string) error {
	log.Info().Str("status", status).Str("topic", serverStatus).Msg("Updating server status topic")
	return c.PublishAndRetain(serverStatus, status)
}

func (c *client) ServerStatusTopic() string {
	return path.Join(c.options.TopicPrefix, serverStatus)
}

func (c *client) GetFullTopic(topic string) string {
	return path.Join(c.options.TopicPrefix, topic)
}

func (c *client) RawClient() mqtt.Client {
	return c.mqttClient
}
