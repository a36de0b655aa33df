package mqtt

import (
	"time"
)

// ClientOptions holds the settings for the MQTT client publishing the
// DucoBox data.
type ClientOptions struct {
	MqttUrl           string
	Username          string
	Password          string
	TopicPrefix       string
	Retain            bool
	QoS               byte
	DisconnectTimeout time.Duration
}

// NewClientOptions returns options with the defaults applied: topic prefix
// "ducobox", QoS 0, retain off, one second disconnect timeout.
func NewClientOptions() *ClientOptions {
	return &ClientOptions{
		TopicPrefix:       "ducobox",
		Retain:            false,
		QoS:               0,
		DisconnectTimeout: 1 * time.Second,
	}
}

// SetMqttUrl sets the address of the MQTT broker to connect to.
func (o *ClientOptions) SetMqttUrl(url string) *ClientOptions {
	o.MqttUrl = url
	return o
}

// SetUsername sets the username presented to the broker.
func (o *ClientOptions) SetUsername(username string) *ClientOptions {
	o.Username = username
	return o
}

// SetPassword sets the password presented to the broker.
func (o *ClientOptions) SetPassword(password string) *ClientOptions {
	o.Password = password
	return o
}

// SetTopicPrefix sets the prefix prepended to every published topic.
func (o *ClientOptions) SetTopicPrefix(prefix string) *ClientOptions {
	o.TopicPrefix = prefix
	return o
}

// SetRetain sets the retain flag applied to regular state messages.
func (o *ClientOptions) SetRetain(retain bool) *ClientOptions {
	o.Retain = retain
	return o
}

// SetQoS sets the quality of service level for publishes and subscriptions.
func (o *ClientOptions) SetQoS(qos byte) *ClientOptions {
	o.QoS = qos
	return o
}
