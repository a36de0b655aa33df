package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ConfigDuco struct {
	Host           string
	Port           int
	PollInterval   time.Duration
	RequestTimeout time.Duration
}
type ConfigMqtt struct {
	MqttUrl             string
	Username            string
	Password            string
	TopicPrefix         string
	NormalizeDeviceName bool
	Retain              bool
	Qos                 byte
}
type ConfigHomeAssistant struct {
	DiscoveryEnabled     bool
	DiscoveryTopicPrefix string
	RemoveRegexpFromName string
	DucoHost             string
	Retain               bool
}
type HealthCheckConfig struct {
	Enabled bool
	Port    int
}
type Config struct {
	Duco          ConfigDuco
	Mqtt          ConfigMqtt
	HomeAssistant ConfigHomeAssistant
	HealthCheck   HealthCheckConfig
	LogLevel      string
}

const (
	undefined                               string = "__undefined__"
	envKeyDucoHost                          string = "duco_host"
	envKeyDucoPort                          string = "duco_port"
	envKeyDucoPollIntervalSeconds           string = "duco_poll_interval_seconds"
	envKeyDucoRequestTimeoutSeconds         string = "duco_request_timeout_seconds"
	envKeyMqttUrl                           string = "mqtt_url"
	envKeyMqttUsername                      string = "mqtt_username"
	envKeyMqttPassword                      string = "mqtt_password"
	envKeyMqttTopicPrefix                   string = "mqtt_topic_prefix"
	envKeyMqttNormalizeTopicName            string = "mqtt_normalize_device_name"
	envKeyMqttRetain                        string = "mqtt_retain"
	envKeyMqttQos                           string = "mqtt_qos"
	envKeyLogLevel                          string = "log_level"
	envKeyHomeAssistantDiscoveryEnabled     string = "home_assistant_discovery_enabled"
	envKeyHomeAssistantDiscoveryPrefix      string = "home_assistant_discovery_prefix"
	envKeyHomeAssistantRemoveRegexpFromName string = "home_assistant_remove_regexp_from_name"
	envKeyHealthCheckEnabled                string = "health_check_enabled"
	envKeyHealthCheckPort                   string = "health_check_port"
)

var defaultConfig = map[string]interface{}{
	envKeyDucoHost:                          undefined,
	envKeyDucoPort:                          443,
	envKeyDucoPollIntervalSeconds:           30,
	envKeyDucoRequestTimeoutSeconds:         10,
	envKeyMqttUrl:                           undefined,
	envKeyMqttUsername:                      "",
	envKeyMqttPassword:                      "",
	envKeyMqttTopicPrefix:                   "ducobox",
	envKeyMqttNormalizeTopicName:            true,
	envKeyMqttRetain:                        false,
	envKeyMqttQos:                           0,
	envKeyLogLevel:                          "INFO",
	envKeyHomeAssistantDiscoveryEnabled:     true,
	envKeyHomeAssistantDiscoveryPrefix:      "homeassistant",
	envKeyHomeAssistantRemoveRegexpFromName: "",
	envKeyHealthCheckEnabled:                false,
	envKeyHealthCheckPort:                   8080,
}

// ReadConfig returns a Config from config.yaml and env variables. Env
// variables take precedence and use the uppercased key names.
func ReadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	// Look for the config file where the binary is being run.
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	for key, value := range defaultConfig {
		if value != undefined {
			viper.SetDefault(key, value)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional as long as the required fields come
		// from the environment.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("ReadInConfig error: %w", err)
		}
	}

	for fieldName, defaultValue := range defaultConfig {
		if defaultValue == undefined && !viper.IsSet(fieldName) {
			return nil, fmt.Errorf("required field not found in config: %s", fieldName)
		}
	}

	config := &Config{
		Duco: ConfigDuco{
			Host:           viper.GetString(envKeyDucoHost),
			Port:           viper.GetInt(envKeyDucoPort),
			PollInterval:   time.Duration(viper.GetInt(envKeyDucoPollIntervalSeconds)) * time.Second,
			RequestTimeout: time.Duration(viper.GetInt(envKeyDucoRequestTimeoutSeconds)) * time.Second,
		},
		Mqtt: ConfigMqtt{
			MqttUrl:             viper.GetString(envKeyMqttUrl),
			Username:            viper.GetString(envKeyMqttUsername),
			Password:            viper.GetString(envKeyMqttPassword),
			TopicPrefix:         viper.GetString(envKeyMqttTopicPrefix),
			NormalizeDeviceName: viper.GetBool(envKeyMqttNormalizeTopicName),
			Retain:              viper.GetBool(envKeyMqttRetain),
			Qos:                 byte(viper.GetUint(envKeyMqttQos)),
		},
		HomeAssistant: ConfigHomeAssistant{
			DiscoveryEnabled:     viper.GetBool(envKeyHomeAssistantDiscoveryEnabled),
			DiscoveryTopicPrefix: viper.GetString(envKeyHomeAssistantDiscoveryPrefix),
			RemoveRegexpFromName: viper.GetString(envKeyHomeAssistantRemoveRegexpFromName),
			DucoHost:             viper.GetString(envKeyDucoHost),
			Retain:               viper.GetBool(envKeyMqttRetain),
		},
		HealthCheck: HealthCheckConfig{
			Enabled: viper.GetBool(envKeyHealthCheckEnabled),
			Port:    viper.GetInt(envKeyHealthCheckPort),
		},
		LogLevel: viper.GetString(envKeyLogLevel),
	}

	return config, nil
}

// String leaves out the MQTT credentials so the config can be logged.
func (c *Config) String() string {
	return fmt.Sprintf("duco=%+v mqttUrl=%s topicPrefix=%s", c.Duco, c.Mqtt.MqttUrl, c.Mqtt.TopicPrefix)
}
