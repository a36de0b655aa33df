package controller

import (
	"fmt"

	"github.com/ducobridge/ducobox-mqtt/pkg/config"
	"github.com/ducobridge/ducobox-mqtt/pkg/controller/modules"
	"github.com/ducobridge/ducobox-mqtt/pkg/duco"
	"github.com/ducobridge/ducobox-mqtt/pkg/health"
	"github.com/ducobridge/ducobox-mqtt/pkg/homeassistant"
	"github.com/ducobridge/ducobox-mqtt/pkg/mqtt"
	"github.com/rs/zerolog/log"
)

type Controller struct {
	ducoClient    duco.Client
	ducoRegistry  duco.Registry
	mqttClient    mqtt.Client
	hassDiscovery *homeassistant.HomeAssistantDiscovery
	healthCheck   health.Health

	modules map[string]modules.Module
}

func NewController(config *config.Config) *Controller {
	// Create DucoBox client.
	ducoOptions := duco.NewClientOptions().
		SetHost(config.Duco.Host).
		SetPort(config.Duco.Port).
		SetRequestTimeout(config.Duco.RequestTimeout)
	ducoClient := duco.NewClient(ducoOptions)
	ducoRegistry := duco.NewRegistry(ducoClient, config.Duco.PollInterval)

	mqttOptions := mqtt.NewClientOptions().
		SetMqttUrl(config.Mqtt.MqttUrl).
		SetUsername(config.Mqtt.Username).
		SetPassword(config.Mqtt.Password).
		SetTopicPrefix(config.Mqtt.TopicPrefix).
		SetRetain(config.Mqtt.Retain).
		SetQoS(config.Mqtt.Qos)
	mqttClient := mqtt.NewClient(mqttOptions)

	hassDiscovery := homeassistant.NewHomeAssistantDiscovery(
		mqttClient,
		&config.HomeAssistant)

	controller := Controller{
		ducoClient:    ducoClient,
		ducoRegistry:  ducoRegistry,
		mqttClient:    mqttClient,
		hassDiscovery: hassDiscovery,
		modules:       map[string]modules.Module{},
	}

	if config.HealthCheck.Enabled {
		controller.healthCheck = health.NewHealth(config.HealthCheck, mqttClient, ducoRegistry)
	}

	for name, builder := range modules.Modules {
		module := builder(mqttClient, ducoClient, ducoRegistry, config)
		controller.modules[name] = module
	}

	return &controller
}

func (c *Controller) Start() error {
	log.Info().Msg("Starting controller.")
	if err := c.mqttClient.Connect(); err != nil {
		return fmt.Errorf("error connecting to MQTT client: %w", err)
	}
	if err := c.ducoClient.Connect(); err != nil {
		return fmt.Errorf("error connecting to DucoBox client: %w", err)
	}
	if err := c.ducoRegistry.Start(); err != nil {
		return fmt.Errorf("error starting the DucoBox registry: %w", err)
	}

	for name, module := range c.modules {
		log.Info().Str("module", name).Msg("Starting module.")
		if err := module.Start(); err != nil {
			return fmt.Errorf("error starting module '%s': %w", name, err)
		}
	}

	if err := c.publishDiscoveryMessages(); err != nil {
		return err
	}

	// Modules publish on refresh; push one refresh now that all state topic
	// subscribers are in place.
	if err := c.ducoRegistry.Refresh(); err != nil {
		return fmt.Errorf("error on initial device refresh: %w", err)
	}

	if c.healthCheck != nil {
		if err := c.healthCheck.Start(); err != nil {
			return fmt.Errorf("error starting the health check server: %w", err)
		}
	}

	return nil
}

func (c *Controller) Stop() error {
	log.Info().Msg("Stopping controller.")

	if c.healthCheck != nil {
		if err := c.healthCheck.Stop(); err != nil {
			return fmt.Errorf("error stopping the health check server: %w", err)
		}
	}

	for name, module := range c.modules {
		log.Info().Str("module", name).Msg("Stopping module.")
		if err := module.Stop(); err != nil {
			return fmt.Errorf("error stopping module '%s': %w", name, err)
		}
	}

	if err := c.ducoRegistry.Stop(); err != nil {
		return fmt.Errorf("error stopping the DucoBox registry: %w", err)
	}
	if err := c.mqttClient.Disconnect(); err != nil {
		return fmt.Errorf("error disconnecting to MQTT client: %w", err)
	}
	if err := c.ducoClient.Disconnect(); err != nil {
		return fmt.Errorf("error disconnecting to DucoBox client: %w", err)
	}

	return nil
}

func (c *Controller) publishDiscoveryMessages() error {
	for name, module := range c.modules {
		discovery, ok := module.(homeassistant.HomeAssistantDiscoveryInterface)
		if !ok {
			continue
		}
		configs, err := discovery.GetHomeAssistantEntities()
		if err != nil {
			return fmt.Errorf("error getting Home Assistant entities from module '%s': %w", name, err)
		}
		c.hassDiscovery.AddConfigs(configs)
	}
	if err := c.hassDiscovery.PublishDiscoveryMessages(); err != nil {
		return fmt.Errorf("error publishing Home Assistant discovery messages: %w", err)
	}
	return nil
}
