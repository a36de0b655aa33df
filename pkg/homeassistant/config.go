package homeassistant

// MqttConfig is the common surface of every discovery config, letting the
// discovery layer decorate entities without knowing their domain.
type MqttConfig interface {
	// GetDevice returns a pointer to the device block for in-place edits.
	GetDevice() *Device
	AddAvailability(Availability) MqttConfig
	GetName() string
	SetName(string) MqttConfig
	SetRetain(bool) MqttConfig
	SetAvailabilityMode(string) MqttConfig
}

// Device groups all entities of one physical unit in Home Assistant.
type Device struct {
	ConfigurationUrl string   `json:"configuration_url"`
	Identifiers      []string `json:"identifiers"`
	Manufacturer     string   `json:"manufacturer"`
	Model            string   `json:"model,omitempty"`
	Name             string   `json:"name"`
	SwVersion        string   `json:"sw_version,omitempty"`
}

// Availability points at a topic deciding whether entities show as
// available.
type Availability struct {
	Topic               string `json:"topic"`
	PayloadAvailable    string `json:"payload_available,omitempty"`
	PayloadNotAvailable string `json:"payload_not_available,omitempty"`
}

// BaseConfig carries the fields shared by every discovery config.
type BaseConfig struct {
	Device           Device         `json:"device"`
	Name             string         `json:"name,omitempty"`
	UniqueId         string         `json:"unique_id,omitempty"`
	Retain           bool           `json:"retain"`
	Availability     []Availability `json:"availability,omitempty"`
	AvailabilityMode string         `json:"availability_mode,omitempty"`
	QoS              int            `json:"qos"`
}

func (c *BaseConfig) GetDevice() *Device {
	return &c.Device
}

func (c *BaseConfig) AddAvailability(availability Availability) MqttConfig {
	c.Availability = append(c.Availability, availability)
	return c
}

func (c *BaseConfig) GetName() string {
	return c.Name
}

func (c *BaseConfig) SetName(name string) MqttConfig {
	c.Name = name
	return c
}

func (c *BaseConfig) SetRetain(retain bool) MqttConfig {
	c.Retain = retain
	return c
}

func (c *BaseConfig) SetAvailabilityMode(mode string) MqttConfig {
	c.AvailabilityMode = mode
	return c
}

// Sensor configuration:
// https://www.home-assistant.io/integrations/sensor.mqtt/
type SensorConfig struct {
	BaseConfig
	StateTopic        string `json:"state_topic,omitempty"`
	UnitOfMeasurement string `json:"unit_of_measurement,omitempty"`
	DeviceClass       string `json:"device_class,omitempty"`
	StateClass        string `json:"state_class,omitempty"`
	Icon              string `json:"icon,omitempty"`
	ValueTemplate     string `json:"value_template,omitempty"`
}

// Number configuration:
// https://www.home-assistant.io/integrations/number.mqtt/
type NumberConfig struct {
	BaseConfig
	CommandTopic      string  `json:"command_topic,omitempty"`
	StateTopic        string  `json:"state_topic,omitempty"`
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
	Step              float64 `json:"step,omitempty"`
	Mode              string  `json:"mode,omitempty"`
	UnitOfMeasurement string  `json:"unit_of_measurement,omitempty"`
	DeviceClass       string  `json:"device_class,omitempty"`
	Icon              string  `json:"icon,omitempty"`
	EntityCategory    string  `json:"entity_category,omitempty"`
}

// Switch configuration:
// https://www.home-assistant.io/integrations/switch.mqtt/
type SwitchConfig struct {
	BaseConfig
	CommandTopic   string `json:"command_topic,omitempty"`
	StateTopic     string `json:"state_topic,omitempty"`
	PayloadOn      string `json:"payload_on,omitempty"`
	PayloadOff     string `json:"payload_off,omitempty"`
	StateOn        string `json:"state_on,omitempty"`
	StateOff       string `json:"state_off,omitempty"`
	Icon           string `json:"icon,omitempty"`
	EntityCategory string `json:"entity_category,omitempty"`
}

// Select configuration:
// https://www.home-assistant.io/integrations/select.mqtt/
type SelectConfig struct {
	BaseConfig
	CommandTopic   string   `json:"command_topic,omitempty"`
	StateTopic     string   `json:"state_topic,omitempty"`
	Options        []string `json:"options"`
	Icon           string   `json:"icon,omitempty"`
	EntityCategory string   `json:"entity_category,omitempty"`
}

// Button configuration:
// https://www.home-assistant.io/integrations/button.mqtt/
type ButtonConfig struct {
	BaseConfig
	CommandTopic   string `json:"command_topic,omitempty"`
	PayloadPress   string `json:"payload_press,omitempty"`
	Icon           string `json:"icon,omitempty"`
	DeviceClass    string `json:"device_class,omitempty"`
	EntityCategory string `json:"entity_category,omitempty"`
}
