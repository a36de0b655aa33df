package duco

// Home Assistant unit, device class and state class constants used by the
// descriptor tables. Only values actually emitted by this bridge are listed.
const (
	UnitCelsius string = "°C"
	UnitPascal  string = "Pa"
	UnitPercent string = "%"
	UnitRpm     string = "rpm"
	UnitDbm     string = "dBm"
	UnitSeconds string = "s"
	UnitDays    string = "d"
	UnitPpm     string = "ppm"

	DeviceClassTemperature    string = "temperature"
	DeviceClassHumidity       string = "humidity"
	DeviceClassPressure       string = "pressure"
	DeviceClassCo2            string = "carbon_dioxide"
	DeviceClassSignalStrength string = "signal_strength"
	DeviceClassDuration       string = "duration"

	StateClassMeasurement     string = "measurement"
	StateClassTotalIncreasing string = "total_increasing"
)

// BoxSensor describes one box-level sensor: where to find it in the /info
// document, how to convert the raw value and how to present it. Descriptors
// are pure metadata; values are extracted against a document snapshot at read
// time.
type BoxSensor struct {
	Key         string
	Name        string
	Unit        string
	DeviceClass string
	StateClass  string
	Icon        string

	// Path locates the leaf below the document root and doubles as the
	// existence check: a box without this path simply lacks the feature.
	Path []string
	// Convert is applied to the extracted value. Nil means raw pass-through.
	Convert Converter

	// FirstItemAttr handles the one descriptor (DiagStatus) whose path
	// resolves to a list instead of a leaf: the named attribute is read from
	// the list's first element.
	FirstItemAttr string
}

// Present reports whether the document carries the data path for this sensor.
// Absent paths mean the hardware variant lacks the feature, never an error.
func (s BoxSensor) Present(doc Document) bool {
	return SafeGet(doc, s.Path...) != nil
}

// Value extracts and converts the sensor value from the given document
// snapshot. Missing data yields nil; a conversion failure is returned as an
// error for the caller to surface as entity unavailability.
func (s BoxSensor) Value(doc Document) (interface{}, error) {
	raw := SafeGet(doc, s.Path...)
	if s.FirstItemAttr != "" {
		list, ok := raw.([]interface{})
		if !ok || len(list) == 0 {
			return nil, nil
		}
		return SafeGet(list[0], s.FirstItemAttr), nil
	}
	value := ExtractVal(raw)
	if s.Convert == nil {
		return value, nil
	}
	return s.Convert(value)
}

// BoxSensors is the fixed, ordered descriptor table for the /info document.
// Consumers skip any entry whose Present() check fails on the current
// snapshot.
//
// Temperature naming follows the Duco installation guide: Oda = outdoor air
// to box, Sup = box to house, Eta = house to box, Eha = box to outdoor.
var BoxSensors = []BoxSensor{
	{
		Key:         "TempOda",
		Name:        "Outdoor Temperature",
		Unit:        UnitCelsius,
		DeviceClass: DeviceClassTemperature,
		StateClass:  StateClassMeasurement,
		Path:        []string{SectionInfo, "Ventilation", "Sensor", "TempOda"},
		Convert:     Temperature,
	},
	{
		Key:         "TempSup",
		Name:        "Supply Temperature",
		Unit:        UnitCelsius,
		DeviceClass: DeviceClassTemperature,
		StateClass:  StateClassMeasurement,
		Path:        []string{SectionInfo, "Ventilation", "Sensor", "TempSup"},
		Convert:     Temperature,
	},
	{
		Key:         "TempEta",
		Name:        "Extract Temperature",
		Unit:        UnitCelsius,
		DeviceClass: DeviceClassTemperature,
		StateClass:  StateClassMeasurement,
		Path:        []string{SectionInfo, "Ventilation", "Sensor", "TempEta"},
		Convert:     Temperature,
	},
	{
		Key:         "TempEha",
		Name:        "Exhaust Temperature",
		Unit:        UnitCelsius,
		DeviceClass: DeviceClassTemperature,
		StateClass:  StateClassMeasurement,
		Path:        []string{SectionInfo, "Ventilation", "Sensor", "TempEha"},
		Convert:     Temperature,
	},
	{
		Key:        "SpeedSup",
		Name:       "Supply Fan Speed",
		Unit:       UnitRpm,
		StateClass: StateClassMeasurement,
		Path:       []string{SectionInfo, "Ventilation", "Fan", "SpeedSup"},
		Convert:    Identity,
	},
	{
		Key:        "SpeedEha",
		Name:       "Exhaust Fan Speed",
		Unit:       UnitRpm,
		StateClass: StateClassMeasurement,
		Path:       []string{SectionInfo, "Ventilation", "Fan", "SpeedEha"},
		Convert:    Identity,
	},
	{
		Key:         "PressSup",
		Name:        "Supply Pressure",
		Unit:        UnitPascal,
		DeviceClass: DeviceClassPressure,
		StateClass:  StateClassMeasurement,
		Path:        []string{SectionInfo, "Ventilation", "Fan", "PressSup"},
		Convert:     Pressure,
	},
	{
		Key:         "PressEha",
		Name:        "Exhaust Pressure",
		Unit:        UnitPascal,
		DeviceClass: DeviceClassPressure,
		StateClass:  StateClassMeasurement,
		Path:        []string{SectionInfo, "Ventilation", "Fan", "PressEha"},
		Convert:     Pressure,
	},
	{
		Key:        "PwmSup",
		Name:       "Supply Fan PWM",
		Unit:       UnitPercent,
		StateClass: StateClassMeasurement,
		Path:       []string{SectionInfo, "Ventilation", "Fan", "PwmSup"},
	},
	{
		Key:        "PwmEha",
		Name:       "Exhaust Fan PWM",
		Unit:       UnitPercent,
		StateClass: StateClassMeasurement,
		Path:       []string{SectionInfo, "Ventilation", "Fan", "PwmEha"},
	},
	{
		Key:         "PressSupTgt",
		Name:        "Supply Pressure Target",
		Unit:        UnitPascal,
		DeviceClass: DeviceClassPressure,
		StateClass:  StateClassMeasurement,
		Path:        []string{SectionInfo, "Ventilation", "Fan", "PressSupTgt"},
		Convert:     Pressure,
	},
	{
		Key:         "PressEhaTgt",
		Name:        "Exhaust Pressure Target",
		Unit:        UnitPascal,
		DeviceClass: DeviceClassPressure,
		StateClass:  StateClassMeasurement,
		Path:        []string{SectionInfo, "Ventilation", "Fan", "PressEhaTgt"},
		Convert:     Pressure,
	},
	{
		Key:         "RssiWifi",
		Name:        "Wi-Fi Signal Strength",
		Unit:        UnitDbm,
		DeviceClass: DeviceClassSignalStrength,
		StateClass:  StateClassMeasurement,
		Path:        []string{SectionInfo, "General", "Lan", "RssiWifi"},
		Convert:     Identity,
	},
	{
		Key:         "UpTime",
		Name:        "Device Uptime",
		Unit:        UnitSeconds,
		DeviceClass: DeviceClassDuration,
		StateClass:  StateClassTotalIncreasing,
		Path:        []string{SectionInfo, "General", "Board", "UpTime"},
		Convert:     Identity,
	},
	{
		Key:         "TimeFilterRemain",
		Name:        "Filter Time Remaining",
		Unit:        UnitDays,
		DeviceClass: DeviceClassDuration,
		StateClass:  StateClassMeasurement,
		Path:        []string{SectionInfo, "HeatRecovery", "General", "TimeFilterRemain"},
		Convert:     Identity,
	},
	{
		Key:        "BypassPos",
		Name:       "Bypass Position",
		Unit:       UnitPercent,
		StateClass: StateClassMeasurement,
		Path:       []string{SectionInfo, "HeatRecovery", "Bypass", "Pos"},
		Convert:    BypassPosition,
	},
	{
		Key:         "BypassTempSupTgt",
		Name:        "Bypass Supply Temperature Target",
		Unit:        UnitCelsius,
		DeviceClass: DeviceClassTemperature,
		StateClass:  StateClassMeasurement,
		Path:        []string{SectionInfo, "HeatRecovery", "Bypass", "TempSupTgt"},
		Convert:     Temperature,
	},
	{
		Key:        "FrostProtectState",
		Name:       "Frost Protection State",
		StateClass: StateClassMeasurement,
		Path:       []string{SectionInfo, "HeatRecovery", "ProtectFrost", "State"},
	},
	{
		Key:        "FrostProtectPressReduct",
		Name:       "Frost Protection Pressure Reduction",
		StateClass: StateClassMeasurement,
		Path:       []string{SectionInfo, "HeatRecovery", "ProtectFrost", "PressReduct"},
	},
	{
		Key:         "NightBoostTempOutsideAvg",
		Name:        "NightBoost Outside Temperature Average",
		Unit:        UnitCelsius,
		DeviceClass: DeviceClassTemperature,
		StateClass:  StateClassMeasurement,
		Path:        []string{SectionInfo, "NightBoost", "General", "TempOutsideAvg"},
		Convert:     Temperature,
	},
	{
		Key:        "NightBoostFlowLvlReqZone1",
		Name:       "NightBoost Flow Level Request Zone 1",
		Unit:       UnitPercent,
		StateClass: StateClassMeasurement,
		Path:       []string{SectionInfo, "NightBoost", "General", "FlowLvlReqZone1"},
	},
	{
		Key:        "VentCoolState",
		Name:       "Ventilation Cooling State",
		StateClass: StateClassMeasurement,
		Path:       []string{SectionInfo, "VentCool", "General", "State"},
	},
	{
		Key:         "VentCoolTempInside",
		Name:        "Ventilation Cooling Inside Temperature",
		Unit:        UnitCelsius,
		DeviceClass: DeviceClassTemperature,
		StateClass:  StateClassMeasurement,
		Path:        []string{SectionInfo, "VentCool", "General", "TempInside"},
		Convert:     Temperature,
	},
	{
		Key:           "DiagStatus",
		Name:          "Diagnostic Status",
		Path:          []string{SectionInfo, "Diag", "SubSystems"},
		FirstItemAttr: "Status",
	},
}
