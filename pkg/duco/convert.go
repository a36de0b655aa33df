package duco

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Converter transforms a raw extracted value into the value exposed to the
// entity layer. Every converter maps nil to nil without error; a non-nil
// value that cannot be coerced to a number is reported as an error since it
// means the device API broke its own contract.
type Converter func(value interface{}) (interface{}, error)

// toFloat coerces JSON numbers, Go numeric types and numeric strings to
// float64. The device API occasionally returns numbers as strings.
func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func numeric(value interface{}) (float64, error) {
	f, ok := toFloat(value)
	if !ok {
		return 0, fmt.Errorf("value %v (%T) is not numeric", value, value)
	}
	return f, nil
}

// Temperature converts tenths of a degree to degrees Celsius.
func Temperature(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	f, err := numeric(value)
	if err != nil {
		return nil, err
	}
	return f / 10, nil
}

// Pressure converts the raw fan pressure reading to Pascal.
func Pressure(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	f, err := numeric(value)
	if err != nil {
		return nil, err
	}
	return f * 0.1, nil
}

// BypassPosition rounds the bypass valve position to the nearest whole
// percent, ties away from zero.
func BypassPosition(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	f, err := numeric(value)
	if err != nil {
		return nil, err
	}
	return int(math.Round(f)), nil
}

// Identity passes the value through unchanged. Kept as a named converter so
// unit changes for speed, rssi, uptime and the node quantities have a single
// place to land.
func Identity(value interface{}) (interface{}, error) {
	return value, nil
}
