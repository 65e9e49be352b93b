package models

import "fmt"

// Mode is an AC operating mode as carried on the wire and in storage.
type Mode string

const (
	ModeAuto Mode = "auto"
	ModeCool Mode = "cool"
	ModeHeat Mode = "heat"
	ModeDry  Mode = "dry"
	ModeFan  Mode = "fan"
)

// FanSpeed is an AC fan speed setting.
type FanSpeed string

const (
	FanAuto   FanSpeed = "auto"
	FanLow    FanSpeed = "low"
	FanMedium FanSpeed = "medium"
	FanHigh   FanSpeed = "high"
)

// Temperature domain accepted by every supported remote protocol.
const (
	MinTemperatureC = 16
	MaxTemperatureC = 30
)

var validModes = map[Mode]struct{}{
	ModeAuto: {}, ModeCool: {}, ModeHeat: {}, ModeDry: {}, ModeFan: {},
}

var validFanSpeeds = map[FanSpeed]struct{}{
	FanAuto: {}, FanLow: {}, FanMedium: {}, FanHigh: {},
}

// ParseMode maps a wire value to a Mode. Unknown values are an explicit
// error, never a silent default.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if _, ok := validModes[m]; !ok {
		return "", fmt.Errorf("unknown mode %q", s)
	}
	return m, nil
}

// ParseFanSpeed maps a wire value to a FanSpeed.
func ParseFanSpeed(s string) (FanSpeed, error) {
	f := FanSpeed(s)
	if _, ok := validFanSpeeds[f]; !ok {
		return "", fmt.Errorf("unknown fan speed %q", s)
	}
	return f, nil
}

// ValidTemperature reports whether t is inside the accepted target range.
func ValidTemperature(t int) bool {
	return t >= MinTemperatureC && t <= MaxTemperatureC
}

// ACState is the last successfully transmitted AC command. It is mutated
// only after a confirmed IR send, never for a pending command.
type ACState struct {
	Power        bool     `json:"power"`
	Mode         Mode     `json:"mode"`
	TemperatureC int      `json:"temperature_c"`
	FanSpeed     FanSpeed `json:"fanspeed"`
}

// DefaultACState mirrors the factory defaults of the remote: unit off,
// cooling at 25 with a medium fan.
func DefaultACState() ACState {
	return ACState{
		Power:        false,
		Mode:         ModeCool,
		TemperatureC: 25,
		FanSpeed:     FanMedium,
	}
}

// Valid reports whether a loaded state record holds representable values.
// Used to discard corrupt persisted records in favor of defaults.
func (s ACState) Valid() bool {
	if _, ok := validModes[s.Mode]; !ok {
		return false
	}
	if _, ok := validFanSpeeds[s.FanSpeed]; !ok {
		return false
	}
	return ValidTemperature(s.TemperatureC)
}
