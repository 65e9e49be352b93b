// Package ir renders normalized AC commands into infra-red pulse trains
// and fires them through a LIRC character device. Every transmission
// carries the complete AC state: IR remote protocols are stateless per
// frame, so deltas cannot be expressed.
package ir

import (
	"fmt"

	"acnode/internal/catalog"
	"acnode/internal/models"
)

// Transmitter fires a full AC state as one IR frame.
type Transmitter interface {
	// Supported reports whether this emitter has timing data for the
	// protocol. Unsupported catalog entries are skipped by the detector.
	Supported(p catalog.Protocol) bool
	// Transmit renders and sends the complete state. On error nothing is
	// assumed to have reached the AC.
	Transmit(p catalog.Protocol, st models.ACState) error
}

var modeBits = map[models.Mode]uint32{
	models.ModeAuto: 0,
	models.ModeCool: 1,
	models.ModeHeat: 2,
	models.ModeDry:  3,
	models.ModeFan:  4,
}

var fanBits = map[models.FanSpeed]uint32{
	models.FanAuto:   0,
	models.FanLow:    1,
	models.FanMedium: 2,
	models.FanHigh:   3,
}

// encodeState packs the full AC state into the data portion of a code
// word: temperature offset in bits 0-3, fan speed in bits 4-5, mode in
// bits 6-8 and power in bit 9. The protocol's preamble occupies the
// remaining high bits.
func encodeState(t timing, st models.ACState) (uint32, error) {
	mode, ok := modeBits[st.Mode]
	if !ok {
		return 0, fmt.Errorf("unencodable mode %q", st.Mode)
	}
	fan, ok := fanBits[st.FanSpeed]
	if !ok {
		return 0, fmt.Errorf("unencodable fan speed %q", st.FanSpeed)
	}
	if !models.ValidTemperature(st.TemperatureC) {
		return 0, fmt.Errorf("unencodable temperature %d", st.TemperatureC)
	}

	var power uint32
	if st.Power {
		power = 1
	}
	code := t.preamble
	code |= power << 9
	code |= mode << 6
	code |= fan << 4
	code |= uint32(st.TemperatureC - models.MinTemperatureC)
	return code, nil
}

// generatePulses creates the raw pulse sequence for a code word:
// header, then data bits MSB first, then the trailing pulse. Each
// element is a duration in microseconds, alternating mark/space.
func generatePulses(t timing, code uint32) []int {
	pulses := make([]int, 0, 2+2*t.bits+1)
	pulses = append(pulses, t.headerMark, t.headerSpace)
	for i := t.bits - 1; i >= 0; i-- {
		if (code>>uint(i))&1 == 1 {
			pulses = append(pulses, t.oneMark, t.oneSpace)
		} else {
			pulses = append(pulses, t.zeroMark, t.zeroSpace)
		}
	}
	if t.ptrail > 0 {
		pulses = append(pulses, t.ptrail)
	}
	return pulses
}
