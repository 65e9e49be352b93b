package ir

import (
	"fmt"
	"syscall"
	"time"

	"acnode/internal/catalog"
	"acnode/internal/logger"
	"acnode/internal/models"
)

// LIRC ioctl constants for configuring the IR transmission hardware.
const (
	lircSetSendMode    = 0x40046911
	lircSetSendCarrier = 0x40046913
	lircModePulse      = 0x2 // raw pulse/space timings
	bytesPerPulse      = 4
)

// LIRCTransmitter drives a kernel LIRC character device (e.g. /dev/lirc0).
type LIRCTransmitter struct {
	device string
	log    *logger.Logger
}

// NewLIRCTransmitter returns a transmitter writing frames to device.
func NewLIRCTransmitter(device string, log *logger.Logger) *LIRCTransmitter {
	return &LIRCTransmitter{device: device, log: log}
}

// Supported reports whether the timing table carries the protocol.
func (t *LIRCTransmitter) Supported(p catalog.Protocol) bool {
	_, ok := timings[p]
	return ok
}

// Transmit renders the complete state into one frame and writes it to
// the LIRC device. The protocol's inter-frame gap is honored before
// returning so back-to-back sends do not merge.
func (t *LIRCTransmitter) Transmit(p catalog.Protocol, st models.ACState) error {
	row, ok := timings[p]
	if !ok {
		return fmt.Errorf("protocol %s not supported by this emitter", p)
	}
	code, err := encodeState(row, st)
	if err != nil {
		return fmt.Errorf("encode %s frame: %w", p, err)
	}
	pulses := generatePulses(row, code)
	if err := t.writePulses(row.frequency, pulses); err != nil {
		return fmt.Errorf("send %s frame: %w", p, err)
	}
	if row.gap > 0 {
		time.Sleep(time.Duration(row.gap) * time.Microsecond)
	}
	t.log.Debugw("ir frame sent", "protocol", p, "pulses", len(pulses))
	return nil
}

// writePulses sets the carrier and writes the pulse timings to the LIRC
// device as little-endian 32-bit integers, the format lircd expects.
func (t *LIRCTransmitter) writePulses(frequency int, pulses []int) error {
	fd, err := syscall.Open(t.device, syscall.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open device %s: %w", t.device, err)
	}
	defer syscall.Close(fd)

	_, _, _ = syscall.Syscall(syscall.SYS_IOCTL, uintptr(fd), uintptr(lircSetSendMode), uintptr(lircModePulse))
	if frequency > 0 {
		// Some devices reject LIRC_SET_SEND_CARRIER but transmit fine.
		_, _, _ = syscall.Syscall(syscall.SYS_IOCTL, uintptr(fd), uintptr(lircSetSendCarrier), uintptr(frequency))
	}

	buf := make([]byte, len(pulses)*bytesPerPulse)
	for i, pulse := range pulses {
		off := i * bytesPerPulse
		buf[off] = byte(pulse)
		buf[off+1] = byte(pulse >> 8)
		buf[off+2] = byte(pulse >> 16)
		buf[off+3] = byte(pulse >> 24)
	}
	if n, err := syscall.Write(fd, buf); err != nil {
		return fmt.Errorf("write failed after %d bytes: %w", n, err)
	}
	return nil
}
