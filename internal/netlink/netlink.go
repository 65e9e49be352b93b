// Package netlink manages the local wireless link: joining the
// provisioned network with bounded retries, signal readout, and the
// setup access point served while the node is unconfigured.
package netlink

import "context"

// Manager is the wireless link contract polled by the orchestrator.
type Manager interface {
	// Connect joins the network with a bounded number of synchronous
	// attempts and a short delay between them.
	Connect(ctx context.Context, ssid, password string) error
	IsConnected() bool
	// SignalStrength is the current link RSSI in dBm.
	SignalStrength() int
	// DeviceID is the hardware network address (upper-case hex, no
	// separators), used as the messaging device id.
	DeviceID() string
	StartAP(ssid, password string) error
	StopAP() error
}

// APSSID derives the unique setup-network name from the device id.
func APSSID(deviceID string) string {
	suffix := deviceID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return "AC_Control_" + suffix
}
