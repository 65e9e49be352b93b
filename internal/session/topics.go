package session

// Topic layout: node/<customer>/<device>/<suffix>. The device id is the
// hardware network address.

// Topics builds the per-device topic set once tenant identity is known.
type Topics struct {
	CustomerID string
	DeviceID   string
}

// Command names carried as the last topic segment.
const (
	CommandPower       = "power"
	CommandMode        = "mode"
	CommandTemperature = "temperature"
	CommandFanSpeed    = "fanspeed"
)

// CommandNames lists the subscribed command topics in a fixed order.
var CommandNames = []string{CommandPower, CommandMode, CommandTemperature, CommandFanSpeed}

func (t Topics) base() string {
	return "node/" + t.CustomerID + "/" + t.DeviceID
}

// Status is the retained online/offline topic, also used as the last will.
func (t Topics) Status() string { return t.base() + "/status" }

// Telemetry is the retained snapshot topic.
func (t Topics) Telemetry() string { return t.base() + "/telemetry" }

// Error is the error-report topic.
func (t Topics) Error() string { return t.base() + "/error" }

// Command returns one of the four command topics.
func (t Topics) Command(name string) string { return t.base() + "/command/" + name }

// OTA is the firmware-update request topic.
func (t Topics) OTA() string { return t.base() + "/ota/update" }
