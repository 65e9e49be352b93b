package netlink

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"acnode/internal/logger"
)

const hotspotConnection = "Hotspot"

// NMCLI drives the link through NetworkManager's CLI on the target
// board.
type NMCLI struct {
	iface    string
	attempts int
	delay    time.Duration
	log      *logger.Logger
}

// NewNMCLI returns a manager for the given wireless interface.
// attempts bounds Connect; delay separates consecutive attempts.
func NewNMCLI(iface string, attempts int, delay time.Duration, log *logger.Logger) *NMCLI {
	return &NMCLI{iface: iface, attempts: attempts, delay: delay, log: log}
}

// Connect joins the network, retrying up to the attempt bound.
func (n *NMCLI) Connect(ctx context.Context, ssid, password string) error {
	var lastErr error
	for attempt := 1; attempt <= n.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		out, err := exec.CommandContext(ctx, "nmcli", "dev", "wifi", "connect", ssid,
			"password", password, "ifname", n.iface).CombinedOutput()
		if err == nil && n.IsConnected() {
			n.log.Infow("wifi connected", "ssid", ssid, "attempt", attempt, "rssi_dbm", n.SignalStrength())
			return nil
		}
		lastErr = fmt.Errorf("nmcli connect: %v (%s)", err, strings.TrimSpace(string(out)))
		n.log.Warnw("wifi connect attempt failed", "ssid", ssid, "attempt", attempt, "err", lastErr)
		time.Sleep(n.delay)
	}
	return fmt.Errorf("connect to %q after %d attempts: %w", ssid, n.attempts, lastErr)
}

// IsConnected reports whether the interface has an active connection.
func (n *NMCLI) IsConnected() bool {
	out, err := exec.Command("nmcli", "-g", "GENERAL.STATE", "dev", "show", n.iface).Output()
	if err != nil {
		return false
	}
	state := strings.TrimSpace(string(out))
	return strings.Contains(state, "(connected)")
}

// SignalStrength converts the in-use network's signal percentage to an
// approximate dBm figure (quality/2 - 100).
func (n *NMCLI) SignalStrength() int {
	out, err := exec.Command("nmcli", "-g", "IN-USE,SIGNAL", "dev", "wifi", "list", "ifname", n.iface).Output()
	if err != nil {
		return 0
	}
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Split(line, ":")
		if len(fields) != 2 || strings.TrimSpace(fields[0]) != "*" {
			continue
		}
		if pct, err := strconv.Atoi(strings.TrimSpace(fields[1])); err == nil {
			return pct/2 - 100
		}
	}
	return 0
}

// DeviceID returns the interface MAC as colon-less upper hex.
func (n *NMCLI) DeviceID() string {
	ifc, err := net.InterfaceByName(n.iface)
	if err != nil || len(ifc.HardwareAddr) == 0 {
		return ""
	}
	mac := ifc.HardwareAddr.String()
	return strings.ToUpper(strings.ReplaceAll(mac, ":", ""))
}

// StartAP brings up the setup hotspot.
func (n *NMCLI) StartAP(ssid, password string) error {
	out, err := exec.Command("nmcli", "dev", "wifi", "hotspot",
		"ifname", n.iface, "con-name", hotspotConnection, "ssid", ssid, "password", password).CombinedOutput()
	if err != nil {
		return fmt.Errorf("start hotspot %q: %v (%s)", ssid, err, strings.TrimSpace(string(out)))
	}
	n.log.Infow("setup hotspot started", "ssid", ssid)
	return nil
}

// StopAP tears the setup hotspot down.
func (n *NMCLI) StopAP() error {
	out, err := exec.Command("nmcli", "connection", "down", hotspotConnection).CombinedOutput()
	if err != nil {
		return fmt.Errorf("stop hotspot: %v (%s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}
