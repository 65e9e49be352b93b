package models

// Config is the provisioned identity of this node. It is created empty on
// first boot, filled in by the provisioning portal and the protocol
// detector, and persisted on every successful change.
type Config struct {
	WiFiSSID        string `json:"wifi_ssid"`
	WiFiPassword    string `json:"wifi_password"`
	CustomerID      string `json:"customer_id"`
	ZoneID          string `json:"zone_id"`
	ACBrand         string `json:"ac_brand"`
	ACProtocol      string `json:"ac_protocol"`
	FirmwareVersion string `json:"firmware_version"`
}

// HasNetwork reports whether network credentials have been provisioned.
func (c Config) HasNetwork() bool {
	return c.WiFiSSID != ""
}

// Complete reports whether the device identity is fully provisioned and
// normal operation (and a message session) is possible.
func (c Config) Complete() bool {
	return c.CustomerID != "" && c.ZoneID != "" && c.ACBrand != "" && c.ACProtocol != ""
}
