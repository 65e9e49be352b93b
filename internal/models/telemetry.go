package models

// Telemetry is the retained snapshot published on the telemetry topic.
type Telemetry struct {
	DeviceID        string   `json:"device_id"`
	CustomerID      string   `json:"customer_id"`
	ZoneID          string   `json:"zone_id"`
	ACBrand         string   `json:"ac_brand"`
	ACProtocol      string   `json:"ac_protocol"`
	FirmwareVersion string   `json:"firmware_version"`
	WiFiSSID        string   `json:"wifi_ssid"`
	RSSI            int      `json:"rssi"`
	ACPower         bool     `json:"ac_power"`
	ACMode          Mode     `json:"ac_mode"`
	ACTemperature   int      `json:"ac_temperature"`
	ACFanSpeed      FanSpeed `json:"ac_fanspeed"`
}

// ErrorReport is the structured document published on the error topic.
type ErrorReport struct {
	Category string `json:"type"`
	Message  string `json:"message"`
	Origin   string `json:"origin"`
}

// ErrorOrigin identifies this firmware as the producer of error reports.
const ErrorOrigin = "firmware"
