// Package backend is the client for the cloud API: zone validation
// during provisioning and device registration after protocol discovery.
// Both calls authenticate with a static device secret header.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"acnode/internal/logger"
)

const secretHeader = "X-Device-Secret"

// Registration is the device-registration request body.
type Registration struct {
	DeviceID        string `json:"device_id"`
	ZoneID          string `json:"zone_id"`
	ACBrandName     string `json:"ac_brand_name"`
	ACBrandProtocol string `json:"ac_brand_protocol"`
	FirmwareVersion string `json:"firmware_version"`
}

// Client talks to the backend over HTTPS with a bounded timeout.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
	log     *logger.Logger
}

// NewClient builds a backend client. timeout bounds every call.
func NewClient(baseURL, secret string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		secret:  secret,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// ValidateZone asks the backend whether the tenant/zone pair is valid.
func (c *Client) ValidateZone(ctx context.Context, customerID, zoneID string) (bool, error) {
	body := map[string]string{
		"customer_id": customerID,
		"zone_id":     zoneID,
	}
	resp, err := c.post(ctx, c.baseURL+"/validate-zone", body)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("zone validation failed with HTTP %d", resp.StatusCode)
	}
	var out struct {
		Valid bool `json:"valid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("parse zone validation response: %w", err)
	}
	c.log.Infow("zone validated", "customer_id", customerID, "zone_id", zoneID, "valid", out.Valid)
	return out.Valid, nil
}

// RegisterDevice registers this node under the customer account. Any
// response other than 201 Created is a denial.
func (c *Client) RegisterDevice(ctx context.Context, customerID string, reg Registration) error {
	url := fmt.Sprintf("%s/customers/%s/devices", c.baseURL, customerID)
	resp, err := c.post(ctx, url, reg)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("device registration failed with HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	c.log.Infow("device registered", "customer_id", customerID, "device_id", reg.DeviceID)
	return nil
}

func (c *Client) post(ctx context.Context, url string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(secretHeader, c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", url, err)
	}
	return resp, nil
}
