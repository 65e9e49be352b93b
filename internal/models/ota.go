package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// OTARequest is the payload of an over-the-air update message. The wire
// format is a JSON document with named required fields; the historical
// "<url>,<version>" form is rejected as malformed.
type OTARequest struct {
	URL     string `json:"url"`
	Version string `json:"version"`
}

var errOTANotJSON = errors.New("ota payload is not a JSON document")

// ParseOTARequest decodes and validates an OTA payload. A payload that is
// not JSON, or that is missing a required field, is a validation error;
// the caller reports it and performs no download.
func ParseOTARequest(payload []byte) (OTARequest, error) {
	var req OTARequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return OTARequest{}, errOTANotJSON
	}
	if req.URL == "" {
		return OTARequest{}, fmt.Errorf("ota payload missing required field %q", "url")
	}
	if req.Version == "" {
		return OTARequest{}, fmt.Errorf("ota payload missing required field %q", "version")
	}
	return req, nil
}
