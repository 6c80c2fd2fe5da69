package vin

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"vinscout/internal/models"
)

const defaultDecodeBaseURL = "https://vpic.nhtsa.dot.gov/api/vehicles"

// decodeResponse is the vPIC DecodeVin payload: a flat array of
// variable/value pairs.
type decodeResponse struct {
	Results []struct {
		Variable string  `json:"Variable"`
		Value    *string `json:"Value"`
	} `json:"Results"`
}

// Decoder resolves year/make/model/specs from a VIN via the NHTSA vPIC
// API.
type Decoder struct {
	client *resty.Client
}

// NewDecoder builds a decode client with a bounded request timeout.
func NewDecoder(timeout time.Duration) *Decoder {
	return NewDecoderWithBaseURL(defaultDecodeBaseURL, timeout)
}

// NewDecoderWithBaseURL allows tests to point the client at a stub server.
func NewDecoderWithBaseURL(baseURL string, timeout time.Duration) *Decoder {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	return &Decoder{client: client}
}

// Decode returns decoded specs, or nil when the VIN is malformed or the
// decode service cannot answer. Malformed input never reaches the network.
func (d *Decoder) Decode(ctx context.Context, rawVIN string) *models.VinSpecs {
	if !IsValid(rawVIN) {
		return nil
	}
	vinUpper := strings.ToUpper(rawVIN)

	var payload decodeResponse
	resp, err := d.client.R().
		SetContext(ctx).
		SetResult(&payload).
		SetQueryParam("format", "json").
		Get("/decodevin/" + vinUpper)
	if err != nil {
		log.Printf("[vin] decode request failed for %s: %v", vinUpper, err)
		return nil
	}
	if resp.IsError() {
		log.Printf("[vin] decode returned %d for %s", resp.StatusCode(), vinUpper)
		return nil
	}
	if len(payload.Results) == 0 {
		return nil
	}

	values := make(map[string]string, len(payload.Results))
	for _, item := range payload.Results {
		if item.Value == nil {
			continue
		}
		if v := strings.TrimSpace(*item.Value); v != "" {
			values[item.Variable] = v
		}
	}

	return &models.VinSpecs{
		Year:         values["Model Year"],
		Make:         CleanMake(values["Make"]),
		Model:        values["Model"],
		Trim:         values["Trim"],
		Engine:       values["Engine Model"],
		Transmission: values["Transmission Style"],
		FuelType:     values["Fuel Type - Primary"],
		Seats:        values["Seats"],
		BodyClass:    values["Body Class"],
	}
}
