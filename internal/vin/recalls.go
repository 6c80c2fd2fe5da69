package vin

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"

	"vinscout/internal/models"
)

const defaultRecallBaseURL = "https://api.nhtsa.gov"

// criticalPattern flags recalls whose summary or notes describe conditions
// a buyer must not ignore.
var criticalPattern = regexp.MustCompile(`(?i)fire|stall|brakes|do not drive`)

type recallResponse struct {
	Results []struct {
		NHTSACampaignNumber string `json:"NHTSACampaignNumber"`
		Component           string `json:"Component"`
		Summary             string `json:"Summary"`
		Remedy              string `json:"Remedy"`
		Notes               string `json:"Notes"`
	} `json:"results"`
}

// RecallClient queries the public NHTSA recalls endpoint for open recalls
// on a decoded make/model/year.
type RecallClient struct {
	client *resty.Client
}

// NewRecallClient builds a recall client with a bounded request timeout.
func NewRecallClient(timeout time.Duration) *RecallClient {
	return NewRecallClientWithBaseURL(defaultRecallBaseURL, timeout)
}

// NewRecallClientWithBaseURL allows tests to point the client at a stub
// server.
func NewRecallClientWithBaseURL(baseURL string, timeout time.Duration) *RecallClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	return &RecallClient{client: client}
}

// FetchRecalls returns every classified recall for the vehicle. A request
// failure is returned as an error so the caller can mark the section
// degraded instead of conflating it with "zero recalls".
func (r *RecallClient) FetchRecalls(ctx context.Context, vehicleMake, model, year string) ([]models.Recall, error) {
	var payload recallResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&payload).
		SetQueryParams(map[string]string{
			"make":      vehicleMake,
			"model":     model,
			"modelYear": year,
		}).
		Get("/recalls/recallsByVehicle")
	if err != nil {
		return nil, fmt.Errorf("recall lookup: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("recall lookup: status %d", resp.StatusCode())
	}

	recalls := make([]models.Recall, 0, len(payload.Results))
	for _, raw := range payload.Results {
		// Unresolved components carry no actionable information
		if raw.Component == "UNKNOWN" {
			continue
		}
		recalls = append(recalls, models.Recall{
			RecallID:          raw.NHTSACampaignNumber,
			AffectedComponent: raw.Component,
			Description:       raw.Summary,
			RemedyAction:      raw.Remedy,
			IsCritical:        criticalPattern.MatchString(raw.Summary) || criticalPattern.MatchString(raw.Notes),
		})
	}
	return recalls, nil
}
