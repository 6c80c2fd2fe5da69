// Package analysis runs the VIN verification pipeline: cache check, spec
// decode, recall lookup, service-history scrape, verdict, cache write.
package analysis

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"vinscout/internal/models"
	"vinscout/internal/verdict"
	"vinscout/internal/vin"
)

// ErrInvalidVIN is the only hard failure the pipeline produces; everything
// downstream of validation degrades into data instead of erroring.
var ErrInvalidVIN = errors.New("invalid VIN: expected 17 characters excluding I, O and Q")

// SpecDecoder resolves identity specs from a VIN; nil means unknown.
type SpecDecoder interface {
	Decode(ctx context.Context, vin string) *models.VinSpecs
}

// RecallFetcher lists open recalls for a decoded vehicle.
type RecallFetcher interface {
	FetchRecalls(ctx context.Context, make, model, year string) ([]models.Recall, error)
}

// HistoryScraper returns the service timeline, sentinel entry included on
// failure.
type HistoryScraper interface {
	ScrapeServiceHistory(ctx context.Context, vin string) []models.MaintenanceEvent
}

// Cache is the optional analysis store. Implementations must be safe to
// call on an absent backend (always miss, drop writes).
type Cache interface {
	Get(vin string) (*models.VinAnalysis, bool)
	Put(vin string, analysis *models.VinAnalysis) error
}

// Engine executes analyses strictly sequentially per request: later stages
// consume earlier results, so there is no fan-out to coordinate.
type Engine struct {
	decoder SpecDecoder
	recalls RecallFetcher
	history HistoryScraper
	cache   Cache
}

func NewEngine(decoder SpecDecoder, recalls RecallFetcher, history HistoryScraper, cache Cache) *Engine {
	return &Engine{decoder: decoder, recalls: recalls, history: history, cache: cache}
}

// RunAnalysis produces a best-effort VinAnalysis for the VIN. Cached
// results are returned as-is; a fresh computation is written back with the
// full TTL before returning. Degraded sections are marked, never fatal.
func (e *Engine) RunAnalysis(ctx context.Context, rawVIN string) (*models.VinAnalysis, error) {
	if !vin.IsValid(rawVIN) {
		return nil, ErrInvalidVIN
	}
	key := strings.ToUpper(rawVIN)

	if cached, ok := e.cache.Get(key); ok {
		log.Printf("[analysis] warm cache hit for %s", key)
		return cached, nil
	}

	analysis := &models.VinAnalysis{
		Meta:    models.AnalysisMeta{VIN: key, Timestamp: time.Now().UnixMilli()},
		Specs:   models.UnknownSpecs(),
		Safety:  models.SafetySection{Status: models.SectionOK, Recalls: []models.Recall{}},
		History: models.HistorySection{Status: models.SectionOK, Maintenance: []models.MaintenanceEvent{}},
		Verdict: models.Verdict{Score: 100, Alerts: []string{}, Recommendation: models.RecommendationUnknown},
	}

	specs := e.decoder.Decode(ctx, key)
	if specs != nil {
		analysis.Specs = *specs
	}

	// Recall lookup needs a decoded make/model; without one the check is
	// unavailable, which is not the same as a clean zero-recall result.
	if specs == nil || specs.Make == "" {
		analysis.Safety.Status = models.SectionDegraded
	} else {
		recalls, err := e.recalls.FetchRecalls(ctx, specs.Make, specs.Model, specs.Year)
		if err != nil {
			log.Printf("[analysis] recall lookup degraded for %s: %v", key, err)
			analysis.Safety.Status = models.SectionDegraded
		} else {
			analysis.Safety.Recalls = recalls
		}
	}

	analysis.History.Maintenance = e.history.ScrapeServiceHistory(ctx, key)
	if len(analysis.History.Maintenance) == 1 && analysis.History.Maintenance[0].Error != "" {
		analysis.History.Status = models.SectionDegraded
	}

	analysis.Verdict = verdict.Generate(analysis.Safety.Recalls, analysis.History.Maintenance)
	if analysis.Safety.Status == models.SectionDegraded {
		analysis.Verdict.Alerts = append(analysis.Verdict.Alerts, "Recall check unavailable")
	}

	if err := e.cache.Put(key, analysis); err != nil {
		log.Printf("[analysis] cache write error for %s: %v", key, err)
	}
	return analysis, nil
}
