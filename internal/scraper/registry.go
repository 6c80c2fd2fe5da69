package scraper

import (
	"context"
	"log"
	"time"

	"vinscout/internal/models"
)

// Registry holds every registered source adapter in registration order.
// Resolution is a linear first-match-wins scan; adapters currently use
// disjoint hostname checks, but order stays significant should two
// adapters ever overlap.
type Registry struct {
	sources []Source
}

// NewRegistry builds a registry over the given adapters, preserving order.
func NewRegistry(sources ...Source) *Registry {
	return &Registry{sources: sources}
}

// DefaultRegistry wires the production adapter set against one shared
// fetcher.
func DefaultRegistry(fetchTimeout time.Duration) *Registry {
	fetcher := NewFetcher(fetchTimeout)
	return NewRegistry(
		NewCraigslist(fetcher),
		NewAutoTempest(fetcher),
	)
}

// Resolve returns the first adapter whose predicate matches, or a
// *NoSourceError. Fails closed: an unknown host is never guessed at.
func (r *Registry) Resolve(url string) (Source, error) {
	for _, source := range r.sources {
		if source.CanHandle(url) {
			return source, nil
		}
	}
	return nil, &NoSourceError{URL: url}
}

// ScrapeVehicle resolves the adapter for the URL and runs it, wrapping any
// extractor-level failure in a uniform *ScrapeError.
func (r *Registry) ScrapeVehicle(ctx context.Context, url string) (*models.ScrapedVehicle, error) {
	source, err := r.Resolve(url)
	if err != nil {
		return nil, err
	}

	log.Printf("[scrape] %s handling %s", source.Name(), url)
	vehicle, err := source.Scrape(ctx, url)
	if err != nil {
		return nil, &ScrapeError{URL: url, Err: err}
	}
	return vehicle, nil
}
