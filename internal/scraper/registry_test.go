package scraper

import (
	"context"
	"errors"
	"testing"

	"vinscout/internal/models"
)

func TestResolve(t *testing.T) {
	registry := DefaultRegistry(0)

	tests := []struct {
		url  string
		want string
	}{
		{"https://dallas.craigslist.org/dal/cto/d/7712345678.html", "craigslist"},
		{"https://sfbay.craigslist.org/sby/cto/123.html", "craigslist"},
		{"https://www.autotempest.com/details/abc", "autotempest"},
	}

	for _, tt := range tests {
		source, err := registry.Resolve(tt.url)
		if err != nil {
			t.Errorf("Resolve(%q) error: %v", tt.url, err)
			continue
		}
		if source.Name() != tt.want {
			t.Errorf("Resolve(%q) = %s, want %s", tt.url, source.Name(), tt.want)
		}
	}
}

func TestResolveNoSource(t *testing.T) {
	registry := DefaultRegistry(0)

	_, err := registry.Resolve("https://www.example.com/cars/123")
	if err == nil {
		t.Fatal("expected error for unsupported host")
	}
	var noSource *NoSourceError
	if !errors.As(err, &noSource) {
		t.Fatalf("expected *NoSourceError, got %T", err)
	}
}

type stubSource struct {
	name    string
	handles bool
	vehicle *models.ScrapedVehicle
	err     error
}

func (s *stubSource) Name() string            { return s.name }
func (s *stubSource) CanHandle(_ string) bool { return s.handles }
func (s *stubSource) Scrape(_ context.Context, _ string) (*models.ScrapedVehicle, error) {
	return s.vehicle, s.err
}

func TestResolveFirstMatchWins(t *testing.T) {
	first := &stubSource{name: "first", handles: true}
	second := &stubSource{name: "second", handles: true}
	registry := NewRegistry(first, second)

	source, err := registry.Resolve("https://anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source.Name() != "first" {
		t.Errorf("expected registration order to win, got %s", source.Name())
	}
}

func TestScrapeVehicleWrapsFailure(t *testing.T) {
	failing := &stubSource{name: "failing", handles: true, err: &ExtractionError{URL: "u", Reason: "empty"}}
	registry := NewRegistry(failing)

	_, err := registry.ScrapeVehicle(context.Background(), "https://anything")
	if err == nil {
		t.Fatal("expected wrapped error")
	}
	var scrapeErr *ScrapeError
	if !errors.As(err, &scrapeErr) {
		t.Fatalf("expected *ScrapeError, got %T", err)
	}
	var extraction *ExtractionError
	if !errors.As(err, &extraction) {
		t.Fatal("expected cause to remain reachable via errors.As")
	}
}

func TestScrapeVehicleSuccess(t *testing.T) {
	want := &models.ScrapedVehicle{Title: "2015 Toyota Camry"}
	registry := NewRegistry(&stubSource{name: "ok", handles: true, vehicle: want})

	got, err := registry.ScrapeVehicle(context.Background(), "https://anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != want.Title {
		t.Errorf("title = %q, want %q", got.Title, want.Title)
	}
}
