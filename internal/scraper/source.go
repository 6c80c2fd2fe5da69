package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"vinscout/internal/models"
)

// Source is one marketplace adapter: a cheap URL predicate plus an
// extractor that turns the listing page into a normalized vehicle record.
// Adapters are stateless and registered once at process start.
type Source interface {
	// Name identifies the adapter in logs and error messages.
	Name() string
	// CanHandle reports whether this adapter understands the URL.
	CanHandle(url string) bool
	// Scrape fetches and extracts the listing. Missing optional fields are
	// not errors; only an unreadable or fully empty page is.
	Scrape(ctx context.Context, url string) (*models.ScrapedVehicle, error)
}

// NoSourceError means no registered adapter matched the URL. This is a
// hard, user-actionable failure ("unsupported site").
type NoSourceError struct {
	URL string
}

func (e *NoSourceError) Error() string {
	return fmt.Sprintf("no scraper registered for URL: %s", e.URL)
}

// ScrapeError wraps an adapter-level failure so callers need not know
// adapter internals.
type ScrapeError struct {
	URL string
	Err error
}

func (e *ScrapeError) Error() string {
	return fmt.Sprintf("scraping failed for %s: %v", e.URL, e.Err)
}

func (e *ScrapeError) Unwrap() error { return e.Err }

// ExtractionError means the page was fetched but held no recognizable
// listing content at all.
type ExtractionError struct {
	URL    string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %s", e.URL, e.Reason)
}

// vinPattern matches a 17-character VIN; I, O and Q are never issued.
var vinPattern = regexp.MustCompile(`(?i)\b([A-HJ-NPR-Z0-9]{17})\b`)

var (
	nonDigits  = regexp.MustCompile(`[^0-9]`)
	yearPrefix = regexp.MustCompile(`^(19|20)\d{2}`)
)

// parseDigits strips every non-digit and parses the remainder. Returns nil
// when nothing numeric is left, so "Call for price" stays unknown rather
// than zero.
func parseDigits(s string) *int {
	cleaned := nonDigits.ReplaceAllString(s, "")
	if cleaned == "" {
		return nil
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// findVIN scans text for the first VIN-shaped token and uppercases it.
func findVIN(text string) string {
	if m := vinPattern.FindStringSubmatch(text); len(m) > 1 {
		return strings.ToUpper(m[1])
	}
	return ""
}

// titleYear parses a leading 4-digit model year off a listing title.
func titleYear(title string) int {
	m := yearPrefix.FindString(title)
	if m == "" {
		return 0
	}
	year, _ := strconv.Atoi(m)
	return year
}

// splitMakeModel splits a combined "make model" token on the first
// whitespace. The first word is the make, the remainder the model.
func splitMakeModel(combined string) (make, model string) {
	parts := strings.Fields(combined)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// hostLocation derives a last-resort geographic guess from the first
// subdomain label, e.g. dallas.craigslist.org -> "Dallas".
func hostLocation(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(u.Hostname(), ".")
	if len(parts) < 3 || parts[0] == "" {
		return ""
	}
	label := parts[0]
	return strings.ToUpper(label[:1]) + label[1:]
}
