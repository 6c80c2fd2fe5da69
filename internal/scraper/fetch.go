package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// commonHeaders is the fixed browser-shaped header bundle sent with every
// listing fetch. Marketplace sites drop obviously scripted clients.
var commonHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Referer":                   "https://www.google.com/",
	"Cache-Control":             "no-cache",
	"Pragma":                    "no-cache",
	"Sec-Ch-Ua":                 `"Not_A Brand";v="8", "Chromium";v="120", "Google Chrome";v="120"`,
	"Sec-Ch-Ua-Mobile":          "?0",
	"Sec-Ch-Ua-Platform":        `"Windows"`,
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Upgrade-Insecure-Requests": "1",
}

// FetchError reports a failed page fetch. Status is 0 when the request
// never produced a response (DNS, connect, timeout).
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher retrieves raw listing HTML. One attempt, no retry policy; a
// failure is surfaced immediately to the caller.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher builds a fetcher with the common header bundle and a bounded
// request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeaders(commonHeaders).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	return &Fetcher{client: client}
}

// Fetch issues a GET and returns the body text, or a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	if resp.IsError() {
		return "", &FetchError{URL: url, Status: resp.StatusCode()}
	}
	return resp.String(), nil
}
