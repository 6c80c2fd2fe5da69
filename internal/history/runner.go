package history

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"vinscout/internal/models"
)

const (
	reportBaseURL = "https://www.vehiclehistory.com/vin-report/"

	// Hard ceiling for the whole navigation+interaction sequence
	scrapeTimeout = 30 * time.Second
	// Settle delay after opening the service-history tab; the timeline
	// renders client-side
	tabSettleDelay = 1500 * time.Millisecond

	// SentinelUnavailable marks the single placeholder entry substituted
	// when the history page times out or blocks us.
	SentinelUnavailable = "History unavailable - Timeout or Blocked"
	sentinelLaunchFail  = "Browser failed to launch"
)

var digits = regexp.MustCompile(`[^0-9]`)

// Runner owns one browser per invocation. The browser is never pooled or
// shared: it belongs to the in-flight scrape that launched it and is torn
// down unconditionally on exit.
type Runner struct {
	launcher Launcher
}

func NewRunner(launcher Launcher) *Runner {
	return &Runner{launcher: launcher}
}

// ScrapeServiceHistory returns the vehicle's service timeline. It never
// fails: any launch, navigation or extraction problem collapses into a
// single sentinel error entry so the verdict logic always receives a
// well-formed list.
func (r *Runner) ScrapeServiceHistory(ctx context.Context, vin string) []models.MaintenanceEvent {
	browser, err := r.launcher.Launch()
	if err != nil {
		log.Printf("[history] browser launch error: %v", err)
		return []models.MaintenanceEvent{{Error: sentinelLaunchFail}}
	}
	defer browser.Close()

	events, err := r.scrapeReport(ctx, browser, vin)
	if err != nil {
		log.Printf("[history] scrape failed for %s: %v", vin, err)
		return []models.MaintenanceEvent{{Error: SentinelUnavailable}}
	}
	return events
}

// scrapeReport drives the vin-report page. Returns an error on timeout,
// navigation failure or a blocked page; rod's Must helpers panic, so the
// whole sequence runs under a recover.
func (r *Runner) scrapeReport(ctx context.Context, browser *rod.Browser, vin string) (events []models.MaintenanceEvent, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			events, err = nil, fmt.Errorf("page interaction panic: %v", rec)
		}
	}()

	page, err := stealth.Page(browser)
	if err != nil {
		return nil, fmt.Errorf("stealth page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(scrapeTimeout)

	// Wait for DOM content only, not network idle; history pages keep
	// streaming trackers long after the timeline is readable.
	wait := page.WaitEvent(&proto.PageDomContentEventFired{})
	if err := page.Navigate(reportBaseURL + strings.ToUpper(vin)); err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}
	wait()

	r.openServiceHistoryTab(page)

	items, err := page.Elements(".timeline-item")
	if err != nil {
		return nil, fmt.Errorf("timeline lookup: %w", err)
	}

	events = []models.MaintenanceEvent{}
	for _, item := range items {
		date := elementText(item, ".service-history-date")
		mileageRaw := elementText(item, ".service-history-mileage")
		description := elementText(item, ".service-history-description")

		if date == "" && description == "" {
			continue
		}
		events = append(events, models.MaintenanceEvent{
			Date:        date,
			Mileage:     parseMileage(mileageRaw),
			Description: description,
		})
	}
	return events, nil
}

// openServiceHistoryTab clicks the service-history tab control when it is
// present and visible, then waits for the client-side render. A missing
// tab is not an error; some reports show the timeline inline.
func (r *Runner) openServiceHistoryTab(page *rod.Page) {
	tab, err := page.Timeout(3 * time.Second).Element(`a[data-target="#service-history"]`)
	if err != nil || tab == nil {
		return
	}
	visible, err := tab.Visible()
	if err != nil || !visible {
		return
	}
	if err := tab.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return
	}
	time.Sleep(tabSettleDelay)
}

func elementText(el *rod.Element, selector string) string {
	child, err := el.Element(selector)
	if err != nil || child == nil {
		return ""
	}
	text, err := child.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// parseMileage is a digits-only parse; nil when the page shows no usable
// number.
func parseMileage(raw string) *int {
	cleaned := digits.ReplaceAllString(raw, "")
	if cleaned == "" {
		return nil
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return nil
	}
	return &n
}
