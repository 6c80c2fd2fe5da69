package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"vinscout/internal/models"
)

// AutoTempest extracts vehicle data from autotempest.com detail pages.
// AutoTempest aggregates other marketplaces, so detail URLs sometimes
// redirect to the upstream site; the selector chains stay generic enough to
// still recover the essentials, and the VIN is the piece that matters most.
type AutoTempest struct {
	fetcher *Fetcher
}

func NewAutoTempest(fetcher *Fetcher) *AutoTempest {
	return &AutoTempest{fetcher: fetcher}
}

func (a *AutoTempest) Name() string { return "autotempest" }

func (a *AutoTempest) CanHandle(url string) bool {
	return strings.Contains(url, "autotempest.com")
}

func (a *AutoTempest) Scrape(ctx context.Context, url string) (*models.ScrapedVehicle, error) {
	html, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return a.extract(html, url)
}

func (a *AutoTempest) extract(html, url string) (*models.ScrapedVehicle, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ExtractionError{URL: url, Reason: "unparseable HTML"}
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(strings.ReplaceAll(doc.Find("title").Text(), "- AutoTempest.com", ""))
	}

	price := firstDigits(doc, ".price", ".listing-detail-price", `[itemprop="price"]`)
	mileage := firstDigits(doc, ".mileage", ".listing-detail-mileage")

	// VIN: narrowly scoped spec blocks first, full document body as last
	// resort.
	var vin string
	doc.Find(".spec, .detail, dd, td").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if len(text) >= 17 {
			if found := findVIN(text); found != "" {
				vin = found
				return false
			}
		}
		return true
	})
	if vin == "" {
		vin = findVIN(doc.Find("body").Text())
	}

	var makeName, model string
	year := titleYear(title)
	if title != "" {
		remainder := strings.TrimSpace(yearPrefix.ReplaceAllString(title, ""))
		makeName, model = splitMakeModel(remainder)
	}

	var images []string
	doc.Find(`img.listing-image, .gallery img, [itemprop="image"]`).Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || src == "" {
			src, _ = sel.Attr("data-src")
		}
		if strings.HasPrefix(src, "http") {
			images = append(images, src)
		}
	})

	if title == "" && price == nil && vin == "" {
		return nil, &ExtractionError{URL: url, Reason: "page contains no listing content"}
	}

	return &models.ScrapedVehicle{
		Title:   title,
		Price:   price,
		Mileage: mileage,
		VIN:     vin,
		Year:    year,
		Make:    makeName,
		Model:   model,
		// Detail pages rarely carry a full description
		Description: title,
		Images:      images,
		SourceURL:   url,
	}, nil
}

// firstDigits runs the selector priority chain and parses the first one
// that yields text.
func firstDigits(doc *goquery.Document, selectors ...string) *int {
	for _, selector := range selectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			if n := parseDigits(text); n != nil {
				return n
			}
		}
	}
	return nil
}
