package scraper

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"vinscout/internal/models"
)

// Craigslist extracts vehicle listings from craigslist.org posting pages.
// Listing markup varies by region and template version, so every field
// degrades through increasingly generic heuristics instead of failing the
// whole extraction when one selector misses.
type Craigslist struct {
	fetcher *Fetcher
}

func NewCraigslist(fetcher *Fetcher) *Craigslist {
	return &Craigslist{fetcher: fetcher}
}

func (c *Craigslist) Name() string { return "craigslist" }

func (c *Craigslist) CanHandle(url string) bool {
	return strings.Contains(url, "craigslist.org")
}

var trailingParens = regexp.MustCompile(`\(([^)]+)\)\s*$`)

func (c *Craigslist) Scrape(ctx context.Context, url string) (*models.ScrapedVehicle, error) {
	html, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return c.extract(html, url)
}

func (c *Craigslist) extract(html, url string) (*models.ScrapedVehicle, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ExtractionError{URL: url, Reason: "unparseable HTML"}
	}

	title := strings.TrimSpace(doc.Find("#titletextonly").Text())

	var price *int
	if priceText := strings.TrimSpace(doc.Find(".price").First().Text()); priceText != "" {
		price = parseDigits(priceText)
	}

	// Location: caption near the title, then trailing parenthetical in the
	// full title line, then the hostname subdomain.
	location := strings.TrimSpace(doc.Find(".postingtitletext small").Text())
	location = strings.Trim(location, "()")
	if location == "" {
		fullTitle := doc.Find(".postingtitle").Text()
		if m := trailingParens.FindStringSubmatch(strings.TrimSpace(fullTitle)); len(m) > 1 {
			location = m[1]
		}
	}
	if location == "" {
		location = hostLocation(url)
	}

	attributes := c.parseAttrGroups(doc)

	var mileage *int
	if odo, ok := attributes["odometer"]; ok {
		mileage = parseDigits(odo)
	}

	description := c.cleanDescription(doc)

	// VIN: labeled attribute, then alternative keys, then a regex scan over
	// the description, then the title as last resort.
	vin := strings.ToUpper(strings.TrimSpace(attributes["vin"]))
	if vin == "" {
		vin = strings.ToUpper(strings.TrimSpace(attributes["vin number"]))
	}
	if vin == "" {
		vin = strings.ToUpper(strings.TrimSpace(attributes["vehicle id"]))
	}
	if vin == "" && description != "" {
		vin = findVIN(description)
	}
	if vin == "" {
		vin = findVIN(title)
	}

	// Make/model: the makemodel attribute span when present, first word is
	// the make. Titles alone are too ambiguous to guess a make from.
	var makeName, model string
	if combined := strings.TrimSpace(doc.Find(".makemodel").Text()); combined != "" {
		makeName, model = splitMakeModel(combined)
		if model == "" {
			model = combined
		}
	}

	year := titleYear(title)
	if year == 0 {
		if yearText := strings.TrimSpace(doc.Find(".attrgroup .year").Text()); yearText != "" {
			year, _ = strconv.Atoi(yearText)
		}
	}

	var images []string
	doc.Find("#thumbs a").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			images = append(images, href)
		}
	})
	if len(images) == 0 {
		if src, ok := doc.Find(".swipe .slide").First().Find("img").Attr("src"); ok && src != "" {
			images = append(images, src)
		}
	}

	if title == "" && description == "" && len(attributes) == 0 {
		return nil, &ExtractionError{URL: url, Reason: "page contains no listing content"}
	}

	return &models.ScrapedVehicle{
		Title:        title,
		Price:        price,
		Mileage:      mileage,
		VIN:          vin,
		Year:         year,
		Make:         makeName,
		Model:        model,
		Description:  description,
		Images:       images,
		SourceURL:    url,
		Condition:    attributes["condition"],
		Transmission: attributes["transmission"],
		FuelType:     attributes["fuel"],
		TitleStatus:  attributes["title status"],
		Color:        attributes["paint color"],
		Location:     location,
	}, nil
}

// parseAttrGroups collects label/value pairs out of the posting's
// .attrgroup blocks. Two layouts exist in the wild: explicit labl/valu
// spans, and bare "key: value" spans.
func (c *Craigslist) parseAttrGroups(doc *goquery.Document) map[string]string {
	attributes := make(map[string]string)

	doc.Find(".attrgroup .attr").Each(func(_ int, sel *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sel.Find(".labl").Text()), ":")))
		value := strings.TrimSpace(sel.Find(".valu").Text())
		if value == "" {
			value = strings.TrimSpace(sel.Find(".valu a").Text())
		}
		if label != "" && value != "" {
			attributes[label] = value
		}
	})

	doc.Find(".attrgroup span").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		k, v, found := strings.Cut(text, ":")
		if !found {
			return
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if k != "" && v != "" {
			if _, exists := attributes[k]; !exists {
				attributes[k] = v
			}
		}
	})

	return attributes
}

// cleanDescription returns the posting body without the QR-code boilerplate
// craigslist injects at the top.
func (c *Craigslist) cleanDescription(doc *goquery.Document) string {
	body := doc.Find("#postingbody").Clone()
	body.Children().Remove()
	description := strings.TrimSpace(body.Text())
	description = strings.ReplaceAll(description, "QR Code Link to This Post", "")
	return strings.TrimSpace(description)
}
