package validation

import (
	"fmt"
	"net/url"
)

// maxURLLength caps import URLs; marketplace listing URLs are never longer
// in practice and oversized input is a cheap abuse vector.
const maxURLLength = 2048

// ValidateListingURL checks that a user-supplied import URL is an absolute
// http(s) URL with a hostname.
func ValidateListingURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("url must not be empty")
	}
	if len(raw) > maxURLLength {
		return fmt.Errorf("url must be at most %d characters", maxURLLength)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("url is not valid: %v", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https")
	}
	if parsed.Hostname() == "" {
		return fmt.Errorf("url must include a hostname")
	}

	return nil
}
