package validation

import (
	"strings"
	"testing"
)

func TestValidateListingURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid https", "https://dallas.craigslist.org/dal/cto/d/123.html", false},
		{"valid http", "http://www.autotempest.com/details/abc", false},
		{"empty", "", true},
		{"no scheme", "www.autotempest.com/details/abc", true},
		{"ftp scheme", "ftp://example.com/file", true},
		{"javascript scheme", "javascript:alert(1)", true},
		{"no hostname", "https:///path-only", true},
		{"too long", "https://example.com/" + strings.Repeat("a", 2048), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateListingURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateListingURL(%q) err = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
