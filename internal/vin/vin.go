// Package vin validates VINs and resolves them against the public NHTSA
// APIs. Decode and recall lookups are best-effort: a failure downgrades to
// "specs unknown" / "no recalls readable" rather than aborting an analysis.
package vin

import (
	"regexp"
	"strings"
)

// vinShape is the 17-character VIN alphabet; I, O and Q are never issued.
var vinShape = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

// IsValid reports whether s is a well-formed VIN.
func IsValid(s string) bool {
	if len(s) != 17 {
		return false
	}
	return vinShape.MatchString(strings.ToUpper(s))
}

// corpSuffixes are corporate boilerplate tokens NHTSA appends to
// manufacturer names ("TOYOTA MOTOR NORTH AMERICA, INC.").
var corpSuffixes = regexp.MustCompile(`(?i)\b(CORP|CORPORATION|INC|LLC|MOTOR|CO|COMPANY|NORTH AMERICA|USA|GROUP|HOLDINGS)\b`)

var nonAlphaNum = regexp.MustCompile(`[^A-Za-z0-9/ -]`)

// CleanMake reduces a raw manufacturer string to its consumer-facing brand:
// corporate suffixes stripped, first remaining token title-cased, with the
// multi-brand holding companies mapped to the labels buyers actually use.
func CleanMake(raw string) string {
	cleaned := corpSuffixes.ReplaceAllString(raw, "")
	cleaned = nonAlphaNum.ReplaceAllString(cleaned, "")
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return ""
	}

	word := strings.ToLower(fields[0])
	make := strings.ToUpper(word[:1]) + word[1:]

	switch strings.ToLower(make) {
	case "fca", "stellantis":
		return "Chrysler/Jeep"
	case "volkswagen":
		return "Volkswagen"
	}
	return make
}
