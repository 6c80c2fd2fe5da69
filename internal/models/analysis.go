package models

// Section status values. A degraded section means the upstream source could
// not be read, which is not the same thing as the source returning nothing.
const (
	SectionOK       = "ok"
	SectionDegraded = "degraded"
)

// Recommendation labels produced by the verdict generator.
const (
	RecommendationGreat   = "GREAT"
	RecommendationFair    = "FAIR"
	RecommendationCaution = "CAUTION"
	RecommendationUnknown = "UNKNOWN"
)

// VinAnalysis is the full result of one VIN verification run. It is built
// once per VIN per cache-TTL window and treated as immutable after that.
type VinAnalysis struct {
	Meta    AnalysisMeta   `json:"meta"`
	Specs   VinSpecs       `json:"specs"`
	Safety  SafetySection  `json:"safety"`
	History HistorySection `json:"history"`
	Verdict Verdict        `json:"verdict"`
}

type AnalysisMeta struct {
	VIN       string `json:"vin"`
	Timestamp int64  `json:"timestamp"`
}

// VinSpecs holds decoded vehicle identity. Year/make/model fall back to
// "Unknown" when the decode service is unreachable.
type VinSpecs struct {
	Year         string `json:"year"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Trim         string `json:"trim"`
	Engine       string `json:"engine,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	FuelType     string `json:"fuelType,omitempty"`
	Seats        string `json:"seats,omitempty"`
	BodyClass    string `json:"bodyClass,omitempty"`
}

// UnknownSpecs is the failsafe state when decoding fails.
func UnknownSpecs() VinSpecs {
	return VinSpecs{Year: "Unknown", Make: "Unknown", Model: "Unknown"}
}

type SafetySection struct {
	Status  string   `json:"status"`
	Recalls []Recall `json:"recalls"`
}

type Recall struct {
	RecallID          string `json:"recall_id"`
	AffectedComponent string `json:"affected_component"`
	Description       string `json:"description"`
	RemedyAction      string `json:"remedy_action"`
	IsCritical        bool   `json:"is_critical"`
}

type HistorySection struct {
	Status      string             `json:"status"`
	Maintenance []MaintenanceEvent `json:"maintenance"`
}

// MaintenanceEvent is one timeline entry from the vehicle-history page.
// Error is set on the sentinel entry substituted when the page could not
// be read; a sentinel never carries date/mileage/description.
type MaintenanceEvent struct {
	Date        string `json:"date,omitempty"`
	Mileage     *int   `json:"mileage,omitempty"`
	Description string `json:"description,omitempty"`
	Error       string `json:"error,omitempty"`
}

type Verdict struct {
	Score          int      `json:"score"`
	Alerts         []string `json:"alerts"`
	Recommendation string   `json:"recommendation"`
}
