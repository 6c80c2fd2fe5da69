package models

// ScrapedVehicle is the normalized output of a source adapter. Price and
// mileage are pointers because a listing legitimately may not state them;
// when present they are non-negative with currency formatting stripped.
type ScrapedVehicle struct {
	Title       string   `json:"title"`
	Price       *int     `json:"price"`
	Mileage     *int     `json:"mileage"`
	VIN         string   `json:"vin,omitempty"`
	Year        int      `json:"year,omitempty"`
	Make        string   `json:"make,omitempty"`
	Model       string   `json:"model,omitempty"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	SourceURL   string   `json:"sourceUrl"`

	// Optional attributes lifted from the listing's spec blocks
	Condition    string `json:"condition,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	FuelType     string `json:"fuelType,omitempty"`
	TitleStatus  string `json:"titleStatus,omitempty"`
	Color        string `json:"color,omitempty"`
	Location     string `json:"location,omitempty"`
}
