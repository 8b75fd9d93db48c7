package settings

import "time"

// Setting is a single application-wide configuration value.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Well-known setting keys.
const (
	KeyDefaultTaxRate = "default_tax_rate" // percent, e.g. "16"
	KeyCurrency       = "currency"
	KeyHotelName      = "hotel_name"
)

// UpsertSettingRequest is the payload for creating or replacing a setting.
type UpsertSettingRequest struct {
	Value string `json:"value"`
}
