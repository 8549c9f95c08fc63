package domain

import "time"

type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
)

type EquipmentCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconName    string `json:"icon_name"`
}

// Equipment is read-only for the booking flow. Rates are whole currency units.
type Equipment struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	Brand              string             `json:"brand"`
	Model              string             `json:"model"`
	YearManufactured   int32              `json:"year_manufactured"`
	CategoryID         string             `json:"category_id"`
	Category           *EquipmentCategory `json:"category,omitempty"` // Populated when fetching details
	DailyRate          int64              `json:"daily_rate"`
	WeeklyRate         int64              `json:"weekly_rate"`
	MonthlyRate        int64              `json:"monthly_rate"`
	Location           string             `json:"location"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status"`
	Features           []string           `json:"features"`
	Specifications     map[string]string  `json:"specifications"`
	Images             []string           `json:"images"`
	CreatedAt          time.Time          `json:"created_at"`
}

func (e *Equipment) IsAvailable() bool {
	return e.AvailabilityStatus == AvailabilityAvailable
}

// EquipmentFilter mirrors the catalogue query string. CategoryID is resolved
// from Category by the service; an unknown category name filters nothing.
type EquipmentFilter struct {
	Category   string
	CategoryID string
	Location   string
	Search     string
	MinPrice   int64
	MaxPrice   int64
}
