package entities

import "time"

// PlatformSettings is the admin-wide configuration row holding default
// commission rates. Rates are percentages (0-100); a zero value means "use
// the hardcoded per-type default".
//
// Storage model (DynamoDB): single row, PK id = "platform".
type PlatformSettings struct {
	ID                    string    `json:"id"`
	SessionCommissionRate float64   `json:"session_commission_rate,omitempty"`
	EventCommissionRate   float64   `json:"event_commission_rate,omitempty"`
	CourseCommissionRate  float64   `json:"course_commission_rate,omitempty"`
	ProductCommissionRate float64   `json:"product_commission_rate,omitempty"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// PlatformSettingsID is the fixed primary key of the settings row.
const PlatformSettingsID = "platform"
