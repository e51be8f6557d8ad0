package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearVersionRequest creates a new pricing version for a service.
// Dates are "YYYY-MM-DD"; amounts are in the smallest currency unit.
type CrearVersionRequest struct {
	Name              string           `json:"name"               validate:"required,min=2,max=255"`
	EffectiveDate     string           `json:"effective_date"     validate:"required,datetime=2006-01-02"`
	EndDate           *string          `json:"end_date"           validate:"omitempty,datetime=2006-01-02"`
	Cost              int64            `json:"cost"               validate:"min=0"`
	NegotiationMargin *int64           `json:"negotiation_margin"`
	MinMarginPercent  *decimal.Decimal `json:"min_margin_percent"`
	Notes             *string          `json:"notes"`
}

type EndVersionRequest struct {
	EndDate string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type CrearTarifaRequest struct {
	VehicleSize     string  `json:"vehicle_size"     validate:"required,oneof=small medium large extra_large"`
	BaseCost        int64   `json:"base_cost"        validate:"min=0"`
	SuggestedPrice  int64   `json:"suggested_price"  validate:"min=0"`
	SizeDescription *string `json:"size_description"`
}

type CrearExcepcionRequest struct {
	Brand        string  `json:"brand"         validate:"required,max=100"`
	Model        string  `json:"model"         validate:"required,max=100"`
	YearRange    *string `json:"year_range"    validate:"omitempty,len=9"`
	VehicleSize  string  `json:"vehicle_size"  validate:"required,oneof=small medium large extra_large"`
	SpecialCost  int64   `json:"special_cost"  validate:"min=0"`
	SpecialPrice int64   `json:"special_price" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VersionResponse struct {
	ID                string          `json:"id"`
	ServiceID         string          `json:"service_id"`
	Name              string          `json:"name"`
	EffectiveDate     string          `json:"effective_date"`
	EndDate           *string         `json:"end_date"`
	Cost              int64           `json:"cost"`
	NegotiationMargin *int64          `json:"negotiation_margin"`
	MinMarginPercent  decimal.Decimal `json:"min_margin_percent"`
	Notes             *string         `json:"notes"`
	Active            bool            `json:"active"`
}

type TarifaResponse struct {
	ID              string          `json:"id"`
	VersionID       string          `json:"version_id"`
	VehicleSize     string          `json:"vehicle_size"`
	BaseCost        int64           `json:"base_cost"`
	SuggestedPrice  int64           `json:"suggested_price"`
	Margin          decimal.Decimal `json:"margin"`
	SizeDescription *string         `json:"size_description"`
	// PriceBelowCost warns when the suggested price does not cover the cost.
	PriceBelowCost bool `json:"price_below_cost,omitempty"`
}

type ExcepcionResponse struct {
	ID           string          `json:"id"`
	VersionID    string          `json:"version_id"`
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	YearRange    *string         `json:"year_range"`
	VehicleSize  string          `json:"vehicle_size"`
	SpecialCost  int64           `json:"special_cost"`
	SpecialPrice int64           `json:"special_price"`
	Margin       decimal.Decimal `json:"margin"`
	IsActive     bool            `json:"is_active"`
	FullName     string          `json:"full_name"`
}
