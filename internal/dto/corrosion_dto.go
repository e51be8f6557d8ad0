package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AplicarServicioRequest executes the anticorrosion service against a vehicle.
// VehicleSize overrides the classifier, the same way the quote endpoint
// accepts one — exceptions still dictate their own size. FinalPrice overrides
// the resolved price; absent means charge as resolved. ApprovedBy is required
// when the resulting margin falls below the version's minimum.
type AplicarServicioRequest struct {
	CarID       string  `json:"car_id"       validate:"required,uuid"`
	VehicleSize *string `json:"vehicle_size" validate:"omitempty,oneof=small medium large extra_large"`
	FinalPrice  *int64  `json:"final_price"`
	ApprovedBy  *string `json:"approved_by"  validate:"omitempty,uuid"`
	Notes       *string `json:"notes"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type AppliedServiceFilter struct {
	ServiceKind   string `form:"service_kind"`
	VehicleSize   string `form:"vehicle_size"`
	CarID         string `form:"car_id"`
	WithException bool   `form:"with_exception"`
	WithDiscount  bool   `form:"with_discount"`
	DateFrom      string `form:"date_from"`
	DateTo        string `form:"date_to"`
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type StatsFilter struct {
	DateFrom    string `form:"date_from"`
	DateTo      string `form:"date_to"`
	ServiceKind string `form:"service_kind"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// CotizacionResponse is the outcome of resolving a price for a vehicle
// against the active pricing version.
type CotizacionResponse struct {
	Cost          int64           `json:"cost"`
	Price         int64           `json:"price"`
	Margin        decimal.Decimal `json:"margin"`
	UsedException bool            `json:"used_exception"`
	ExceptionID   *string         `json:"exception_id"`
	VehicleSize   string          `json:"vehicle_size"`
	VersionID     string          `json:"version_id"`
	VersionName   string          `json:"version_name"`
}

type AppliedServiceResponse struct {
	ID              string          `json:"id"`
	ServiceKind     string          `json:"service_kind"`
	PricingVersion  string          `json:"pricing_version_id"`
	CarID           string          `json:"car_id"`
	VehicleSize     string          `json:"vehicle_size_applied"`
	VehicleBrand    string          `json:"vehicle_brand"`
	VehicleModel    string          `json:"vehicle_model"`
	FinalCost       int64           `json:"final_cost"`
	FinalPrice      int64           `json:"final_price"`
	MarginAchieved  decimal.Decimal `json:"margin_achieved"`
	DiscountAmount  int64           `json:"discount_amount"`
	ExceptionUsedID *string         `json:"exception_used_id"`
	Notes           *string         `json:"notes"`
	ApprovedBy      *string         `json:"approved_by"`
	MarginStatus    string          `json:"margin_status,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

type AppliedServiceListResponse struct {
	Data  []AppliedServiceResponse `json:"data"`
	Total int64                    `json:"total"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
}

// GeneralStatsResponse aggregates the applied-service ledger.
type GeneralStatsResponse struct {
	TotalServices             int64           `json:"total_services"`
	TotalRevenue              int64           `json:"total_revenue"`
	TotalCost                 int64           `json:"total_cost"`
	AverageMargin             decimal.Decimal `json:"average_margin"`
	TotalDiscounts            int64           `json:"total_discounts"`
	ServicesWithException     int64           `json:"services_with_exception"`
	ServicesRequiringApproval int64           `json:"services_requiring_approval"`
}

// ExceptionUsageResponse reports how one exception price has performed.
type ExceptionUsageResponse struct {
	TimesUsed     int64           `json:"times_used"`
	TotalRevenue  int64           `json:"total_revenue"`
	AverageMargin decimal.Decimal `json:"average_margin"`
}
