package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExceptionPrice is a brand/model(/year-range) override price point that
// bypasses size-tier pricing for frequently serviced vehicles.
// Deactivation is a soft flag; rows are never deleted while referenced.
type ExceptionPrice struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VersionID uuid.UUID `gorm:"type:uuid;not null;index:idx_exceptions_version_active"`
	Brand     string    `gorm:"not null;index:idx_exceptions_brand_model"`
	Model     string    `gorm:"not null;index:idx_exceptions_brand_model"`
	// YearRange is "YYYY-YYYY" with inclusive bounds; nil matches any year.
	YearRange    *string     `gorm:"type:varchar(9)"`
	VehicleSize  VehicleSize `gorm:"type:varchar(20);not null"`
	SpecialCost  int64       `gorm:"not null"`
	SpecialPrice int64       `gorm:"not null"`
	IsActive     bool        `gorm:"not null;default:true;index:idx_exceptions_version_active"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	PricingVersion *PricingVersion `gorm:"foreignKey:VersionID"`
}

func (ExceptionPrice) TableName() string { return "most_used_vehicles" }

// Margin returns the profit margin of the special price.
func (e *ExceptionPrice) Margin() decimal.Decimal {
	return MarginPercent(e.SpecialCost, e.SpecialPrice)
}

// FullName returns "Brand Model (range)" for display.
func (e *ExceptionPrice) FullName() string {
	name := e.Brand + " " + e.Model
	if e.YearRange != nil {
		name += " (" + *e.YearRange + ")"
	}
	return name
}

// YearInRange reports whether the year falls inside YearRange, bounds
// inclusive. An absent range matches any year; a malformed range matches none.
func (e *ExceptionPrice) YearInRange(year string) bool {
	if e.YearRange == nil || *e.YearRange == "" {
		return true
	}
	parts := strings.Split(*e.YearRange, "-")
	if len(parts) != 2 {
		return false
	}
	start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	end, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	check, err3 := strconv.Atoi(strings.TrimSpace(year))
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	return check >= start && check <= end
}

// Matches reports whether this exception applies to the queried vehicle.
// Brand and model match on case-insensitive substring in either direction:
// the stored value may be broader ("Toyota") or narrower ("Toyota Prado")
// than the query. Year is checked only when the caller supplies one.
// Inactive exceptions never match.
func (e *ExceptionPrice) Matches(brand, model, year string) bool {
	if !e.IsActive {
		return false
	}
	if !containsEitherWay(brand, e.Brand) || !containsEitherWay(model, e.Model) {
		return false
	}
	if year == "" {
		return true
	}
	return e.YearInRange(year)
}

func containsEitherWay(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}
