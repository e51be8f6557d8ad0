package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SizeTierPrice is the price point for one vehicle size within a pricing
// version. The (version, vehicle_size) pair is unique — the store rejects
// a second row for the same pair.
type SizeTierPrice struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VersionID   uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uni_version_size"`
	VehicleSize VehicleSize `gorm:"type:varchar(20);not null;uniqueIndex:uni_version_size;index"`
	// Amounts in the smallest currency unit.
	BaseCost        int64 `gorm:"not null"`
	SuggestedPrice  int64 `gorm:"not null"`
	SizeDescription *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	PricingVersion *PricingVersion `gorm:"foreignKey:VersionID"`
}

func (SizeTierPrice) TableName() string { return "corrosion_pricing_by_size" }

// Margin returns the profit margin of the suggested price.
func (p *SizeTierPrice) Margin() decimal.Decimal {
	return MarginPercent(p.BaseCost, p.SuggestedPrice)
}

// ValidatePricing reports whether the suggested price covers the base cost.
// Not enforced at write time — callers surface it as a warning.
func (p *SizeTierPrice) ValidatePricing() bool {
	return p.SuggestedPrice >= p.BaseCost
}
