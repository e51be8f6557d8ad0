package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingVersion is one time-bounded pricing policy for a service.
// Versions are never mutated after creation; a superseded version is
// end-dated, not deleted. At most one version should be active for a
// service on a given date — overlap is rejected at write time.
type PricingVersion struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ServiceID     uuid.UUID `gorm:"type:uuid;not null;index:idx_versions_effective_service"`
	Name          string    `gorm:"not null"`
	EffectiveDate time.Time `gorm:"type:date;not null;index:idx_versions_effective_service"`
	// EndDate nil means open-ended.
	EndDate *time.Time `gorm:"type:date"`
	// Cost is the informational base cost negotiated for the period,
	// in the smallest currency unit (Colombian pesos, no decimals).
	Cost              int64  `gorm:"not null"`
	NegotiationMargin *int64
	MinMarginPercent  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:20.00"`
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	SizePrices []SizeTierPrice  `gorm:"foreignKey:VersionID;constraint:OnDelete:CASCADE"`
	Exceptions []ExceptionPrice `gorm:"foreignKey:VersionID;constraint:OnDelete:CASCADE"`
}

// IsActiveOn reports whether the version window covers the given date.
// Active iff effective_date <= d AND (end_date IS NULL OR end_date >= d).
// Only the calendar date is compared, never the time of day.
func (v *PricingVersion) IsActiveOn(d time.Time) bool {
	day := truncateToDay(d)
	if truncateToDay(v.EffectiveDate).After(day) {
		return false
	}
	if v.EndDate == nil {
		return true
	}
	return !truncateToDay(*v.EndDate).Before(day)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
