package model

import (
	"time"

	"github.com/google/uuid"
)

// Service is a catalog entry for something the shop sells (anticorrosion
// treatment, paint, ...). Pricing lives in versioned PricingVersion rows.
type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"not null"`
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	PricingVersions []PricingVersion `gorm:"foreignKey:ServiceID"`
}
