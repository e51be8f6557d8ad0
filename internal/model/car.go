package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Car is a client vehicle. Brand/model drive size classification and
// exception-price matching; the year participates in year-range matching.
type Car struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index"`
	PlateNumber string    `gorm:"uniqueIndex;not null;type:varchar(10)"`
	Brand       string    `gorm:"not null"`
	Model       string    `gorm:"not null"`
	Year        string    `gorm:"type:varchar(4);not null"`
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Client *Client `gorm:"foreignKey:ClientID"`
}

// FullName returns "Brand Model Year" for display and logging.
func (c *Car) FullName() string {
	return fmt.Sprintf("%s %s %s", c.Brand, c.Model, c.Year)
}
