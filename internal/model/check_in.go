package model

import (
	"time"

	"github.com/google/uuid"
)

// Check-in status lifecycle: pending → in_progress → completed | cancelled.
const (
	CheckInPending    = "pending"
	CheckInInProgress = "in_progress"
	CheckInCompleted  = "completed"
	CheckInCancelled  = "cancelled"
)

// CheckIn records a vehicle entering the shop: who received it, its state
// (mileage, fuel) and a walk-around video for liability.
type CheckIn struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CarID        uuid.UUID `gorm:"type:uuid;not null;index"`
	UsuarioID    uuid.UUID `gorm:"type:uuid;not null"`
	CheckInDate  time.Time `gorm:"type:date;not null"`
	CheckInTime  string    `gorm:"type:varchar(8);not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CheckOutDate *time.Time `gorm:"type:date"`
	CheckOutTime *string    `gorm:"type:varchar(8)"`
	Mileage      int        `gorm:"not null"`
	FuelLevel    string     `gorm:"not null"`
	Comments     *string
	VideoURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Car      *Car             `gorm:"foreignKey:CarID"`
	Usuario  *Usuario         `gorm:"foreignKey:UsuarioID"`
	Services []ServiceCheckIn `gorm:"foreignKey:CheckInID"`
}

func (c *CheckIn) IsCompleted() bool  { return c.Status == CheckInCompleted }
func (c *CheckIn) IsInProgress() bool { return c.Status == CheckInInProgress }

// ServiceCheckIn links a requested service to a check-in.
type ServiceCheckIn struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CheckInID uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time

	CheckIn *CheckIn `gorm:"foreignKey:CheckInID"`
	Service *Service `gorm:"foreignKey:ServiceID"`
}
