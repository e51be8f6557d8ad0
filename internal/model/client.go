package model

import (
	"time"

	"github.com/google/uuid"
)

// IdentityType: "CC" | "CE" | "NIT" | "Passport"
var IdentityTypes = []string{"CC", "CE", "NIT", "Passport"}

// Client is a shop customer. A client owns one or more vehicles.
type Client struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string    `gorm:"not null"`
	IdentityType   string    `gorm:"type:varchar(10);not null"`
	IdentityNumber string    `gorm:"uniqueIndex;not null"`
	PhoneNumber    string    `gorm:"uniqueIndex;not null"`
	Email          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Cars []Car `gorm:"foreignKey:ClientID"`
}

func ValidIdentityType(t string) bool {
	for _, it := range IdentityTypes {
		if it == t {
			return true
		}
	}
	return false
}
