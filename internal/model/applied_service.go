package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceKind tags the concrete service variant an AppliedService points to.
// Only anticorrosion exists today; the remaining kinds are reserved so new
// variants can be added without migrating existing rows.
type ServiceKind string

const (
	KindCorrosionProteccion ServiceKind = "corrosion_proteccion"
	KindGeneralPaint        ServiceKind = "general_paint"
	KindCeramicTreatment    ServiceKind = "ceramic_treatment"
	KindPolarize            ServiceKind = "polarize"
	KindPPF                 ServiceKind = "ppf"
	KindMechanicalWorkshop  ServiceKind = "mechanical_workshop"
	KindSpareParts          ServiceKind = "spare_parts"
)

func (k ServiceKind) Valid() bool {
	switch k {
	case KindCorrosionProteccion, KindGeneralPaint, KindCeramicTreatment,
		KindPolarize, KindPPF, KindMechanicalWorkshop, KindSpareParts:
		return true
	}
	return false
}

// ServiceRef is the tagged reference to one concrete service variant:
// a kind discriminator plus the id of the row in that variant's table.
type ServiceRef struct {
	Kind ServiceKind `gorm:"column:service_kind;type:varchar(30);not null"`
	ID   uuid.UUID   `gorm:"column:service_ref_id;type:uuid;not null"`
}

// AppliedService is an immutable audit record of one pricing decision
// executed against a vehicle. Rows are created once and never updated or
// deleted; they outlive the catalog rows they reference, which is why the
// vehicle brand/model are denormalized at application time.
type AppliedService struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ServiceRef       ServiceRef  `gorm:"embedded"`
	PricingVersionID uuid.UUID   `gorm:"type:uuid;not null;index:idx_applied_version_size"`
	CarID            uuid.UUID   `gorm:"type:uuid;not null;index"`
	VehicleSize      VehicleSize `gorm:"column:vehicle_size_applied;type:varchar(20);not null;index:idx_applied_version_size"`
	VehicleBrand     string      `gorm:"not null"`
	VehicleModel     string      `gorm:"not null"`
	FinalCost        int64       `gorm:"not null"`
	FinalPrice       int64       `gorm:"not null"`
	MarginAchieved   decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	// DiscountAmount = resolved price - final price. Zero when no override;
	// negative when the final price exceeded the resolved price.
	DiscountAmount  int64      `gorm:"not null;default:0"`
	ExceptionUsedID *uuid.UUID `gorm:"type:uuid"`
	Notes           *string
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time

	PricingVersion *PricingVersion `gorm:"foreignKey:PricingVersionID"`
	Car            *Car            `gorm:"foreignKey:CarID"`
	ExceptionUsed  *ExceptionPrice `gorm:"foreignKey:ExceptionUsedID"`
	Approver       *Usuario        `gorm:"foreignKey:ApprovedBy"`
}

func (a *AppliedService) UsedException() bool { return a.ExceptionUsedID != nil }

func (a *AppliedService) HasDiscount() bool { return a.DiscountAmount > 0 }

func (a *AppliedService) WasApproved() bool { return a.ApprovedBy != nil }

// OriginalPrice reconstructs the resolved price before any override.
func (a *AppliedService) OriginalPrice() int64 {
	return a.FinalPrice + a.DiscountAmount
}

// DiscountPercent is the discount relative to the original price.
func (a *AppliedService) DiscountPercent() decimal.Decimal {
	original := a.OriginalPrice()
	if original <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(a.DiscountAmount).
		Div(decimal.NewFromInt(original)).
		Mul(hundred).
		Round(2)
}

// MarginStatus buckets the achieved margin against the version's floor:
// "excelente" >= 1.5x floor, "bueno" >= floor, "aceptable" >= 0.8x floor,
// "bajo" otherwise.
func (a *AppliedService) MarginStatus(minMargin decimal.Decimal) string {
	switch {
	case a.MarginAchieved.GreaterThanOrEqual(minMargin.Mul(decimal.NewFromFloat(1.5))):
		return "excelente"
	case a.MarginAchieved.GreaterThanOrEqual(minMargin):
		return "bueno"
	case a.MarginAchieved.GreaterThanOrEqual(minMargin.Mul(decimal.NewFromFloat(0.8))):
		return "aceptable"
	default:
		return "bajo"
	}
}
