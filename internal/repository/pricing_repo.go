package repository

import (
	"context"
	"time"

	"github.com/Jcgmtxt/aquashield/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PricingRepository is the data access contract for the pricing catalog:
// versions, size-tier prices and exception prices. Services depend on this
// interface, not on the concrete GORM implementation, enabling clean unit
// testing via stubs.
type PricingRepository interface {
	// Versions
	CreateVersion(ctx context.Context, v *model.PricingVersion) error
	FindVersionByID(ctx context.Context, id uuid.UUID) (*model.PricingVersion, error)
	ListVersionsForService(ctx context.Context, serviceID uuid.UUID) ([]model.PricingVersion, error)
	// ActiveVersionFor returns the version whose window covers asOf with the
	// latest effective_date. Ties (same effective_date, a data anomaly) break
	// deterministically: most recently created first, then highest id.
	ActiveVersionFor(ctx context.Context, serviceID uuid.UUID, asOf time.Time) (*model.PricingVersion, error)
	// HasOverlappingVersion reports whether any existing version window for
	// the service intersects [effective, end] (end nil = open-ended).
	// excludeID skips that version, so an edit can re-check its own window
	// without colliding with itself; uuid.Nil excludes nothing.
	HasOverlappingVersion(ctx context.Context, serviceID uuid.UUID, effective time.Time, end *time.Time, excludeID uuid.UUID) (bool, error)
	EndVersion(ctx context.Context, id uuid.UUID, endDate time.Time) error

	// Size tiers — (version_id, vehicle_size) is unique; Create surfaces
	// gorm.ErrDuplicatedKey on a racing duplicate.
	CreateSizePrice(ctx context.Context, p *model.SizeTierPrice) error
	SizePriceFor(ctx context.Context, versionID uuid.UUID, size model.VehicleSize) (*model.SizeTierPrice, error)
	ListSizePrices(ctx context.Context, versionID uuid.UUID) ([]model.SizeTierPrice, error)

	// Exceptions
	CreateException(ctx context.Context, e *model.ExceptionPrice) error
	FindExceptionByID(ctx context.Context, id uuid.UUID) (*model.ExceptionPrice, error)
	// ActiveExceptionsFor returns active exception rows for the version in
	// creation order (oldest first) — the matching order is part of the
	// pricing contract.
	ActiveExceptionsFor(ctx context.Context, versionID uuid.UUID) ([]model.ExceptionPrice, error)
	ListExceptions(ctx context.Context, versionID uuid.UUID) ([]model.ExceptionPrice, error)
	DeactivateException(ctx context.Context, id uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type pricingRepo struct{ db *gorm.DB }

func NewPricingRepository(db *gorm.DB) PricingRepository { return &pricingRepo{db: db} }

func (r *pricingRepo) CreateVersion(ctx context.Context, v *model.PricingVersion) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *pricingRepo) FindVersionByID(ctx context.Context, id uuid.UUID) (*model.PricingVersion, error) {
	var v model.PricingVersion
	err := r.db.WithContext(ctx).First(&v, id).Error
	return &v, err
}

func (r *pricingRepo) ListVersionsForService(ctx context.Context, serviceID uuid.UUID) ([]model.PricingVersion, error) {
	var versions []model.PricingVersion
	err := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("effective_date DESC").
		Find(&versions).Error
	return versions, err
}

func (r *pricingRepo) ActiveVersionFor(ctx context.Context, serviceID uuid.UUID, asOf time.Time) (*model.PricingVersion, error) {
	day := asOf.Format("2006-01-02")
	var v model.PricingVersion
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND effective_date <= ? AND (end_date IS NULL OR end_date >= ?)",
			serviceID, day, day).
		Order("effective_date DESC, created_at DESC, id DESC").
		First(&v).Error
	return &v, err
}

func (r *pricingRepo) HasOverlappingVersion(ctx context.Context, serviceID uuid.UUID, effective time.Time, end *time.Time, excludeID uuid.UUID) (bool, error) {
	eff := effective.Format("2006-01-02")
	q := r.db.WithContext(ctx).
		Model(&model.PricingVersion{}).
		Where("service_id = ?", serviceID).
		Where("end_date IS NULL OR end_date >= ?", eff)
	if end != nil {
		q = q.Where("effective_date <= ?", end.Format("2006-01-02"))
	}
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *pricingRepo) EndVersion(ctx context.Context, id uuid.UUID, endDate time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.PricingVersion{}).
		Where("id = ?", id).
		Update("end_date", endDate.Format("2006-01-02")).Error
}

func (r *pricingRepo) CreateSizePrice(ctx context.Context, p *model.SizeTierPrice) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pricingRepo) SizePriceFor(ctx context.Context, versionID uuid.UUID, size model.VehicleSize) (*model.SizeTierPrice, error) {
	var p model.SizeTierPrice
	err := r.db.WithContext(ctx).
		Where("version_id = ? AND vehicle_size = ?", versionID, size).
		First(&p).Error
	return &p, err
}

func (r *pricingRepo) ListSizePrices(ctx context.Context, versionID uuid.UUID) ([]model.SizeTierPrice, error) {
	var prices []model.SizeTierPrice
	err := r.db.WithContext(ctx).
		Where("version_id = ?", versionID).
		Order("vehicle_size ASC").
		Find(&prices).Error
	return prices, err
}

func (r *pricingRepo) CreateException(ctx context.Context, e *model.ExceptionPrice) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *pricingRepo) FindExceptionByID(ctx context.Context, id uuid.UUID) (*model.ExceptionPrice, error) {
	var e model.ExceptionPrice
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *pricingRepo) ActiveExceptionsFor(ctx context.Context, versionID uuid.UUID) ([]model.ExceptionPrice, error) {
	var exceptions []model.ExceptionPrice
	err := r.db.WithContext(ctx).
		Where("version_id = ? AND is_active = true", versionID).
		Order("created_at ASC, id ASC").
		Find(&exceptions).Error
	return exceptions, err
}

func (r *pricingRepo) ListExceptions(ctx context.Context, versionID uuid.UUID) ([]model.ExceptionPrice, error) {
	var exceptions []model.ExceptionPrice
	err := r.db.WithContext(ctx).
		Where("version_id = ?", versionID).
		Order("created_at ASC").
		Find(&exceptions).Error
	return exceptions, err
}

func (r *pricingRepo) DeactivateException(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.ExceptionPrice{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *pricingRepo) DB() *gorm.DB { return r.db }
