package repository

import (
	"context"

	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppliedServiceRepository is the append-only ledger of pricing decisions.
// Rows are created once and never updated or deleted.
type AppliedServiceRepository interface {
	Create(ctx context.Context, a *model.AppliedService) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AppliedService, error)
	List(ctx context.Context, filter dto.AppliedServiceFilter) ([]model.AppliedService, int64, error)
	ListByCar(ctx context.Context, carID uuid.UUID) ([]model.AppliedService, error)
	GeneralStats(ctx context.Context, filter dto.StatsFilter) (*dto.GeneralStatsResponse, error)
	ExceptionStats(ctx context.Context, exceptionID uuid.UUID) (*dto.ExceptionUsageResponse, error)
}

type appliedServiceRepo struct{ db *gorm.DB }

func NewAppliedServiceRepository(db *gorm.DB) AppliedServiceRepository {
	return &appliedServiceRepo{db: db}
}

func (r *appliedServiceRepo) Create(ctx context.Context, a *model.AppliedService) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *appliedServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AppliedService, error) {
	var a model.AppliedService
	err := r.db.WithContext(ctx).
		Preload("PricingVersion").
		Preload("Car").
		Preload("ExceptionUsed").
		First(&a, id).Error
	return &a, err
}

func (r *appliedServiceRepo) List(ctx context.Context, filter dto.AppliedServiceFilter) ([]model.AppliedService, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.AppliedService{})

	if filter.ServiceKind != "" {
		q = q.Where("service_kind = ?", filter.ServiceKind)
	}
	if filter.VehicleSize != "" {
		q = q.Where("vehicle_size_applied = ?", filter.VehicleSize)
	}
	if filter.CarID != "" {
		q = q.Where("car_id = ?", filter.CarID)
	}
	if filter.WithException {
		q = q.Where("exception_used_id IS NOT NULL")
	}
	if filter.WithDiscount {
		q = q.Where("discount_amount > 0")
	}
	if filter.DateFrom != "" {
		q = q.Where("created_at >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("created_at <= ?", filter.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.AppliedService
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(offset).
		Preload("Car").
		Find(&rows).Error
	return rows, total, err
}

func (r *appliedServiceRepo) ListByCar(ctx context.Context, carID uuid.UUID) ([]model.AppliedService, error) {
	var rows []model.AppliedService
	err := r.db.WithContext(ctx).
		Where("car_id = ?", carID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// GeneralStats aggregates the ledger in a single SELECT. Averages are over
// whatever range the filter selects; NULL aggregates (empty range) come back
// as zero via COALESCE.
func (r *appliedServiceRepo) GeneralStats(ctx context.Context, filter dto.StatsFilter) (*dto.GeneralStatsResponse, error) {
	q := r.db.WithContext(ctx).Model(&model.AppliedService{})
	if filter.DateFrom != "" {
		q = q.Where("created_at >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("created_at <= ?", filter.DateTo)
	}
	if filter.ServiceKind != "" {
		q = q.Where("service_kind = ?", filter.ServiceKind)
	}

	var stats dto.GeneralStatsResponse
	err := q.Select(`
		COUNT(*)                                         AS total_services,
		COALESCE(SUM(final_price), 0)                    AS total_revenue,
		COALESCE(SUM(final_cost), 0)                     AS total_cost,
		COALESCE(ROUND(AVG(margin_achieved), 2), 0)      AS average_margin,
		COALESCE(SUM(discount_amount), 0)                AS total_discounts,
		COUNT(*) FILTER (WHERE exception_used_id IS NOT NULL) AS services_with_exception,
		COUNT(*) FILTER (WHERE approved_by IS NOT NULL)  AS services_requiring_approval
	`).Scan(&stats).Error
	return &stats, err
}

func (r *appliedServiceRepo) ExceptionStats(ctx context.Context, exceptionID uuid.UUID) (*dto.ExceptionUsageResponse, error) {
	var stats dto.ExceptionUsageResponse
	err := r.db.WithContext(ctx).
		Model(&model.AppliedService{}).
		Where("exception_used_id = ?", exceptionID).
		Select(`
			COUNT(*)                                    AS times_used,
			COALESCE(SUM(final_price), 0)               AS total_revenue,
			COALESCE(ROUND(AVG(margin_achieved), 2), 0) AS average_margin
		`).Scan(&stats).Error
	return &stats, err
}
