package repository

import (
	"context"

	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckInRepository interface {
	Create(ctx context.Context, c *model.CheckIn) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CheckIn, error)
	List(ctx context.Context, filter dto.CheckInFilter) ([]model.CheckIn, int64, error)
	Update(ctx context.Context, c *model.CheckIn) error
	AttachService(ctx context.Context, link *model.ServiceCheckIn) error
	ListServices(ctx context.Context, checkInID uuid.UUID) ([]model.ServiceCheckIn, error)
}

type checkInRepo struct{ db *gorm.DB }

func NewCheckInRepository(db *gorm.DB) CheckInRepository { return &checkInRepo{db: db} }

func (r *checkInRepo) Create(ctx context.Context, c *model.CheckIn) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *checkInRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CheckIn, error) {
	var c model.CheckIn
	err := r.db.WithContext(ctx).
		Preload("Car").
		Preload("Car.Client").
		Preload("Services").
		Preload("Services.Service").
		First(&c, id).Error
	return &c, err
}

func (r *checkInRepo) List(ctx context.Context, filter dto.CheckInFilter) ([]model.CheckIn, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.CheckIn{})

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CarID != "" {
		q = q.Where("car_id = ?", filter.CarID)
	}
	if filter.DateFrom != "" {
		q = q.Where("check_in_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("check_in_date <= ?", filter.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.CheckIn
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("check_in_date DESC, check_in_time DESC").
		Limit(filter.Limit).Offset(offset).
		Preload("Car").
		Find(&rows).Error
	return rows, total, err
}

func (r *checkInRepo) Update(ctx context.Context, c *model.CheckIn) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *checkInRepo) AttachService(ctx context.Context, link *model.ServiceCheckIn) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *checkInRepo) ListServices(ctx context.Context, checkInID uuid.UUID) ([]model.ServiceCheckIn, error) {
	var links []model.ServiceCheckIn
	err := r.db.WithContext(ctx).
		Where("check_in_id = ?", checkInID).
		Preload("Service").
		Find(&links).Error
	return links, err
}
