package repository

import (
	"context"

	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CarRepository interface {
	Create(ctx context.Context, c *model.Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Car, error)
	FindByPlate(ctx context.Context, plate string) (*model.Car, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Car, error)
	List(ctx context.Context, filter dto.CarFilter) ([]model.Car, int64, error)
	Update(ctx context.Context, c *model.Car) error
}

type carRepo struct{ db *gorm.DB }

func NewCarRepository(db *gorm.DB) CarRepository { return &carRepo{db: db} }

func (r *carRepo) Create(ctx context.Context, c *model.Car) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *carRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	var c model.Car
	err := r.db.WithContext(ctx).Preload("Client").First(&c, id).Error
	return &c, err
}

func (r *carRepo) FindByPlate(ctx context.Context, plate string) (*model.Car, error) {
	var c model.Car
	err := r.db.WithContext(ctx).
		Where("plate_number ILIKE ?", "%"+plate+"%").
		Preload("Client").
		First(&c).Error
	return &c, err
}

func (r *carRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Car, error) {
	var cars []model.Car
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Find(&cars).Error
	return cars, err
}

func (r *carRepo) List(ctx context.Context, filter dto.CarFilter) ([]model.Car, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Car{})

	if filter.Brand != "" {
		q = q.Where("brand ILIKE ?", "%"+filter.Brand+"%")
	}
	if filter.Plate != "" {
		q = q.Where("plate_number ILIKE ?", "%"+filter.Plate+"%")
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cars []model.Car
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).
		Preload("Client").Find(&cars).Error
	return cars, total, err
}

func (r *carRepo) Update(ctx context.Context, c *model.Car) error {
	return r.db.WithContext(ctx).Save(c).Error
}
