package service

import (
	"context"
	"errors"
	"time"

	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/model"
	"github.com/Jcgmtxt/aquashield/internal/repository"

	"github.com/google/uuid"
)

// StatsService is read-only reporting over the applied-service ledger.
type StatsService interface {
	ListarAplicados(ctx context.Context, filter dto.AppliedServiceFilter) (*dto.AppliedServiceListResponse, error)
	ObtenerAplicado(ctx context.Context, id uuid.UUID) (*dto.AppliedServiceResponse, error)
	EstadisticasGenerales(ctx context.Context, filter dto.StatsFilter) (*dto.GeneralStatsResponse, error)
	UsoExcepcion(ctx context.Context, exceptionID uuid.UUID) (*dto.ExceptionUsageResponse, error)
}

type statsService struct {
	appliedRepo repository.AppliedServiceRepository
	pricingRepo repository.PricingRepository
}

func NewStatsService(appliedRepo repository.AppliedServiceRepository, pricingRepo repository.PricingRepository) StatsService {
	return &statsService{appliedRepo: appliedRepo, pricingRepo: pricingRepo}
}

func (s *statsService) ListarAplicados(ctx context.Context, filter dto.AppliedServiceFilter) (*dto.AppliedServiceListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	rows, total, err := s.appliedRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AppliedServiceResponse, len(rows))
	for i := range rows {
		items[i] = *appliedRowToResponse(&rows[i])
	}
	return &dto.AppliedServiceListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *statsService) ObtenerAplicado(ctx context.Context, id uuid.UUID) (*dto.AppliedServiceResponse, error) {
	applied, err := s.appliedRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("servicio aplicado no encontrado")
	}
	resp := appliedRowToResponse(applied)
	if applied.PricingVersion != nil {
		resp.MarginStatus = applied.MarginStatus(applied.PricingVersion.MinMarginPercent)
	}
	return resp, nil
}

func (s *statsService) EstadisticasGenerales(ctx context.Context, filter dto.StatsFilter) (*dto.GeneralStatsResponse, error) {
	return s.appliedRepo.GeneralStats(ctx, filter)
}

func (s *statsService) UsoExcepcion(ctx context.Context, exceptionID uuid.UUID) (*dto.ExceptionUsageResponse, error) {
	if _, err := s.pricingRepo.FindExceptionByID(ctx, exceptionID); err != nil {
		return nil, errors.New("excepción no encontrada")
	}
	return s.appliedRepo.ExceptionStats(ctx, exceptionID)
}

// appliedRowToResponse maps a ledger row without computing the margin
// status (that needs the version's floor, loaded only for single lookups).
func appliedRowToResponse(a *model.AppliedService) *dto.AppliedServiceResponse {
	resp := &dto.AppliedServiceResponse{
		ID:             a.ID.String(),
		ServiceKind:    string(a.ServiceRef.Kind),
		PricingVersion: a.PricingVersionID.String(),
		CarID:          a.CarID.String(),
		VehicleSize:    string(a.VehicleSize),
		VehicleBrand:   a.VehicleBrand,
		VehicleModel:   a.VehicleModel,
		FinalCost:      a.FinalCost,
		FinalPrice:     a.FinalPrice,
		MarginAchieved: a.MarginAchieved,
		DiscountAmount: a.DiscountAmount,
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
	if a.ExceptionUsedID != nil {
		id := a.ExceptionUsedID.String()
		resp.ExceptionUsedID = &id
	}
	if a.ApprovedBy != nil {
		id := a.ApprovedBy.String()
		resp.ApprovedBy = &id
	}
	return resp
}
