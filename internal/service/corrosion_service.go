package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/model"
	"github.com/Jcgmtxt/aquashield/internal/repository"
	"github.com/Jcgmtxt/aquashield/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quotes are cached briefly — the catalog changes rarely (administrative),
// so a short staleness window is acceptable and keeps repeat lookups cheap.
const cotizacionCacheTTL = 10 * time.Minute

// CorrosionService prices and applies the anticorrosion treatment.
// Resolution order: exception price first (in creation order, oldest wins),
// then size-tier price for the classified size. Every margin computation is
// guarded against non-positive prices.
type CorrosionService interface {
	// Cotizar resolves cost/price/margin for a vehicle against the service's
	// active pricing version. sizeOverride, when valid, replaces the
	// classifier's output; it never overrides an exception's declared size.
	Cotizar(ctx context.Context, serviceID, carID uuid.UUID, sizeOverride model.VehicleSize) (*dto.CotizacionResponse, error)

	// Aplicar executes one pricing decision: re-resolves (honoring the
	// request's optional size override, like Cotizar), validates the
	// margin policy against the optional final-price override, and writes
	// exactly one immutable ledger row — or fails without writing anything.
	Aplicar(ctx context.Context, serviceID uuid.UUID, req dto.AplicarServicioRequest) (*dto.AppliedServiceResponse, error)
}

type corrosionService struct {
	pricingRepo repository.PricingRepository
	appliedRepo repository.AppliedServiceRepository
	carRepo     repository.CarRepository
	classifier  SizeClassifier
	dispatcher  *worker.Dispatcher
	rdb         *redis.Client
}

func NewCorrosionService(
	pricingRepo repository.PricingRepository,
	appliedRepo repository.AppliedServiceRepository,
	carRepo repository.CarRepository,
	classifier SizeClassifier,
	dispatcher *worker.Dispatcher,
	rdb *redis.Client,
) CorrosionService {
	return &corrosionService{
		pricingRepo: pricingRepo,
		appliedRepo: appliedRepo,
		carRepo:     carRepo,
		classifier:  classifier,
		dispatcher:  dispatcher,
		rdb:         rdb,
	}
}

// resolucion is the outcome of picking a price point for one vehicle.
type resolucion struct {
	Cost          int64
	Price         int64
	UsedException bool
	ExceptionID   *uuid.UUID
	VehicleSize   model.VehicleSize
}

// ── Cotizar ───────────────────────────────────────────────────────────────────

func (s *corrosionService) Cotizar(ctx context.Context, serviceID, carID uuid.UUID, sizeOverride model.VehicleSize) (*dto.CotizacionResponse, error) {
	car, err := s.carRepo.FindByID(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("vehículo no encontrado: %w", err)
	}

	version, err := s.activeVersion(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("cotizacion:%s:%s:%s", version.ID, car.ID, sizeOverride)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.CotizacionResponse
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	res, err := s.resolve(ctx, car, version, sizeOverride)
	if err != nil {
		return nil, err
	}

	resp := &dto.CotizacionResponse{
		Cost:          res.Cost,
		Price:         res.Price,
		Margin:        model.MarginPercent(res.Cost, res.Price),
		UsedException: res.UsedException,
		VehicleSize:   string(res.VehicleSize),
		VersionID:     version.ID.String(),
		VersionName:   version.Name,
	}
	if res.ExceptionID != nil {
		id := res.ExceptionID.String()
		resp.ExceptionID = &id
	}

	// Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, err := json.Marshal(resp); err == nil {
			_ = s.rdb.Set(context.Background(), cacheKey, b, cotizacionCacheTTL).Err()
		}
	}

	return resp, nil
}

// resolve picks the applicable price point for the vehicle:
//  1. first active exception matching brand/model/year, in creation order —
//     the exception dictates cost, price AND vehicle size;
//  2. otherwise the size-tier price for the classified (or overridden) size.
func (s *corrosionService) resolve(ctx context.Context, car *model.Car, version *model.PricingVersion, sizeOverride model.VehicleSize) (*resolucion, error) {
	exceptions, err := s.pricingRepo.ActiveExceptionsFor(ctx, version.ID)
	if err != nil {
		return nil, err
	}
	for i := range exceptions {
		e := &exceptions[i]
		if e.Matches(car.Brand, car.Model, car.Year) {
			id := e.ID
			return &resolucion{
				Cost:          e.SpecialCost,
				Price:         e.SpecialPrice,
				UsedException: true,
				ExceptionID:   &id,
				VehicleSize:   e.VehicleSize,
			}, nil
		}
	}

	size := sizeOverride
	if !size.Valid() {
		size = s.classifier.Classify(car.Brand, car.Model)
	}

	tier, err := s.pricingRepo.SizePriceFor(ctx, version.ID, size)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &SinTarifaError{Size: size}
		}
		return nil, err
	}

	return &resolucion{
		Cost:        tier.BaseCost,
		Price:       tier.SuggestedPrice,
		VehicleSize: size,
	}, nil
}

func (s *corrosionService) activeVersion(ctx context.Context, serviceID uuid.UUID) (*model.PricingVersion, error) {
	version, err := s.pricingRepo.ActiveVersionFor(ctx, serviceID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSinVersionActiva
		}
		return nil, err
	}
	return version, nil
}

// ── Aplicar ───────────────────────────────────────────────────────────────────

func (s *corrosionService) Aplicar(ctx context.Context, serviceID uuid.UUID, req dto.AplicarServicioRequest) (*dto.AppliedServiceResponse, error) {
	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return nil, fmt.Errorf("car_id inválido: %w", err)
	}
	car, err := s.carRepo.FindByID(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("vehículo no encontrado: %w", err)
	}

	version, err := s.activeVersion(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	var sizeOverride model.VehicleSize
	if req.VehicleSize != nil {
		sizeOverride = model.VehicleSize(*req.VehicleSize)
	}
	res, err := s.resolve(ctx, car, version, sizeOverride)
	if err != nil {
		return nil, err
	}

	finalPrice := res.Price
	if req.FinalPrice != nil {
		finalPrice = *req.FinalPrice
	}
	if finalPrice <= 0 {
		return nil, ErrPrecioFinalInvalido
	}

	discount := res.Price - finalPrice
	actualMargin := model.MarginPercent(res.Cost, finalPrice)

	var approvedBy *uuid.UUID
	if req.ApprovedBy != nil {
		id, err := uuid.Parse(*req.ApprovedBy)
		if err != nil {
			return nil, fmt.Errorf("approved_by inválido: %w", err)
		}
		approvedBy = &id
	}

	// Hard gate: below-minimum margins are recorded only with an explicit
	// approver identity.
	if actualMargin.LessThan(version.MinMarginPercent) && approvedBy == nil {
		return nil, &MargenInsuficienteError{Actual: actualMargin, Requerido: version.MinMarginPercent}
	}

	applied := &model.AppliedService{
		ServiceRef: model.ServiceRef{
			Kind: model.KindCorrosionProteccion,
			ID:   serviceID,
		},
		PricingVersionID: version.ID,
		CarID:            car.ID,
		VehicleSize:      res.VehicleSize,
		VehicleBrand:     car.Brand,
		VehicleModel:     car.Model,
		FinalCost:        res.Cost,
		FinalPrice:       finalPrice,
		MarginAchieved:   actualMargin,
		DiscountAmount:   discount,
		ExceptionUsedID:  res.ExceptionID,
		Notes:            req.Notes,
		ApprovedBy:       approvedBy,
	}

	// Single insert — the ledger row either exists completely or not at all.
	if err := s.appliedRepo.Create(ctx, applied); err != nil {
		return nil, err
	}

	// Async receipt PDF + client notification — best effort, fire & forget
	if s.dispatcher != nil {
		payload := worker.ComprobanteJobPayload{
			AppliedServiceID: applied.ID.String(),
		}
		if car.Client != nil && car.Client.Email != nil {
			payload.ClientEmail = *car.Client.Email
		}
		if err := s.dispatcher.EnqueueComprobante(ctx, payload); err != nil {
			log.Warn().Err(err).Str("applied_service_id", applied.ID.String()).
				Msg("no se pudo encolar el comprobante")
		}
	}

	return appliedToResponse(applied, version.MinMarginPercent), nil
}

func appliedToResponse(a *model.AppliedService, minMargin decimal.Decimal) *dto.AppliedServiceResponse {
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
		MarginStatus:   a.MarginStatus(minMargin),
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
