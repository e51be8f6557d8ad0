package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/model"
	"github.com/Jcgmtxt/aquashield/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var defaultMinMargin = decimal.NewFromFloat(20.00)

// PricingService administers the pricing catalog: versions, size tiers and
// exception prices. Versions are immutable once created — superseding means
// end-dating the old one and creating a new one.
type PricingService interface {
	CrearVersion(ctx context.Context, serviceID uuid.UUID, req dto.CrearVersionRequest) (*dto.VersionResponse, error)
	ListarVersiones(ctx context.Context, serviceID uuid.UUID) ([]dto.VersionResponse, error)
	VersionActiva(ctx context.Context, serviceID uuid.UUID) (*dto.VersionResponse, error)
	FinalizarVersion(ctx context.Context, versionID uuid.UUID, req dto.EndVersionRequest) error

	CrearTarifa(ctx context.Context, versionID uuid.UUID, req dto.CrearTarifaRequest) (*dto.TarifaResponse, error)
	ListarTarifas(ctx context.Context, versionID uuid.UUID) ([]dto.TarifaResponse, error)

	CrearExcepcion(ctx context.Context, versionID uuid.UUID, req dto.CrearExcepcionRequest) (*dto.ExcepcionResponse, error)
	ListarExcepciones(ctx context.Context, versionID uuid.UUID) ([]dto.ExcepcionResponse, error)
	DesactivarExcepcion(ctx context.Context, id uuid.UUID) error
}

type pricingService struct {
	repo        repository.PricingRepository
	serviceRepo repository.ServiceRepository
}

func NewPricingService(repo repository.PricingRepository, serviceRepo repository.ServiceRepository) PricingService {
	return &pricingService{repo: repo, serviceRepo: serviceRepo}
}

// ── Versiones ─────────────────────────────────────────────────────────────────

func (s *pricingService) CrearVersion(ctx context.Context, serviceID uuid.UUID, req dto.CrearVersionRequest) (*dto.VersionResponse, error) {
	if _, err := s.serviceRepo.FindByID(ctx, serviceID); err != nil {
		return nil, fmt.Errorf("servicio no encontrado: %w", err)
	}

	effective, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("effective_date inválida: %w", err)
	}
	var end *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("end_date inválida: %w", err)
		}
		if parsed.Before(effective) {
			return nil, errors.New("end_date no puede ser anterior a effective_date")
		}
		end = &parsed
	}

	// Reject overlapping windows at write time: at most one version may be
	// active for a service on any date.
	overlaps, err := s.repo.HasOverlappingVersion(ctx, serviceID, effective, end, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, ErrVersionSolapada
	}

	minMargin := defaultMinMargin
	if req.MinMarginPercent != nil {
		minMargin = *req.MinMarginPercent
	}

	version := &model.PricingVersion{
		ServiceID:         serviceID,
		Name:              req.Name,
		EffectiveDate:     effective,
		EndDate:           end,
		Cost:              req.Cost,
		NegotiationMargin: req.NegotiationMargin,
		MinMarginPercent:  minMargin,
		Notes:             req.Notes,
	}
	if err := s.repo.CreateVersion(ctx, version); err != nil {
		return nil, err
	}
	return versionToResponse(version), nil
}

func (s *pricingService) ListarVersiones(ctx context.Context, serviceID uuid.UUID) ([]dto.VersionResponse, error) {
	versions, err := s.repo.ListVersionsForService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.VersionResponse, len(versions))
	for i := range versions {
		resp[i] = *versionToResponse(&versions[i])
	}
	return resp, nil
}

func (s *pricingService) VersionActiva(ctx context.Context, serviceID uuid.UUID) (*dto.VersionResponse, error) {
	version, err := s.repo.ActiveVersionFor(ctx, serviceID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSinVersionActiva
		}
		return nil, err
	}
	return versionToResponse(version), nil
}

func (s *pricingService) FinalizarVersion(ctx context.Context, versionID uuid.UUID, req dto.EndVersionRequest) error {
	version, err := s.repo.FindVersionByID(ctx, versionID)
	if err != nil {
		return errors.New("versión no encontrada")
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return fmt.Errorf("end_date inválida: %w", err)
	}
	if endDate.Before(version.EffectiveDate) {
		return errors.New("end_date no puede ser anterior a effective_date")
	}

	// Moving the end date forward widens the window, which can swallow a
	// successor's effective_date — re-check the no-overlap rule, skipping
	// the version being edited. Shrinking never creates an overlap.
	if version.EndDate != nil && endDate.After(*version.EndDate) {
		overlaps, err := s.repo.HasOverlappingVersion(ctx, version.ServiceID, version.EffectiveDate, &endDate, versionID)
		if err != nil {
			return err
		}
		if overlaps {
			return ErrVersionSolapada
		}
	}

	return s.repo.EndVersion(ctx, versionID, endDate)
}

// ── Tarifas por tamaño ────────────────────────────────────────────────────────

func (s *pricingService) CrearTarifa(ctx context.Context, versionID uuid.UUID, req dto.CrearTarifaRequest) (*dto.TarifaResponse, error) {
	if _, err := s.repo.FindVersionByID(ctx, versionID); err != nil {
		return nil, errors.New("versión no encontrada")
	}

	tarifa := &model.SizeTierPrice{
		VersionID:       versionID,
		VehicleSize:     model.VehicleSize(req.VehicleSize),
		BaseCost:        req.BaseCost,
		SuggestedPrice:  req.SuggestedPrice,
		SizeDescription: req.SizeDescription,
	}
	if err := s.repo.CreateSizePrice(ctx, tarifa); err != nil {
		// The store enforces (version, size) uniqueness — concurrent inserts
		// racing on the same pair leave exactly one surviving row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTarifaDuplicada
		}
		return nil, err
	}
	return tarifaToResponse(tarifa), nil
}

func (s *pricingService) ListarTarifas(ctx context.Context, versionID uuid.UUID) ([]dto.TarifaResponse, error) {
	tarifas, err := s.repo.ListSizePrices(ctx, versionID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TarifaResponse, len(tarifas))
	for i := range tarifas {
		resp[i] = *tarifaToResponse(&tarifas[i])
	}
	return resp, nil
}

// ── Excepciones ───────────────────────────────────────────────────────────────

func (s *pricingService) CrearExcepcion(ctx context.Context, versionID uuid.UUID, req dto.CrearExcepcionRequest) (*dto.ExcepcionResponse, error) {
	if _, err := s.repo.FindVersionByID(ctx, versionID); err != nil {
		return nil, errors.New("versión no encontrada")
	}

	excepcion := &model.ExceptionPrice{
		VersionID:    versionID,
		Brand:        req.Brand,
		Model:        req.Model,
		YearRange:    req.YearRange,
		VehicleSize:  model.VehicleSize(req.VehicleSize),
		SpecialCost:  req.SpecialCost,
		SpecialPrice: req.SpecialPrice,
		IsActive:     true,
	}
	if err := s.repo.CreateException(ctx, excepcion); err != nil {
		return nil, err
	}
	return excepcionToResponse(excepcion), nil
}

func (s *pricingService) ListarExcepciones(ctx context.Context, versionID uuid.UUID) ([]dto.ExcepcionResponse, error) {
	excepciones, err := s.repo.ListExceptions(ctx, versionID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ExcepcionResponse, len(excepciones))
	for i := range excepciones {
		resp[i] = *excepcionToResponse(&excepciones[i])
	}
	return resp, nil
}

func (s *pricingService) DesactivarExcepcion(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindExceptionByID(ctx, id); err != nil {
		return errors.New("excepción no encontrada")
	}
	return s.repo.DeactivateException(ctx, id)
}

// ── Mapeos ────────────────────────────────────────────────────────────────────

func versionToResponse(v *model.PricingVersion) *dto.VersionResponse {
	resp := &dto.VersionResponse{
		ID:                v.ID.String(),
		ServiceID:         v.ServiceID.String(),
		Name:              v.Name,
		EffectiveDate:     v.EffectiveDate.Format("2006-01-02"),
		Cost:              v.Cost,
		NegotiationMargin: v.NegotiationMargin,
		MinMarginPercent:  v.MinMarginPercent,
		Notes:             v.Notes,
		Active:            v.IsActiveOn(time.Now()),
	}
	if v.EndDate != nil {
		end := v.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}

func tarifaToResponse(t *model.SizeTierPrice) *dto.TarifaResponse {
	return &dto.TarifaResponse{
		ID:              t.ID.String(),
		VersionID:       t.VersionID.String(),
		VehicleSize:     string(t.VehicleSize),
		BaseCost:        t.BaseCost,
		SuggestedPrice:  t.SuggestedPrice,
		Margin:          t.Margin(),
		SizeDescription: t.SizeDescription,
		PriceBelowCost:  !t.ValidatePricing(),
	}
}

func excepcionToResponse(e *model.ExceptionPrice) *dto.ExcepcionResponse {
	return &dto.ExcepcionResponse{
		ID:           e.ID.String(),
		VersionID:    e.VersionID.String(),
		Brand:        e.Brand,
		Model:        e.Model,
		YearRange:    e.YearRange,
		VehicleSize:  string(e.VehicleSize),
		SpecialCost:  e.SpecialCost,
		SpecialPrice: e.SpecialPrice,
		Margin:       e.Margin(),
		IsActive:     e.IsActive,
		FullName:     e.FullName(),
	}
}
