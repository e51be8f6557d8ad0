package service

import (
	"context"
	"testing"
	"time"

	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/model"
	"github.com/Jcgmtxt/aquashield/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

var _ repository.ServiceRepository = (*stubServiceRepo)(nil)

func newStubServiceRepo(services ...*model.Service) *stubServiceRepo {
	r := &stubServiceRepo{services: make(map[uuid.UUID]*model.Service)}
	for _, s := range services {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.services[s.ID] = s
	}
	return r
}

func (r *stubServiceRepo) Create(_ context.Context, s *model.Service) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.services[s.ID] = s
	return nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubServiceRepo) List(_ context.Context) ([]model.Service, error) {
	var out []model.Service
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubServiceRepo) Update(_ context.Context, s *model.Service) error {
	r.services[s.ID] = s
	return nil
}

func newPricingFixture() (*stubPricingRepo, *model.Service, PricingService) {
	catalogo := &model.Service{Name: "Protección Anticorrosiva"}
	serviceRepo := newStubServiceRepo(catalogo)
	pricing := newStubPricingRepo()
	return pricing, catalogo, NewPricingService(pricing, serviceRepo)
}

// ─── Versiones ───────────────────────────────────────────────────────────────

func TestCrearVersion(t *testing.T) {
	pricing, catalogo, svc := newPricingFixture()

	resp, err := svc.CrearVersion(context.Background(), catalogo.ID, dto.CrearVersionRequest{
		Name:          "Lista 2026",
		EffectiveDate: "2026-01-01",
		Cost:          70000,
	})
	require.NoError(t, err)

	assert.Equal(t, "Lista 2026", resp.Name)
	assert.Equal(t, "2026-01-01", resp.EffectiveDate)
	assert.Nil(t, resp.EndDate)
	// piso por defecto cuando el request no lo trae
	assert.Equal(t, "20", resp.MinMarginPercent.String())
	assert.Len(t, pricing.versions, 1)
}

func TestCrearVersionConMargenPropio(t *testing.T) {
	_, catalogo, svc := newPricingFixture()

	piso := decimal.RequireFromString("25.5")
	resp, err := svc.CrearVersion(context.Background(), catalogo.ID, dto.CrearVersionRequest{
		Name:             "Lista especial",
		EffectiveDate:    "2026-01-01",
		Cost:             70000,
		MinMarginPercent: &piso,
	})
	require.NoError(t, err)
	assert.Equal(t, "25.5", resp.MinMarginPercent.String())
}

func TestCrearVersionSolapada(t *testing.T) {
	pricing, catalogo, svc := newPricingFixture()
	pricing.overlaps = true

	_, err := svc.CrearVersion(context.Background(), catalogo.ID, dto.CrearVersionRequest{
		Name:          "Lista 2026 bis",
		EffectiveDate: "2026-06-01",
		Cost:          70000,
	})
	assert.ErrorIs(t, err, ErrVersionSolapada)
	assert.Empty(t, pricing.versions)
}

func TestCrearVersionServicioInexistente(t *testing.T) {
	_, _, svc := newPricingFixture()

	_, err := svc.CrearVersion(context.Background(), uuid.New(), dto.CrearVersionRequest{
		Name:          "Lista",
		EffectiveDate: "2026-01-01",
	})
	assert.Error(t, err)
}

func TestCrearVersionFechasInvalidas(t *testing.T) {
	pricing, catalogo, svc := newPricingFixture()

	t.Run("effective_date malformada", func(t *testing.T) {
		_, err := svc.CrearVersion(context.Background(), catalogo.ID, dto.CrearVersionRequest{
			Name:          "Lista",
			EffectiveDate: "01/01/2026",
		})
		assert.Error(t, err)
	})

	t.Run("end_date anterior a effective_date", func(t *testing.T) {
		end := "2025-12-31"
		_, err := svc.CrearVersion(context.Background(), catalogo.ID, dto.CrearVersionRequest{
			Name:          "Lista",
			EffectiveDate: "2026-01-01",
			EndDate:       &end,
		})
		assert.Error(t, err)
	})

	assert.Empty(t, pricing.versions)
}

func TestVersionActivaInexistente(t *testing.T) {
	_, catalogo, svc := newPricingFixture()

	_, err := svc.VersionActiva(context.Background(), catalogo.ID)
	assert.ErrorIs(t, err, ErrSinVersionActiva)
}

func TestFinalizarVersion(t *testing.T) {
	pricing, catalogo, svc := newPricingFixture()

	resp, err := svc.CrearVersion(context.Background(), catalogo.ID, dto.CrearVersionRequest{
		Name:          "Lista 2026",
		EffectiveDate: "2026-01-01",
		Cost:          70000,
	})
	require.NoError(t, err)
	versionID := uuid.MustParse(resp.ID)

	err = svc.FinalizarVersion(context.Background(), versionID, dto.EndVersionRequest{EndDate: "2026-06-30"})
	require.NoError(t, err)

	v := pricing.versions[versionID]
	require.NotNil(t, v.EndDate)
	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), *v.EndDate)
}

func TestFinalizarVersionNoInvadeVersionSucesora(t *testing.T) {
	pricing, catalogo, svc := newPricingFixture()

	fin := "2026-06-30"
	v1, err := svc.CrearVersion(context.Background(), catalogo.ID, dto.CrearVersionRequest{
		Name:          "Lista 2026-S1",
		EffectiveDate: "2026-01-01",
		EndDate:       &fin,
		Cost:          70000,
	})
	require.NoError(t, err)
	v1ID := uuid.MustParse(v1.ID)

	_, err = svc.CrearVersion(context.Background(), catalogo.ID, dto.CrearVersionRequest{
		Name:          "Lista 2026-S2",
		EffectiveDate: "2026-07-01",
		Cost:          75000,
	})
	require.NoError(t, err)

	t.Run("extender sobre la sucesora se rechaza", func(t *testing.T) {
		err := svc.FinalizarVersion(context.Background(), v1ID, dto.EndVersionRequest{EndDate: "2026-12-31"})
		assert.ErrorIs(t, err, ErrVersionSolapada)
		// la ventana original queda intacta
		require.NotNil(t, pricing.versions[v1ID].EndDate)
		assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), *pricing.versions[v1ID].EndDate)
	})

	t.Run("acortar la ventana siempre es valido", func(t *testing.T) {
		err := svc.FinalizarVersion(context.Background(), v1ID, dto.EndVersionRequest{EndDate: "2026-03-31"})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), *pricing.versions[v1ID].EndDate)
	})
}

func TestFinalizarVersionAntesDelInicio(t *testing.T) {
	_, catalogo, svc := newPricingFixture()

	resp, err := svc.CrearVersion(context.Background(), catalogo.ID, dto.CrearVersionRequest{
		Name:          "Lista 2026",
		EffectiveDate: "2026-01-01",
		Cost:          70000,
	})
	require.NoError(t, err)

	err = svc.FinalizarVersion(context.Background(), uuid.MustParse(resp.ID),
		dto.EndVersionRequest{EndDate: "2025-12-01"})
	assert.Error(t, err)
}

// ─── Tarifas ─────────────────────────────────────────────────────────────────

func crearVersionDePrueba(t *testing.T, svc PricingService, catalogoID uuid.UUID) uuid.UUID {
	t.Helper()
	resp, err := svc.CrearVersion(context.Background(), catalogoID, dto.CrearVersionRequest{
		Name:          "Lista 2026",
		EffectiveDate: "2026-01-01",
		Cost:          70000,
	})
	require.NoError(t, err)
	return uuid.MustParse(resp.ID)
}

func TestCrearTarifa(t *testing.T) {
	_, catalogo, svc := newPricingFixture()
	versionID := crearVersionDePrueba(t, svc, catalogo.ID)

	resp, err := svc.CrearTarifa(context.Background(), versionID, dto.CrearTarifaRequest{
		VehicleSize:    "medium",
		BaseCost:       80000,
		SuggestedPrice: 120000,
	})
	require.NoError(t, err)

	assert.Equal(t, "medium", resp.VehicleSize)
	assert.Equal(t, "33.33", resp.Margin.String())
	assert.False(t, resp.PriceBelowCost)
}

func TestCrearTarifaDuplicada(t *testing.T) {
	_, catalogo, svc := newPricingFixture()
	versionID := crearVersionDePrueba(t, svc, catalogo.ID)

	req := dto.CrearTarifaRequest{VehicleSize: "medium", BaseCost: 80000, SuggestedPrice: 120000}
	_, err := svc.CrearTarifa(context.Background(), versionID, req)
	require.NoError(t, err)

	_, err = svc.CrearTarifa(context.Background(), versionID, req)
	assert.ErrorIs(t, err, ErrTarifaDuplicada)
}

func TestCrearTarifaBajoCosto(t *testing.T) {
	_, catalogo, svc := newPricingFixture()
	versionID := crearVersionDePrueba(t, svc, catalogo.ID)

	// se acepta, pero marcada: el precio sugerido no cubre el costo
	resp, err := svc.CrearTarifa(context.Background(), versionID, dto.CrearTarifaRequest{
		VehicleSize:    "small",
		BaseCost:       120000,
		SuggestedPrice: 100000,
	})
	require.NoError(t, err)
	assert.True(t, resp.PriceBelowCost)
	assert.True(t, resp.Margin.IsNegative())
}

func TestCrearTarifaVersionInexistente(t *testing.T) {
	_, _, svc := newPricingFixture()

	_, err := svc.CrearTarifa(context.Background(), uuid.New(), dto.CrearTarifaRequest{
		VehicleSize:    "medium",
		BaseCost:       80000,
		SuggestedPrice: 120000,
	})
	assert.Error(t, err)
}

// ─── Excepciones ─────────────────────────────────────────────────────────────

func TestCrearExcepcion(t *testing.T) {
	_, catalogo, svc := newPricingFixture()
	versionID := crearVersionDePrueba(t, svc, catalogo.ID)

	rango := "2018-2026"
	resp, err := svc.CrearExcepcion(context.Background(), versionID, dto.CrearExcepcionRequest{
		Brand:        "Chevrolet",
		Model:        "Tahoe",
		YearRange:    &rango,
		VehicleSize:  "extra_large",
		SpecialCost:  150000,
		SpecialPrice: 200000,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsActive)
	assert.Equal(t, "25", resp.Margin.String())
	assert.Equal(t, "Chevrolet Tahoe (2018-2026)", resp.FullName)
}

func TestDesactivarExcepcion(t *testing.T) {
	pricing, catalogo, svc := newPricingFixture()
	versionID := crearVersionDePrueba(t, svc, catalogo.ID)

	resp, err := svc.CrearExcepcion(context.Background(), versionID, dto.CrearExcepcionRequest{
		Brand:        "Renault",
		Model:        "Kwid",
		VehicleSize:  "small",
		SpecialCost:  55000,
		SpecialPrice: 85000,
	})
	require.NoError(t, err)

	err = svc.DesactivarExcepcion(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.False(t, pricing.exceptions[0].IsActive)
}

func TestDesactivarExcepcionInexistente(t *testing.T) {
	_, _, svc := newPricingFixture()

	err := svc.DesactivarExcepcion(context.Background(), uuid.New())
	assert.Error(t, err)
}
