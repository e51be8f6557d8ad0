package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Jcgmtxt/aquashield/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite store with the pricing tables. The
// schema is declared by hand because the model tags carry postgres defaults
// (gen_random_uuid) that sqlite cannot evaluate; fixtures set ids explicitly.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	for _, ddl := range []string{
		`CREATE TABLE pricing_versions (
			id text PRIMARY KEY,
			service_id text NOT NULL,
			name text NOT NULL,
			effective_date date NOT NULL,
			end_date date,
			cost integer NOT NULL,
			negotiation_margin integer,
			min_margin_percent numeric NOT NULL,
			notes text,
			created_at datetime,
			updated_at datetime
		)`,
		`CREATE TABLE corrosion_pricing_by_size (
			id text PRIMARY KEY,
			version_id text NOT NULL,
			vehicle_size varchar(20) NOT NULL,
			base_cost integer NOT NULL,
			suggested_price integer NOT NULL,
			size_description text,
			created_at datetime,
			updated_at datetime,
			UNIQUE (version_id, vehicle_size)
		)`,
		`CREATE TABLE most_used_vehicles (
			id text PRIMARY KEY,
			version_id text NOT NULL,
			brand text NOT NULL,
			model text NOT NULL,
			year_range varchar(9),
			vehicle_size varchar(20) NOT NULL,
			special_cost integer NOT NULL,
			special_price integer NOT NULL,
			is_active boolean NOT NULL,
			created_at datetime,
			updated_at datetime
		)`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}

	return db
}

func insertVersion(t *testing.T, db *gorm.DB, v *model.PricingVersion) {
	t.Helper()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.MinMarginPercent.IsZero() {
		v.MinMarginPercent = decimal.NewFromInt(20)
	}
	require.NoError(t, db.Create(v).Error)
}

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestActiveVersionForOrden(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPricingRepository(db)
	ctx := context.Background()
	asOf := fecha(2026, 8, 15)

	t.Run("gana la effective_date mas reciente", func(t *testing.T) {
		servicio := uuid.New()
		insertVersion(t, db, &model.PricingVersion{
			ServiceID: servicio, Name: "enero",
			EffectiveDate: fecha(2026, 1, 1), Cost: 70000,
			CreatedAt: fecha(2026, 1, 1).Add(9 * time.Hour),
		})
		insertVersion(t, db, &model.PricingVersion{
			ServiceID: servicio, Name: "marzo",
			EffectiveDate: fecha(2026, 3, 1), Cost: 75000,
			// creada antes que la de enero: la fecha efectiva manda igual
			CreatedAt: fecha(2026, 1, 1).Add(8 * time.Hour),
		})

		v, err := repo.ActiveVersionFor(ctx, servicio, asOf)
		require.NoError(t, err)
		assert.Equal(t, "marzo", v.Name)
	})

	t.Run("misma effective_date desempata por created_at", func(t *testing.T) {
		servicio := uuid.New()
		insertVersion(t, db, &model.PricingVersion{
			ServiceID: servicio, Name: "primera",
			EffectiveDate: fecha(2026, 1, 1), Cost: 70000,
			CreatedAt: fecha(2026, 1, 1).Add(9 * time.Hour),
		})
		insertVersion(t, db, &model.PricingVersion{
			ServiceID: servicio, Name: "segunda",
			EffectiveDate: fecha(2026, 1, 1), Cost: 71000,
			CreatedAt: fecha(2026, 1, 1).Add(10 * time.Hour),
		})

		v, err := repo.ActiveVersionFor(ctx, servicio, asOf)
		require.NoError(t, err)
		assert.Equal(t, "segunda", v.Name)
	})

	t.Run("empate total desempata por id", func(t *testing.T) {
		servicio := uuid.New()
		creada := fecha(2026, 1, 1).Add(9 * time.Hour)
		insertVersion(t, db, &model.PricingVersion{
			ID:        uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001"),
			ServiceID: servicio, Name: "id bajo",
			EffectiveDate: fecha(2026, 1, 1), Cost: 70000, CreatedAt: creada,
		})
		insertVersion(t, db, &model.PricingVersion{
			ID:        uuid.MustParse("ffffffff-0000-0000-0000-000000000002"),
			ServiceID: servicio, Name: "id alto",
			EffectiveDate: fecha(2026, 1, 1), Cost: 70000, CreatedAt: creada,
		})

		v, err := repo.ActiveVersionFor(ctx, servicio, asOf)
		require.NoError(t, err)
		assert.Equal(t, "id alto", v.Name)
	})

	t.Run("una version finalizada deja de resolver", func(t *testing.T) {
		servicio := uuid.New()
		insertVersion(t, db, &model.PricingVersion{
			ServiceID: servicio, Name: "cerrada",
			EffectiveDate: fecha(2026, 1, 1),
			EndDate:       ptrTime(fecha(2026, 6, 30)),
			Cost:          70000,
		})

		_, err := repo.ActiveVersionFor(ctx, servicio, asOf)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestEndVersionCierraVentana(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPricingRepository(db)
	ctx := context.Background()

	servicio := uuid.New()
	v := &model.PricingVersion{
		ServiceID: servicio, Name: "abierta",
		EffectiveDate: fecha(2026, 1, 1), Cost: 70000,
	}
	insertVersion(t, db, v)

	require.NoError(t, repo.EndVersion(ctx, v.ID, fecha(2026, 6, 30)))

	// sigue activa dentro de la ventana, deja de estarlo despues
	activa, err := repo.ActiveVersionFor(ctx, servicio, fecha(2026, 5, 1))
	require.NoError(t, err)
	assert.Equal(t, v.ID, activa.ID)

	_, err = repo.ActiveVersionFor(ctx, servicio, fecha(2026, 8, 15))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestHasOverlappingVersion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPricingRepository(db)
	ctx := context.Background()

	servicio := uuid.New()
	v1 := &model.PricingVersion{
		ServiceID: servicio, Name: "semestre 1",
		EffectiveDate: fecha(2026, 1, 1),
		EndDate:       ptrTime(fecha(2026, 6, 30)),
		Cost:          70000,
	}
	insertVersion(t, db, v1)
	v2 := &model.PricingVersion{
		ServiceID: servicio, Name: "semestre 2",
		EffectiveDate: fecha(2026, 7, 1), Cost: 75000,
	}
	insertVersion(t, db, v2)

	t.Run("ventana nueva que cruza una existente", func(t *testing.T) {
		fin := fecha(2026, 9, 30)
		overlaps, err := repo.HasOverlappingVersion(ctx, servicio, fecha(2026, 2, 1), &fin, uuid.Nil)
		require.NoError(t, err)
		assert.True(t, overlaps)
	})

	t.Run("excluir la version editada ignora su propia ventana", func(t *testing.T) {
		// acortar el semestre 1 no choca con nadie
		fin := fecha(2026, 3, 31)
		overlaps, err := repo.HasOverlappingVersion(ctx, servicio, v1.EffectiveDate, &fin, v1.ID)
		require.NoError(t, err)
		assert.False(t, overlaps)

		// extenderlo hasta diciembre invade el semestre 2
		fin = fecha(2026, 12, 31)
		overlaps, err = repo.HasOverlappingVersion(ctx, servicio, v1.EffectiveDate, &fin, v1.ID)
		require.NoError(t, err)
		assert.True(t, overlaps)
	})

	t.Run("otro servicio no cuenta", func(t *testing.T) {
		fin := fecha(2026, 9, 30)
		overlaps, err := repo.HasOverlappingVersion(ctx, uuid.New(), fecha(2026, 2, 1), &fin, uuid.Nil)
		require.NoError(t, err)
		assert.False(t, overlaps)
	})
}

func TestCreateSizePriceDuplicada(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPricingRepository(db)
	ctx := context.Background()

	version := uuid.New()
	primera := &model.SizeTierPrice{
		ID: uuid.New(), VersionID: version,
		VehicleSize: model.SizeMedium, BaseCost: 80000, SuggestedPrice: 120000,
	}
	require.NoError(t, repo.CreateSizePrice(ctx, primera))

	segunda := &model.SizeTierPrice{
		ID: uuid.New(), VersionID: version,
		VehicleSize: model.SizeMedium, BaseCost: 85000, SuggestedPrice: 125000,
	}
	err := repo.CreateSizePrice(ctx, segunda)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestActiveExceptionsForOrden(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPricingRepository(db)
	ctx := context.Background()

	version := uuid.New()
	base := fecha(2026, 1, 1)

	// insertadas fuera de orden cronologico a proposito
	for _, e := range []*model.ExceptionPrice{
		{ID: uuid.New(), VersionID: version, Brand: "Ford", Model: "Explorer",
			VehicleSize: model.SizeExtraLarge, SpecialCost: 140000, SpecialPrice: 195000,
			IsActive: true, CreatedAt: base.Add(10 * time.Hour)},
		{ID: uuid.New(), VersionID: version, Brand: "Chevrolet", Model: "Tahoe",
			VehicleSize: model.SizeExtraLarge, SpecialCost: 150000, SpecialPrice: 200000,
			IsActive: true, CreatedAt: base.Add(9 * time.Hour)},
		{ID: uuid.New(), VersionID: version, Brand: "Toyota", Model: "Prado",
			VehicleSize: model.SizeExtraLarge, SpecialCost: 145000, SpecialPrice: 198000,
			IsActive: true, CreatedAt: base.Add(11 * time.Hour)},
		{ID: uuid.New(), VersionID: version, Brand: "Nissan", Model: "Patrol",
			VehicleSize: model.SizeExtraLarge, SpecialCost: 140000, SpecialPrice: 190000,
			IsActive: false, CreatedAt: base.Add(8 * time.Hour)},
	} {
		require.NoError(t, db.Create(e).Error)
	}

	activas, err := repo.ActiveExceptionsFor(ctx, version)
	require.NoError(t, err)

	// la mas antigua primero; la inactiva no aparece
	require.Len(t, activas, 3)
	assert.Equal(t, "Tahoe", activas[0].Model)
	assert.Equal(t, "Explorer", activas[1].Model)
	assert.Equal(t, "Prado", activas[2].Model)
}

func ptrTime(t time.Time) *time.Time { return &t }
