package service

import (
	"context"
	"testing"

	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/model"
	"github.com/Jcgmtxt/aquashield/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCheckInRepo struct {
	checkIns map[uuid.UUID]*model.CheckIn
	links    []model.ServiceCheckIn
}

var _ repository.CheckInRepository = (*stubCheckInRepo)(nil)

func newStubCheckInRepo() *stubCheckInRepo {
	return &stubCheckInRepo{checkIns: make(map[uuid.UUID]*model.CheckIn)}
}

func (r *stubCheckInRepo) Create(_ context.Context, c *model.CheckIn) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.checkIns[c.ID] = c
	return nil
}

func (r *stubCheckInRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CheckIn, error) {
	c, ok := r.checkIns[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCheckInRepo) List(_ context.Context, filter dto.CheckInFilter) ([]model.CheckIn, int64, error) {
	var out []model.CheckIn
	for _, c := range r.checkIns {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCheckInRepo) Update(_ context.Context, c *model.CheckIn) error {
	r.checkIns[c.ID] = c
	return nil
}

func (r *stubCheckInRepo) AttachService(_ context.Context, link *model.ServiceCheckIn) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	r.links = append(r.links, *link)
	return nil
}

func (r *stubCheckInRepo) ListServices(_ context.Context, checkInID uuid.UUID) ([]model.ServiceCheckIn, error) {
	var out []model.ServiceCheckIn
	for _, l := range r.links {
		if l.CheckInID == checkInID {
			out = append(out, l)
		}
	}
	return out, nil
}

func newCheckInFixture(t *testing.T) (*stubCheckInRepo, *model.Car, *model.Service, CheckInService) {
	t.Helper()
	car := &model.Car{Brand: "Mazda", Model: "3", Year: "2022", PlateNumber: "CHK001"}
	carRepo := newStubCarRepo(car)
	catalogo := &model.Service{Name: "Protección Anticorrosiva"}
	serviceRepo := newStubServiceRepo(catalogo)
	repo := newStubCheckInRepo()
	svc := NewCheckInService(repo, carRepo, serviceRepo, nil)
	return repo, car, catalogo, svc
}

func TestCrearCheckIn(t *testing.T) {
	repo, car, catalogo, svc := newCheckInFixture(t)
	usuarioID := uuid.New()

	resp, err := svc.Crear(context.Background(), usuarioID, dto.CrearCheckInRequest{
		CarID:      car.ID.String(),
		Mileage:    45200,
		FuelLevel:  "3/4",
		ServiceIDs: []string{catalogo.ID.String()},
	})
	require.NoError(t, err)

	assert.Equal(t, model.CheckInPending, resp.Status)
	assert.Equal(t, 45200, resp.Mileage)
	assert.Equal(t, "3/4", resp.FuelLevel)
	require.Len(t, repo.links, 1)
	assert.Equal(t, catalogo.ID, repo.links[0].ServiceID)

	stored := repo.checkIns[uuid.MustParse(resp.ID)]
	assert.Equal(t, usuarioID, stored.UsuarioID)
	assert.NotEmpty(t, stored.CheckInTime)
}

func TestCrearCheckInVehiculoInexistente(t *testing.T) {
	_, _, _, svc := newCheckInFixture(t)

	_, err := svc.Crear(context.Background(), uuid.New(), dto.CrearCheckInRequest{
		CarID:     uuid.New().String(),
		FuelLevel: "1/2",
	})
	assert.Error(t, err)
}

func TestCrearCheckInServicioInexistente(t *testing.T) {
	_, car, _, svc := newCheckInFixture(t)

	_, err := svc.Crear(context.Background(), uuid.New(), dto.CrearCheckInRequest{
		CarID:      car.ID.String(),
		FuelLevel:  "1/2",
		ServiceIDs: []string{uuid.New().String()},
	})
	assert.Error(t, err)
}

func TestCicloDeVidaCheckIn(t *testing.T) {
	repo, car, _, svc := newCheckInFixture(t)

	resp, err := svc.Crear(context.Background(), uuid.New(), dto.CrearCheckInRequest{
		CarID:     car.ID.String(),
		FuelLevel: "1/2",
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, svc.Iniciar(context.Background(), id))
	assert.Equal(t, model.CheckInInProgress, repo.checkIns[id].Status)

	// no puede iniciarse dos veces
	assert.Error(t, svc.Iniciar(context.Background(), id))

	completado, err := svc.Completar(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.CheckInCompleted, completado.Status)
	assert.NotNil(t, completado.CheckOutDate)
	assert.NotNil(t, completado.CheckOutTime)

	// cerrado: ni completar de nuevo ni cancelar
	_, err = svc.Completar(context.Background(), id)
	assert.Error(t, err)
	assert.Error(t, svc.Cancelar(context.Background(), id))
}

func TestCancelarCheckInPendiente(t *testing.T) {
	repo, car, _, svc := newCheckInFixture(t)

	resp, err := svc.Crear(context.Background(), uuid.New(), dto.CrearCheckInRequest{
		CarID:     car.ID.String(),
		FuelLevel: "1/4",
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, svc.Cancelar(context.Background(), id))
	assert.Equal(t, model.CheckInCancelled, repo.checkIns[id].Status)

	// cancelado cuenta como cerrado para agregar servicios
	err = svc.AgregarServicio(context.Background(), id, dto.AttachServiceRequest{
		ServiceID: uuid.New().String(),
	})
	assert.Error(t, err)
}

func TestAgregarServicioACheckInAbierto(t *testing.T) {
	repo, car, catalogo, svc := newCheckInFixture(t)

	resp, err := svc.Crear(context.Background(), uuid.New(), dto.CrearCheckInRequest{
		CarID:     car.ID.String(),
		FuelLevel: "1/2",
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	err = svc.AgregarServicio(context.Background(), id, dto.AttachServiceRequest{
		ServiceID: catalogo.ID.String(),
	})
	require.NoError(t, err)
	require.Len(t, repo.links, 1)
	assert.Equal(t, id, repo.links[0].CheckInID)
}

func TestListarCheckInsPorEstado(t *testing.T) {
	_, car, _, svc := newCheckInFixture(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Crear(context.Background(), uuid.New(), dto.CrearCheckInRequest{
			CarID:     car.ID.String(),
			FuelLevel: "1/2",
		})
		require.NoError(t, err)
	}

	list, err := svc.Listar(context.Background(), dto.CheckInFilter{Status: model.CheckInPending})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
	assert.Len(t, list.Data, 3)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.Limit)
}
