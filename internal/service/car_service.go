package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/model"
	"github.com/Jcgmtxt/aquashield/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPlacaDuplicada = errors.New("ya existe un vehículo con esa placa")

type CarService interface {
	Crear(ctx context.Context, req dto.CrearCarRequest) (*dto.CarResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CarResponse, error)
	BuscarPorPlaca(ctx context.Context, plate string) (*dto.CarResponse, error)
	Listar(ctx context.Context, filter dto.CarFilter) (*dto.CarListResponse, error)
	ListarPorCliente(ctx context.Context, clientID uuid.UUID) ([]dto.CarResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCarRequest) (*dto.CarResponse, error)
}

type carService struct {
	repo       repository.CarRepository
	clientRepo repository.ClientRepository
}

func NewCarService(repo repository.CarRepository, clientRepo repository.ClientRepository) CarService {
	return &carService{repo: repo, clientRepo: clientRepo}
}

func (s *carService) Crear(ctx context.Context, req dto.CrearCarRequest) (*dto.CarResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("client_id inválido: %w", err)
	}
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return nil, errors.New("cliente no encontrado")
	}

	car := &model.Car{
		ClientID:    clientID,
		PlateNumber: strings.ToUpper(strings.TrimSpace(req.PlateNumber)),
		Brand:       req.Brand,
		Model:       req.Model,
		Year:        req.Year,
		Color:       req.Color,
	}
	if err := s.repo.Create(ctx, car); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPlacaDuplicada
		}
		return nil, err
	}
	return carToResponse(car), nil
}

func (s *carService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CarResponse, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("vehículo no encontrado")
	}
	return carToResponse(car), nil
}

func (s *carService) BuscarPorPlaca(ctx context.Context, plate string) (*dto.CarResponse, error) {
	car, err := s.repo.FindByPlate(ctx, plate)
	if err != nil {
		return nil, errors.New("vehículo no encontrado")
	}
	return carToResponse(car), nil
}

func (s *carService) Listar(ctx context.Context, filter dto.CarFilter) (*dto.CarListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	cars, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CarResponse, len(cars))
	for i := range cars {
		items[i] = *carToResponse(&cars[i])
	}
	return &dto.CarListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *carService) ListarPorCliente(ctx context.Context, clientID uuid.UUID) ([]dto.CarResponse, error) {
	cars, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CarResponse, len(cars))
	for i := range cars {
		items[i] = *carToResponse(&cars[i])
	}
	return items, nil
}

func (s *carService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCarRequest) (*dto.CarResponse, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("vehículo no encontrado")
	}

	if req.Brand != nil {
		car.Brand = *req.Brand
	}
	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.Color != nil {
		car.Color = *req.Color
	}

	if err := s.repo.Update(ctx, car); err != nil {
		return nil, err
	}
	return carToResponse(car), nil
}

func carToResponse(c *model.Car) *dto.CarResponse {
	return &dto.CarResponse{
		ID:          c.ID.String(),
		ClientID:    c.ClientID.String(),
		PlateNumber: c.PlateNumber,
		Brand:       c.Brand,
		Model:       c.Model,
		Year:        c.Year,
		Color:       c.Color,
		FullName:    c.FullName(),
	}
}
