package service

import (
	"context"
	"errors"

	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/model"
	"github.com/Jcgmtxt/aquashield/internal/repository"

	"github.com/google/uuid"
)

// ServicioService manages the catalog of services the shop offers
// (protección anticorrosiva, polarizado, PPF, etc.).
type ServicioService interface {
	Crear(ctx context.Context, req dto.CrearServicioRequest) (*dto.ServicioResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ServicioResponse, error)
	Listar(ctx context.Context) ([]dto.ServicioResponse, error)
}

type servicioService struct {
	repo repository.ServiceRepository
}

func NewServicioService(repo repository.ServiceRepository) ServicioService {
	return &servicioService{repo: repo}
}

func (s *servicioService) Crear(ctx context.Context, req dto.CrearServicioRequest) (*dto.ServicioResponse, error) {
	svc := &model.Service{Name: req.Name, Description: req.Description}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return servicioToResponse(svc), nil
}

func (s *servicioService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ServicioResponse, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("servicio no encontrado")
	}
	return servicioToResponse(svc), nil
}

func (s *servicioService) Listar(ctx context.Context) ([]dto.ServicioResponse, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ServicioResponse, len(services))
	for i := range services {
		resp[i] = *servicioToResponse(&services[i])
	}
	return resp, nil
}

func servicioToResponse(s *model.Service) *dto.ServicioResponse {
	return &dto.ServicioResponse{
		ID:          s.ID.String(),
		Name:        s.Name,
		Description: s.Description,
	}
}
