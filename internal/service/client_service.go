package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/model"
	"github.com/Jcgmtxt/aquashield/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrClienteDuplicado = errors.New("ya existe un cliente con ese número de identidad o teléfono")

type ClientService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	BuscarPorIdentidad(ctx context.Context, identityNumber string) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClientFilter) (*dto.ClienteListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
}

type clientService struct {
	repo repository.ClientRepository
}

func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func (s *clientService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if !model.ValidIdentityType(req.IdentityType) {
		return nil, fmt.Errorf("tipo de identidad inválido: %s", req.IdentityType)
	}

	client := &model.Client{
		Name:           req.Name,
		IdentityType:   req.IdentityType,
		IdentityNumber: req.IdentityNumber,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrClienteDuplicado
		}
		return nil, err
	}
	return clienteToResponse(client), nil
}

func (s *clientService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	return clienteToResponse(client), nil
}

func (s *clientService) BuscarPorIdentidad(ctx context.Context, identityNumber string) (*dto.ClienteResponse, error) {
	client, err := s.repo.FindByIdentityNumber(ctx, identityNumber)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	return clienteToResponse(client), nil
}

func (s *clientService) Listar(ctx context.Context, filter dto.ClientFilter) (*dto.ClienteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	clients, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, len(clients))
	for i := range clients {
		items[i] = *clienteToResponse(&clients[i])
	}
	return &dto.ClienteListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *clientService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		client.PhoneNumber = *req.PhoneNumber
	}
	if req.Email != nil {
		client.Email = req.Email
	}

	if err := s.repo.Update(ctx, client); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrClienteDuplicado
		}
		return nil, err
	}
	return clienteToResponse(client), nil
}

func clienteToResponse(c *model.Client) *dto.ClienteResponse {
	resp := &dto.ClienteResponse{
		ID:             c.ID.String(),
		Name:           c.Name,
		IdentityType:   c.IdentityType,
		IdentityNumber: c.IdentityNumber,
		PhoneNumber:    c.PhoneNumber,
		Email:          c.Email,
	}
	for i := range c.Cars {
		resp.Cars = append(resp.Cars, *carToResponse(&c.Cars[i]))
	}
	return resp
}
