package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/model"
	"github.com/Jcgmtxt/aquashield/internal/repository"
	"github.com/Jcgmtxt/aquashield/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type CheckInService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCheckInRequest) (*dto.CheckInResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CheckInResponse, error)
	Listar(ctx context.Context, filter dto.CheckInFilter) (*dto.CheckInListResponse, error)
	AgregarServicio(ctx context.Context, id uuid.UUID, req dto.AttachServiceRequest) error
	Iniciar(ctx context.Context, id uuid.UUID) error
	Completar(ctx context.Context, id uuid.UUID) (*dto.CheckInResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID) error
}

type checkInService struct {
	repo        repository.CheckInRepository
	carRepo     repository.CarRepository
	serviceRepo repository.ServiceRepository
	dispatcher  *worker.Dispatcher
}

func NewCheckInService(
	repo repository.CheckInRepository,
	carRepo repository.CarRepository,
	serviceRepo repository.ServiceRepository,
	dispatcher *worker.Dispatcher,
) CheckInService {
	return &checkInService{repo: repo, carRepo: carRepo, serviceRepo: serviceRepo, dispatcher: dispatcher}
}

func (s *checkInService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCheckInRequest) (*dto.CheckInResponse, error) {
	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return nil, fmt.Errorf("car_id inválido: %w", err)
	}
	if _, err := s.carRepo.FindByID(ctx, carID); err != nil {
		return nil, errors.New("vehículo no encontrado")
	}

	now := time.Now()
	checkIn := &model.CheckIn{
		CarID:       carID,
		UsuarioID:   usuarioID,
		CheckInDate: now,
		CheckInTime: now.Format("15:04:05"),
		Status:      model.CheckInPending,
		Mileage:     req.Mileage,
		FuelLevel:   req.FuelLevel,
		Comments:    req.Comments,
		VideoURL:    req.VideoURL,
	}
	if err := s.repo.Create(ctx, checkIn); err != nil {
		return nil, err
	}

	for _, sid := range req.ServiceIDs {
		serviceID, err := uuid.Parse(sid)
		if err != nil {
			return nil, fmt.Errorf("service_id inválido: %w", err)
		}
		if _, err := s.serviceRepo.FindByID(ctx, serviceID); err != nil {
			return nil, fmt.Errorf("servicio %s no encontrado", sid)
		}
		link := &model.ServiceCheckIn{CheckInID: checkIn.ID, ServiceID: serviceID}
		if err := s.repo.AttachService(ctx, link); err != nil {
			return nil, err
		}
	}

	return s.ObtenerPorID(ctx, checkIn.ID)
}

func (s *checkInService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CheckInResponse, error) {
	checkIn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("check-in no encontrado")
	}
	return checkInToResponse(checkIn), nil
}

func (s *checkInService) Listar(ctx context.Context, filter dto.CheckInFilter) (*dto.CheckInListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CheckInResponse, len(rows))
	for i := range rows {
		items[i] = *checkInToResponse(&rows[i])
	}
	return &dto.CheckInListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *checkInService) AgregarServicio(ctx context.Context, id uuid.UUID, req dto.AttachServiceRequest) error {
	checkIn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("check-in no encontrado")
	}
	if checkIn.Status == model.CheckInCompleted || checkIn.Status == model.CheckInCancelled {
		return errors.New("no se pueden agregar servicios a un check-in cerrado")
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return fmt.Errorf("service_id inválido: %w", err)
	}
	if _, err := s.serviceRepo.FindByID(ctx, serviceID); err != nil {
		return errors.New("servicio no encontrado")
	}
	return s.repo.AttachService(ctx, &model.ServiceCheckIn{CheckInID: id, ServiceID: serviceID})
}

func (s *checkInService) Iniciar(ctx context.Context, id uuid.UUID) error {
	checkIn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("check-in no encontrado")
	}
	if checkIn.Status != model.CheckInPending {
		return fmt.Errorf("el check-in está en estado %s, no puede iniciarse", checkIn.Status)
	}
	checkIn.Status = model.CheckInInProgress
	return s.repo.Update(ctx, checkIn)
}

// Completar closes the check-in, stamps check-out date/time and notifies
// the client by email when one is on file.
func (s *checkInService) Completar(ctx context.Context, id uuid.UUID) (*dto.CheckInResponse, error) {
	checkIn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("check-in no encontrado")
	}
	if checkIn.Status == model.CheckInCompleted {
		return nil, errors.New("el check-in ya está completado")
	}
	if checkIn.Status == model.CheckInCancelled {
		return nil, errors.New("el check-in está cancelado")
	}

	now := time.Now()
	outTime := now.Format("15:04:05")
	checkIn.Status = model.CheckInCompleted
	checkIn.CheckOutDate = &now
	checkIn.CheckOutTime = &outTime
	if err := s.repo.Update(ctx, checkIn); err != nil {
		return nil, err
	}

	if s.dispatcher != nil && checkIn.Car != nil && checkIn.Car.Client != nil && checkIn.Car.Client.Email != nil {
		payload := worker.EmailJobPayload{
			ToEmail: *checkIn.Car.Client.Email,
			Subject: "Su vehículo está listo",
			Body: fmt.Sprintf("Hola %s, su vehículo %s ya está listo para ser retirado.",
				checkIn.Car.Client.Name, checkIn.Car.FullName()),
		}
		if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
			log.Warn().Err(err).Str("check_in_id", id.String()).Msg("no se pudo encolar la notificación")
		}
	}

	return checkInToResponse(checkIn), nil
}

func (s *checkInService) Cancelar(ctx context.Context, id uuid.UUID) error {
	checkIn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("check-in no encontrado")
	}
	if checkIn.Status == model.CheckInCompleted {
		return errors.New("no se puede cancelar un check-in completado")
	}
	checkIn.Status = model.CheckInCancelled
	return s.repo.Update(ctx, checkIn)
}

func checkInToResponse(c *model.CheckIn) *dto.CheckInResponse {
	resp := &dto.CheckInResponse{
		ID:          c.ID.String(),
		CarID:       c.CarID.String(),
		CheckInDate: c.CheckInDate.Format("2006-01-02"),
		CheckInTime: c.CheckInTime,
		Status:      c.Status,
		Mileage:     c.Mileage,
		FuelLevel:   c.FuelLevel,
		Comments:    c.Comments,
		VideoURL:    c.VideoURL,
	}
	if c.CheckOutDate != nil {
		d := c.CheckOutDate.Format("2006-01-02")
		resp.CheckOutDate = &d
	}
	if c.CheckOutTime != nil {
		resp.CheckOutTime = c.CheckOutTime
	}
	if c.Car != nil {
		resp.Car = carToResponse(c.Car)
	}
	for _, link := range c.Services {
		if link.Service != nil {
			resp.Services = append(resp.Services, dto.ServicioResponse{
				ID:          link.Service.ID.String(),
				Name:        link.Service.Name,
				Description: link.Service.Description,
			})
		}
	}
	return resp
}
