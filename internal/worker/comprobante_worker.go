package worker

// comprobante_worker.go
// Processes receipt jobs from QueueComprobante: renders a PDF receipt for
// an applied service and, when the client has an email on file, chains an
// email job with the PDF attached.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Jcgmtxt/aquashield/internal/infra"
	"github.com/Jcgmtxt/aquashield/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ComprobanteJobPayload is the job envelope sent to QueueComprobante.
type ComprobanteJobPayload struct {
	AppliedServiceID string `json:"applied_service_id"`
	ClientEmail      string `json:"client_email,omitempty"`
}

type ComprobanteWorker struct {
	appliedRepo    repository.AppliedServiceRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewComprobanteWorker(
	appliedRepo repository.AppliedServiceRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
) *ComprobanteWorker {
	return &ComprobanteWorker{
		appliedRepo:    appliedRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

func (w *ComprobanteWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ComprobanteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("comprobante_worker: invalid payload")
		return nil // malformed payload will never succeed, don't retry
	}

	appliedID, err := uuid.Parse(payload.AppliedServiceID)
	if err != nil {
		log.Error().Str("applied_service_id", payload.AppliedServiceID).
			Msg("comprobante_worker: invalid applied_service_id")
		return nil
	}

	applied, err := w.appliedRepo.FindByID(ctx, appliedID)
	if err != nil {
		return fmt.Errorf("comprobante_worker: applied service %s: %w", payload.AppliedServiceID, err)
	}

	pdfPath, err := infra.GenerateComprobantePDF(applied, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("comprobante_worker: pdf generation: %w", err)
	}
	log.Info().Str("pdf", pdfPath).Str("applied_service_id", payload.AppliedServiceID).
		Msg("comprobante_worker: PDF generated")

	if payload.ClientEmail != "" {
		var nombre, vehiculo string
		if applied.Car != nil {
			vehiculo = applied.Car.FullName()
			if applied.Car.Client != nil {
				nombre = applied.Car.Client.Name
			}
		}
		emailJob := EmailJobPayload{
			ToEmail: payload.ClientEmail,
			Subject: "Comprobante de servicio AquaShield",
			Body: fmt.Sprintf("Hola %s, adjuntamos el comprobante del servicio aplicado a tu vehículo %s.\nTotal: $%d",
				nombre, vehiculo, applied.FinalPrice),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", payload.ClientEmail).
				Msg("comprobante_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", payload.ClientEmail).Msg("comprobante_worker: email job enqueued")
		}
	}

	return nil
}
