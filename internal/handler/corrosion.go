package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Jcgmtxt/aquashield/internal/apierror"
	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/model"
	"github.com/Jcgmtxt/aquashield/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrosionHandler exposes the anticorrosion pricing operations: quoting a
// vehicle and applying the service.
type CorrosionHandler struct {
	svc            service.CorrosionService
	pdfStoragePath string
}

func NewCorrosionHandler(svc service.CorrosionService, pdfStoragePath string) *CorrosionHandler {
	return &CorrosionHandler{svc: svc, pdfStoragePath: pdfStoragePath}
}

// Cotizar godoc
// @Summary Cotizar el servicio para un vehículo
// @Tags corrosion
// @Produce json
// @Param id path string true "Service ID"
// @Param car_id query string true "Car ID"
// @Param size query string false "Override de tamaño (small|medium|large|extra_large)"
// @Success 200 {object} dto.CotizacionResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/servicios/{id}/cotizacion [get]
func (h *CorrosionHandler) Cotizar(c *gin.Context) {
	serviceID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	carID, err := uuid.Parse(c.Query("car_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("car_id inválido"))
		return
	}

	sizeOverride := model.VehicleSize(c.Query("size"))
	if sizeOverride != "" && !sizeOverride.Valid() {
		c.JSON(http.StatusBadRequest, apierror.New("Tamaño de vehículo inválido"))
		return
	}

	resp, err := h.svc.Cotizar(c.Request.Context(), serviceID, carID, sizeOverride)
	if err != nil {
		writePricingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Aplicar godoc
// @Summary Aplicar el servicio a un vehículo
// @Tags corrosion
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param body body dto.AplicarServicioRequest true "Aplicación"
// @Success 201 {object} dto.AppliedServiceResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/servicios/{id}/aplicar [post]
func (h *CorrosionHandler) Aplicar(c *gin.Context) {
	serviceID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AplicarServicioRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Aplicar(c.Request.Context(), serviceID, req)
	if err != nil {
		writePricingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// DescargarComprobante serves the receipt PDF generated by the async worker.
// 404 until the worker has produced the file.
func (h *CorrosionHandler) DescargarComprobante(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	path := filepath.Join(h.pdfStoragePath, "comprobante_"+id.String()+".pdf")
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Comprobante no disponible todavía"))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// writePricingError maps the pricing core's typed errors to HTTP statuses.
func writePricingError(c *gin.Context, err error) {
	var sinTarifa *service.SinTarifaError
	var margen *service.MargenInsuficienteError

	switch {
	case errors.Is(err, service.ErrSinVersionActiva):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.As(err, &sinTarifa):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.As(err, &margen):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, service.ErrPrecioFinalInvalido):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
