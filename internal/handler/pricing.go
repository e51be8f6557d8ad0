package handler

import (
	"errors"
	"net/http"

	"github.com/Jcgmtxt/aquashield/internal/apierror"
	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/service"

	"github.com/gin-gonic/gin"
)

// PricingHandler administers versions, size tiers and exception prices.
// All routes require the supervisor or administrador role.
type PricingHandler struct{ svc service.PricingService }

func NewPricingHandler(svc service.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// ── Versiones ─────────────────────────────────────────────────────────────────

// CrearVersion godoc
// @Summary Crear una versión de precios para un servicio
// @Tags pricing
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param body body dto.CrearVersionRequest true "Versión"
// @Success 201 {object} dto.VersionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/servicios/{id}/versiones [post]
func (h *PricingHandler) CrearVersion(c *gin.Context) {
	serviceID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CrearVersionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearVersion(c.Request.Context(), serviceID, req)
	if err != nil {
		if errors.Is(err, service.ErrVersionSolapada) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PricingHandler) ListarVersiones(c *gin.Context) {
	serviceID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarVersiones(c.Request.Context(), serviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar versiones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PricingHandler) VersionActiva(c *gin.Context) {
	serviceID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.VersionActiva(c.Request.Context(), serviceID)
	if err != nil {
		if errors.Is(err, service.ErrSinVersionActiva) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar la versión activa"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PricingHandler) FinalizarVersion(c *gin.Context) {
	versionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.EndVersionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.FinalizarVersion(c.Request.Context(), versionID, req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Tarifas por tamaño ────────────────────────────────────────────────────────

func (h *PricingHandler) CrearTarifa(c *gin.Context) {
	versionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CrearTarifaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearTarifa(c.Request.Context(), versionID, req)
	if err != nil {
		if errors.Is(err, service.ErrTarifaDuplicada) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PricingHandler) ListarTarifas(c *gin.Context) {
	versionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarTarifas(c.Request.Context(), versionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar tarifas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Excepciones ───────────────────────────────────────────────────────────────

func (h *PricingHandler) CrearExcepcion(c *gin.Context) {
	versionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CrearExcepcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearExcepcion(c.Request.Context(), versionID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PricingHandler) ListarExcepciones(c *gin.Context) {
	versionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarExcepciones(c.Request.Context(), versionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar excepciones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PricingHandler) DesactivarExcepcion(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DesactivarExcepcion(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
