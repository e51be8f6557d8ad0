package handler

import (
	"net/http"

	"github.com/Jcgmtxt/aquashield/internal/apierror"
	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/middleware"
	"github.com/Jcgmtxt/aquashield/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckInsHandler struct{ svc service.CheckInService }

func NewCheckInsHandler(svc service.CheckInService) *CheckInsHandler {
	return &CheckInsHandler{svc: svc}
}

// Crear registers a vehicle entering the shop. The receiving advisor is
// taken from the JWT, not the body.
func (h *CheckInsHandler) Crear(c *gin.Context) {
	var req dto.CrearCheckInRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return
	}

	resp, err := h.svc.Crear(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CheckInsHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CheckInsHandler) Listar(c *gin.Context) {
	var filter dto.CheckInFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetros inválidos"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar check-ins"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CheckInsHandler) AgregarServicio(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AttachServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AgregarServicio(c.Request.Context(), id, req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CheckInsHandler) Iniciar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Iniciar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CheckInsHandler) Completar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Completar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CheckInsHandler) Cancelar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
