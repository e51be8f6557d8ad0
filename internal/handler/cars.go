package handler

import (
	"errors"
	"net/http"

	"github.com/Jcgmtxt/aquashield/internal/apierror"
	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/service"

	"github.com/gin-gonic/gin"
)

type CarsHandler struct{ svc service.CarService }

func NewCarsHandler(svc service.CarService) *CarsHandler { return &CarsHandler{svc: svc} }

func (h *CarsHandler) Crear(c *gin.Context) {
	var req dto.CrearCarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrPlacaDuplicada) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CarsHandler) Obtener(c *gin.Context) {
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

// BuscarPorPlaca serves the reception-desk lookup by (partial) plate.
func (h *CarsHandler) BuscarPorPlaca(c *gin.Context) {
	resp, err := h.svc.BuscarPorPlaca(c.Request.Context(), c.Param("plate"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarsHandler) Listar(c *gin.Context) {
	var filter dto.CarFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetros inválidos"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar vehículos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarsHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarCarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
