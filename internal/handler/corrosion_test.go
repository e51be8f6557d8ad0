package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/model"
	"github.com/Jcgmtxt/aquashield/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type stubCorrosionService struct {
	cotizarErr error
	aplicarErr error
	resp       *dto.CotizacionResponse
}

var _ service.CorrosionService = (*stubCorrosionService)(nil)

func (s *stubCorrosionService) Cotizar(_ context.Context, _, _ uuid.UUID, _ model.VehicleSize) (*dto.CotizacionResponse, error) {
	if s.cotizarErr != nil {
		return nil, s.cotizarErr
	}
	return s.resp, nil
}

func (s *stubCorrosionService) Aplicar(_ context.Context, _ uuid.UUID, _ dto.AplicarServicioRequest) (*dto.AppliedServiceResponse, error) {
	if s.aplicarErr != nil {
		return nil, s.aplicarErr
	}
	return &dto.AppliedServiceResponse{}, nil
}

func corrosionRouter(svc service.CorrosionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCorrosionHandler(svc, "/tmp/pdfs-inexistentes")
	r.GET("/v1/servicios/:id/cotizacion", h.Cotizar)
	r.POST("/v1/servicios/:id/aplicar", h.Aplicar)
	r.GET("/v1/aplicados/:id/comprobante", h.DescargarComprobante)
	return r
}

func TestCotizarMapeaErroresDePrecio(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected int
	}{
		{"sin version activa", service.ErrSinVersionActiva, http.StatusUnprocessableEntity},
		{"sin tarifa para el tamaño", &service.SinTarifaError{Size: model.SizeMedium}, http.StatusUnprocessableEntity},
		{
			"margen insuficiente",
			&service.MargenInsuficienteError{
				Actual:    decimal.RequireFromString("11.11"),
				Requerido: decimal.NewFromInt(20),
			},
			http.StatusUnprocessableEntity,
		},
		{"precio final invalido", service.ErrPrecioFinalInvalido, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := corrosionRouter(&stubCorrosionService{cotizarErr: tc.err})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet,
				"/v1/servicios/"+uuid.NewString()+"/cotizacion?car_id="+uuid.NewString(), nil)
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.expected, w.Code)
		})
	}
}

func TestCotizarValidaParametros(t *testing.T) {
	r := corrosionRouter(&stubCorrosionService{resp: &dto.CotizacionResponse{}})

	t.Run("service id invalido", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/servicios/abc/cotizacion?car_id="+uuid.NewString(), nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("car_id faltante", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/servicios/"+uuid.NewString()+"/cotizacion", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("tamaño invalido", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/servicios/"+uuid.NewString()+"/cotizacion?car_id="+uuid.NewString()+"&size=gigante", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("cotizacion exitosa", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/servicios/"+uuid.NewString()+"/cotizacion?car_id="+uuid.NewString()+"&size=medium", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAplicar(t *testing.T) {
	body := `{"car_id":"` + uuid.NewString() + `"}`

	t.Run("creado", func(t *testing.T) {
		r := corrosionRouter(&stubCorrosionService{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			"/v1/servicios/"+uuid.NewString()+"/aplicar", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("margen insuficiente es 422", func(t *testing.T) {
		r := corrosionRouter(&stubCorrosionService{
			aplicarErr: &service.MargenInsuficienteError{
				Actual:    decimal.RequireFromString("11.11"),
				Requerido: decimal.NewFromInt(20),
			},
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			"/v1/servicios/"+uuid.NewString()+"/aplicar", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "aprobación")
	})

	t.Run("car_id que no es uuid falla la validacion", func(t *testing.T) {
		r := corrosionRouter(&stubCorrosionService{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			"/v1/servicios/"+uuid.NewString()+"/aplicar", strings.NewReader(`{"car_id":"no-uuid"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("vehicle_size desconocido falla la validacion", func(t *testing.T) {
		r := corrosionRouter(&stubCorrosionService{})
		w := httptest.NewRecorder()
		cuerpo := `{"car_id":"` + uuid.NewString() + `","vehicle_size":"gigante"}`
		req := httptest.NewRequest(http.MethodPost,
			"/v1/servicios/"+uuid.NewString()+"/aplicar", strings.NewReader(cuerpo))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestDescargarComprobanteInexistente(t *testing.T) {
	r := corrosionRouter(&stubCorrosionService{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/aplicados/"+uuid.NewString()+"/comprobante", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
