package service

// errors.go — typed domain errors for the pricing core.
// Handlers map these to HTTP statuses; nothing here is auto-retried.
// MargenInsuficienteError is the only recoverable kind: the caller can
// retry with an approver identity or a smaller discount.

import (
	"errors"
	"fmt"

	"github.com/Jcgmtxt/aquashield/internal/model"

	"github.com/shopspring/decimal"
)

var (
	// ErrSinVersionActiva: no pricing version covers today for the service.
	ErrSinVersionActiva = errors.New("no hay versión de precios activa para este servicio")

	// ErrPrecioFinalInvalido: a zero or negative final price was supplied.
	ErrPrecioFinalInvalido = errors.New("el precio final debe ser mayor que cero")

	// ErrTarifaDuplicada: a tier price already exists for (version, size).
	ErrTarifaDuplicada = errors.New("ya existe una tarifa para ese tamaño en esta versión")

	// ErrVersionSolapada: the new version window intersects an existing one.
	ErrVersionSolapada = errors.New("la ventana de vigencia se solapa con otra versión del servicio")
)

// SinTarifaError: the active version has no tier price for the resolved
// size — a catalog configuration gap, not a transient fault.
type SinTarifaError struct {
	Size model.VehicleSize
}

func (e *SinTarifaError) Error() string {
	return fmt.Sprintf("no hay precio configurado para vehículos de tamaño: %s", e.Size)
}

// MargenInsuficienteError: the final price would leave a margin below the
// version's floor and no approver was supplied.
type MargenInsuficienteError struct {
	Actual    decimal.Decimal
	Requerido decimal.Decimal
}

func (e *MargenInsuficienteError) Error() string {
	return fmt.Sprintf("el margen %s%% es menor al mínimo requerido %s%%. Se requiere aprobación",
		e.Actual.StringFixed(2), e.Requerido.StringFixed(2))
}
