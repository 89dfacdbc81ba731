package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los tipos de abajo
// envuelven estos centinelas para que los handlers sigan usando errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidation         = errors.New("entrada inválida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidState       = errors.New("estado inválido para la operación")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUnavailable        = errors.New("servicio no disponible")
)

// ValidationError entrada inválida con detalle a nivel de campo.
// Nunca se reintenta.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validación: %s", e.Detail)
	}
	return fmt.Sprintf("validación: %s: %s", e.Field, e.Detail)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validationf construye un ValidationError con formato.
func Validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Detail: fmt.Sprintf(format, args...)}
}

// ConflictError precondición de estado violada (ej. doble check-in).
// El cliente puede reintentar tras releer el estado.
type ConflictError struct {
	Entity string
	ID     string
	Detail string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicto en %s %s: %s", e.Entity, e.ID, e.Detail)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// InvalidStateError la entidad no está en el estado que requiere la operación.
type InvalidStateError struct {
	Entity    string
	ID        string
	Status    string
	Operation string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s en estado %q no admite %s", e.Entity, e.ID, e.Status, e.Operation)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// TransitionError cambio de estado ilegal según la máquina de estados.
type TransitionError struct {
	Entity string
	ID     string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s %s: transición %s → %s no permitida", e.Entity, e.ID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// NotFoundError recurso inexistente, con la entidad y el id consultado.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
