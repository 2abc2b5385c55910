package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los adaptadores los envuelven con %w; la capa HTTP los traduce con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)
