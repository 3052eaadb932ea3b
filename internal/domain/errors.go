package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")

	// ErrInvalidParameters lo devuelve únicamente el motor de pronóstico cuando los
	// parámetros de planta o el horizonte/ventana no permiten proyectar.
	ErrInvalidParameters = errors.New("parámetros de pronóstico inválidos")
)
