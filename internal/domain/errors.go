package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
	ErrConfigMissing = errors.New("documento de configuración de roles ausente")
	ErrMaxDepth      = errors.New("profundidad máxima de subcolecciones excedida")
)
