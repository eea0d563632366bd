package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// ErrNotAuthenticated y ErrUnauthorized se distinguen a propósito: el
// primero significa "no hay credencial válida" (la UI pide iniciar sesión
// de nuevo); el segundo "autenticado pero sin actor resoluble o sin
// permiso" (la UI dice "contacta a tu administrador").
//
// ErrNotFound colapsa "no existe" y "existe en otro tenant": las consultas
// filtran por tenant y no se distingue, para no filtrar existencia entre
// tenants.
var (
	ErrNotAuthenticated = errors.New("no autenticado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrConflict         = errors.New("conflicto con el estado actual")
)
