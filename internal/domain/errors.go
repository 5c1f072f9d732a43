package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicateSKU  = errors.New("ya existe un producto con el SKU")
	ErrUsernameTaken = errors.New("el nombre de usuario ya existe")
	ErrLastUser      = errors.New("no se puede eliminar el último usuario del sistema")
	ErrSelfDelete    = errors.New("no puedes eliminar tu propia cuenta")
	ErrAdminDelete   = errors.New("no se puede eliminar a otro administrador por seguridad")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
)
