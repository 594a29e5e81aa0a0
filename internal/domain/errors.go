package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrItemNotFound        = errors.New("artículo de inventario no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrPricingMissing      = errors.New("precio por paquete no configurado")
	ErrPricingUnresolved   = errors.New("no se pudo resolver el precio por unidad")
	ErrNoFieldsProvided    = errors.New("no se enviaron datos de reabastecimiento")
	ErrTransientStore      = errors.New("error transitorio de almacenamiento")
	ErrReplenishInProgress = errors.New("ya hay una reposición automática en curso")
	ErrReplenishStopped    = errors.New("la reposición automática está detenida")

	// Autenticación de administradores.
	ErrAdminNotFound      = errors.New("administrador no encontrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInviteInvalid      = errors.New("código de invitación inválido")
	ErrInviteUsed         = errors.New("el código de invitación ya fue usado")
	ErrInviteExpired      = errors.New("el código de invitación expiró")
)
