package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/packstock-api/internal/application/dto"
	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/pkg/logger"
)

var errInvalidBody = errors.New("cuerpo inválido")

// errorMapping relaciona un error de dominio con su respuesta HTTP.
// El mensaje enviado es siempre el del centinela, nunca el error envuelto.
type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{errInvalidBody, fiber.StatusBadRequest, "INVALID_BODY"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT"},
	{domain.ErrNoFieldsProvided, fiber.StatusBadRequest, "NO_FIELDS_PROVIDED"},
	{domain.ErrInviteInvalid, fiber.StatusBadRequest, "INVITE_INVALID"},
	{domain.ErrInviteUsed, fiber.StatusBadRequest, "INVITE_USED"},
	{domain.ErrInviteExpired, fiber.StatusBadRequest, "INVITE_EXPIRED"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrItemNotFound, fiber.StatusNotFound, "ITEM_NOT_FOUND"},
	{domain.ErrAdminNotFound, fiber.StatusNotFound, "ADMIN_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrReplenishInProgress, fiber.StatusConflict, "REPLENISH_IN_PROGRESS"},
	{domain.ErrPricingMissing, fiber.StatusUnprocessableEntity, "PRICING_MISSING"},
	{domain.ErrPricingUnresolved, fiber.StatusUnprocessableEntity, "PRICING_UNRESOLVED"},
	{domain.ErrTransientStore, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
	{domain.ErrReplenishStopped, fiber.StatusServiceUnavailable, "REPLENISH_STOPPED"},
}

// ValidationError campos inválidos de un request (go-playground/validator).
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string { return "datos inválidos" }

// ErrorHandler traduce los errores devueltos por los handlers a dto.ErrorResponse.
// Los 5xx no exponen detalle interno; se registran en el log.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := MapError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Int("status", status).
				Msg("error atendiendo petición")
		}
		return c.Status(status).JSON(body)
	}
}

// MapError devuelve el status y el cuerpo para err.
func MapError(err error) (int, dto.ErrorResponse) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: ve.Error(), Details: ve.Details}
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, dto.ErrorResponse{Code: m.code, Message: m.err.Error()}
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		if fe.Code == fiber.StatusNotFound {
			code = "ROUTE_NOT_FOUND"
		}
		if fe.Code == fiber.StatusTooManyRequests {
			code = "RATE_LIMITED"
		}
		return fe.Code, dto.ErrorResponse{Code: code, Message: fe.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
}
