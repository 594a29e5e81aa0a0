package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/packstock-api/internal/application/dto"
)

// StockNotifier lo implementa *notification.LowStockNotifier.
type StockNotifier interface {
	CheckAndNotify(ctx context.Context) (*dto.CheckStockResultDTO, error)
	ListLowStock(ctx context.Context) ([]dto.LowStockItemDTO, error)
	ResetNotification(ctx context.Context, id string) error
}

// NotificationHandler alertas de stock bajo (protegido).
type NotificationHandler struct {
	notifier StockNotifier
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(notifier StockNotifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// CheckStock godoc
// @Summary      Forzar chequeo de stock bajo
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CheckStockResultDTO
// @Router       /api/notifications/check-stock [post]
func (h *NotificationHandler) CheckStock(c *fiber.Ctx) error {
	out, err := h.notifier.CheckAndNotify(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Reset godoc
// @Summary      Rehabilitar alertas de un artículo
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/reset/{id} [post]
func (h *NotificationHandler) Reset(c *fiber.Ctx) error {
	if err := h.notifier.ResetNotification(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "notificación reiniciada"})
}

// LowStock godoc
// @Summary      Artículos bajo su umbral
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockListResponse
// @Router       /api/notifications/low-stock [get]
func (h *NotificationHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.notifier.ListLowStock(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.LowStockListResponse{Items: items})
}
