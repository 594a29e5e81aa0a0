package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/packstock-api/internal/application/dto"
	"github.com/jhoicas/packstock-api/internal/application/inventory"
	"github.com/jhoicas/packstock-api/internal/application/usecase"
	"github.com/jhoicas/packstock-api/internal/domain/entity"
)

// Restocker lo implementa *inventory.RestockUseCase.
type Restocker interface {
	Restock(ctx context.Context, input inventory.RestockInput) (*entity.InventoryItem, error)
}

// InventoryReader lo implementa *usecase.InventoryUseCase.
type InventoryReader interface {
	Overview(ctx context.Context) ([]dto.InventoryOverviewDTO, error)
	GetByID(ctx context.Context, id string) (*dto.InventoryOverviewDTO, error)
}

// ReplenishTrigger lo implementa *inventory.ReplenishScheduler.
type ReplenishTrigger interface {
	TriggerNow(ctx context.Context) ([]dto.ReplenishResultDTO, error)
}

// InventoryHandler maneja inventario: resumen, reabastecimiento manual y reposición (protegido).
type InventoryHandler struct {
	restock   Restocker
	reader    InventoryReader
	replenish ReplenishTrigger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(restock Restocker, reader InventoryReader, replenish ReplenishTrigger) *InventoryHandler {
	return &InventoryHandler{restock: restock, reader: reader, replenish: replenish}
}

// Restock godoc
// @Summary      Reabastecer artículo
// @Description  packs_added y pieces_added se suman al stock; los precios reemplazan el valor actual.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RestockRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	item, err := h.restock.Restock(c.Context(), inventory.RestockInput{
		InventoryID:       in.InventoryID,
		PacksAdded:        in.PacksAdded,
		PiecesAdded:       in.PiecesAdded,
		PurchasePricePack: in.PurchasePricePack,
		SellingPricePack:  in.SellingPricePack,
	})
	if err != nil {
		return err
	}
	return c.JSON(usecase.ToItemResponse(item))
}

// Overview godoc
// @Summary      Resumen de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.InventoryOverviewDTO
// @Router       /api/inventory [get]
func (h *InventoryHandler) Overview(c *fiber.Ctx) error {
	items, err := h.reader.Overview(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// GetByID godoc
// @Summary      Obtener artículo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.InventoryOverviewDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.reader.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// Replenish godoc
// @Summary      Ejecutar reposición automática
// @Description  Abre paquetes de los artículos con menos de 5 unidades sueltas. 409 si ya hay una pasada en curso.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenish [post]
func (h *InventoryHandler) Replenish(c *fiber.Ctx) error {
	results, err := h.replenish.TriggerNow(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"replenished": len(results),
		"items":       results,
	})
}
