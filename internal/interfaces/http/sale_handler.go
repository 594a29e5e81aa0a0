package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/packstock-api/internal/application/dto"
	"github.com/jhoicas/packstock-api/internal/application/inventory"
	"github.com/jhoicas/packstock-api/internal/application/usecase"
)

// SaleProcessor lo implementa *inventory.SaleUseCase.
type SaleProcessor interface {
	ProcessSale(ctx context.Context, input inventory.SaleInput) (*inventory.SaleResult, error)
}

// SaleHandler registra ventas por paquete o por unidad (protegido).
type SaleHandler struct {
	uc SaleProcessor
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc SaleProcessor) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock y registra la venta con sus precios y ganancia en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleRequest  true  "inventory_id, sale_type (pack|piece), quantity"
// @Success      201   {object}  dto.ProcessSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	res, err := h.uc.ProcessSale(c.Context(), inventory.SaleInput{
		InventoryID: in.InventoryID,
		SaleType:    in.SaleType,
		Quantity:    in.Quantity,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProcessSaleResponse{
		Success: true,
		Profit:  res.Profit,
		Message: "venta registrada",
		Sale:    usecase.ToSaleResponse(res.Sale),
	})
}
