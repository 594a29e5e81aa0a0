package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/packstock-api/internal/application/dto"
)

// ProfitReader lo implementa *usecase.ProfitUseCase.
type ProfitReader interface {
	Today(ctx context.Context) (*dto.TodayProfitDTO, error)
	ByProduct(ctx context.Context, page dto.PageRequest) (*dto.ProfitByProductResponse, error)
	Report(ctx context.Context) ([]byte, error)
}

// ProfitHandler reportes de ganancia (protegido).
type ProfitHandler struct {
	uc ProfitReader
}

// NewProfitHandler construye el handler.
func NewProfitHandler(uc ProfitReader) *ProfitHandler {
	return &ProfitHandler{uc: uc}
}

// Today godoc
// @Summary      Ganancia del día
// @Tags         profit
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TodayProfitDTO
// @Router       /api/profit/today [get]
func (h *ProfitHandler) Today(c *fiber.Ctx) error {
	out, err := h.uc.Today(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ByProduct godoc
// @Summary      Ganancia por producto y día
// @Tags         profit
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(100)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ProfitByProductResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/profit/products [get]
func (h *ProfitHandler) ByProduct(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return errInvalidBody
	}
	if err := Validate(&page); err != nil {
		return err
	}
	out, err := h.uc.ByProduct(c.Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de ganancias
// @Tags         profit
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/profit/report.pdf [get]
func (h *ProfitHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.uc.Report(c.Context())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="ganancias-%s.pdf"`, time.Now().Format("2006-01-02")))
	return c.Send(pdf)
}
