package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prateleira-api/internal/application/dto"
	"github.com/jhoicas/prateleira-api/internal/application/inventory"
	"github.com/jhoicas/prateleira-api/internal/domain/entity"
)

// InventoryHandler expone el libro de movimientos y la lista de reposición.
type InventoryHandler struct {
	ledger        *inventory.LedgerUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, replenishment: replenishment}
}

type registerFunc func(ctx context.Context, productID string, quantity int, note string) (*entity.Movement, error)

// RegisterInbound godoc
// @Summary      Registrar entrada de stock
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Producto y cantidad"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/inbound [post]
func (h *InventoryHandler) RegisterInbound(c *fiber.Ctx) error {
	return h.register(c, h.ledger.RegisterInbound)
}

// RegisterOutbound godoc
// @Summary      Registrar salida de stock
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Producto y cantidad"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/movements/outbound [post]
func (h *InventoryHandler) RegisterOutbound(c *fiber.Ctx) error {
	return h.register(c, h.ledger.RegisterOutbound)
}

func (h *InventoryHandler) register(c *fiber.Ctx, fn registerFunc) error {
	var in dto.RegisterMovementRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	m, err := fn(c.UserContext(), in.ProductID, in.Quantity, in.Note)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(m))
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo su cantidad mínima con la cantidad sugerida de pedido, ordenados por prioridad.
// @Tags         products
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products/replenishment [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
