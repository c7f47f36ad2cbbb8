package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prateleira-api/internal/application/dto"
	"github.com/jhoicas/prateleira-api/internal/application/inventory"
	"github.com/jhoicas/prateleira-api/internal/application/usecase"
)

// ShelfHandler maneja las peticiones HTTP para Shelf.
type ShelfHandler struct {
	uc       *usecase.ShelfUseCase
	capacity *inventory.ShelfCapacityUseCase
}

// NewShelfHandler construye el handler.
func NewShelfHandler(uc *usecase.ShelfUseCase, capacity *inventory.ShelfCapacityUseCase) *ShelfHandler {
	return &ShelfHandler{uc: uc, capacity: capacity}
}

// Create godoc
// @Summary      Crear estantería
// @Tags         shelves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShelfRequest  true  "Datos de la estantería"
// @Success      201   {object}  dto.ShelfResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shelves [post]
func (h *ShelfHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShelfRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener estantería por ID
// @Tags         shelves
// @Produce      json
// @Param        id   path  string  true  "ID de la estantería"
// @Success      200  {object}  dto.ShelfResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id} [get]
func (h *ShelfHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar estanterías
// @Tags         shelves
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ShelfListResponse
// @Router       /api/shelves [get]
func (h *ShelfHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar estantería
// @Tags         shelves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la estantería"
// @Param        body  body  dto.UpdateShelfRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ShelfResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shelves/{id} [put]
func (h *ShelfHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateShelfRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar estantería (sus productos quedan sin asignar)
// @Tags         shelves
// @Security     Bearer
// @Param        id   path  string  true  "ID de la estantería"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id} [delete]
func (h *ShelfHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AvailableSpace godoc
// @Summary      Verificar si la estantería admite otro producto
// @Tags         shelves
// @Produce      json
// @Param        id   path  string  true  "ID de la estantería"
// @Success      200  {object}  dto.ShelfSpaceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id}/available-space [get]
func (h *ShelfHandler) AvailableSpace(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	ok, err := h.capacity.HasAvailableSpace(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ShelfSpaceResponse{ShelfID: id, HasAvailableSpace: ok})
}
