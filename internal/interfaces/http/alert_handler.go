package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prateleira-api/internal/application/alert"
	"github.com/jhoicas/prateleira-api/internal/application/dto"
)

// AlertHandler expone el motor de alertas.
type AlertHandler struct {
	engine            *alert.EngineUseCase
	warningDays       int
	lowStockThreshold int
}

// NewAlertHandler construye el handler con los parámetros por defecto de los escaneos.
func NewAlertHandler(engine *alert.EngineUseCase, warningDays, lowStockThreshold int) *AlertHandler {
	return &AlertHandler{engine: engine, warningDays: warningDays, lowStockThreshold: lowStockThreshold}
}

// List godoc
// @Summary      Listar todas las alertas
// @Tags         alerts
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	list, err := h.engine.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToAlertResponses(list))
}

// ListUnresolved godoc
// @Summary      Listar alertas sin resolver (más recientes primero)
// @Tags         alerts
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts/unresolved [get]
func (h *AlertHandler) ListUnresolved(c *fiber.Ctx) error {
	list, err := h.engine.ListUnresolved(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToAlertResponses(list))
}

// GetByID godoc
// @Summary      Obtener alerta por ID
// @Tags         alerts
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id} [get]
func (h *AlertHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	a, err := h.engine.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToAlertResponse(a))
}

// Create godoc
// @Summary      Crear alerta manual
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAlertRequest  true  "Alerta"
// @Success      201   {object}  dto.AlertResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "ya existe una alerta abierta del mismo tipo"
// @Router       /api/alerts [post]
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAlertRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	a, err := h.engine.Create(c.UserContext(), alert.CreateInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Message:   in.Message,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAlertResponse(a))
}

// Resolve godoc
// @Summary      Resolver alerta (idempotente; vuelve a sellar la fecha)
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/resolve [put]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	a, err := h.engine.Resolve(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToAlertResponse(a))
}

// ScanExpirations godoc
// @Summary      Generar alertas de vencimiento próximo
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días"  default(7)
// @Success      200  {object}  dto.ScanResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "escaneo en curso"
// @Router       /api/alerts/scan/expirations [post]
func (h *AlertHandler) ScanExpirations(c *fiber.Ctx) error {
	created, err := h.engine.ScanExpirations(c.UserContext(), c.QueryInt("days", h.warningDays))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ScanResponse{Created: len(created), Alerts: dto.ToAlertResponses(created)})
}

// ScanLowStock godoc
// @Summary      Generar alertas de stock bajo
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral (incluido)"  default(5)
// @Success      200  {object}  dto.ScanResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "escaneo en curso"
// @Router       /api/alerts/scan/low-stock [post]
func (h *AlertHandler) ScanLowStock(c *fiber.Ctx) error {
	created, err := h.engine.ScanLowStock(c.UserContext(), c.QueryInt("threshold", h.lowStockThreshold))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ScanResponse{Created: len(created), Alerts: dto.ToAlertResponses(created)})
}
