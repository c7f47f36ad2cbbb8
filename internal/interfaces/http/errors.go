package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prateleira-api/internal/application/dto"
	"github.com/jhoicas/prateleira-api/internal/domain"
)

var (
	errInvalidBody = errors.New("cuerpo inválido")
	errMissingID   = errors.New("id es requerido")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// bindJSON parsea el body y aplica las etiquetas validate del DTO.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return validate.Struct(out)
}

// writeError traduce errores de dominio y validación al cuerpo dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: describe(verrs)})
	case errors.Is(err, errInvalidBody):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	case errors.Is(err, errMissingID):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: err.Error()})
	}
	if status, code, ok := domainStatus(err); ok {
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// domainStatus resuelve el estado HTTP y el código de los errores de dominio.
func domainStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", true
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", true
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK", true
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT", true
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE", true
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", true
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", true
	}
	return 0, "", false
}

// deny responde un rechazo de auth con el estado del error de dominio y un código más preciso.
func deny(c *fiber.Ctx, err error, code, message string) error {
	status, _, ok := domainStatus(err)
	if !ok {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func describe(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// pathID devuelve el parámetro :id o errMissingID.
func pathID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if id == "" {
		return "", errMissingID
	}
	return id, nil
}

// page lee limit/offset de la query, con límite por defecto 20 y máximo 100.
func page(c *fiber.Ctx) (limit, offset int) {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p.Limit, p.Offset
}
