package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// errorStatus traduce un error de dominio a status HTTP y código de la API.
// Errores desconocidos son de infraestructura: 500 INTERNAL.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrSourceHasNoStock):
		return fiber.StatusConflict, "SOURCE_HAS_NO_STOCK"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrNegativeBalance):
		return fiber.StatusConflict, "NEGATIVE_BALANCE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUsernameTaken):
		return fiber.StatusConflict, "USERNAME_TAKEN"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

var errorMessages = map[string]string{
	"VALIDATION":          "datos inválidos",
	"NOT_FOUND":           "recurso no encontrado",
	"DUPLICATE":           "el identificador ya existe",
	"SOURCE_HAS_NO_STOCK": "la ubicación de origen no tiene stock del producto",
	"INSUFFICIENT_STOCK":  "stock insuficiente en la ubicación de origen",
	"NEGATIVE_BALANCE":    "el cambio dejaría un saldo negativo",
	"CONFLICT":            "el movimiento cambió durante la operación, reintente",
	"USERNAME_TAKEN":      "el usuario ya existe",
	"EMAIL_EXISTS":        "el email ya está registrado",
	"UNAUTHORIZED":        "credenciales inválidas",
	"FORBIDDEN":           "acceso denegado al recurso",
}

// writeError responde con el status y código que corresponden a err.
// notFound reemplaza el mensaje genérico de 404 cuando el handler conoce el recurso.
func writeError(c *fiber.Ctx, err error, notFound string) error {
	status, code := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
	}

	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(status).JSON(dto.StockErrorResponse{
			Code:      code,
			Message:   errorMessages[code],
			Available: stockErr.Available,
			Requested: stockErr.Requested,
		})
	}

	msg := errorMessages[code]
	if status == fiber.StatusNotFound && notFound != "" {
		msg = notFound
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func missingID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
}
