package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lapakku/models"
)

// errorResponse maps the shared error taxonomy onto HTTP status codes.
// Anything outside the taxonomy surfaces as a 500 with the raw message.
func errorResponse(c *fiber.Ctx, err error) error {
	var (
		validationErr *models.ValidationError
		notFoundErr   *models.NotFoundError
		stateErr      *models.InvalidStateError
		stockErr      *models.InsufficientStockError
		emptyCartErr  *models.EmptyCartError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": validationErr.Message})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": notFoundErr.Message})
	case errors.As(err, &stateErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": stateErr.Message})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": stockErr.Error()})
	case errors.As(err, &emptyCartErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": emptyCartErr.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": err.Error()})
	}
}
