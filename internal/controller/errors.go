package controller

import (
	"github.com/benbeisheim/chessrooms-backend/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/pkg/errors"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNoPieceAtSource), errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrGameAlreadyOver),
		errors.Is(err, model.ErrRoomFull),
		errors.Is(err, model.ErrAlreadyJoined):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrNotSeated):
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorw("request failed", "path", c.Path(), "error", err)
		return c.Status(status).JSON(fiber.Map{
			"error": "internal error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
