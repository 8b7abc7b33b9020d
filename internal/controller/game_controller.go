package controller

import (
	"github.com/benbeisheim/chessrooms-backend/internal/model"
	"github.com/benbeisheim/chessrooms-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createRoomRequest struct {
	Name string `json:"name"`
}

func (gc *GameController) CreateRoom(c *fiber.Ctx) error {
	var req createRoomRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}
	playerID := c.Locals("playerID").(string)

	roomID, err := gc.gameService.CreateRoom(req.Name, playerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Room created",
		"room_id": roomID,
		"side":    model.White,
	})
}

func (gc *GameController) ListRooms(c *fiber.Ctx) error {
	return c.JSON(gc.gameService.ListRooms())
}

func (gc *GameController) JoinRoom(c *fiber.Ctx) error {
	roomID := c.Params("roomId")
	playerID := c.Locals("playerID").(string)

	side, err := gc.gameService.JoinRoom(roomID, playerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Room joined",
		"side":    side,
	})
}

func (gc *GameController) GetRoomState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetRoomState(c.Params("roomId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.MoveRequest
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move payload",
		})
	}
	playerID := c.Locals("playerID").(string)

	state, err := gc.gameService.HandleMove(c.Params("roomId"), playerID, move)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Resign(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	state, err := gc.gameService.Resign(c.Params("roomId"), playerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) OfferDraw(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	state, err := gc.gameService.OfferDraw(c.Params("roomId"), playerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(state)
}
