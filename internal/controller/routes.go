package controller

import (
	"github.com/benbeisheim/chessrooms-backend/internal/middleware"
	"github.com/benbeisheim/chessrooms-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Register mounts the REST and WebSocket routes on app.
func Register(app *fiber.App, gameService *service.GameService, wsConfig websocket.Config) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	app.Use("/ws", middleware.EnsurePlayerID())
	app.Get("/ws/rooms/:roomId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, wsConfig))

	api := app.Group("/api", middleware.EnsurePlayerID())

	rooms := api.Group("/rooms")
	rooms.Get("/", gameController.ListRooms)
	rooms.Post("/", gameController.CreateRoom)
	rooms.Get("/:roomId", gameController.GetRoomState)
	rooms.Post("/:roomId/join", gameController.JoinRoom)
	rooms.Post("/:roomId/move", gameController.MakeMove)
	rooms.Post("/:roomId/resign", gameController.Resign)
	rooms.Post("/:roomId/draw", gameController.OfferDraw)
}
