package main

import (
	"os"
	"strings"

	"github.com/benbeisheim/chessrooms-backend/internal/config"
	"github.com/benbeisheim/chessrooms-backend/internal/controller"
	"github.com/benbeisheim/chessrooms-backend/internal/service"
	"github.com/benbeisheim/chessrooms-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager(store.NewMemoryStore())
	gameService := service.NewGameService(gameManager)

	controller.Register(app, gameService, websocket.Config{
		ReadBufferSize:  cfg.WSBufferSize,
		WriteBufferSize: cfg.WSBufferSize,
		Origins:         cfg.AllowedOrigins,
	})

	log.Infow("listening", "addr", cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}
