package controller

import (
	"encoding/json"

	"github.com/benbeisheim/chessrooms-backend/internal/model"
	"github.com/benbeisheim/chessrooms-backend/internal/service"
	"github.com/benbeisheim/chessrooms-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/pkg/errors"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	roomID, _ := c.Locals("wsRoomID").(string)
	playerID, _ := c.Locals("wsPlayerID").(string)
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("websocket handler panic", "room", roomID, "player", playerID, "panic", r)
		}
	}()

	// broadcasts and replies share one writer
	conn := model.NewSyncSubscriber(c)
	if err := wsc.gameService.RegisterConnection(roomID, playerID, conn); err != nil {
		log.Warnw("failed to register connection", "room", roomID, "player", playerID, "error", err)
		conn.WriteJSON(ws.NewError(err))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(roomID, playerID, conn)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("read error", "room", roomID, "player", playerID, "error", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugw("parse error", "room", roomID, "player", playerID, "error", err)
			conn.WriteJSON(ws.NewError(errors.New("malformed message")))
			continue
		}

		if err := wsc.handleMessage(roomID, playerID, msg); err != nil {
			log.Infow("message rejected", "room", roomID, "player", playerID, "type", msg.Type, "error", err)
			conn.WriteJSON(ws.NewError(err))
		}
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(roomID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return errors.Wrap(err, "invalid move payload")
		}
		_, err := wsc.gameService.HandleMove(roomID, playerID, move)
		return err
	case ws.MessageTypeResign:
		_, err := wsc.gameService.Resign(roomID, playerID)
		return err
	case ws.MessageTypeDrawOffer:
		_, err := wsc.gameService.OfferDraw(roomID, playerID)
		return err
	default:
		return errors.Errorf("unknown message type: %s", msg.Type)
	}
}
