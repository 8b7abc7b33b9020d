package service

import (
	"github.com/benbeisheim/chessrooms-backend/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateRoom(name, hostID string) (string, error) {
	roomID := uuid.New().String()
	if name == "" {
		name = "room " + roomID[:8]
	}

	if _, err := gs.gameManager.CreateRoom(roomID, name, hostID); err != nil {
		return "", errors.Wrap(err, "failed to create room")
	}
	return roomID, nil
}

func (gs *GameService) ListRooms() []RoomSummary {
	return gs.gameManager.ListRooms()
}

func (gs *GameService) JoinRoom(roomID, playerID string) (model.Side, error) {
	side, err := gs.gameManager.JoinRoom(roomID, playerID)
	if err != nil {
		return "", err
	}
	gs.broadcast(roomID)
	return side, nil
}

func (gs *GameService) GetRoomState(roomID string) (model.RoomState, error) {
	return gs.gameManager.GetRoomState(roomID)
}

func (gs *GameService) HandleMove(roomID, playerID string, move model.MoveRequest) (model.RoomState, error) {
	if _, err := gs.gameManager.MakeMove(roomID, playerID, move); err != nil {
		return model.RoomState{}, err
	}
	gs.broadcast(roomID)
	return gs.gameManager.GetRoomState(roomID)
}

func (gs *GameService) Resign(roomID, playerID string) (model.RoomState, error) {
	if _, err := gs.gameManager.Resign(roomID, playerID); err != nil {
		return model.RoomState{}, err
	}
	gs.broadcast(roomID)
	return gs.gameManager.GetRoomState(roomID)
}

func (gs *GameService) OfferDraw(roomID, playerID string) (model.RoomState, error) {
	if _, err := gs.gameManager.OfferDraw(roomID, playerID); err != nil {
		return model.RoomState{}, err
	}
	gs.broadcast(roomID)
	return gs.gameManager.GetRoomState(roomID)
}

func (gs *GameService) RegisterConnection(roomID, playerID string, conn model.Subscriber) error {
	if err := gs.gameManager.RegisterConnection(roomID, playerID, conn); err != nil {
		return err
	}
	gs.broadcast(roomID)
	return nil
}

func (gs *GameService) UnregisterConnection(roomID, playerID string, conn model.Subscriber) {
	gs.gameManager.UnregisterConnection(roomID, playerID, conn)
}

func (gs *GameService) broadcast(roomID string) {
	room, err := gs.gameManager.GetRoom(roomID)
	if err != nil {
		return
	}
	room.Broadcast()
}
