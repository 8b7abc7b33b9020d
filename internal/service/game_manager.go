package service

import (
	"sort"
	"sync"

	"github.com/benbeisheim/chessrooms-backend/internal/model"
	"github.com/benbeisheim/chessrooms-backend/internal/store"
	"github.com/gofiber/fiber/v2/log"
	"github.com/pkg/errors"
)

// GameManager is the registry of live rooms. The map lock is held only for
// lookups; each room serialises its own moves.
type GameManager struct {
	rooms  map[string]*model.Room
	pieces store.PieceStore
	mu     sync.RWMutex
}

type RoomSummary struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Host   string       `json:"host"`
	Guest  string       `json:"guest"`
	Status model.Status `json:"status"`
}

func NewGameManager(pieces store.PieceStore) *GameManager {
	return &GameManager{
		rooms:  make(map[string]*model.Room),
		pieces: pieces,
	}
}

func (gm *GameManager) CreateRoom(roomID, name, hostID string) (*model.Room, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.rooms[roomID]; exists {
		return nil, errors.Errorf("room %s already exists", roomID)
	}

	room := model.NewRoom(roomID, name, hostID)
	if err := gm.pieces.InsertAll(roomID, room.GetState().Snapshot); err != nil {
		return nil, errors.Wrap(err, "store initial pieces")
	}
	gm.rooms[roomID] = room
	log.Infow("room created", "room", roomID, "host", hostID)
	return room, nil
}

func (gm *GameManager) GetRoom(roomID string) (*model.Room, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	room, exists := gm.rooms[roomID]
	if !exists {
		return nil, errors.Wrapf(model.ErrRoomNotFound, "room %s", roomID)
	}
	return room, nil
}

func (gm *GameManager) ListRooms() []RoomSummary {
	gm.mu.RLock()
	rooms := make([]*model.Room, 0, len(gm.rooms))
	for _, room := range gm.rooms {
		rooms = append(rooms, room)
	}
	gm.mu.RUnlock()

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})
	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		state := room.GetState()
		summaries = append(summaries, RoomSummary{
			ID:     room.ID,
			Name:   room.Name,
			Host:   state.Players.White.ID,
			Guest:  state.Players.Black.ID,
			Status: state.Status,
		})
	}
	return summaries
}

func (gm *GameManager) JoinRoom(roomID, playerID string) (model.Side, error) {
	room, err := gm.GetRoom(roomID)
	if err != nil {
		return "", err
	}
	return room.Join(playerID)
}

func (gm *GameManager) GetRoomState(roomID string) (model.RoomState, error) {
	room, err := gm.GetRoom(roomID)
	if err != nil {
		return model.RoomState{}, err
	}
	return room.GetState(), nil
}

// MakeMove applies a move and mirrors it into the piece store.
func (gm *GameManager) MakeMove(roomID, playerID string, move model.MoveRequest) (model.MoveResult, error) {
	room, err := gm.GetRoom(roomID)
	if err != nil {
		return model.MoveResult{}, err
	}

	result, err := room.MakeMove(playerID, move, func(result model.MoveResult) error {
		if err := gm.persistMove(roomID, result); err != nil {
			log.Errorw("persist move", "room", roomID, "error", err)
			return err
		}
		return nil
	})
	if errors.Is(err, model.ErrBoardInconsistency) {
		log.Errorw("board inconsistency, restoring room from store", "room", roomID, "error", err)
		if restoreErr := gm.Restore(roomID); restoreErr != nil {
			log.Errorw("restore failed", "room", roomID, "error", restoreErr)
		}
		return model.MoveResult{}, err
	}
	return result, err
}

// persistMove mirrors an accepted move into the store. It runs under the
// room lock.
func (gm *GameManager) persistMove(roomID string, result model.MoveResult) error {
	if result.Captured != nil {
		if err := gm.pieces.DeleteBatch(roomID, []model.Position{result.To}); err != nil {
			return errors.Wrap(err, "delete captured piece")
		}
	}
	if result.Relocated {
		relocation := store.Relocation{From: result.From, To: result.To}
		if err := gm.pieces.UpdateBatch(roomID, []store.Relocation{relocation}); err != nil {
			return errors.Wrap(err, "update moved piece")
		}
	}
	if err := gm.pieces.SaveTurn(roomID, result.Turn); err != nil {
		return errors.Wrap(err, "save turn")
	}
	return nil
}

// Restore rebuilds the room's game from the stored pieces and turn.
func (gm *GameManager) Restore(roomID string) error {
	room, err := gm.GetRoom(roomID)
	if err != nil {
		return err
	}
	game, err := gm.LoadGame(roomID)
	if err != nil {
		return err
	}
	room.ReplaceGame(game)
	return nil
}

func (gm *GameManager) LoadGame(roomID string) (*model.Game, error) {
	rows, err := gm.pieces.SelectAll(roomID)
	if err != nil {
		return nil, err
	}
	turn, err := gm.pieces.LoadTurn(roomID)
	if err != nil {
		return nil, err
	}
	board, err := model.BoardFromSnapshot(rows)
	if err != nil {
		return nil, err
	}
	return model.RestoreGame(board, turn), nil
}

func (gm *GameManager) Resign(roomID, playerID string) (model.Status, error) {
	room, err := gm.GetRoom(roomID)
	if err != nil {
		return model.Status{}, err
	}
	return room.Resign(playerID)
}

func (gm *GameManager) OfferDraw(roomID, playerID string) (model.Status, error) {
	room, err := gm.GetRoom(roomID)
	if err != nil {
		return model.Status{}, err
	}
	return room.OfferDraw(playerID)
}

func (gm *GameManager) RegisterConnection(roomID, playerID string, conn model.Subscriber) error {
	room, err := gm.GetRoom(roomID)
	if err != nil {
		return err
	}
	return room.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(roomID, playerID string, conn model.Subscriber) {
	room, err := gm.GetRoom(roomID)
	if err != nil {
		return
	}
	room.UnregisterConnection(playerID, conn)
}
