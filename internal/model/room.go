package model

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/benbeisheim/chessrooms-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/pkg/errors"
)

// Subscriber receives room state pushes. *websocket.Conn satisfies it.
type Subscriber interface {
	WriteJSON(v interface{}) error
}

// SyncSubscriber allows one write at a time to the wrapped Subscriber.
// Websocket connections do not support concurrent writers.
type SyncSubscriber struct {
	conn Subscriber
	mu   sync.Mutex
}

func NewSyncSubscriber(conn Subscriber) *SyncSubscriber {
	if s, ok := conn.(*SyncSubscriber); ok {
		return s
	}
	return &SyncSubscriber{conn: conn}
}

func (s *SyncSubscriber) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *SyncSubscriber) wraps(conn Subscriber) bool {
	return Subscriber(s) == conn || s.conn == conn
}

// The subscribers of a single room
type RoomConnections struct {
	connections map[string]*SyncSubscriber // playerID -> connection
	mu          sync.RWMutex
}

// Room seats a host (white) and a guest (black) around one game. All game
// mutations happen under mu, so one move is processed at a time per room.
type Room struct {
	ID          string
	Name        string
	CreatedAt   time.Time
	mu          sync.Mutex
	game        *Game
	host        Player
	guest       Player
	drawOffers  map[Side]bool
	lastMove    *SimpleMove
	connections *RoomConnections
}

type RoomState struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Snapshot Snapshot `json:"snapshot"`
	FEN      string   `json:"fen"`
	ToMove   Side     `json:"toMove"`
	Status   Status   `json:"status"`
	Players  struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	DrawOffer *Side       `json:"drawOffer"`
	LastMove  *SimpleMove `json:"lastMove"`
}

func NewRoom(id, name, hostID string) *Room {
	return RestoreRoom(id, name, hostID, "", NewGame())
}

// RestoreRoom rebuilds a room around an existing game. guestID may be empty.
func RestoreRoom(id, name, hostID, guestID string, game *Game) *Room {
	room := &Room{
		ID:          id,
		Name:        name,
		CreatedAt:   time.Now(),
		game:        game,
		host:        Player{ID: hostID, Side: White},
		drawOffers:  make(map[Side]bool),
		connections: NewRoomConnections(),
	}
	if guestID != "" {
		room.guest = Player{ID: guestID, Side: Black}
	}
	return room
}

func NewRoomConnections() *RoomConnections {
	return &RoomConnections{
		connections: make(map[string]*SyncSubscriber),
	}
}

// Join seats playerID as the guest.
func (r *Room) Join(playerID string) (Side, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.host.ID == playerID || r.guest.ID == playerID {
		return "", errors.WithStack(ErrAlreadyJoined)
	}
	if r.guest.ID != "" {
		return "", errors.WithStack(ErrRoomFull)
	}
	r.guest = Player{ID: playerID, Side: Black}
	return Black, nil
}

func (r *Room) seatOf(playerID string) (Side, bool) {
	switch {
	case playerID == "":
		return "", false
	case r.host.ID == playerID:
		return White, true
	case r.guest.ID == playerID:
		return Black, true
	}
	return "", false
}

// MakeMove applies playerID's move. persist, when not nil, runs with the
// room still locked so that its writes happen in move order. A persist error
// is returned together with the accepted result.
func (r *Room) MakeMove(playerID string, move MoveRequest, persist func(MoveResult) error) (MoveResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	side, ok := r.seatOf(playerID)
	if !ok {
		return MoveResult{}, errors.WithStack(ErrNotSeated)
	}
	if r.game.Status().IsOver() {
		return MoveResult{}, errors.WithStack(ErrGameAlreadyOver)
	}
	if side != r.game.Turn() {
		return MoveResult{}, errors.Wrapf(ErrNotYourTurn, "%s to move", r.game.Turn())
	}

	result, err := r.game.RequestMove(move.From, move.To)
	if err != nil {
		return MoveResult{}, err
	}
	r.lastMove = &SimpleMove{From: result.From, To: result.To, Notation: notation(result)}
	r.drawOffers = make(map[Side]bool)
	if persist != nil {
		if err := persist(result); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (r *Room) Resign(playerID string) (Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	side, ok := r.seatOf(playerID)
	if !ok {
		return Status{}, errors.WithStack(ErrNotSeated)
	}
	if err := r.game.Resign(side); err != nil {
		return Status{}, err
	}
	return r.game.Status(), nil
}

// OfferDraw records a draw offer from playerID's side. The game is drawn
// once both sides have offered.
func (r *Room) OfferDraw(playerID string) (Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	side, ok := r.seatOf(playerID)
	if !ok {
		return Status{}, errors.WithStack(ErrNotSeated)
	}
	if r.game.Status().IsOver() {
		return Status{}, errors.WithStack(ErrGameAlreadyOver)
	}
	r.drawOffers[side] = true
	if r.drawOffers[side.Opponent()] {
		if err := r.game.AgreeDraw(); err != nil {
			return Status{}, err
		}
	}
	return r.game.Status(), nil
}

// ReplaceGame swaps in a game rebuilt elsewhere, typically from the store.
func (r *Room) ReplaceGame(game *Game) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.game = game
	r.lastMove = nil
	r.drawOffers = make(map[Side]bool)
}

func (r *Room) GetState() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state()
}

func (r *Room) state() RoomState {
	snapshot := r.game.Snapshot()
	state := RoomState{
		ID:       r.ID,
		Name:     r.Name,
		Snapshot: snapshot,
		ToMove:   r.game.Turn(),
		Status:   r.game.Status(),
		LastMove: r.lastMove,
	}
	if fen, err := snapshot.FEN(); err == nil {
		state.FEN = fen
	} else {
		log.Errorw("render fen", "room", r.ID, "error", err)
	}
	state.Players.White = ClientPlayer{ID: r.host.ID, Side: White, Score: r.game.Score(White)}
	state.Players.Black = ClientPlayer{ID: r.guest.ID, Side: Black, Score: r.game.Score(Black)}
	for _, side := range []Side{White, Black} {
		if r.drawOffers[side] && !state.Status.IsOver() {
			offered := side
			state.DrawOffer = &offered
		}
	}
	return state
}

// RegisterConnection subscribes playerID to state pushes. Players not
// seated may watch.
func (r *Room) RegisterConnection(playerID string, conn Subscriber) error {
	if playerID == "" {
		return errors.WithStack(ErrNotSeated)
	}

	r.connections.mu.Lock()
	if _, exists := r.connections.connections[playerID]; exists {
		log.Warnw("replacing existing connection", "room", r.ID, "player", playerID)
	}
	r.connections.connections[playerID] = NewSyncSubscriber(conn)
	r.connections.mu.Unlock()
	log.Infow("registered connection", "room", r.ID, "player", playerID)
	return nil
}

func (r *Room) UnregisterConnection(playerID string, conn Subscriber) {
	r.connections.mu.Lock()
	defer r.connections.mu.Unlock()

	// only drop the connection if a newer one has not replaced it
	if current, exists := r.connections.connections[playerID]; exists && current.wraps(conn) {
		delete(r.connections.connections, playerID)
		log.Infow("unregistered connection", "room", r.ID, "player", playerID)
	}
}

func (r *Room) ConnectionCount() int {
	r.connections.mu.RLock()
	defer r.connections.mu.RUnlock()
	return len(r.connections.connections)
}

// Broadcast pushes the current room state to every subscriber. Subscribers
// that fail to receive it are dropped.
func (r *Room) Broadcast() {
	payload, err := json.Marshal(r.GetState())
	if err != nil {
		log.Errorw("marshal room state", "room", r.ID, "error", err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)}

	r.connections.mu.RLock()
	active := make(map[string]*SyncSubscriber, len(r.connections.connections))
	for playerID, conn := range r.connections.connections {
		active[playerID] = conn
	}
	r.connections.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnw("failed to send state", "room", r.ID, "player", playerID, "error", err)
			r.UnregisterConnection(playerID, conn)
		}
	}
}
