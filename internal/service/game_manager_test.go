package service

import (
	"sync"
	"testing"
	"time"

	"github.com/benbeisheim/chessrooms-backend/internal/model"
	"github.com/benbeisheim/chessrooms-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManagerWithRoom(t *testing.T) (*GameManager, *store.MemoryStore) {
	t.Helper()
	pieces := store.NewMemoryStore()
	gm := NewGameManager(pieces)
	_, err := gm.CreateRoom("room-1", "test", "alice")
	require.NoError(t, err)
	_, err = gm.JoinRoom("room-1", "bob")
	require.NoError(t, err)
	return gm, pieces
}

func TestGameManagerStoreFollowsMoves(t *testing.T) {
	gm, pieces := newManagerWithRoom(t)
	moves := []struct {
		player   string
		from, to model.Position
	}{
		{"alice", model.NewPosition(2, 5), model.NewPosition(4, 5)},
		{"bob", model.NewPosition(7, 4), model.NewPosition(5, 4)},
		{"alice", model.NewPosition(4, 5), model.NewPosition(5, 4)},
	}
	for _, mv := range moves {
		_, err := gm.MakeMove("room-1", mv.player, model.MoveRequest{From: mv.from, To: mv.to})
		require.NoError(t, err)

		state, err := gm.GetRoomState("room-1")
		require.NoError(t, err)
		stored, err := pieces.SelectAll("room-1")
		require.NoError(t, err)
		assert.Equal(t, state.Snapshot, stored)

		turn, err := pieces.LoadTurn("room-1")
		require.NoError(t, err)
		assert.Equal(t, state.ToMove, turn)
	}
}

func TestGameManagerRejectedMoveLeavesStoreAlone(t *testing.T) {
	gm, pieces := newManagerWithRoom(t)
	before, err := pieces.SelectAll("room-1")
	require.NoError(t, err)

	_, err = gm.MakeMove("room-1", "alice", model.MoveRequest{From: model.NewPosition(1, 1), To: model.NewPosition(3, 1)})
	assert.ErrorIs(t, err, model.ErrIllegalMove)

	after, err := pieces.SelectAll("room-1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestGameManagerRestore(t *testing.T) {
	gm, _ := newManagerWithRoom(t)
	_, err := gm.MakeMove("room-1", "alice", model.MoveRequest{From: model.NewPosition(2, 5), To: model.NewPosition(4, 5)})
	require.NoError(t, err)
	want, err := gm.GetRoomState("room-1")
	require.NoError(t, err)

	require.NoError(t, gm.Restore("room-1"))
	got, err := gm.GetRoomState("room-1")
	require.NoError(t, err)
	assert.Equal(t, want.Snapshot, got.Snapshot)
	assert.Equal(t, model.Black, got.ToMove)

	// the restored e4 pawn has moved and may not advance two squares again
	_, err = gm.MakeMove("room-1", "bob", model.MoveRequest{From: model.NewPosition(7, 1), To: model.NewPosition(6, 1)})
	require.NoError(t, err)
	_, err = gm.MakeMove("room-1", "alice", model.MoveRequest{From: model.NewPosition(4, 5), To: model.NewPosition(6, 5)})
	assert.ErrorIs(t, err, model.ErrIllegalMove)
}

func TestGameManagerUnknownRoom(t *testing.T) {
	gm := NewGameManager(store.NewMemoryStore())
	_, err := gm.GetRoom("nope")
	assert.ErrorIs(t, err, model.ErrRoomNotFound)
	_, err = gm.MakeMove("nope", "alice", model.MoveRequest{})
	assert.ErrorIs(t, err, model.ErrRoomNotFound)
	_, err = gm.JoinRoom("nope", "alice")
	assert.ErrorIs(t, err, model.ErrRoomNotFound)
	assert.ErrorIs(t, gm.Restore("nope"), model.ErrRoomNotFound)
}

func TestGameManagerDuplicateRoom(t *testing.T) {
	gm, _ := newManagerWithRoom(t)
	_, err := gm.CreateRoom("room-1", "again", "carol")
	assert.Error(t, err)
}

func TestGameManagerListRooms(t *testing.T) {
	gm, _ := newManagerWithRoom(t)
	_, err := gm.CreateRoom("room-2", "second", "carol")
	require.NoError(t, err)

	rooms := gm.ListRooms()
	require.Len(t, rooms, 2)
	ids := []string{rooms[0].ID, rooms[1].ID}
	assert.ElementsMatch(t, []string{"room-1", "room-2"}, ids)
	for _, r := range rooms {
		if r.ID == "room-1" {
			assert.Equal(t, "bob", r.Guest)
		} else {
			assert.Empty(t, r.Guest)
		}
	}
}

// slowTurnStore holds SaveTurn(Black) until release is closed.
type slowTurnStore struct {
	*store.MemoryStore
	entered chan struct{}
	release chan struct{}
}

func (s *slowTurnStore) SaveTurn(gameID string, turn model.Side) error {
	if turn == model.Black {
		close(s.entered)
		<-s.release
	}
	return s.MemoryStore.SaveTurn(gameID, turn)
}

func TestGameManagerPersistsMovesInOrder(t *testing.T) {
	pieces := &slowTurnStore{
		MemoryStore: store.NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	gm := NewGameManager(pieces)
	_, err := gm.CreateRoom("room-1", "test", "alice")
	require.NoError(t, err)
	_, err = gm.JoinRoom("room-1", "bob")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := gm.MakeMove("room-1", "alice", model.MoveRequest{From: model.NewPosition(2, 5), To: model.NewPosition(4, 5)})
		assert.NoError(t, err)
	}()
	<-pieces.entered

	go func() {
		defer wg.Done()
		_, err := gm.MakeMove("room-1", "bob", model.MoveRequest{From: model.NewPosition(7, 5), To: model.NewPosition(5, 5)})
		assert.NoError(t, err)
	}()
	// give black's move the chance to overtake white's pending write
	time.Sleep(50 * time.Millisecond)
	close(pieces.release)
	wg.Wait()

	state, err := gm.GetRoomState("room-1")
	require.NoError(t, err)
	require.Equal(t, model.White, state.ToMove)
	turn, err := pieces.LoadTurn("room-1")
	require.NoError(t, err)
	assert.Equal(t, model.White, turn)
	stored, err := pieces.SelectAll("room-1")
	require.NoError(t, err)
	assert.Equal(t, state.Snapshot, stored)

	require.NoError(t, gm.Restore("room-1"))
	restored, err := gm.GetRoomState("room-1")
	require.NoError(t, err)
	assert.Equal(t, model.White, restored.ToMove)
	assert.Equal(t, state.Snapshot, restored.Snapshot)
}

func TestGameManagerKingCaptureInStore(t *testing.T) {
	pieces := store.NewMemoryStore()
	gm := NewGameManager(pieces)
	_, err := gm.CreateRoom("room-1", "test", "alice")
	require.NoError(t, err)
	_, err = gm.JoinRoom("room-1", "bob")
	require.NoError(t, err)

	// 1.f3 e5 2.g4 Qh4 3.a3 Qxe1
	moves := []struct {
		player   string
		from, to model.Position
	}{
		{"alice", model.NewPosition(2, 6), model.NewPosition(3, 6)},
		{"bob", model.NewPosition(7, 5), model.NewPosition(5, 5)},
		{"alice", model.NewPosition(2, 7), model.NewPosition(4, 7)},
		{"bob", model.NewPosition(8, 4), model.NewPosition(4, 8)},
		{"alice", model.NewPosition(2, 1), model.NewPosition(3, 1)},
		{"bob", model.NewPosition(4, 8), model.NewPosition(1, 5)},
	}
	var result model.MoveResult
	for _, mv := range moves {
		result, err = gm.MakeMove("room-1", mv.player, model.MoveRequest{From: mv.from, To: mv.to})
		require.NoError(t, err, "%s %s-%s", mv.player, mv.from, mv.to)
	}
	assert.False(t, result.Relocated)
	assert.Equal(t, model.Status{Kind: model.StatusWon, Winner: model.Black}, result.Status)

	state, err := gm.GetRoomState("room-1")
	require.NoError(t, err)
	stored, err := pieces.SelectAll("room-1")
	require.NoError(t, err)
	assert.Equal(t, state.Snapshot, stored)
	assert.Len(t, stored, 31)

	turn, err := pieces.LoadTurn("room-1")
	require.NoError(t, err)
	assert.Equal(t, model.Black, turn)
}
