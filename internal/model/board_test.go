package model

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardBoardLayout(t *testing.T) {
	board := NewStandardBoard()
	assert.Equal(t, 32, len(board.Occupants()))

	king, ok := board.PieceAt(NewPosition(1, 5))
	require.True(t, ok)
	assert.Equal(t, King, king.Kind)
	assert.Equal(t, White, king.Side)

	queen, ok := board.PieceAt(NewPosition(8, 4))
	require.True(t, ok)
	assert.Equal(t, Queen, queen.Kind)
	assert.Equal(t, Black, queen.Side)

	for col := MinCol; col <= MaxCol; col++ {
		pawn, ok := board.PieceAt(NewPosition(2, col))
		require.True(t, ok)
		assert.Equal(t, Pawn, pawn.Kind)
		assert.False(t, pawn.HasMoved)
		for row := 3; row <= 6; row++ {
			assert.False(t, board.IsOccupied(NewPosition(row, col)))
		}
	}
}

func TestStandardBoardMatchesReferenceFEN(t *testing.T) {
	fen, err := NewStandardBoard().Snapshot().FEN()
	require.NoError(t, err)
	assert.Equal(t, chess.NewGame().Position().Board().String(), fen)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", fen)
}

func TestOccupantsOrderedAndCopied(t *testing.T) {
	board := mustBoard(t,
		NewPiece(Black, King, NewPosition(8, 1)),
		NewPiece(White, King, NewPosition(1, 8)),
		NewPiece(White, Rook, NewPosition(1, 2)),
	)
	occupants := board.Occupants()
	require.Len(t, occupants, 3)
	assert.Equal(t, NewPosition(1, 2), occupants[0].Position)
	assert.Equal(t, NewPosition(1, 8), occupants[1].Position)
	assert.Equal(t, NewPosition(8, 1), occupants[2].Position)

	occupants[0].Position = NewPosition(5, 5)
	assert.True(t, board.IsOccupied(NewPosition(1, 2)))
	assert.False(t, board.IsOccupied(NewPosition(5, 5)))
}

func TestNewBoardRejectsDuplicates(t *testing.T) {
	_, err := NewBoard(
		NewPiece(White, Rook, NewPosition(1, 1)),
		NewPiece(Black, Rook, NewPosition(1, 1)),
	)
	assert.ErrorIs(t, err, ErrBoardInconsistency)
}

func TestNewBoardAttachesRules(t *testing.T) {
	board := mustBoard(t, Piece{Side: White, Kind: Rook, Position: NewPosition(1, 1)})
	rook, ok := board.PieceAt(NewPosition(1, 1))
	require.True(t, ok)
	assert.True(t, rook.IsMovable(NewPosition(1, 8), board))
}

func TestBoardRemove(t *testing.T) {
	board := NewStandardBoard()
	removed, ok := board.Remove(NewPosition(1, 1))
	require.True(t, ok)
	assert.Equal(t, Rook, removed.Kind)
	assert.Equal(t, 31, len(board.Occupants()))
	assert.False(t, board.IsOccupied(NewPosition(1, 1)))

	_, ok = board.Remove(NewPosition(1, 1))
	assert.False(t, ok)
	assert.Equal(t, 31, len(board.Occupants()))

	// every remaining piece is still found at its own square
	for _, p := range board.Occupants() {
		got, ok := board.PieceAt(p.Position)
		require.True(t, ok)
		assert.True(t, got.Equal(p))
	}
}

func TestBoardRelocate(t *testing.T) {
	board := NewStandardBoard()
	require.NoError(t, board.Relocate(NewPosition(2, 5), NewPosition(4, 5)))

	pawn, ok := board.PieceAt(NewPosition(4, 5))
	require.True(t, ok)
	assert.Equal(t, NewPosition(4, 5), pawn.Position)
	assert.True(t, pawn.HasMoved)
	assert.False(t, board.IsOccupied(NewPosition(2, 5)))

	err := board.Relocate(NewPosition(3, 3), NewPosition(4, 3))
	assert.ErrorIs(t, err, ErrBoardInconsistency)

	err = board.Relocate(NewPosition(1, 1), NewPosition(2, 1))
	assert.ErrorIs(t, err, ErrBoardInconsistency)
}

func TestBoardObstacles(t *testing.T) {
	board := NewStandardBoard()
	obstacles := board.Obstacles(NewPosition(1, 1), NewPosition(8, 1))
	require.Len(t, obstacles, 2)
	assert.False(t, board.PathClear(NewPosition(1, 3), NewPosition(3, 5)))
	assert.True(t, board.PathClear(NewPosition(2, 1), NewPosition(7, 1)))
	assert.True(t, board.PathClear(NewPosition(3, 1), NewPosition(6, 4)))
}

func TestBoardClone(t *testing.T) {
	board := NewStandardBoard()
	clone := board.Clone()
	_, _ = clone.Remove(NewPosition(1, 1))
	assert.True(t, board.IsOccupied(NewPosition(1, 1)))
	assert.Equal(t, 31, len(clone.Occupants()))
}
