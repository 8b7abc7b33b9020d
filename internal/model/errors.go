package model

import "github.com/pkg/errors"

var (
	ErrNoPieceAtSource    = errors.New("no piece at source square")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrIllegalMove        = errors.New("illegal move")
	ErrGameAlreadyOver    = errors.New("game already over")
	ErrBoardInconsistency = errors.New("board inconsistency")
	ErrInvalidSnapshot    = errors.New("invalid snapshot")

	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrAlreadyJoined = errors.New("player already joined this room")
	ErrNotSeated     = errors.New("player is not seated in this room")
)
