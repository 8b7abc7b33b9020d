package store

import (
	"sort"
	"sync"

	"github.com/benbeisheim/chessrooms-backend/internal/model"
	"github.com/pkg/errors"
)

var ErrGameNotFound = errors.New("no pieces stored for game")

// Relocation is one position update of a stored piece.
type Relocation struct {
	From model.Position
	To   model.Position
}

// PieceStore keeps the piece rows of each game. Implementations must be
// safe for concurrent use.
type PieceStore interface {
	InsertAll(gameID string, rows model.Snapshot) error
	SelectAll(gameID string) (model.Snapshot, error)
	UpdateBatch(gameID string, moves []Relocation) error
	DeleteBatch(gameID string, positions []model.Position) error
	SaveTurn(gameID string, turn model.Side) error
	LoadTurn(gameID string) (model.Side, error)
}

type gameRecord struct {
	rows map[model.Position]model.PieceRow
	turn model.Side
}

type MemoryStore struct {
	games map[string]*gameRecord
	mu    sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]*gameRecord),
	}
}

func (s *MemoryStore) InsertAll(gameID string, rows model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[gameID]; exists {
		return errors.Errorf("pieces already stored for game %s", gameID)
	}
	record := &gameRecord{
		rows: make(map[model.Position]model.PieceRow, len(rows)),
		turn: model.White,
	}
	for _, row := range rows {
		pos := row.Position()
		if _, dup := record.rows[pos]; dup {
			return errors.Errorf("game %s: two rows for %s", gameID, pos)
		}
		record.rows[pos] = row
	}
	s.games[gameID] = record
	return nil
}

// SelectAll returns the stored rows ordered by row, then column.
func (s *MemoryStore) SelectAll(gameID string) (model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.games[gameID]
	if !ok {
		return nil, errors.Wrapf(ErrGameNotFound, "game %s", gameID)
	}
	rows := make(model.Snapshot, 0, len(record.rows))
	for _, row := range record.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Y != rows[j].Y {
			return rows[i].Y < rows[j].Y
		}
		return rows[i].X < rows[j].X
	})
	return rows, nil
}

// UpdateBatch applies all relocations or none of them.
func (s *MemoryStore) UpdateBatch(gameID string, moves []Relocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.games[gameID]
	if !ok {
		return errors.Wrapf(ErrGameNotFound, "game %s", gameID)
	}
	next := make(map[model.Position]model.PieceRow, len(record.rows))
	for pos, row := range record.rows {
		next[pos] = row
	}
	for _, mv := range moves {
		row, ok := next[mv.From]
		if !ok {
			return errors.Errorf("game %s: no stored piece at %s", gameID, mv.From)
		}
		if _, taken := next[mv.To]; taken {
			return errors.Errorf("game %s: %s is already occupied", gameID, mv.To)
		}
		delete(next, mv.From)
		row.X, row.Y = mv.To.Col, mv.To.Row
		next[mv.To] = row
	}
	record.rows = next
	return nil
}

// DeleteBatch removes the rows at positions. Missing rows are ignored.
func (s *MemoryStore) DeleteBatch(gameID string, positions []model.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.games[gameID]
	if !ok {
		return errors.Wrapf(ErrGameNotFound, "game %s", gameID)
	}
	for _, pos := range positions {
		delete(record.rows, pos)
	}
	return nil
}

func (s *MemoryStore) SaveTurn(gameID string, turn model.Side) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.games[gameID]
	if !ok {
		return errors.Wrapf(ErrGameNotFound, "game %s", gameID)
	}
	record.turn = turn
	return nil
}

func (s *MemoryStore) LoadTurn(gameID string) (model.Side, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.games[gameID]
	if !ok {
		return "", errors.Wrapf(ErrGameNotFound, "game %s", gameID)
	}
	return record.turn, nil
}
