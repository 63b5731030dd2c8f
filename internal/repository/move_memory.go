package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type memoryMove struct {
	mu      sync.RWMutex
	entries map[string]entity.MoveEvaluation
}

// NewInMemoryMoveRepository - process-local variant, lost on exit.
func NewInMemoryMoveRepository() MoveRepository {
	return &memoryMove{
		entries: make(map[string]entity.MoveEvaluation),
	}
}

func (that *memoryMove) Get(_ context.Context, key string) (entity.MoveEvaluation, bool, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	evaluation, ok := that.entries[key]
	return evaluation, ok, nil
}

func (that *memoryMove) Set(_ context.Context, key string, evaluation entity.MoveEvaluation) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.entries[key] = evaluation
	return nil
}

func (that *memoryMove) DeleteByKey(_ context.Context, key string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.entries, key)
	return nil
}
