package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const movePrefix = "move:"

type MoveRepository interface {
	Get(ctx context.Context, key string) (entity.MoveEvaluation, bool, error)
	Set(ctx context.Context, key string, evaluation entity.MoveEvaluation) error
	DeleteByKey(ctx context.Context, key string) error
}

type dbMove struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMoveRepository - stores search results in redis. A zero ttl keeps them forever.
func NewMoveRepository(client *redis.Client, ttl time.Duration) MoveRepository {
	return &dbMove{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbMove) Set(ctx context.Context, key string, evaluation entity.MoveEvaluation) error {
	evaluationJSON, err := json.Marshal(evaluation)
	if err != nil {
		return fmt.Errorf("could not marshal move: %w", err)
	}

	err = that.client.Set(ctx, movePrefix+key, evaluationJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set move: %w", err)
	}

	return nil
}

func (that *dbMove) Get(ctx context.Context, key string) (entity.MoveEvaluation, bool, error) {
	response, err := that.client.Get(ctx, movePrefix+key).Result()

	if errors.Is(err, redis.Nil) {
		return entity.MoveEvaluation{}, false, nil
	}

	if err != nil {
		return entity.MoveEvaluation{}, false, fmt.Errorf("failed to get move by key: %w", err)
	}

	var evaluation entity.MoveEvaluation
	if err = json.Unmarshal([]byte(response), &evaluation); err != nil {
		return entity.MoveEvaluation{}, false, fmt.Errorf("failed to unmarshal move: %w", err)
	}

	return evaluation, true, nil
}

func (that *dbMove) DeleteByKey(ctx context.Context, key string) error {
	err := that.client.Del(ctx, movePrefix+key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete move by key: %w", err)
	}

	return nil
}
