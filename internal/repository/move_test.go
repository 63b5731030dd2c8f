package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evaluation = entity.MoveEvaluation{
	Move:  entity.Position{Row: 1, Col: 2},
	Value: -1,
}

const key = "X...O....:X"

func TestMoveRepository_Set(t *testing.T) {
	ctx, st := suite.New(t)

	moveRepo := NewMoveRepository(st.Storage, 0)

	// When: Set is called
	err := moveRepo.Set(ctx, key, evaluation)

	// Then: no error is returned and the value is stored under the move prefix
	require.NoError(t, err)

	exists, err := st.Storage.Exists(ctx, movePrefix+key).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}

func TestMoveRepository_Get(t *testing.T) {
	t.Run("Get_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		moveRepo := NewMoveRepository(st.Storage, 0)
		require.NoError(t, moveRepo.Set(ctx, key, evaluation))

		// When: Get is called with a stored key
		stored, ok, err := moveRepo.Get(ctx, key)

		// Then: the stored evaluation comes back
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, evaluation, stored)
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		moveRepo := NewMoveRepository(st.Storage, 0)

		// When: Get is called with an unknown key
		stored, ok, err := moveRepo.Get(ctx, "missing")

		// Then: a miss is reported without error
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, entity.MoveEvaluation{}, stored)
	})

	t.Run("Get_Corrupted", func(t *testing.T) {
		ctx, st := suite.New(t)

		moveRepo := NewMoveRepository(st.Storage, 0)
		require.NoError(t, st.Storage.Set(ctx, movePrefix+key, "not json", 0).Err())

		_, ok, err := moveRepo.Get(ctx, key)

		require.Error(t, err)
		assert.False(t, ok)
	})
}

func TestMoveRepository_TTL(t *testing.T) {
	ctx, st := suite.New(t)

	moveRepo := NewMoveRepository(st.Storage, time.Hour)
	require.NoError(t, moveRepo.Set(ctx, key, evaluation))

	ttl, err := st.Storage.TTL(ctx, movePrefix+key).Result()

	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestMoveRepository_DeleteByKey(t *testing.T) {
	ctx, st := suite.New(t)

	moveRepo := NewMoveRepository(st.Storage, 0)
	require.NoError(t, moveRepo.Set(ctx, key, evaluation))

	// When: DeleteByKey is called
	err := moveRepo.DeleteByKey(ctx, key)

	// Then: the key is gone
	require.NoError(t, err)
	_, ok, err := moveRepo.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInMemoryMoveRepository(t *testing.T) {
	ctx := context.Background()
	moveRepo := NewInMemoryMoveRepository()

	// Given: an empty repository
	_, ok, err := moveRepo.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)

	// When: an evaluation is stored
	require.NoError(t, moveRepo.Set(ctx, key, evaluation))

	// Then: it is returned until deleted
	stored, ok, err := moveRepo.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, evaluation, stored)

	require.NoError(t, moveRepo.DeleteByKey(ctx, key))
	_, ok, err = moveRepo.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}
