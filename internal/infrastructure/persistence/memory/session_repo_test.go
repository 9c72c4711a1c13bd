package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tech-blog-ai-api/internal/domain/entity"
)

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(time.Hour, time.Minute)

	session := entity.NewSession()
	session.Topic = "Docker 입문"
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Docker 입문", got.Topic)
	assert.Equal(t, 1, repo.Count(ctx))

	require.NoError(t, repo.Delete(ctx, session.ID))
	got, err = repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, repo.Count(ctx))
}

func TestSessionRepository_GetMissing(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Minute)

	got, err := repo.Get(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepository_SaveRejectsEmptyID(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Minute)

	err := repo.Save(context.Background(), &entity.Session{})
	assert.Error(t, err)
}

func TestSessionRepository_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(30*time.Millisecond, time.Minute)

	session := entity.NewSession()
	require.NoError(t, repo.Save(ctx, session))

	time.Sleep(60 * time.Millisecond)

	got, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
