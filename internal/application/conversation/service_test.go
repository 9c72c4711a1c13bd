package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tech-blog-ai-api/internal/domain/entity"
	"tech-blog-ai-api/internal/infrastructure/persistence/memory"
	apperrors "tech-blog-ai-api/pkg/errors"
)

func newTestService() *Service {
	repo := memory.NewSessionRepository(time.Hour, time.Minute)
	return NewService(repo, newFakeGenerator(), 12)
}

func TestService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	session, messages, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, entity.StageTopic, session.Stage)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "어떤 주제로")

	// 开场提问已写入对话记录
	transcript, err := svc.Transcript(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, transcript, 1)
	assert.Equal(t, entity.RoleAssistant, transcript[0].Role)
}

func TestService_HandleMessage_SessionNotFound(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.HandleMessage(context.Background(), "no-such-id", "네")
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeSessionNotFound, appErr.Code)
}

func TestService_HandleMessage_PersistsTranscript(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	session, _, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, messages, err := svc.HandleMessage(ctx, session.ID, "Docker 입문")
	require.NoError(t, err)
	require.Len(t, messages, 1)

	got, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, got.PendingConfirmation)
	// 开场提问 + 用户消息 + 确认提问
	assert.Len(t, got.Transcript, 3)
}

func TestService_Draft_NotReady(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	session, _, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.Draft(ctx, session.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDraftNotReady, apperrors.AsAppError(err).Code)
}

func TestService_RestartDestroysSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	session, _, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	// 人为推到终态
	loaded, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	loaded.Stage = entity.StageDone
	loaded.FinalDocument = "# T\n\n"
	require.NoError(t, svc.repo.Save(ctx, loaded))

	_, messages, err := svc.HandleMessage(ctx, session.ID, "다시 시작")
	require.NoError(t, err)
	require.Len(t, messages, 1)

	_, err = svc.GetSession(ctx, session.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSessionNotFound, apperrors.AsAppError(err).Code)
}

func TestService_DeleteSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	session, _, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteSession(ctx, session.ID))

	err = svc.DeleteSession(ctx, session.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSessionNotFound, apperrors.AsAppError(err).Code)
}
