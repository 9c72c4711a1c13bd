package conversation

import (
	"context"
	"sync"

	"tech-blog-ai-api/internal/domain/entity"
	"tech-blog-ai-api/internal/domain/repository"
	apperrors "tech-blog-ai-api/pkg/errors"
	"tech-blog-ai-api/pkg/logger"
	"tech-blog-ai-api/pkg/metrics"
)

// Service 会话编排服务：加载会话、驱动控制器、回写存储
// 同一会话的并发消息按到达顺序串行处理，控制器内部无需加锁
type Service struct {
	repo repository.SessionRepository
	ctrl *Controller

	// locks 会话级互斥，键为会话 ID
	locks sync.Map
}

// NewService 创建会话服务
func NewService(repo repository.SessionRepository, gen DraftGenerator, maxSections int) *Service {
	return &Service{
		repo: repo,
		ctrl: NewController(gen, maxSections),
	}
}

// CreateSession 创建新会话并返回开场提问
func (s *Service) CreateSession(ctx context.Context) (*entity.Session, []string, error) {
	session := entity.NewSession()

	act, err := s.ctrl.Advance(ctx, session, "")
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to start conversation")
	}
	for _, msg := range act.Messages {
		session.AppendAssistant(msg)
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to save session")
	}

	logger.Info(ctx, "session created", "session_id", session.ID)
	return session, act.Messages, nil
}

// HandleMessage 处理一条用户消息并返回助手回复
// 会话到达终态且用户要求重新开始时，当场销毁会话
func (s *Service) HandleMessage(ctx context.Context, sessionID, text string) (*entity.Session, []string, error) {
	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	metrics.ConversationTurnsTotal.WithLabelValues(string(session.Stage)).Inc()
	session.AppendUser(text)

	act, err := s.ctrl.Advance(ctx, session, text)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to advance conversation")
	}
	for _, msg := range act.Messages {
		session.AppendAssistant(msg)
	}

	if act.Restarted {
		if err := s.repo.Delete(ctx, session.ID); err != nil {
			return nil, nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to destroy session")
		}
		s.locks.Delete(session.ID)
		logger.Info(ctx, "session restarted and destroyed", "session_id", session.ID)
		return session, act.Messages, nil
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to save session")
	}

	if act.Completed {
		logger.Info(ctx, "draft completed",
			"session_id", session.ID,
			"sections", len(session.Subtitles),
		)
	}
	return session, act.Messages, nil
}

// GetSession 查询会话
func (s *Service) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	return s.loadSession(ctx, sessionID)
}

// Transcript 返回会话的全量对话记录
func (s *Service) Transcript(ctx context.Context, sessionID string) ([]entity.TranscriptEntry, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Transcript, nil
}

// Draft 返回装配完成的 Markdown 全文，未完成时报 DraftNotReady
func (s *Service) Draft(ctx context.Context, sessionID string) (string, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session.FinalDocument == "" {
		return "", apperrors.ErrDraftNotReady
	}
	return session.FinalDocument, nil
}

// DeleteSession 删除会话
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, session.ID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeCacheError, "failed to delete session")
	}
	s.locks.Delete(session.ID)
	logger.Info(ctx, "session deleted", "session_id", session.ID)
	return nil
}

func (s *Service) loadSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to load session")
	}
	if session == nil {
		return nil, apperrors.ErrSessionNotFound
	}
	return session, nil
}

func (s *Service) lockFor(sessionID string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return v.(*sync.Mutex)
}
