// Package memory 提供进程内会话存储实现
package memory

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"tech-blog-ai-api/internal/domain/entity"
	"tech-blog-ai-api/pkg/metrics"
)

// SessionRepository 基于 go-cache 的会话仓储
// 会话仅存活于内存，按空闲 TTL 自动过期，进程重启即全部丢弃
type SessionRepository struct {
	cache *gocache.Cache
}

// NewSessionRepository 创建会话仓储
func NewSessionRepository(ttl, cleanupInterval time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &SessionRepository{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Save 写入或覆盖会话，刷新空闲过期时间
func (r *SessionRepository) Save(_ context.Context, session *entity.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session id is empty")
	}
	r.cache.Set(session.ID, session, gocache.DefaultExpiration)
	metrics.ActiveSessions.Set(float64(r.cache.ItemCount()))
	return nil
}

// Get 按 ID 查询会话，未命中返回 (nil, nil)
func (r *SessionRepository) Get(_ context.Context, id string) (*entity.Session, error) {
	v, found := r.cache.Get(id)
	if !found {
		return nil, nil
	}
	session, ok := v.(*entity.Session)
	if !ok {
		return nil, fmt.Errorf("unexpected cache entry type for session %s", id)
	}
	return session, nil
}

// Delete 删除会话
func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.cache.Delete(id)
	metrics.ActiveSessions.Set(float64(r.cache.ItemCount()))
	return nil
}

// Count 返回当前存活会话数
func (r *SessionRepository) Count(_ context.Context) int {
	return r.cache.ItemCount()
}
