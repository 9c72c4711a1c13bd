// Package repository 定义领域仓储接口
package repository

import (
	"context"

	"tech-blog-ai-api/internal/domain/entity"
)

// SessionRepository 会话仓储接口
// 实现必须是进程内存储：会话是瞬态的，进程重启即全部丢弃
type SessionRepository interface {
	// Save 写入或覆盖会话，同时刷新其空闲过期时间
	Save(ctx context.Context, session *entity.Session) error
	// Get 按 ID 查询会话，未命中返回 (nil, nil)
	Get(ctx context.Context, id string) (*entity.Session, error)
	// Delete 删除会话，不存在时为空操作
	Delete(ctx context.Context, id string) error
	// Count 返回当前存活会话数
	Count(ctx context.Context) int
}
