package conversation

import (
	"context"

	"tech-blog-ai-api/internal/domain/entity"
)

// DraftGenerator 文本生成协作方端口
// 一次调用返回一段完整文本，失败时由调用方把错误文案原样转述给用户，不重试
type DraftGenerator interface {
	// SuggestKeywords 按主题推荐关键词，一行一个
	SuggestKeywords(ctx context.Context, topic string) (string, error)
	// SuggestStructure 按主题/关键词/风格建议文章结构，一行一个小节标题
	SuggestStructure(ctx context.Context, topic string, keywords []string, style entity.StyleSpec) (string, error)
	// DraftSection 为单个小节撰写初稿
	DraftSection(ctx context.Context, req SectionDraftRequest) (string, error)
	// ReviseSection 按用户指示修订当前小节候选稿
	ReviseSection(ctx context.Context, req SectionRevisionRequest) (string, error)
}

// SectionDraftRequest 小节撰写请求
type SectionDraftRequest struct {
	SectionTitle string
	SectionIndex int
	SectionCount int
	// PreviousSections 已确认小节按 "## 标题\n正文" 拼接的上下文
	PreviousSections string
	Topic            string
	Keywords         []string
	Style            entity.StyleSpec
}

// SectionRevisionRequest 小节修订请求
type SectionRevisionRequest struct {
	SectionTitle     string
	UserRequest      string
	OriginalDraft    string
	PreviousSections string
	Topic            string
	Keywords         []string
	Style            entity.StyleSpec
}
