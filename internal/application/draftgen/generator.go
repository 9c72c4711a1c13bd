// Package draftgen 把 Eino 文本生成链适配为对话层的生成端口
package draftgen

import (
	"context"
	"strings"

	"golang.org/x/sync/semaphore"

	"tech-blog-ai-api/internal/application/conversation"
	"tech-blog-ai-api/internal/config"
	"tech-blog-ai-api/internal/domain/entity"
	wfchain "tech-blog-ai-api/internal/workflow/chain"
	wfmodel "tech-blog-ai-api/internal/workflow/model"
	workflowport "tech-blog-ai-api/internal/workflow/port"
	workflowprompt "tech-blog-ai-api/internal/workflow/prompt"
)

const defaultMaxConcurrent = 8

// Generator 实现 conversation.DraftGenerator
// 每个提示词模板对应一条缓存的生成链，加权信号量限制同时进行的生成调用数
type Generator struct {
	chains map[workflowprompt.PromptID]*wfchain.TextGenerationChain
	sem    *semaphore.Weighted
}

var _ conversation.DraftGenerator = (*Generator)(nil)

// NewGenerator 创建生成器
func NewGenerator(cfg *config.Config, factory workflowport.ChatModelFactory) *Generator {
	provider := cfg.LLM.DefaultProvider
	modelName := cfg.LLM.Providers[provider].Model

	maxConcurrent := cfg.LLM.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	ids := []workflowprompt.PromptID{
		workflowprompt.PromptKeywordSuggestV1,
		workflowprompt.PromptStructureSuggestV1,
		workflowprompt.PromptSectionIntroV1,
		workflowprompt.PromptSectionBodyV1,
		workflowprompt.PromptSectionConclusionV1,
		workflowprompt.PromptSectionRevisionV1,
	}
	chains := make(map[workflowprompt.PromptID]*wfchain.TextGenerationChain, len(ids))
	for _, id := range ids {
		chains[id] = wfchain.NewTextGenerationChain(factory, provider, modelName, id)
	}

	return &Generator{
		chains: chains,
		sem:    semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// SuggestKeywords 按主题推荐关键词
func (g *Generator) SuggestKeywords(ctx context.Context, topic string) (string, error) {
	in := wfmodel.KeywordSuggestInput{Topic: topic}
	return g.invoke(ctx, workflowprompt.PromptKeywordSuggestV1, map[string]any{
		"topic": in.Topic,
	})
}

// SuggestStructure 按主题/关键词/风格建议文章结构
func (g *Generator) SuggestStructure(ctx context.Context, topic string, keywords []string, style entity.StyleSpec) (string, error) {
	in := wfmodel.StructureSuggestInput{
		Topic:    topic,
		Keywords: strings.Join(keywords, ", "),
		Style:    styleText(style),
	}
	return g.invoke(ctx, workflowprompt.PromptStructureSuggestV1, map[string]any{
		"topic":    in.Topic,
		"keywords": in.Keywords,
		"style":    in.Style,
	})
}

// DraftSection 为单个小节撰写初稿，按小节位置选择提示词
func (g *Generator) DraftSection(ctx context.Context, req conversation.SectionDraftRequest) (string, error) {
	in := wfmodel.SectionDraftInput{
		SectionTitle:     req.SectionTitle,
		Position:         sectionPosition(req.SectionIndex, req.SectionCount),
		PreviousSections: req.PreviousSections,
		Topic:            req.Topic,
		Keywords:         strings.Join(req.Keywords, ", "),
		Style:            styleText(req.Style),
	}

	var promptID workflowprompt.PromptID
	switch in.Position {
	case wfmodel.SectionIntro:
		promptID = workflowprompt.PromptSectionIntroV1
	case wfmodel.SectionConclusion:
		promptID = workflowprompt.PromptSectionConclusionV1
	default:
		promptID = workflowprompt.PromptSectionBodyV1
	}

	return g.invoke(ctx, promptID, map[string]any{
		"section_title":     in.SectionTitle,
		"previous_sections": in.PreviousSections,
		"topic":             in.Topic,
		"keywords":          in.Keywords,
		"style":             in.Style,
	})
}

// ReviseSection 按用户指示修订候选稿
func (g *Generator) ReviseSection(ctx context.Context, req conversation.SectionRevisionRequest) (string, error) {
	in := wfmodel.SectionRevisionInput{
		SectionTitle:     req.SectionTitle,
		UserRequest:      req.UserRequest,
		OriginalDraft:    req.OriginalDraft,
		PreviousSections: req.PreviousSections,
		Topic:            req.Topic,
		Keywords:         strings.Join(req.Keywords, ", "),
		Style:            styleText(req.Style),
	}
	return g.invoke(ctx, workflowprompt.PromptSectionRevisionV1, map[string]any{
		"section_title":     in.SectionTitle,
		"user_request":      in.UserRequest,
		"original_draft":    in.OriginalDraft,
		"previous_sections": in.PreviousSections,
		"topic":             in.Topic,
		"keywords":          in.Keywords,
		"style":             in.Style,
	})
}

func (g *Generator) invoke(ctx context.Context, id workflowprompt.PromptID, vars map[string]any) (string, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer g.sem.Release(1)

	return g.chains[id].Invoke(ctx, vars)
}

// sectionPosition 首节视为서론，末节视为결론，其余为본문；单节文章按서론处理
func sectionPosition(index, count int) wfmodel.SectionPosition {
	switch {
	case index <= 0:
		return wfmodel.SectionIntro
	case index == count-1:
		return wfmodel.SectionConclusion
	default:
		return wfmodel.SectionBody
	}
}

func styleText(style entity.StyleSpec) string {
	parts := make([]string, 0, 3)
	if style.Format != "" {
		parts = append(parts, "형식: "+style.Format)
	}
	if style.Tone != "" {
		parts = append(parts, "문체: "+style.Tone)
	}
	if style.Audience != "" {
		parts = append(parts, "대상 독자: "+style.Audience)
	}
	return strings.Join(parts, ", ")
}
