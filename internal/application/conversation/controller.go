// Package conversation 实现确认门控的线性对话步进控制
package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tech-blog-ai-api/internal/domain/entity"
	"tech-blog-ai-api/pkg/logger"
	"tech-blog-ai-api/pkg/metrics"
)

// Controller 拥有会话阶段与待确认态，决定每轮输入引发的状态迁移和回复
// 阶段沿 主题 -> 키워드 -> 스타일 -> 구조 -> 소제목 -> 小节初稿 -> 完成 的固定链前进，
// 用户否认时退回同一阶段的提问态，绝不跳跃
type Controller struct {
	gen         DraftGenerator
	maxSections int
}

// NewController 创建步进控制器
func NewController(gen DraftGenerator, maxSections int) *Controller {
	if maxSections <= 0 {
		maxSections = 12
	}
	return &Controller{gen: gen, maxSections: maxSections}
}

// Action 单轮推进的结果
type Action struct {
	// Messages 按顺序回给用户的助手消息
	Messages []string
	// Completed 本轮到达终态并装配出全文
	Completed bool
	// Restarted 终态下收到重新开始指令，调用方应销毁会话
	Restarted bool
}

// Advance 处理一条用户输入并推进会话
// 空输入表示重入当前阶段的提问（内部自动链也走这条路径）；
// 生成调用失败不作为 error 返回，而是把失败文案原样写进 Messages，阶段保持不变
func (c *Controller) Advance(ctx context.Context, s *entity.Session, userText string) (*Action, error) {
	if s == nil {
		return nil, fmt.Errorf("session is nil")
	}
	if !s.Stage.Valid() {
		return nil, fmt.Errorf("invalid session stage: %s", s.Stage)
	}

	act := &Action{}
	c.step(ctx, s, strings.TrimSpace(userText), act)
	s.UpdatedAt = time.Now()
	return act, nil
}

func (c *Controller) step(ctx context.Context, s *entity.Session, text string, act *Action) {
	switch {
	case s.Stage == entity.StageDone:
		c.handleDone(s, text, act)
	case s.Stage == entity.StageSectionDraft:
		c.handleSectionDraft(ctx, s, text, act)
	case s.PendingConfirmation:
		c.handleConfirm(ctx, s, text, act)
	default:
		c.handleQuestion(ctx, s, text, act)
	}
}

// handleQuestion 提问态：空输入重入发出（或跳过已发出的）问题，非空输入解释为本阶段答案
func (c *Controller) handleQuestion(ctx context.Context, s *entity.Session, text string, act *Action) {
	if text == "" {
		if s.QuestionAsked {
			// 问题已发出，空重入不重复提问
			return
		}
		c.askQuestion(ctx, s, act)
		return
	}

	switch s.Stage {
	case entity.StageTopic:
		s.Candidate = entity.Candidate{Topic: text}
		s.PendingConfirmation = true
		c.say(act, msgTopicConfirm(text))
	case entity.StageKeywords:
		keywords := splitList(text)
		if len(keywords) == 0 {
			c.say(act, msgClarifyNudge)
			return
		}
		s.Candidate = entity.Candidate{Keywords: keywords}
		s.PendingConfirmation = true
		c.say(act, msgKeywordConfirm(keywords))
	case entity.StageStyle:
		s.Candidate = entity.Candidate{Style: parseStyle(text)}
		s.PendingConfirmation = true
		c.say(act, msgStyleConfirm(s.Candidate.Style))
	case entity.StageStructure:
		structure := splitLines(text)
		if len(structure) == 0 {
			c.say(act, msgClarifyNudge)
			return
		}
		s.Candidate = entity.Candidate{Structure: structure}
		s.PendingConfirmation = true
		c.say(act, msgStructureConfirm(structure))
	case entity.StageSubtitles:
		subtitles := splitLines(text)
		if len(subtitles) == 0 {
			c.say(act, msgClarifyNudge)
			return
		}
		if len(subtitles) > c.maxSections {
			subtitles = subtitles[:c.maxSections]
		}
		s.Candidate = entity.Candidate{Subtitles: subtitles}
		s.PendingConfirmation = true
		c.say(act, msgSubtitleConfirm(subtitles))
	}
}

// askQuestion 发出当前阶段的问题
// 키워드/구조 的问题内容依赖生成调用；失败时 QuestionAsked 保持 false，
// 用户的下一条输入仍按本阶段答案解释
func (c *Controller) askQuestion(ctx context.Context, s *entity.Session, act *Action) {
	switch s.Stage {
	case entity.StageTopic:
		s.QuestionAsked = true
		c.say(act, msgTopicQuestion)
	case entity.StageKeywords:
		recommended, err := c.gen.SuggestKeywords(ctx, s.Topic)
		if err != nil {
			c.sayFailure(ctx, s, act, err)
			return
		}
		s.QuestionAsked = true
		c.say(act, msgKeywordQuestion(s.Topic, recommended))
	case entity.StageStyle:
		s.QuestionAsked = true
		c.say(act, msgStyleQuestion)
	case entity.StageStructure:
		// 结构建议本身就是候选值，发出即进入待确认态
		suggested, err := c.gen.SuggestStructure(ctx, s.Topic, s.Keywords, s.Style)
		if err != nil {
			c.sayFailure(ctx, s, act, err)
			return
		}
		structure := splitLines(suggested)
		s.Candidate = entity.Candidate{Structure: structure}
		s.PendingConfirmation = true
		s.QuestionAsked = true
		c.say(act, msgStructureSuggest(structure))
	case entity.StageSubtitles:
		s.QuestionAsked = true
		c.say(act, msgSubtitleQuestion(s.Structure))
	}
}

// handleConfirm 前段（主题~소제목）确认态
func (c *Controller) handleConfirm(ctx context.Context, s *entity.Session, text string, act *Action) {
	intent := Classify(text)
	metrics.IntentClassifiedTotal.WithLabelValues(string(intent)).Inc()

	switch intent {
	case IntentAffirm:
		c.commit(ctx, s, act)
	case IntentReject:
		// 丢弃候选值，退回本阶段提问态；重问消息本身就是新的提问
		s.Candidate = entity.Candidate{}
		s.PendingConfirmation = false
		s.QuestionAsked = true
		c.say(act, reaskMessage(s.Stage))
	default:
		c.say(act, msgClarifyNudge)
	}
}

// commit 把候选值写入已确认字段并前进到下一阶段
func (c *Controller) commit(ctx context.Context, s *entity.Session, act *Action) {
	switch s.Stage {
	case entity.StageTopic:
		s.Topic = s.Candidate.Topic
		c.say(act, msgTopicCommitted)
	case entity.StageKeywords:
		s.Keywords = s.Candidate.Keywords
	case entity.StageStyle:
		s.Style = s.Candidate.Style
	case entity.StageStructure:
		s.Structure = s.Candidate.Structure
	case entity.StageSubtitles:
		s.Subtitles = s.Candidate.Subtitles
		s.DraftCursor = 0
		c.say(act, msgDraftIntro)
	}

	s.Candidate = entity.Candidate{}
	s.PendingConfirmation = false
	s.QuestionAsked = false

	next, ok := s.Stage.Next()
	if !ok {
		return
	}
	c.transition(s, next)

	// 自动链：确认后立即进入下一阶段的提问或撰写，无需等待输入
	c.step(ctx, s, "", act)
}

// handleSectionDraft 小节撰写阶段：无候选时生成初稿，有候选时按确认/修订处理
func (c *Controller) handleSectionDraft(ctx context.Context, s *entity.Session, text string, act *Action) {
	if !s.PendingConfirmation {
		// 入场（自动链空输入）或上次生成失败后的任意输入都触发撰写
		c.draftCurrentSection(ctx, s, act)
		return
	}

	intent := Classify(text)
	metrics.IntentClassifiedTotal.WithLabelValues(string(intent)).Inc()

	switch intent {
	case IntentAffirm:
		title, ok := s.CurrentSubtitle()
		if !ok {
			c.finish(s, act)
			return
		}
		s.SectionDrafts[title] = s.Candidate.Section
		s.Candidate = entity.Candidate{}
		s.PendingConfirmation = false
		s.DraftCursor++
		if s.DraftingFinished() {
			c.finish(s, act)
			return
		}
		// 自动链入下一小节的撰写
		c.step(ctx, s, "", act)
	case IntentReject:
		c.reviseCurrentSection(ctx, s, text, act)
	default:
		c.say(act, msgDraftClarifyNudge)
	}
}

func (c *Controller) draftCurrentSection(ctx context.Context, s *entity.Session, act *Action) {
	title, ok := s.CurrentSubtitle()
	if !ok {
		c.finish(s, act)
		return
	}

	draft, err := c.gen.DraftSection(ctx, SectionDraftRequest{
		SectionTitle:     title,
		SectionIndex:     s.DraftCursor,
		SectionCount:     len(s.Subtitles),
		PreviousSections: previousSectionsBlock(s),
		Topic:            s.Topic,
		Keywords:         s.Keywords,
		Style:            s.Style,
	})
	if err != nil {
		c.sayFailure(ctx, s, act, err)
		return
	}

	s.Candidate = entity.Candidate{Section: draft}
	s.PendingConfirmation = true
	c.say(act, msgSectionDraft(title, draft))
}

// reviseCurrentSection 把否认文本当作修订指示重写候选稿，候选被整体替换
func (c *Controller) reviseCurrentSection(ctx context.Context, s *entity.Session, text string, act *Action) {
	title, ok := s.CurrentSubtitle()
	if !ok {
		c.finish(s, act)
		return
	}

	revised, err := c.gen.ReviseSection(ctx, SectionRevisionRequest{
		SectionTitle:     title,
		UserRequest:      text,
		OriginalDraft:    s.Candidate.Section,
		PreviousSections: previousSectionsBlock(s),
		Topic:            s.Topic,
		Keywords:         s.Keywords,
		Style:            s.Style,
	})
	if err != nil {
		// 失败时保留原候选，等待下一条指示
		c.sayFailure(ctx, s, act, err)
		return
	}

	s.Candidate.Section = revised
	c.say(act, msgSectionRevised(revised))
}

// finish 装配全文并进入终态
func (c *Controller) finish(s *entity.Session, act *Action) {
	s.FinalDocument = Assemble(s.Topic, s.Subtitles, s.SectionDrafts)
	s.Candidate = entity.Candidate{}
	s.PendingConfirmation = false
	c.transition(s, entity.StageDone)

	metrics.DraftsCompletedTotal.Inc()
	metrics.DraftSectionCount.Observe(float64(len(s.Subtitles)))

	c.say(act, msgFullDraft(s.FinalDocument))
	act.Completed = true
}

// handleDone 终态只接受"再看全文"和"重新开始"两类指令
func (c *Controller) handleDone(s *entity.Session, text string, act *Action) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "다시 시작") || strings.Contains(lower, "재시작") || strings.Contains(lower, "restart"):
		act.Restarted = true
		c.say(act, msgRestart)
	case strings.Contains(lower, "초안") || strings.Contains(lower, "draft"):
		c.say(act, msgFullDraft(s.FinalDocument))
	default:
		c.say(act, msgDoneHelp)
	}
}

func (c *Controller) transition(s *entity.Session, to entity.Stage) {
	if !entity.CanTransition(s.Stage, to) {
		return
	}
	metrics.StageTransitionsTotal.WithLabelValues(string(s.Stage), string(to)).Inc()
	s.Stage = to
}

func (c *Controller) say(act *Action, msg string) {
	act.Messages = append(act.Messages, msg)
}

// sayFailure 把生成失败文案原样转述给用户，不改变会话状态
func (c *Controller) sayFailure(ctx context.Context, s *entity.Session, act *Action, err error) {
	logger.Warn(ctx, "draft generation failed",
		"session_id", s.ID,
		"stage", string(s.Stage),
		"error", err.Error(),
	)
	c.say(act, msgGenerationFailure(err))
}

func reaskMessage(stage entity.Stage) string {
	switch stage {
	case entity.StageTopic:
		return msgTopicReask
	case entity.StageKeywords:
		return msgKeywordReask
	case entity.StageStyle:
		return msgStyleReask
	case entity.StageStructure:
		return msgStructureReask
	case entity.StageSubtitles:
		return msgSubtitleReask
	default:
		return msgClarifyNudge
	}
}

// previousSectionsBlock 把已确认小节拼成 "## 标题\n正文" 上下文块
func previousSectionsBlock(s *entity.Session) string {
	var b strings.Builder
	for i := 0; i < s.DraftCursor && i < len(s.Subtitles); i++ {
		title := s.Subtitles[i]
		b.WriteString("## ")
		b.WriteString(title)
		b.WriteString("\n")
		b.WriteString(s.SectionDrafts[title])
		b.WriteString("\n\n")
	}
	return b.String()
}
