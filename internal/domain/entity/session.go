package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role 对话角色枚举
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// StyleSpec 文章风格三要素
type StyleSpec struct {
	Format   string `json:"format"`
	Tone     string `json:"tone"`
	Audience string `json:"audience"`
}

// Empty 检查风格是否未设置
func (s StyleSpec) Empty() bool {
	return s.Format == "" && s.Tone == "" && s.Audience == ""
}

// TranscriptEntry 对话记录条目，仅用于展示回放，不参与决策
type TranscriptEntry struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Candidate 待确认的解释结果
// 同一时刻至多一个候选值处于待确认状态
type Candidate struct {
	Topic     string    `json:"topic,omitempty"`
	Keywords  []string  `json:"keywords,omitempty"`
	Style     StyleSpec `json:"style,omitempty"`
	Structure []string  `json:"structure,omitempty"`
	Subtitles []string  `json:"subtitles,omitempty"`
	Section   string    `json:"section,omitempty"`
}

// Session 一次博客初稿对话的全部状态
// 值随每轮 Advance 显式传入传出，无环境全局量
type Session struct {
	ID string `json:"id"`

	Stage Stage `json:"stage"`
	// PendingConfirmation 当前阶段已给出解释、等待用户确认
	PendingConfirmation bool `json:"pending_confirmation"`
	// QuestionAsked 当前提问阶段的问题是否已发出（空输入重入的幂等依据）
	QuestionAsked bool `json:"question_asked"`

	// 已确认的收集值
	Topic     string    `json:"topic,omitempty"`
	Keywords  []string  `json:"keywords,omitempty"`
	Style     StyleSpec `json:"style"`
	Structure []string  `json:"structure,omitempty"`
	Subtitles []string  `json:"subtitles,omitempty"`

	// SectionDrafts 小节标题 -> 已确认初稿
	SectionDrafts map[string]string `json:"section_drafts,omitempty"`
	// DraftCursor 指向当前正在撰写的小节，0 <= DraftCursor <= len(Subtitles)
	DraftCursor int `json:"draft_cursor"`

	Candidate Candidate `json:"candidate"`

	Transcript []TranscriptEntry `json:"transcript"`

	// FinalDocument 全部小节确认后装配出的 Markdown 全文
	FinalDocument string `json:"final_document,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession 创建新会话，初始态为主题提问
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:            uuid.New().String(),
		Stage:         StageTopic,
		SectionDrafts: make(map[string]string),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// AppendUser 追加一条用户消息到对话记录
func (s *Session) AppendUser(content string) {
	s.Transcript = append(s.Transcript, TranscriptEntry{
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	})
	s.UpdatedAt = time.Now()
}

// AppendAssistant 追加一条助手消息到对话记录
func (s *Session) AppendAssistant(content string) {
	s.Transcript = append(s.Transcript, TranscriptEntry{
		Role:      RoleAssistant,
		Content:   content,
		CreatedAt: time.Now(),
	})
	s.UpdatedAt = time.Now()
}

// CurrentSubtitle 返回 DraftCursor 指向的小节标题
func (s *Session) CurrentSubtitle() (string, bool) {
	if s.DraftCursor < 0 || s.DraftCursor >= len(s.Subtitles) {
		return "", false
	}
	return s.Subtitles[s.DraftCursor], true
}

// DraftingFinished 检查是否所有小节都已完成
func (s *Session) DraftingFinished() bool {
	return s.DraftCursor >= len(s.Subtitles)
}
