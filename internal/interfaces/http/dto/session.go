package dto

import (
	"time"

	"tech-blog-ai-api/internal/domain/entity"
)

// PostMessageRequest 用户消息请求体
type PostMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SessionView 会话状态视图
type SessionView struct {
	SessionID           string    `json:"session_id"`
	Stage               string    `json:"stage"`
	PendingConfirmation bool      `json:"pending_confirmation"`
	Topic               string    `json:"topic,omitempty"`
	Keywords            []string  `json:"keywords,omitempty"`
	Style               StyleView `json:"style"`
	Structure           []string  `json:"structure,omitempty"`
	Subtitles           []string  `json:"subtitles,omitempty"`
	DraftCursor         int       `json:"draft_cursor"`
	Completed           bool      `json:"completed"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// StyleView 风格三要素视图
type StyleView struct {
	Format   string `json:"format,omitempty"`
	Tone     string `json:"tone,omitempty"`
	Audience string `json:"audience,omitempty"`
}

// ConversationReply 一轮对话的助手回复
type ConversationReply struct {
	SessionID string   `json:"session_id"`
	Stage     string   `json:"stage"`
	Messages  []string `json:"messages"`
	Completed bool     `json:"completed"`
}

// TranscriptEntryView 对话记录条目视图
type TranscriptEntryView struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TranscriptView 对话记录视图
type TranscriptView struct {
	SessionID string                `json:"session_id"`
	Entries   []TranscriptEntryView `json:"entries"`
}

// DraftView 最终初稿视图
type DraftView struct {
	SessionID string `json:"session_id"`
	Document  string `json:"document"`
}

// NewSessionView 从领域实体构建会话视图
func NewSessionView(s *entity.Session) SessionView {
	return SessionView{
		SessionID:           s.ID,
		Stage:               string(s.Stage),
		PendingConfirmation: s.PendingConfirmation,
		Topic:               s.Topic,
		Keywords:            s.Keywords,
		Style: StyleView{
			Format:   s.Style.Format,
			Tone:     s.Style.Tone,
			Audience: s.Style.Audience,
		},
		Structure:   s.Structure,
		Subtitles:   s.Subtitles,
		DraftCursor: s.DraftCursor,
		Completed:   s.Stage.Terminal(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// NewTranscriptView 从对话记录构建视图
func NewTranscriptView(sessionID string, entries []entity.TranscriptEntry) TranscriptView {
	views := make([]TranscriptEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, TranscriptEntryView{
			Role:      string(e.Role),
			Content:   e.Content,
			CreatedAt: e.CreatedAt,
		})
	}
	return TranscriptView{SessionID: sessionID, Entries: views}
}
