// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"tech-blog-ai-api/internal/application/conversation"
	"tech-blog-ai-api/internal/interfaces/http/dto"
	"tech-blog-ai-api/pkg/logger"
)

// SessionHandler 博客初稿会话处理器
type SessionHandler struct {
	svc *conversation.Service
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(svc *conversation.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Create 创建会话并返回开场提问
// @Summary 创建博客初稿会话
// @Tags Session
// @Produce json
// @Success 201 {object} dto.Response[dto.ConversationReply]
// @Router /v1/sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	session, messages, err := h.svc.CreateSession(c.Request.Context())
	if err != nil {
		dto.FromError(c, err)
		return
	}

	dto.Created(c, dto.ConversationReply{
		SessionID: session.ID,
		Stage:     string(session.Stage),
		Messages:  messages,
	})
}

// PostMessage 提交一条用户消息并推进对话
// @Summary 发送用户消息
// @Tags Session
// @Accept json
// @Produce json
// @Param sid path string true "会话 ID"
// @Param request body dto.PostMessageRequest true "消息内容"
// @Success 200 {object} dto.Response[dto.ConversationReply]
// @Router /v1/sessions/{sid}/messages [post]
func (h *SessionHandler) PostMessage(c *gin.Context) {
	sessionID := c.Param("sid")

	var req dto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "content is required")
		return
	}

	ctx := logger.WithContext(c.Request.Context(), logger.SessionIDKey, sessionID)
	session, messages, err := h.svc.HandleMessage(ctx, sessionID, req.Content)
	if err != nil {
		dto.FromError(c, err)
		return
	}

	dto.Success(c, dto.ConversationReply{
		SessionID: session.ID,
		Stage:     string(session.Stage),
		Messages:  messages,
		Completed: session.Stage.Terminal(),
	})
}

// Get 查询会话状态
// @Summary 查询会话
// @Tags Session
// @Produce json
// @Param sid path string true "会话 ID"
// @Success 200 {object} dto.Response[dto.SessionView]
// @Router /v1/sessions/{sid} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.svc.GetSession(c.Request.Context(), c.Param("sid"))
	if err != nil {
		dto.FromError(c, err)
		return
	}
	dto.Success(c, dto.NewSessionView(session))
}

// Transcript 查询会话全量对话记录
// @Summary 查询对话记录
// @Tags Session
// @Produce json
// @Param sid path string true "会话 ID"
// @Success 200 {object} dto.Response[dto.TranscriptView]
// @Router /v1/sessions/{sid}/transcript [get]
func (h *SessionHandler) Transcript(c *gin.Context) {
	sessionID := c.Param("sid")
	entries, err := h.svc.Transcript(c.Request.Context(), sessionID)
	if err != nil {
		dto.FromError(c, err)
		return
	}
	dto.Success(c, dto.NewTranscriptView(sessionID, entries))
}

// Draft 获取装配完成的 Markdown 全文
// @Summary 获取最终初稿
// @Tags Session
// @Produce json
// @Param sid path string true "会话 ID"
// @Success 200 {object} dto.Response[dto.DraftView]
// @Router /v1/sessions/{sid}/draft [get]
func (h *SessionHandler) Draft(c *gin.Context) {
	sessionID := c.Param("sid")
	document, err := h.svc.Draft(c.Request.Context(), sessionID)
	if err != nil {
		dto.FromError(c, err)
		return
	}
	dto.Success(c, dto.DraftView{SessionID: sessionID, Document: document})
}

// Delete 删除会话
// @Summary 删除会话
// @Tags Session
// @Param sid path string true "会话 ID"
// @Success 204
// @Router /v1/sessions/{sid} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteSession(c.Request.Context(), c.Param("sid")); err != nil {
		dto.FromError(c, err)
		return
	}
	dto.NoContent(c)
}
