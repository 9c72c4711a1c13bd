package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tech-blog-ai-api/internal/application/conversation"
	"tech-blog-ai-api/internal/domain/entity"
	"tech-blog-ai-api/internal/infrastructure/persistence/memory"
	"tech-blog-ai-api/internal/interfaces/http/dto"
)

type stubGenerator struct{}

func (stubGenerator) SuggestKeywords(_ context.Context, _ string) (string, error) {
	return "Docker\n컨테이너", nil
}

func (stubGenerator) SuggestStructure(_ context.Context, _ string, _ []string, _ entity.StyleSpec) (string, error) {
	return "도입\n마무리", nil
}

func (stubGenerator) DraftSection(_ context.Context, req conversation.SectionDraftRequest) (string, error) {
	return req.SectionTitle + " 초안", nil
}

func (stubGenerator) ReviseSection(_ context.Context, req conversation.SectionRevisionRequest) (string, error) {
	return req.SectionTitle + " 수정본", nil
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.NewSessionRepository(time.Hour, time.Minute)
	svc := conversation.NewService(repo, stubGenerator{}, 12)
	h := NewSessionHandler(svc)

	e := gin.New()
	e.POST("/v1/sessions", h.Create)
	e.GET("/v1/sessions/:sid", h.Get)
	e.DELETE("/v1/sessions/:sid", h.Delete)
	e.POST("/v1/sessions/:sid/messages", h.PostMessage)
	e.GET("/v1/sessions/:sid/transcript", h.Transcript)
	e.GET("/v1/sessions/:sid/draft", h.Draft)
	return e
}

func doJSON(t *testing.T, e *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, e *gin.Engine) dto.ConversationReply {
	t.Helper()
	w := doJSON(t, e, http.MethodPost, "/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response[dto.ConversationReply]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.SessionID)
	return resp.Data
}

func TestSessionHandler_Create(t *testing.T) {
	e := newTestEngine(t)

	reply := createSession(t, e)
	assert.Equal(t, string(entity.StageTopic), reply.Stage)
	require.Len(t, reply.Messages, 1)
	assert.Contains(t, reply.Messages[0], "어떤 주제로")
}

func TestSessionHandler_PostMessage(t *testing.T) {
	e := newTestEngine(t)
	created := createSession(t, e)

	w := doJSON(t, e, http.MethodPost, "/v1/sessions/"+created.SessionID+"/messages",
		dto.PostMessageRequest{Content: "Docker 입문"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response[dto.ConversationReply]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(entity.StageTopic), resp.Data.Stage)
	require.Len(t, resp.Data.Messages, 1)
	assert.Contains(t, resp.Data.Messages[0], "Docker 입문")
}

func TestSessionHandler_PostMessage_EmptyBody(t *testing.T) {
	e := newTestEngine(t)
	created := createSession(t, e)

	w := doJSON(t, e, http.MethodPost, "/v1/sessions/"+created.SessionID+"/messages",
		map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionHandler_SessionNotFound(t *testing.T) {
	e := newTestEngine(t)

	w := doJSON(t, e, http.MethodPost, "/v1/sessions/no-such-id/messages",
		dto.PostMessageRequest{Content: "네"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "2001", resp.Error.ErrorCode)
}

func TestSessionHandler_DraftNotReady(t *testing.T) {
	e := newTestEngine(t)
	created := createSession(t, e)

	w := doJSON(t, e, http.MethodGet, "/v1/sessions/"+created.SessionID+"/draft", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSessionHandler_Delete(t *testing.T) {
	e := newTestEngine(t)
	created := createSession(t, e)

	w := doJSON(t, e, http.MethodDelete, "/v1/sessions/"+created.SessionID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, e, http.MethodGet, "/v1/sessions/"+created.SessionID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionHandler_FullConversation(t *testing.T) {
	e := newTestEngine(t)
	created := createSession(t, e)
	sid := created.SessionID

	send := func(content string) dto.ConversationReply {
		w := doJSON(t, e, http.MethodPost, "/v1/sessions/"+sid+"/messages",
			dto.PostMessageRequest{Content: content})
		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response[dto.ConversationReply]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Data
	}

	send("Docker 입문")
	send("네")
	send("Docker, 컨테이너")
	send("네")
	send("튜토리얼 형식, 친근한 톤, 초보자 대상")
	send("네") // 风格确认后自动给出结构建议
	send("네") // 确认结构
	send("도입\n마무리")
	send("네") // 确认小标题，自动撰写第一节
	send("네") // 确认第一节，自动撰写第二节
	final := send("네")

	assert.True(t, final.Completed)
	assert.Equal(t, string(entity.StageDone), final.Stage)

	w := doJSON(t, e, http.MethodGet, "/v1/sessions/"+sid+"/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var draft dto.Response[dto.DraftView]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))
	assert.Contains(t, draft.Data.Document, "# Docker 입문")
	assert.Contains(t, draft.Data.Document, "## 도입")
	assert.Contains(t, draft.Data.Document, "## 마무리")
}
