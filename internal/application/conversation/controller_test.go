package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tech-blog-ai-api/internal/domain/entity"
)

// fakeGenerator 可编程的生成协作方替身
type fakeGenerator struct {
	keywords  string
	structure string

	draftErr  error
	reviseErr error

	draftCalls  int
	reviseCalls int
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{
		keywords:  "Docker\n컨테이너\n이미지",
		structure: "도입\n본문\n마무리",
	}
}

func (f *fakeGenerator) SuggestKeywords(_ context.Context, _ string) (string, error) {
	return f.keywords, nil
}

func (f *fakeGenerator) SuggestStructure(_ context.Context, _ string, _ []string, _ entity.StyleSpec) (string, error) {
	return f.structure, nil
}

func (f *fakeGenerator) DraftSection(_ context.Context, req SectionDraftRequest) (string, error) {
	f.draftCalls++
	if f.draftErr != nil {
		return "", f.draftErr
	}
	return fmt.Sprintf("%s 섹션 초안", req.SectionTitle), nil
}

func (f *fakeGenerator) ReviseSection(_ context.Context, req SectionRevisionRequest) (string, error) {
	f.reviseCalls++
	if f.reviseErr != nil {
		return "", f.reviseErr
	}
	return fmt.Sprintf("%s 섹션 수정본", req.SectionTitle), nil
}

func advanceOK(t *testing.T, c *Controller, s *entity.Session, text string) *Action {
	t.Helper()
	act, err := c.Advance(context.Background(), s, text)
	require.NoError(t, err)
	return act
}

func TestController_EndToEnd(t *testing.T) {
	gen := newFakeGenerator()
	c := NewController(gen, 12)
	s := entity.NewSession()

	// 开场：主题提问
	act := advanceOK(t, c, s, "")
	require.Len(t, act.Messages, 1)
	assert.Contains(t, act.Messages[0], "어떤 주제로")
	assert.Equal(t, entity.StageTopic, s.Stage)

	// 主题答复 -> 待确认
	act = advanceOK(t, c, s, "Docker 입문")
	require.Len(t, act.Messages, 1)
	assert.Contains(t, act.Messages[0], "Docker 입문")
	assert.True(t, s.PendingConfirmation)

	// 确认主题 -> 自动发出关键词推荐
	act = advanceOK(t, c, s, "네")
	assert.Equal(t, entity.StageKeywords, s.Stage)
	assert.Equal(t, "Docker 입문", s.Topic)
	require.Len(t, act.Messages, 2)
	assert.Contains(t, act.Messages[1], "추천 키워드")
	assert.Contains(t, act.Messages[1], "컨테이너")

	// 关键词答复并确认
	advanceOK(t, c, s, "Docker, 컨테이너, 이미지")
	act = advanceOK(t, c, s, "네")
	assert.Equal(t, entity.StageStyle, s.Stage)
	assert.Equal(t, []string{"Docker", "컨테이너", "이미지"}, s.Keywords)
	require.Len(t, act.Messages, 1)
	assert.Contains(t, act.Messages[0], "스타일")

	// 风格答复并确认 -> 自动给出结构建议（建议即候选）
	advanceOK(t, c, s, "튜토리얼 형식, 친근한 톤, 초보자 대상")
	act = advanceOK(t, c, s, "네")
	assert.Equal(t, entity.StageStructure, s.Stage)
	assert.Equal(t, "튜토리얼 형식", s.Style.Format)
	assert.True(t, s.PendingConfirmation)
	assert.Equal(t, []string{"도입", "본문", "마무리"}, s.Candidate.Structure)
	require.Len(t, act.Messages, 1)
	assert.Contains(t, act.Messages[0], "제안된 구조")

	// 确认结构 -> 小标题提问
	act = advanceOK(t, c, s, "네")
	assert.Equal(t, entity.StageSubtitles, s.Stage)
	assert.Equal(t, []string{"도입", "본문", "마무리"}, s.Structure)
	require.Len(t, act.Messages, 1)
	assert.Contains(t, act.Messages[0], "소제목")

	// 两个小标题并确认 -> 自动撰写第一节
	advanceOK(t, c, s, "Docker란 무엇인가\n마무리")
	act = advanceOK(t, c, s, "네")
	assert.Equal(t, entity.StageSectionDraft, s.Stage)
	assert.Equal(t, []string{"Docker란 무엇인가", "마무리"}, s.Subtitles)
	require.Len(t, act.Messages, 2)
	assert.Contains(t, act.Messages[1], "Docker란 무엇인가")
	assert.True(t, s.PendingConfirmation)
	assert.Equal(t, 1, gen.draftCalls)

	// 确认第一节 -> 无需输入自动撰写第二节
	act = advanceOK(t, c, s, "네")
	assert.Equal(t, 1, s.DraftCursor)
	assert.Equal(t, 2, gen.draftCalls)
	require.Len(t, act.Messages, 1)
	assert.Contains(t, act.Messages[0], "마무리")

	// 确认第二节 -> 终态并装配全文
	act = advanceOK(t, c, s, "네")
	assert.Equal(t, entity.StageDone, s.Stage)
	assert.True(t, act.Completed)
	require.Len(t, act.Messages, 1)
	assert.Contains(t, s.FinalDocument, "# Docker 입문")
	assert.Contains(t, s.FinalDocument, "## Docker란 무엇인가")
	assert.Contains(t, s.FinalDocument, "## 마무리")
	assert.Contains(t, act.Messages[0], s.FinalDocument)
}

func TestController_QuestionIdempotentOnEmptyReentry(t *testing.T) {
	c := NewController(newFakeGenerator(), 12)
	s := entity.NewSession()

	act := advanceOK(t, c, s, "")
	require.Len(t, act.Messages, 1)

	// 空输入重入不重复提问
	act = advanceOK(t, c, s, "")
	assert.Empty(t, act.Messages)
}

func TestController_RejectReturnsToQuestion(t *testing.T) {
	c := NewController(newFakeGenerator(), 12)
	s := entity.NewSession()

	advanceOK(t, c, s, "")
	advanceOK(t, c, s, "Kubernetes 입문")
	act := advanceOK(t, c, s, "아니요, 다른 주제로 할게요")

	assert.Equal(t, entity.StageTopic, s.Stage)
	assert.False(t, s.PendingConfirmation)
	assert.Empty(t, s.Candidate.Topic)
	assert.Empty(t, s.Topic)
	require.Len(t, act.Messages, 1)
	assert.Contains(t, act.Messages[0], "다시 말씀해주세요")

	// 否认后的下一条输入按新答案解释
	advanceOK(t, c, s, "Docker 입문")
	assert.True(t, s.PendingConfirmation)
	assert.Equal(t, "Docker 입문", s.Candidate.Topic)
}

func TestController_AmbiguousLeavesStateUnchanged(t *testing.T) {
	c := NewController(newFakeGenerator(), 12)
	s := entity.NewSession()

	advanceOK(t, c, s, "")
	advanceOK(t, c, s, "Docker 입문")
	act := advanceOK(t, c, s, "음...")

	assert.Equal(t, entity.StageTopic, s.Stage)
	assert.True(t, s.PendingConfirmation)
	assert.Equal(t, "Docker 입문", s.Candidate.Topic)
	require.Len(t, act.Messages, 1)
	assert.Contains(t, act.Messages[0], "정확히 이해하지 못했어요")
}

func TestController_SectionDraftFailureKeepsStage(t *testing.T) {
	gen := newFakeGenerator()
	c := NewController(gen, 12)
	s := drivenToSubtitleConfirm(t, c)

	// 第一节生成失败：失败文案原样转述，阶段不变
	gen.draftErr = errors.New("quota exceeded")
	act := advanceOK(t, c, s, "네")
	assert.Equal(t, entity.StageSectionDraft, s.Stage)
	assert.False(t, s.PendingConfirmation)
	require.Len(t, act.Messages, 2) // 撰写开场白 + 失败文案
	assert.Contains(t, act.Messages[1], "API 호출 중 오류가 발생했습니다: quota exceeded")

	// 下一条输入仍针对同一小节重试
	gen.draftErr = nil
	act = advanceOK(t, c, s, "계속 진행해주세요")
	assert.True(t, s.PendingConfirmation)
	assert.Equal(t, 0, s.DraftCursor)
	require.Len(t, act.Messages, 1)
	assert.Contains(t, act.Messages[0], "도입")
}

func TestController_SectionRevisionLoop(t *testing.T) {
	gen := newFakeGenerator()
	c := NewController(gen, 12)
	s := drivenToSubtitleConfirm(t, c)

	advanceOK(t, c, s, "네") // 撰写第一节
	require.True(t, s.PendingConfirmation)
	original := s.Candidate.Section

	// 否认文本作为修订指示，候选整体替换
	act := advanceOK(t, c, s, "코드 예제를 추가해서 다시 써주세요")
	assert.Equal(t, 1, gen.reviseCalls)
	assert.True(t, s.PendingConfirmation)
	assert.NotEqual(t, original, s.Candidate.Section)
	require.Len(t, act.Messages, 1)
	assert.Contains(t, act.Messages[0], "다시 작성한 초안")

	// 修订失败保留候选
	gen.reviseErr = errors.New("timeout")
	kept := s.Candidate.Section
	act = advanceOK(t, c, s, "조금 더 짧게 바꿔주세요")
	assert.Equal(t, kept, s.Candidate.Section)
	assert.True(t, s.PendingConfirmation)
	assert.Contains(t, act.Messages[0], "API 호출 중 오류가 발생했습니다: timeout")
}

func TestController_DoneStageCommands(t *testing.T) {
	c := NewController(newFakeGenerator(), 12)
	s := entity.NewSession()
	s.Stage = entity.StageDone
	s.FinalDocument = "# T\n\n## A\nx\n\n"

	act := advanceOK(t, c, s, "전체 초안 보여줘")
	require.Len(t, act.Messages, 1)
	assert.Contains(t, act.Messages[0], s.FinalDocument)
	assert.False(t, act.Restarted)

	act = advanceOK(t, c, s, "다시 시작")
	assert.True(t, act.Restarted)

	act = advanceOK(t, c, s, "안녕하세요")
	require.Len(t, act.Messages, 1)
	assert.Contains(t, act.Messages[0], "이미 완료된 대화")
}

func TestController_SubtitleCountCapped(t *testing.T) {
	c := NewController(newFakeGenerator(), 2)
	s := entity.NewSession()
	s.Stage = entity.StageSubtitles
	s.QuestionAsked = true

	advanceOK(t, c, s, "하나\n둘\n셋\n넷")
	assert.Equal(t, []string{"하나", "둘"}, s.Candidate.Subtitles)
}

// drivenToSubtitleConfirm 把新会话推进到小标题待确认态（结构为 도입/본문/마무리 中取两节）
func drivenToSubtitleConfirm(t *testing.T, c *Controller) *entity.Session {
	t.Helper()
	s := entity.NewSession()

	advanceOK(t, c, s, "")
	advanceOK(t, c, s, "Docker 입문")
	advanceOK(t, c, s, "네")
	advanceOK(t, c, s, "Docker, 컨테이너")
	advanceOK(t, c, s, "네")
	advanceOK(t, c, s, "튜토리얼 형식, 친근한 톤, 초보자 대상")
	advanceOK(t, c, s, "네")
	advanceOK(t, c, s, "네") // 确认建议的结构
	advanceOK(t, c, s, "도입\n마무리")

	require.Equal(t, entity.StageSubtitles, s.Stage)
	require.True(t, s.PendingConfirmation)
	require.True(t, strings.HasPrefix(s.Candidate.Subtitles[0], "도입"))
	return s
}
