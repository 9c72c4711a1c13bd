package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tech-blog-ai-api/internal/domain/entity"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"API", "Mock 서버", "실습 예제"}, splitList("API, Mock 서버, 실습 예제"))
	assert.Equal(t, []string{"Docker", "컨테이너"}, splitList("Docker\n컨테이너"))
	assert.Equal(t, []string{"Docker"}, splitList("Docker, Docker"), "duplicates collapse")
	assert.Empty(t, splitList("  ,  \n "))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"도입", "본문", "마무리"}, splitLines("- 도입\n- 본문\n- 마무리"))
	assert.Equal(t, []string{"도입", "본문"}, splitLines("1. 도입\n2. 본문"))
	assert.Equal(t, []string{"도입"}, splitLines("• 도입"))
}

func TestParseStyle_Labeled(t *testing.T) {
	got := parseStyle("형식: 튜토리얼, 문체: 친근한, 대상: 초보자")
	assert.Equal(t, entity.StyleSpec{Format: "튜토리얼", Tone: "친근한", Audience: "초보자"}, got)
}

func TestParseStyle_Positional(t *testing.T) {
	got := parseStyle("튜토리얼 형식, 친근한 톤, 초보자 대상")
	assert.Equal(t, "튜토리얼 형식", got.Format)
	assert.Equal(t, "친근한 톤", got.Tone)
	assert.Equal(t, "초보자 대상", got.Audience)
}

func TestParseStyle_SingleValue(t *testing.T) {
	got := parseStyle("튜토리얼")
	assert.Equal(t, "튜토리얼", got.Format)
	assert.Empty(t, got.Tone)
}

func TestStyleLine(t *testing.T) {
	line := styleLine(entity.StyleSpec{Format: "튜토리얼", Tone: "친근한", Audience: "초보자"})
	assert.Equal(t, "형식: 튜토리얼, 문체: 친근한, 대상 독자: 초보자", line)

	assert.Equal(t, "형식: 튜토리얼", styleLine(entity.StyleSpec{Format: "튜토리얼"}))
}
