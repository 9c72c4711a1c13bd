package draftgen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tech-blog-ai-api/internal/domain/entity"
	wfmodel "tech-blog-ai-api/internal/workflow/model"
)

func TestSectionPosition(t *testing.T) {
	assert.Equal(t, wfmodel.SectionIntro, sectionPosition(0, 3))
	assert.Equal(t, wfmodel.SectionBody, sectionPosition(1, 3))
	assert.Equal(t, wfmodel.SectionConclusion, sectionPosition(2, 3))
	assert.Equal(t, wfmodel.SectionIntro, sectionPosition(0, 1), "single-section article is treated as intro")
	assert.Equal(t, wfmodel.SectionConclusion, sectionPosition(1, 2))
}

func TestStyleText(t *testing.T) {
	got := styleText(entity.StyleSpec{Format: "튜토리얼", Tone: "친근한", Audience: "초보자"})
	assert.Equal(t, "형식: 튜토리얼, 문체: 친근한, 대상 독자: 초보자", got)
	assert.Empty(t, styleText(entity.StyleSpec{}))
}
