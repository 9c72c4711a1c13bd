// Package model 定义工作流的输入输出结构
package model

// SectionPosition 小节在全文中的位置，决定使用哪套撰写提示词
type SectionPosition string

const (
	SectionIntro      SectionPosition = "intro"
	SectionBody       SectionPosition = "body"
	SectionConclusion SectionPosition = "conclusion"
)

// KeywordSuggestInput 关键词推荐输入
type KeywordSuggestInput struct {
	Topic string
}

// StructureSuggestInput 文章结构建议输入
type StructureSuggestInput struct {
	Topic    string
	Keywords string
	Style    string
}

// SectionDraftInput 小节初稿撰写输入
// PreviousSections 为已确认小节按 "## 标题\n正文" 拼接的上下文块
type SectionDraftInput struct {
	SectionTitle     string
	Position         SectionPosition
	PreviousSections string
	Topic            string
	Keywords         string
	Style            string
}

// SectionRevisionInput 小节初稿修订输入
type SectionRevisionInput struct {
	SectionTitle     string
	UserRequest      string
	OriginalDraft    string
	PreviousSections string
	Topic            string
	Keywords         string
	Style            string
}
