// Package entity 定义领域实体
package entity

// Stage 对话阶段枚举
// 阶段只能沿固定顺序前进，或在用户否认时退回同一阶段的提问态
type Stage string

const (
	StageTopic        Stage = "topic"
	StageKeywords     Stage = "keywords"
	StageStyle        Stage = "style"
	StageStructure    Stage = "structure"
	StageSubtitles    Stage = "subtitles"
	StageSectionDraft Stage = "section_draft"
	StageDone         Stage = "done"
)

// stageOrder 固定前进链
var stageOrder = map[Stage]Stage{
	StageTopic:        StageKeywords,
	StageKeywords:     StageStyle,
	StageStyle:        StageStructure,
	StageStructure:    StageSubtitles,
	StageSubtitles:    StageSectionDraft,
	StageSectionDraft: StageDone,
}

// Next 返回链上的下一个阶段
func (s Stage) Next() (Stage, bool) {
	next, ok := stageOrder[s]
	return next, ok
}

// Valid 检查阶段取值是否合法
func (s Stage) Valid() bool {
	if s == StageDone {
		return true
	}
	_, ok := stageOrder[s]
	return ok
}

// Terminal 检查是否为终态
func (s Stage) Terminal() bool {
	return s == StageDone
}

// CanTransition 检查 from -> to 是否为合法迁移
// 允许：前进一步、否认退回当前阶段、终态自环
func CanTransition(from, to Stage) bool {
	if from == to {
		return true
	}
	next, ok := from.Next()
	return ok && next == to
}
