// Package prompt 管理内嵌的提示词模板
package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptKeywordSuggestV1    PromptID = "keyword_suggest_v1"
	PromptStructureSuggestV1  PromptID = "structure_suggest_v1"
	PromptSectionIntroV1      PromptID = "section_intro_v1"
	PromptSectionBodyV1       PromptID = "section_body_v1"
	PromptSectionConclusionV1 PromptID = "section_conclusion_v1"
	PromptSectionRevisionV1   PromptID = "section_revision_v1"
)

type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]einoprompt.ChatTemplate
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]einoprompt.ChatTemplate),
	}
}

func (r *Registry) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	systemPath, userPath, err := resolvePromptFiles(id)
	if err != nil {
		return nil, err
	}
	system, err := readEmbeddedText(systemPath)
	if err != nil {
		return nil, err
	}
	user, err := readEmbeddedText(userPath)
	if err != nil {
		return nil, err
	}

	tpl := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(system),
		schema.UserMessage(user),
	)
	r.cache[id] = tpl
	return tpl, nil
}

func resolvePromptFiles(id PromptID) (systemFile string, userFile string, err error) {
	switch id {
	case PromptKeywordSuggestV1:
		return "templates/keyword_suggest_v1.system.txt", "templates/keyword_suggest_v1.user.txt", nil
	case PromptStructureSuggestV1:
		return "templates/structure_suggest_v1.system.txt", "templates/structure_suggest_v1.user.txt", nil
	case PromptSectionIntroV1:
		return "templates/section_intro_v1.system.txt", "templates/section_intro_v1.user.txt", nil
	case PromptSectionBodyV1:
		return "templates/section_body_v1.system.txt", "templates/section_body_v1.user.txt", nil
	case PromptSectionConclusionV1:
		return "templates/section_conclusion_v1.system.txt", "templates/section_conclusion_v1.user.txt", nil
	case PromptSectionRevisionV1:
		return "templates/section_revision_v1.system.txt", "templates/section_revision_v1.user.txt", nil
	default:
		return "", "", fmt.Errorf("unknown prompt id: %s", id)
	}
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
