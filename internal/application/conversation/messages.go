package conversation

import (
	"fmt"
	"strings"

	"tech-blog-ai-api/internal/domain/entity"
)

// 面向用户的韩语固定文案，生成内容之外的对话外壳

const msgTopicQuestion = `안녕하세요! 저는 기술 블로그 초안 작성을 도와드리는 챗봇입니다. 😊
먼저, 어떤 주제로 블로그를 작성하고 싶으신가요?
간단히 말씀해 주세요.`

const msgStyleQuestion = `이번엔 블로그의 스타일을 정해볼게요.
아래는 참고할 수 있는 예시입니다:

- 형식: 튜토리얼, 기술 리뷰, 문제 해결 사례
- 문체: 친근한, 공식적인, 중립적
- 독자 대상: 초보자, 중급 개발자, 전문가

예시에서 골라도 좋고, 자유롭게 원하는 스타일로 작성해주셔도 괜찮습니다.
예: "튜토리얼 형식, 친근한 톤, 초보자 대상"`

const (
	msgTopicCommitted = "좋아요! 이제 관련 키워드를 추천드릴게요."
	msgDraftIntro     = "이제 각 섹션별로 초안을 작성해드릴게요!"

	msgTopicReask     = "주제를 다시 말씀해주세요."
	msgKeywordReask   = "다시 키워드를 입력해주세요."
	msgStyleReask     = "스타일을 다시 입력해주세요."
	msgStructureReask = "원하시는 구조를 다시 말씀해주세요."
	msgSubtitleReask  = "소제목을 다시 입력해주세요."

	msgClarifyNudge      = "답변을 정확히 이해하지 못했어요. 맞으면 \"네\", 수정이 필요하면 구체적으로 말씀해주세요."
	msgDraftClarifyNudge = "초안이 괜찮으면 \"네\", 고치고 싶은 부분이 있으면 구체적으로 말씀해주세요."

	msgDoneHelp = "초안 작성이 이미 완료된 대화입니다. \"전체 초안 보여줘\" 또는 \"다시 시작\"이라고 말씀해주세요."
	msgRestart  = "새로운 블로그 초안을 시작할 준비가 되었어요. 새 세션을 만들어주세요."
)

func msgTopicConfirm(topic string) string {
	return fmt.Sprintf(`🧐 사용자의 답변을 바탕으로 제가 이해한 주제는 다음과 같습니다:
**"%s"**

⚙️ 이 주제로 블로그를 작성하시는 게 맞을까요?
맞으면 "네", 아니라면 다시 말씀해주세요.`, topic)
}

func msgKeywordQuestion(topic, recommended string) string {
	return fmt.Sprintf(`주제 "**%s**"와 관련해서 아래와 같은 키워드를 추천드려요:

🔎 추천 키워드:
%s

이 중에서 다루고 싶은 키워드를 **복수로 선택**해주시고,
추천 키워드에 없더라도 추가하고 싶은 키워드가 있다면 자유롭게 말씀해주세요!
예: "API, Mock 서버, 실습 예제"`, topic, recommended)
}

func msgKeywordConfirm(keywords []string) string {
	return fmt.Sprintf(`🧐 제가 이해한 최종 키워드는 다음과 같습니다:
%s

⚙️ 이 키워드를 중심으로 글을 작성해도 괜찮을까요?
맞으면 "네", 아니라면 다시 말씀해주세요.`, bulletList(keywords))
}

func msgStyleConfirm(style entity.StyleSpec) string {
	return fmt.Sprintf(`🧐 제가 이해한 스타일은 다음과 같습니다:

- 형식: **%s**
- 문체: **%s**
- 대상 독자: **%s**

⚙️ 이 스타일로 글을 작성해도 괜찮을까요?
맞으면 "네", 아니라면 다시 말씀해주세요.`, style.Format, style.Tone, style.Audience)
}

func msgStructureSuggest(structure []string) string {
	return fmt.Sprintf(`위의 주제, 키워드, 스타일을 바탕으로 아래와 같은 글 구조를 제안드려요:

📝 제안된 구조:
%s

⚙️ 이 구조로 괜찮을까요?
섹션을 추가하거나 순서를 바꾸고 싶으시면 알려주세요.`, bulletList(structure))
}

func msgStructureConfirm(structure []string) string {
	return fmt.Sprintf(`🧐 제가 이해한 구조는 다음과 같습니다:

📝 구조:
%s

⚙️ 이 구조로 진행해도 괜찮을까요?
맞으면 "네", 아니라면 다시 말씀해주세요.`, bulletList(structure))
}

func msgSubtitleQuestion(structure []string) string {
	return fmt.Sprintf(`이제 각 섹션의 소제목을 확정해볼게요.
확정된 구조는 다음과 같습니다:
%s

한 줄에 하나씩, 원하시는 소제목을 입력해주세요.`, bulletList(structure))
}

func msgSubtitleConfirm(subtitles []string) string {
	return fmt.Sprintf(`아래는 각 섹션의 소제목입니다:

📌 소제목 목록:
%s

⚙️ 이 흐름대로 글을 작성해도 괜찮을까요?
수정하거나 추가하고 싶은 항목이 있다면 말씀해주세요!`, bulletList(subtitles))
}

func msgSectionDraft(title, content string) string {
	return fmt.Sprintf("✍️ 섹션 \"**%s**\"의 초안입니다:\n\n%s\n\n이 내용 괜찮으신가요? 수정하거나 다시 작성하고 싶으면 말씀해주세요.", title, content)
}

func msgSectionRevised(content string) string {
	return fmt.Sprintf("🔁 다시 작성한 초안입니다:\n\n%s\n\n이제 괜찮으신가요?", content)
}

func msgFullDraft(document string) string {
	return fmt.Sprintf("✅ 모든 초안 작성을 완료했어요! 아래는 전체 초안입니다:\n\n%s\n\n필요한 경우 수정하거나 복사해서 사용하세요.", document)
}

// msgGenerationFailure 生成调用失败时把错误文案原样转述，不做重试
func msgGenerationFailure(err error) string {
	return fmt.Sprintf("API 호출 중 오류가 발생했습니다: %s", err.Error())
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
