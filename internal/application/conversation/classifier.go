package conversation

import (
	"strings"
	"unicode/utf8"
)

// Intent 确认阶段对用户回复的三值判定结果
type Intent string

const (
	IntentAffirm    Intent = "affirm"
	IntentReject    Intent = "reject"
	IntentAmbiguous Intent = "ambiguous"
)

// 判定阈值：短回复一个肯定线索即可通过，长回复需要两个线索相互印证
const (
	minClassifiableRunes = 2
	shortReplyRuneLimit  = 15
	shortReplyMinCues    = 1
	longReplyMinCues     = 2
)

// exactAffirmatives 去掉尾部单个 . 或 ! 后的完全匹配肯定语
var exactAffirmatives = map[string]struct{}{
	"네":    {},
	"예":    {},
	"넵":    {},
	"넹":    {},
	"응":    {},
	"그래":   {},
	"그래요":  {},
	"좋아":   {},
	"좋아요":  {},
	"좋습니다": {},
	"맞아":   {},
	"맞아요":  {},
	"맞습니다": {},
	"확인":   {},
	"오케이":  {},
	"ㅇㅇ":   {},
	"ㅇㅋ":   {},
	"ok":   {},
	"okay": {},
	"yes":  {},
}

// negativeSignals 任意位置出现即判否认，优先级高于肯定线索
var negativeSignals = []string{
	"아니",
	"아뇨",
	"안돼",
	"안 돼",
	"안되",
	"싫",
	"다시",
	"수정",
	"변경",
	"바꿔",
	"바꾸",
	"재작성",
	"추가해",
	"빼",
	"말고",
	"취소",
	"중단",
	"no",
}

// positiveSignals 计分用的肯定线索子串
var positiveSignals = []string{
	"네",
	"예",
	"넵",
	"좋",
	"맞",
	"그래",
	"진행",
	"계속",
	"확인",
	"오케이",
	"콜",
	"고고",
	"ㅇㅇ",
	"ㅇㅋ",
	"ok",
	"yes",
}

// greetingAffirmPrefixes 开头出现即视为肯定的口语前缀
var greetingAffirmPrefixes = []string{
	"좋아",
	"그래",
	"오키",
	"오케이",
	"넵",
}

// Classify 把确认阶段的自由文本回复映射为 affirm / reject / ambiguous
//
// 判定顺序刻意偏向重新确认而非误判通过：
//  1. 完全匹配固定肯定语（忽略尾部单个 . 或 !）-> affirm
//  2. 过短（不足 2 个字符）无法可靠判定 -> ambiguous
//  3. 出现任一否认线索 -> reject，否认优先于所有肯定线索
//  4. 统计肯定线索数：短回复达到 1 个、长回复达到 2 个 -> affirm
//  5. 以口语化肯定前缀开头 -> affirm
//  6. 其余 -> ambiguous
func Classify(text string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if _, ok := exactAffirmatives[stripTrailingPunct(normalized)]; ok {
		return IntentAffirm
	}

	if utf8.RuneCountInString(normalized) < minClassifiableRunes {
		return IntentAmbiguous
	}

	for _, neg := range negativeSignals {
		if strings.Contains(normalized, neg) {
			return IntentReject
		}
	}

	score := 0
	for _, pos := range positiveSignals {
		if strings.Contains(normalized, pos) {
			score++
		}
	}
	if utf8.RuneCountInString(normalized) < shortReplyRuneLimit {
		if score >= shortReplyMinCues {
			return IntentAffirm
		}
	} else if score >= longReplyMinCues {
		return IntentAffirm
	}

	for _, prefix := range greetingAffirmPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return IntentAffirm
		}
	}

	return IntentAmbiguous
}

func stripTrailingPunct(text string) string {
	if strings.HasSuffix(text, ".") || strings.HasSuffix(text, "!") {
		return text[:len(text)-1]
	}
	return text
}
