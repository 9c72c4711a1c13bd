package conversation

import (
	"strings"

	"tech-blog-ai-api/internal/domain/entity"
)

// splitList 把逗号/换行分隔的自由文本拆成有序列表，保留首次出现顺序并去重
func splitList(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '、' || r == '/'
	})
	return normalizeItems(fields)
}

// splitLines 按行拆分结构/小标题输入，剥离列表记号与编号
func splitLines(text string) []string {
	return normalizeItems(strings.Split(text, "\n"))
}

func normalizeItems(raw []string) []string {
	items := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		item = stripBullet(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		items = append(items, item)
	}
	return items
}

// stripBullet 去掉行首的列表记号（- * • ·）或 "1." 式编号
func stripBullet(line string) string {
	for _, marker := range []string{"-", "*", "•", "·"} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker))
		}
	}
	if idx := strings.Index(line, "."); idx > 0 && idx <= 2 && isDigits(line[:idx]) {
		return strings.TrimSpace(line[idx+1:])
	}
	return line
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// parseStyle 把自由文本解析为风格三要素
// 优先识别 "형식:"/"문체:"/"대상:" 标签；否则按逗号顺序取 形式、文体、读者
func parseStyle(text string) entity.StyleSpec {
	var style entity.StyleSpec

	labeled := false
	for _, part := range splitList(text) {
		key, value, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch {
		case strings.Contains(key, "형식"):
			style.Format = value
			labeled = true
		case strings.Contains(key, "문체") || strings.Contains(key, "톤"):
			style.Tone = value
			labeled = true
		case strings.Contains(key, "대상") || strings.Contains(key, "독자"):
			style.Audience = value
			labeled = true
		}
	}
	if labeled {
		return style
	}

	parts := splitList(text)
	switch len(parts) {
	case 0:
	case 1:
		style.Format = parts[0]
	case 2:
		style.Format, style.Tone = parts[0], parts[1]
	default:
		style.Format, style.Tone, style.Audience = parts[0], parts[1], parts[2]
	}
	return style
}

// styleLine 把风格三要素拼成提示词里使用的单行描述
func styleLine(style entity.StyleSpec) string {
	parts := make([]string, 0, 3)
	if style.Format != "" {
		parts = append(parts, "형식: "+style.Format)
	}
	if style.Tone != "" {
		parts = append(parts, "문체: "+style.Tone)
	}
	if style.Audience != "" {
		parts = append(parts, "대상 독자: "+style.Audience)
	}
	return strings.Join(parts, ", ")
}
