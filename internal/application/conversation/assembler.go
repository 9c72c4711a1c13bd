package conversation

import "strings"

// Assemble 把确认完毕的小节装配成最终 Markdown 全文
// 纯函数：缺失的小节正文按空字符串渲染，永不报错
func Assemble(topic string, subtitles []string, sectionDrafts map[string]string) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(topic)
	b.WriteString("\n\n")
	for _, subtitle := range subtitles {
		b.WriteString("## ")
		b.WriteString(subtitle)
		b.WriteString("\n")
		b.WriteString(sectionDrafts[subtitle])
		b.WriteString("\n\n")
	}
	return b.String()
}
