// Package node 提供工作流节点共用的文本工具
package node

import (
	"strings"
	"unicode/utf8"
)

// TruncateByRunes 按字符数截断，避免切断多字节字符
func TruncateByRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}

// Preview 生成单行日志预览：换行折叠为空格，超长时截断并追加 "…"
func Preview(s string, maxRunes int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	return TruncateByRunes(s, maxRunes) + "…"
}
