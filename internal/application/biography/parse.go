package biography

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	wfmodel "biography-api/internal/workflow/model"
)

// ErrChapterCountMismatch 模型输出的章节数不等于固定章节数
var ErrChapterCountMismatch = errors.New("chapter count mismatch")

// ChapterCountError 携带实际解析出的章节数
type ChapterCountError struct {
	Got  int
	Want int
}

func (e *ChapterCountError) Error() string {
	return fmt.Sprintf("%s: expected %d chapters, got %d", ErrChapterCountMismatch, e.Want, e.Got)
}

func (e *ChapterCountError) Is(target error) bool {
	return target == ErrChapterCountMismatch
}

// ParseChapters 按 "##" 切分模型输出，丢弃最后一个分隔符之后的剩余部分，
// 并要求恰好得到 ChapterCount 段。各段内容保持原样。
func ParseChapters(raw string) ([]string, error) {
	parts := strings.Split(raw, wfmodel.ChapterDelimiter)
	chapters := parts[:len(parts)-1]
	if len(chapters) != wfmodel.ChapterCount {
		return nil, &ChapterCountError{Got: len(chapters), Want: wfmodel.ChapterCount}
	}
	return chapters, nil
}

// SplitChapterTitle 以第一个冒号（半角或全角）拆出章节标题与正文。
// 没有冒号时标题为空。
func SplitChapterTitle(chapter string) (title string, body string) {
	s := strings.TrimSpace(chapter)
	idx := strings.IndexAny(s, ":：")
	if idx < 0 {
		return "", s
	}
	_, size := utf8.DecodeRuneInString(s[idx:])
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+size:])
}

// ChapterTitles 提取各章标题，用于日志
func ChapterTitles(chapters []string) []string {
	titles := make([]string, 0, len(chapters))
	for _, ch := range chapters {
		title, _ := SplitChapterTitle(ch)
		titles = append(titles, title)
	}
	return titles
}
