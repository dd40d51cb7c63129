package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Kind 决定一条输出的样式。
type Kind int

const (
	KindReply Kind = iota
	KindEcho
	KindError
)

var (
	echoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	replyStyle = lipgloss.NewStyle()
)

// Classify 按文本前缀推断输出种类：提示符回显、错误或普通回复。
func Classify(text, prompt string) Kind {
	switch {
	case prompt != "" && strings.HasPrefix(text, prompt):
		return KindEcho
	case strings.HasPrefix(text, "(error) "),
		strings.HasPrefix(text, "(fatal error) "),
		strings.HasPrefix(text, "-PROTOCOLERR "):
		return KindError
	default:
		return KindReply
	}
}

type entry struct {
	kind Kind
	text string
}

// Transcript 保存控制台输出，按宽度生成可显示的行。
type Transcript struct {
	prompt  string
	entries []entry
}

func NewTranscript(prompt string) *Transcript {
	return &Transcript{prompt: prompt}
}

// Append 追加一条可能包含换行的输出。
func (t *Transcript) Append(text string) Kind {
	kind := Classify(text, t.prompt)
	t.entries = append(t.entries, entry{kind: kind, text: text})
	return kind
}

func (t *Transcript) Clear() {
	t.entries = nil
}

func (t *Transcript) Len() int {
	return len(t.entries)
}

// LastReply 返回最近一次提示符回显之后的全部输出，用于复制。
func (t *Transcript) LastReply() string {
	var parts []string
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].kind == KindEcho {
			break
		}
		parts = append(parts, t.entries[i].text)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "\n")
}

// Lines 按 width 换行后返回样式化的行。
func (t *Transcript) Lines(width int) []Line {
	var out []Line
	for _, e := range t.entries {
		style := replyStyle
		switch e.kind {
		case KindEcho:
			style = echoStyle
		case KindError:
			style = errorStyle
		}
		for _, text := range wrapText(e.text, width) {
			out = append(out, Line{Spans: []Span{{Text: text, Style: style}}})
		}
	}
	return out
}
