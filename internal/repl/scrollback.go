package repl

import (
	"fmt"
	"io"
	"os"

	tuirender "interwebz-cli/internal/tui/render"
)

// Scrollback 是行模式下的 console.Host：每条输出直接写入终端的自然滚动缓冲
// （或任意 io.Writer），不做重绘。
type Scrollback struct {
	w             io.Writer
	prompt        string
	suppressEcho  bool
	clearScreen   bool
	promptEnabled bool
}

type ScrollbackOptions struct {
	Writer io.Writer
	Prompt string
	// SuppressEcho 跳过提示符回显行：交互输入时用户已经在提示符后看到了命令。
	SuppressEcho bool
	// ClearScreen 为 true 时 clear 输出 ANSI 清屏序列，否则 clear 不产生输出。
	ClearScreen bool
}

func NewScrollback(opts ScrollbackOptions) *Scrollback {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	return &Scrollback{
		w:             w,
		prompt:        opts.Prompt,
		suppressEcho:  opts.SuppressEcho,
		clearScreen:   opts.ClearScreen,
		promptEnabled: true,
	}
}

func (s *Scrollback) RenderLine(text string) {
	if s.suppressEcho && tuirender.Classify(text, s.prompt) == tuirender.KindEcho {
		return
	}
	fmt.Fprintln(s.w, text)
}

func (s *Scrollback) SetPromptEnabled(enabled bool) {
	s.promptEnabled = enabled
}

func (s *Scrollback) ClearOutput() {
	if s.clearScreen {
		fmt.Fprint(s.w, "\x1b[H\x1b[2J")
	}
}

// PromptEnabled reports whether the console is waiting for input.
func (s *Scrollback) PromptEnabled() bool {
	return s.promptEnabled
}
