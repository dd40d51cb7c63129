package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"interwebz-cli/internal/console"
)

type LoopOptions struct {
	Controller *console.Controller
	Host       *Scrollback
	In         io.Reader
	// ShowPrompt 在每次读取前打印提示符（stdin 是终端时）。
	ShowPrompt bool
}

// Run 逐行读取输入并同步提交，直到 EOF、quit/exit 或 ctx 取消。
func Run(ctx context.Context, opts LoopOptions) error {
	if opts.Controller == nil || opts.Host == nil || opts.In == nil {
		return errors.New("repl: controller, host and input are required")
	}
	scanner := bufio.NewScanner(opts.In)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.ShowPrompt && opts.Host.PromptEnabled() {
			fmt.Fprint(opts.Host.w, opts.Controller.Prompt())
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if console.QuitRequested(line) {
			return nil
		}
		opts.Controller.Run(ctx, line)
	}
	return scanner.Err()
}
