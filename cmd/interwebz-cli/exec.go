package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"interwebz-cli/internal/reply"

	"github.com/tidwall/pretty"
)

var errNoCommands = errors.New("no commands given: pass them as arguments or on stdin")

func execMain(root rootArgs, args []string) {
	if err := runExec(root, args, os.Stdin, os.Stdout); err != nil {
		log.Errorf("exec failed: %v", err)
		fmt.Fprintln(os.Stderr, "(fatal error) "+err.Error())
		os.Exit(1)
	}
}

// runExec 把所有命令作为一个批次发送，按顺序打印每条回复。
// 传输或解码失败时返回错误；Redis 错误只打印，不影响退出码。
func runExec(root rootArgs, args []string, stdin io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("exec", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var cfgPath string
	var urlOverride string
	var raw bool
	var overrides stringSlice
	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.interwebz/config.toml)")
	fs.StringVar(&urlOverride, "url", "", "Proxy endpoint override")
	fs.BoolVar(&raw, "raw", false, "Print the raw JSON response after the replies")
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	commands := commandArgs(fs.Args())
	if len(commands) == 0 && stdin != nil {
		var err error
		commands, err = readCommands(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}
	if len(commands) == 0 {
		return errNoCommands
	}

	cfg, err := loadConfig(cfgPath, prependOverrides(root.overrides, []string(overrides)), urlOverride)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	client, wireCloser, err := newSessionClient(cfg, "")
	if err != nil {
		return err
	}
	defer wireCloser.Close()
	defer client.Close()

	records, err := client.Send(context.Background(), commands)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if _, err := fmt.Fprintln(out, reply.Render(rec)); err != nil {
			return err
		}
	}
	if raw {
		if body := client.LastRaw(); len(body) > 0 {
			_, _ = fmt.Fprintln(out, strings.TrimRight(string(pretty.Pretty(body)), "\n"))
		}
	}
	return nil
}

func commandArgs(args []string) []string {
	var commands []string
	for _, arg := range args {
		if cmd := strings.TrimSpace(arg); cmd != "" {
			commands = append(commands, cmd)
		}
	}
	return commands
}

// readCommands 每行一条命令，跳过空行与 # 注释。
func readCommands(r io.Reader) ([]string, error) {
	var commands []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		commands = append(commands, line)
	}
	return commands, scanner.Err()
}
