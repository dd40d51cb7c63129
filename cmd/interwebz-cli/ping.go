package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"interwebz-cli/internal/reply"
	"interwebz-cli/internal/session"
)

func pingMain(root rootArgs, args []string) {
	if err := runPing(root, args, os.Stdout); err != nil {
		log.Errorf("ping failed: %v", err)
		fmt.Fprintln(os.Stderr, "ping failed: "+err.Error())
		os.Exit(1)
	}
}

// runPing 先做 TCP 可达性检查，再发送一次 PING。
func runPing(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("ping", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var cfgPath string
	var urlOverride string
	var timeoutSeconds int
	var overrides stringSlice
	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.interwebz/config.toml)")
	fs.StringVar(&urlOverride, "url", "", "Proxy endpoint override")
	fs.IntVar(&timeoutSeconds, "timeout", 0, "Timeout seconds (default from config, else 10)")
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(cfgPath, prependOverrides(root.overrides, []string(overrides)), urlOverride)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = cfg.TimeoutSeconds
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	if err := session.CheckReachable(ctx, cfg.URL); err != nil {
		return err
	}
	client, wireCloser, err := newSessionClient(cfg, "")
	if err != nil {
		return err
	}
	defer wireCloser.Close()
	defer client.Close()

	records, err := client.Send(ctx, []string{"PING"})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.New("empty reply to PING")
	}
	if records[0].IsError {
		return errors.New(records[0].ErrorText)
	}
	_, _ = fmt.Fprintf(out, "ok: %s %s\n", cfg.URL, reply.Render(records[0]))
	return nil
}
