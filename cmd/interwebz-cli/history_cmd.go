package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"interwebz-cli/internal/history"
)

func historyMain(root rootArgs, args []string) {
	if err := runHistory(root, args, os.Stdout); err != nil {
		log.Fatalf("history: %v", err)
	}
}

// runHistory 打印持久化的命令历史，与 persist_history 是否开启无关。
func runHistory(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var cfgPath string
	var limit int
	var overrides stringSlice
	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.interwebz/config.toml)")
	fs.IntVar(&limit, "n", 0, "Only print the last n commands")
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(cfgPath, prependOverrides(root.overrides, []string(overrides)), "")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store := &history.Store{Path: cfg.ResolvedHistoryFile(), Limit: limit}
	texts, err := store.LoadTexts()
	if err != nil {
		return err
	}
	for i, text := range texts {
		if _, err := fmt.Fprintf(out, "%5d  %s\n", i+1, text); err != nil {
			return err
		}
	}
	return nil
}
