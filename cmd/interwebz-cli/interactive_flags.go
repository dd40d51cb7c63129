package main

import (
	"flag"
	"strings"
)

// interactiveArgs captures flags shared by interactive entrypoints (interwebz-cli, resume).
type interactiveArgs struct {
	cfgPath         string
	url             string
	prompt          string
	plain           bool
	inline          bool
	configOverrides stringSlice
	resumeLast      bool
	resumeSessionID string
}

func newInteractiveFlagSet(name string) (*flag.FlagSet, *interactiveArgs) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	args := &interactiveArgs{}

	fs.StringVar(&args.cfgPath, "config", "", "Path to config file (default ~/.interwebz/config.toml)")
	fs.StringVar(&args.url, "url", "", "Proxy endpoint override")
	fs.StringVar(&args.prompt, "prompt", "", "Command to submit once the console starts")
	fs.BoolVar(&args.plain, "plain", false, "Use the line-mode console even on a terminal")
	fs.BoolVar(&args.inline, "inline", false, "Keep the TUI out of the alt screen so output stays in scrollback")
	fs.StringVar(&args.resumeSessionID, "resume", "", "Session id to resume")
	fs.Var(&args.configOverrides, "c", "Override config value key=value (repeatable)")

	return fs, args
}

func (i *interactiveArgs) finalizePrompt(fs *flag.FlagSet) {
	if i.prompt == "" && fs.NArg() > 0 {
		i.prompt = strings.Join(fs.Args(), " ")
	}
}
