package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"interwebz-cli/internal/features"
)

func featuresMain(root rootArgs, args []string) {
	if err := runFeatures(root, args, os.Stdout); err != nil {
		log.Fatalf("features: %v", err)
	}
}

// runFeatures 列出每个 feature 的 stage 与生效值（配置文件 + 覆盖）。
func runFeatures(root rootArgs, args []string, out io.Writer) error {
	var cfgPath string
	var overrides stringSlice
	fs := flag.NewFlagSet("features", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.interwebz/config.toml)")
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(cfgPath, prependOverrides(root.overrides, []string(overrides)), "")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	for _, spec := range features.Specs {
		enabled := features.Enabled(cfg.Features, spec.Key)
		if _, err := fmt.Fprintf(out, "%s\t%s\t%t\t%s\n", spec.Key, spec.Stage, enabled, spec.Summary); err != nil {
			return err
		}
	}
	return nil
}
