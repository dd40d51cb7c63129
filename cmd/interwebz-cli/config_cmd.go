package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"interwebz-cli/internal/config"

	"github.com/pelletier/go-toml/v2"
)

func configMain(root rootArgs, args []string) {
	if err := runConfig(root, args, os.Stdout); err != nil {
		log.Fatalf("config: %v", err)
	}
}

// runConfig 支持 init（写出默认配置）、show（打印生效配置）与 path。
func runConfig(root rootArgs, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: interwebz-cli config init|show|path [--config path]")
	}
	action := args[0]

	fs := flag.NewFlagSet("config "+action, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var cfgPath string
	var force bool
	var overrides stringSlice
	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.interwebz/config.toml)")
	fs.BoolVar(&force, "force", false, "Overwrite an existing config file (init)")
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}

	switch action {
	case "init":
		if _, err := os.Stat(cfgPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
		}
		cfg := config.ApplyKVOverrides(config.Default(), prependOverrides(root.overrides, []string(overrides)))
		if err := config.Save(cfgPath, cfg); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "wrote %s\n", cfgPath)
		return err
	case "show":
		cfg, err := loadConfig(cfgPath, prependOverrides(root.overrides, []string(overrides)), "")
		if err != nil {
			return err
		}
		data, err := toml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "path":
		_, err := fmt.Fprintln(out, cfgPath)
		return err
	default:
		return fmt.Errorf("unknown config action %q (use init, show or path)", action)
	}
}
