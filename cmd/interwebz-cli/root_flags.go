package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"interwebz-cli/internal/features"
)

type rootArgs struct {
	overrides []string
}

// parseRootArgs 只消费开头的 -c/--enable/--disable，遇到第一个其他参数即停止，
// 剩余部分原样交给子命令或交互模式。
func parseRootArgs(args []string) (rootArgs, []string, error) {
	fs := flag.NewFlagSet("interwebz-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var overrides stringSlice
	var enable stringSlice
	var disable stringSlice
	fs.Var(&overrides, "c", "Override config value key=value (repeatable, applied before subcommand overrides)")
	fs.Var(&enable, "enable", "Enable a feature (repeatable). Equivalent to -c features.<name>=true")
	fs.Var(&disable, "disable", "Disable a feature (repeatable). Equivalent to -c features.<name>=false")

	n := rootPrefixLen(args)
	if err := fs.Parse(args[:n]); err != nil {
		return rootArgs{}, nil, err
	}

	featureOverrides, err := buildFeatureOverrides(enable, disable)
	if err != nil {
		return rootArgs{}, nil, err
	}
	all := append([]string{}, overrides...)
	all = append(all, featureOverrides...)
	rest := append([]string{}, fs.Args()...)
	return rootArgs{overrides: all}, append(rest, args[n:]...), nil
}

// rootPrefixLen 返回开头属于根 flag 的参数个数。
func rootPrefixLen(args []string) int {
	i := 0
	for i < len(args) {
		name, hasValue := splitFlag(args[i])
		switch name {
		case "c", "enable", "disable":
		default:
			return i
		}
		if hasValue {
			i++
			continue
		}
		if i+1 >= len(args) {
			return len(args)
		}
		i += 2
	}
	return i
}

func splitFlag(arg string) (string, bool) {
	if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
		return "", false
	}
	name := strings.TrimLeft(arg, "-")
	if idx := strings.Index(name, "="); idx >= 0 {
		return name[:idx], true
	}
	return name, false
}

func prependOverrides(root []string, overrides []string) []string {
	merged := append([]string{}, root...)
	return append(merged, overrides...)
}

func buildFeatureOverrides(enable []string, disable []string) ([]string, error) {
	var overrides []string
	for _, key := range enable {
		if !features.IsKnown(key) {
			return nil, fmt.Errorf("unknown feature flag: %s", key)
		}
		overrides = append(overrides, fmt.Sprintf("features.%s=%t", key, true))
	}
	for _, key := range disable {
		if !features.IsKnown(key) {
			return nil, fmt.Errorf("unknown feature flag: %s", key)
		}
		overrides = append(overrides, fmt.Sprintf("features.%s=%t", key, false))
	}
	return overrides, nil
}
