package config

import (
	"strconv"
	"strings"
)

// ApplyKVOverrides applies free-form -c key=value overrides.
func ApplyKVOverrides(cfg Config, overrides []string) Config {
	if len(overrides) == 0 {
		return cfg
	}
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := parts[1]
		if key != "prompt" {
			val = strings.TrimSpace(val)
		}
		switch key {
		case "url":
			cfg.URL = val
		case "prompt":
			cfg.Prompt = val
		case "help_url", "help-url":
			cfg.HelpURL = val
		case "history_file", "history-file":
			cfg.HistoryFile = val
		case "timeout_seconds", "timeout":
			if n, err := strconv.Atoi(val); err == nil && n >= 0 {
				cfg.TimeoutSeconds = n
			}
		default:
			if name, ok := strings.CutPrefix(key, "features."); ok && name != "" {
				if b, err := strconv.ParseBool(val); err == nil {
					if cfg.Features == nil {
						cfg.Features = map[string]bool{}
					}
					cfg.Features[name] = b
				}
			}
		}
	}
	cfg.normalize()
	return cfg
}
