package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultURL     = "http://localhost:5000/"
	DefaultPrompt  = "redis:6379> "
	DefaultHelpURL = "https://redis.io/commands"
)

// Config is the persisted config file schema.
type Config struct {
	URL            string          `toml:"url"`
	Prompt         string          `toml:"prompt"`
	HelpURL        string          `toml:"help_url"`
	HistoryFile    string          `toml:"history_file"`
	TimeoutSeconds int             `toml:"timeout_seconds"`
	Features       map[string]bool `toml:"features,omitempty"`
	Source         string          `toml:"-"`
}

func Default() Config {
	return Config{
		URL:     DefaultURL,
		Prompt:  DefaultPrompt,
		HelpURL: DefaultHelpURL,
	}
}

// Dir 返回 ~/.interwebz，会话与历史文件都放在这里。
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".interwebz")
}

func DefaultPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// DefaultHistoryPath 是未配置 history_file 时的命令历史位置。
func DefaultHistoryPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "history.jsonl")
}

// Load 读取配置文件；文件不存在时返回默认值。环境变量优先于文件内容。
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	if err == nil {
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	cfg.normalize()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if env := strings.TrimSpace(os.Getenv("INTERWEBZ_URL")); env != "" {
		cfg.URL = env
	}
	if env := os.Getenv("INTERWEBZ_PROMPT"); env != "" {
		cfg.Prompt = env
	}
}

func (c *Config) normalize() {
	if strings.TrimSpace(c.URL) == "" {
		c.URL = DefaultURL
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if strings.TrimSpace(c.HelpURL) == "" {
		c.HelpURL = DefaultHelpURL
	}
	if c.TimeoutSeconds < 0 {
		c.TimeoutSeconds = 0
	}
}

// ResolvedHistoryFile expands the configured history path, falling back to the default.
func (c Config) ResolvedHistoryFile() string {
	path := strings.TrimSpace(c.HistoryFile)
	if path == "" {
		return DefaultHistoryPath()
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
