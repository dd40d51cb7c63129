package main

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"interwebz-cli/internal/config"
	"interwebz-cli/internal/features"
	"interwebz-cli/internal/history"
	"interwebz-cli/internal/logger"
	"interwebz-cli/internal/session"
)

const historyLimit = 1000

// wireLogPath 可在测试中替换。
var wireLogPath = logger.DefaultWireLogPath

// loadConfig 读取配置并按顺序应用 -c 覆盖与 --url。
func loadConfig(cfgPath string, overrides []string, urlOverride string) (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, err
	}
	cfg = config.ApplyKVOverrides(cfg, overrides)
	if u := strings.TrimSpace(urlOverride); u != "" {
		cfg.URL = u
	}
	return cfg, nil
}

func requestTimeout(cfg config.Config) time.Duration {
	return time.Duration(cfg.TimeoutSeconds) * time.Second
}

// newSessionClient 构造 session.Client，线路日志写入 logs/wire.log。
// 返回的 closer 关闭日志文件；日志文件打不开时退回全局 logger。
func newSessionClient(cfg config.Config, token string) (*session.Client, io.Closer, error) {
	var closer io.Closer = nopCloser{}
	wire, c, _, err := logger.SetupComponentFile("wire", wireLogPath)
	if err != nil {
		log.Warnf("failed to initialize wire log (%s): %v", wireLogPath, err)
		wire = nil
	} else {
		closer = c
	}
	client, err := session.NewClient(session.Options{
		Endpoint: cfg.URL,
		Token:    token,
		Timeout:  requestTimeout(cfg),
		Log:      wire,
	})
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return client, closer, nil
}

// historyStore 在 persist_history 关闭时返回 nil。
func historyStore(cfg config.Config) *history.Store {
	if !features.Enabled(cfg.Features, features.PersistHistory) {
		return nil
	}
	path := cfg.ResolvedHistoryFile()
	if path == "" {
		return nil
	}
	return &history.Store{Path: path, Limit: historyLimit}
}

// sessionStore 指向 ~/.interwebz/sessions；$HOME 不可用时 Dir 为空，Save 会报错。
func sessionStore() session.Store {
	dir := config.Dir()
	if dir == "" {
		return session.Store{}
	}
	return session.Store{Dir: filepath.Join(dir, "sessions")}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
