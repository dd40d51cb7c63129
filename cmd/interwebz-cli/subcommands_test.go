package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"interwebz-cli/internal/config"
	"interwebz-cli/internal/history"
)

func TestRunConfigInitShowPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	var out bytes.Buffer
	if err := runConfig(rootArgs{}, []string{"init", "--config", path, "-c", "timeout_seconds=7"}, &out); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out.String(), "wrote "+path) {
		t.Fatalf("init output = %q", out.String())
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TimeoutSeconds != 7 || cfg.URL != config.DefaultURL {
		t.Fatalf("unexpected saved config: %+v", cfg)
	}

	if err := runConfig(rootArgs{}, []string{"init", "--config", path}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error when config exists without --force")
	}
	if err := runConfig(rootArgs{}, []string{"init", "--config", path, "--force"}, &bytes.Buffer{}); err != nil {
		t.Fatalf("config init --force: %v", err)
	}

	out.Reset()
	if err := runConfig(rootArgs{overrides: []string{"url=http://proxy:9000/"}}, []string{"show", "--config", path}, &out); err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out.String(), "http://proxy:9000/") {
		t.Fatalf("show output = %q", out.String())
	}

	out.Reset()
	if err := runConfig(rootArgs{}, []string{"path", "--config", path}, &out); err != nil {
		t.Fatalf("config path: %v", err)
	}
	if out.String() != path+"\n" {
		t.Fatalf("path output = %q", out.String())
	}

	if err := runConfig(rootArgs{}, []string{"frobnicate"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown action")
	}
	if err := runConfig(rootArgs{}, nil, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected usage error")
	}
}

func TestRunHistoryPrintsPersistedLog(t *testing.T) {
	home := isolate(t)
	store := &history.Store{Path: filepath.Join(home, ".interwebz", "history.jsonl")}
	for _, cmd := range []string{"SET a 1", "GET a", "DEL a"} {
		if err := store.Append(cmd); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	var out bytes.Buffer
	if err := runHistory(rootArgs{}, nil, &out); err != nil {
		t.Fatalf("runHistory: %v", err)
	}
	want := "    1  SET a 1\n    2  GET a\n    3  DEL a\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}

	out.Reset()
	if err := runHistory(rootArgs{}, []string{"-n", "1"}, &out); err != nil {
		t.Fatalf("runHistory -n: %v", err)
	}
	if out.String() != "    1  DEL a\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunFeaturesAppliesOverrides(t *testing.T) {
	isolate(t)
	var out bytes.Buffer
	root := rootArgs{overrides: []string{"features.banner=true", "features.persist_history=false"}}
	if err := runFeatures(root, nil, &out); err != nil {
		t.Fatalf("runFeatures: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	got := map[string]string{}
	for _, line := range lines {
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			t.Fatalf("malformed line %q", line)
		}
		got[fields[0]] = fields[2]
	}
	want := map[string]string{
		"banner":          "true",
		"persist_history": "false",
		"raw_json":        "false",
		"save_session":    "true",
	}
	for key, value := range want {
		if got[key] != value {
			t.Fatalf("%s = %q, want %q (output %q)", key, got[key], value, out.String())
		}
	}
}

func TestHistoryStoreFollowsFeature(t *testing.T) {
	isolate(t)
	cfg := config.Default()
	if historyStore(cfg) == nil {
		t.Fatalf("persist_history is on by default")
	}
	cfg.Features = map[string]bool{"persist_history": false}
	if historyStore(cfg) != nil {
		t.Fatalf("expected no store when persist_history is off")
	}
}

func TestLoadConfigURLOverrideWins(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("url = \"http://file:1/\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadConfig(path, []string{"url=http://kv:2/"}, "http://flag:3/")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.URL != "http://flag:3/" {
		t.Fatalf("url = %q", cfg.URL)
	}
}
