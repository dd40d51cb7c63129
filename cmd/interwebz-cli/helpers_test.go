package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// isolate 把 HOME、环境变量覆盖与线路日志都指向临时目录。
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("INTERWEBZ_URL", "")
	t.Setenv("INTERWEBZ_PROMPT", "")
	prev := wireLogPath
	wireLogPath = filepath.Join(home, "logs", "wire.log")
	t.Cleanup(func() { wireLogPath = prev })
	return home
}

// redisProxy 模拟代理：PING 回 PONG，GET missing 回 nil，ERR 开头的命令回错误，
// 其余命令原样回显。
type redisProxy struct {
	mu      sync.Mutex
	batches [][]string
	status  int
}

func (p *redisProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	var body struct {
		Commands []string `json:"commands"`
	}
	_ = json.Unmarshal(data, &body)

	p.mu.Lock()
	p.batches = append(p.batches, body.Commands)
	status := p.status
	p.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}
	replies := make([]map[string]any, 0, len(body.Commands))
	for _, cmd := range body.Commands {
		switch {
		case cmd == "PING":
			replies = append(replies, map[string]any{"value": "PONG", "error": false})
		case cmd == "GET missing":
			replies = append(replies, map[string]any{"value": nil, "error": false})
		case strings.HasPrefix(cmd, "ERR"):
			replies = append(replies, map[string]any{"value": "ERR unknown command '" + cmd + "'", "error": true})
		default:
			replies = append(replies, map[string]any{"value": cmd, "error": false})
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"replies": replies, "id": "tok-1"})
}

func (p *redisProxy) sent() [][]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]string(nil), p.batches...)
}

func startProxy(t *testing.T) (*redisProxy, string) {
	t.Helper()
	proxy := &redisProxy{}
	srv := httptest.NewServer(proxy)
	t.Cleanup(srv.Close)
	return proxy, srv.URL + "/"
}
