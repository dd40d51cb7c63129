package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"interwebz-cli/internal/logger"
	"interwebz-cli/internal/reply"

	"github.com/tidwall/sjson"
)

// State 是一个控制台实例的会话状态。
// HandshakeDone 只会在第一次成功往返后由 false 变为 true。
type State struct {
	Token         string
	HandshakeDone bool
}

// Options 描述 Client 的构造参数。
type Options struct {
	Endpoint string
	// Token 用于 resume：带着旧 token 启动时视为握手已完成。
	Token   string
	Timeout time.Duration
	HTTP    *http.Client
	Log     *logger.LogEntry
}

// Client 负责把一批命令发送到代理，并持有该控制台实例的 session token。
type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
	log      *logger.LogEntry

	mu      sync.Mutex
	state   State
	lastRaw []byte
}

var ErrNoEndpoint = errors.New("session endpoint is empty")

func NewClient(opts Options) (*Client, error) {
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}
	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	entry := opts.Log
	if entry == nil {
		entry = logger.Named("session")
	}
	token := strings.TrimSpace(opts.Token)
	return &Client{
		endpoint: endpoint,
		timeout:  opts.Timeout,
		http:     httpClient,
		log:      entry,
		state:    State{Token: token, HandshakeDone: token != ""},
	}, nil
}

// Endpoint returns the proxy URL the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// State returns a snapshot of the session state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastRaw returns the body of the last 200 response, or nil after a non-200 one.
func (c *Client) LastRaw() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.lastRaw...)
}

// Close drops the session state together with any idle connections.
func (c *Client) Close() {
	c.mu.Lock()
	c.state = State{}
	c.lastRaw = nil
	c.mu.Unlock()
	c.http.CloseIdleConnections()
}

// Send posts one batch and returns one record per command, in order.
//
// A non-200 status is reported as a single error record covering the batch.
// Transport failures and undecodable bodies are returned as errors. In both
// cases the session state is left untouched.
func (c *Client) Send(ctx context.Context, commands []string) ([]reply.Record, error) {
	if len(commands) == 0 {
		return nil, nil
	}
	snapshot := c.State()
	body, err := buildRequestBody(commands, snapshot)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithField("commands", len(commands)).Warnf("request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	entry := c.log.WithFields(logger.Fields{
		"commands":  len(commands),
		"status":    resp.StatusCode,
		"elapsed":   time.Since(start).Round(time.Millisecond),
		"handshake": !snapshot.HandshakeDone,
	})
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		entry.Warn("non-200 response")
		c.mu.Lock()
		c.lastRaw = nil
		c.mu.Unlock()
		return []reply.Record{reply.ErrorRecord(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, statusText(resp)))}, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}
	decoded, err := reply.DecodeResponse(data)
	if err != nil {
		entry.Warnf("undecodable response: %v", err)
		return nil, err
	}
	if len(decoded.Records) != len(commands) {
		entry.Warnf("reply count %d differs from command count", len(decoded.Records))
	}

	c.mu.Lock()
	if decoded.ID != "" {
		c.state.Token = decoded.ID
	}
	c.state.HandshakeDone = true
	c.lastRaw = data
	c.mu.Unlock()

	entry.Info("round trip")
	return decoded.Records, nil
}

func buildRequestBody(commands []string, st State) ([]byte, error) {
	body, err := sjson.SetBytes([]byte(`{}`), "commands", commands)
	if err != nil {
		return nil, err
	}
	if body, err = sjson.SetBytes(body, "handshake", !st.HandshakeDone); err != nil {
		return nil, err
	}
	if st.Token != "" {
		if body, err = sjson.SetBytes(body, "id", st.Token); err != nil {
			return nil, err
		}
	}
	return body, nil
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
