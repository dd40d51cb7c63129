package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"interwebz-cli/internal/config"
	"interwebz-cli/internal/history"
	"interwebz-cli/internal/logger"
	"interwebz-cli/internal/reply"

	"github.com/tidwall/pretty"
)

var log = logger.Named("console")

// State 是控制台的输入状态：Idle 接受输入，Busy 表示有一次提交尚未完成。
type State int

const (
	Idle State = iota
	Busy
)

func (s State) String() string {
	if s == Busy {
		return "busy"
	}
	return "idle"
}

// Host 是控制台对宿主 UI 的全部要求。
type Host interface {
	RenderLine(text string)
	SetPromptEnabled(enabled bool)
	ClearOutput()
}

// Browser 打开外部链接（help 命令）。
type Browser interface {
	OpenURL(url string) error
}

// Sender 发送一批命令；*session.Client 即是实现。
type Sender interface {
	Send(ctx context.Context, commands []string) ([]reply.Record, error)
	LastRaw() []byte
}

// HistorySink 持久化提交过的命令；*history.Store 即是实现。
type HistorySink interface {
	Append(text string) error
}

// 本地命令，不经过网络。
const (
	CommandHelp    = "help"
	CommandClear   = "clear"
	CommandHistory = "history"
	CommandDebug   = "debug"
)

// LocalCommands 按展示顺序列出本地命令。
var LocalCommands = []string{CommandHelp, CommandClear, CommandHistory, CommandDebug}

// QuitRequested reports whether the input asks the host to exit, the way
// redis-cli accepts quit and exit.
func QuitRequested(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "quit", "exit":
		return true
	}
	return false
}

type Options struct {
	Prompt  string
	HelpURL string
	Client  Sender
	Host    Host
	Browser Browser
	// History 为 nil 时新建空的 Navigator。
	History *history.Navigator
	Sink    HistorySink
	Debug   bool
	// Now 用于横幅时间戳，测试可替换。
	Now func() time.Time
}

// Request 是一次待执行的网络提交。
type Request struct {
	Text     string
	Commands []string
	debug    bool
	banner   bool
}

// Outcome 是 Execute 的结果：要么是逐条记录，要么是 Err。
type Outcome struct {
	Records []reply.Record
	Raw     []byte
	Err     error
}

// Controller 驱动 Idle/Busy 状态机。除 Execute 外的方法都只能在 UI 所在的
// goroutine 上调用。
type Controller struct {
	prompt  string
	helpURL string
	client  Sender
	host    Host
	browser Browser
	nav     *history.Navigator
	sink    HistorySink
	now     func() time.Time

	state State
	debug bool
}

func New(opts Options) *Controller {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = config.DefaultPrompt
	}
	helpURL := strings.TrimSpace(opts.HelpURL)
	if helpURL == "" {
		helpURL = config.DefaultHelpURL
	}
	nav := opts.History
	if nav == nil {
		nav = history.NewNavigator(nil)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		prompt:  prompt,
		helpURL: helpURL,
		client:  opts.Client,
		host:    opts.Host,
		browser: opts.Browser,
		nav:     nav,
		sink:    opts.Sink,
		now:     now,
		debug:   opts.Debug,
	}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Prompt() string { return c.prompt }

func (c *Controller) DebugEnabled() bool { return c.debug }

// History returns the command log in submission order.
func (c *Controller) History() []string {
	return c.nav.Entries()
}

// Submit 处理一次输入。返回 true 表示需要 Execute + Complete 完成网络请求；
// 返回 false 时输入已被忽略，或本地命令已同步处理完毕。
func (c *Controller) Submit(text string) (Request, bool) {
	if c.state == Busy {
		return Request{}, false
	}
	command := strings.TrimSpace(text)
	if command == "" {
		return Request{}, false
	}

	c.enterBusy()
	c.host.RenderLine(c.prompt + command)

	if c.runLocal(command) {
		c.finish(command)
		return Request{}, false
	}
	if c.client == nil {
		c.host.RenderLine("(fatal error) no session client configured")
		c.finish(command)
		return Request{}, false
	}
	return Request{Text: command, Commands: []string{command}, debug: c.debug}, true
}

// Banner 发送 INFO SERVER 以打印启动横幅；期间提示符同样被禁用。
func (c *Controller) Banner() (Request, bool) {
	if c.state == Busy || c.client == nil {
		return Request{}, false
	}
	c.enterBusy()
	return Request{Commands: []string{"INFO SERVER"}, banner: true}, true
}

// Execute performs the network call for req. It does not touch controller
// state and may run on any goroutine.
func (c *Controller) Execute(ctx context.Context, req Request) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("execute panic: %v", r)
			out = Outcome{Err: fmt.Errorf("internal error: %v", r)}
		}
	}()
	records, err := c.client.Send(ctx, req.Commands)
	if err != nil {
		return Outcome{Err: err}
	}
	out.Records = records
	if req.debug {
		out.Raw = c.client.LastRaw()
	}
	return out
}

// Complete renders the outcome of req and always returns the controller to Idle.
func (c *Controller) Complete(req Request, out Outcome) {
	defer c.finish(req.Text)

	if req.banner {
		c.renderBanner(out)
		return
	}
	if out.Err != nil {
		log.WithField("command", req.Text).Warnf("fatal: %v", out.Err)
		c.host.RenderLine("(fatal error) " + out.Err.Error())
		return
	}
	for _, rec := range out.Records {
		c.host.RenderLine(reply.Render(rec))
	}
	if len(out.Raw) > 0 {
		c.host.RenderLine(strings.TrimRight(string(pretty.Pretty(out.Raw)), "\n"))
	}
}

// Run 在当前 goroutine 上完成一次提交，供同步宿主（行模式、exec）使用。
func (c *Controller) Run(ctx context.Context, text string) {
	req, ok := c.Submit(text)
	if !ok {
		return
	}
	c.Complete(req, c.Execute(ctx, req))
}

// RunBanner 同步打印启动横幅。
func (c *Controller) RunBanner(ctx context.Context) {
	req, ok := c.Banner()
	if !ok {
		return
	}
	c.Complete(req, c.Execute(ctx, req))
}

// HistoryUp 返回更早的一条命令；Busy 时或已到最旧一条时返回 false。
func (c *Controller) HistoryUp(current string) (string, bool) {
	if c.state == Busy {
		return "", false
	}
	return c.nav.Prev(current)
}

// HistoryDown 返回较新的一条命令，回到底部时返回浏览前保存的草稿。
func (c *Controller) HistoryDown() (string, bool) {
	if c.state == Busy {
		return "", false
	}
	return c.nav.Next()
}

func (c *Controller) runLocal(command string) bool {
	switch command {
	case CommandHelp:
		c.host.RenderLine("No problem! Let me just open this url for you: " + c.helpURL)
		if c.browser != nil {
			if err := c.browser.OpenURL(c.helpURL); err != nil {
				log.Warnf("open %s: %v", c.helpURL, err)
				c.host.RenderLine("(error) " + err.Error())
			}
		}
	case CommandClear:
		c.host.ClearOutput()
	case CommandHistory:
		for _, entry := range c.nav.Entries() {
			c.host.RenderLine(entry)
		}
	case CommandDebug:
		c.debug = !c.debug
		if c.debug {
			c.host.RenderLine("debug mode on")
		} else {
			c.host.RenderLine("debug mode off")
		}
	default:
		return false
	}
	return true
}

func (c *Controller) enterBusy() {
	c.state = Busy
	c.host.SetPromptEnabled(false)
}

func (c *Controller) finish(command string) {
	if command != "" {
		c.nav.Append(command)
		if c.sink != nil {
			if err := c.sink.Append(command); err != nil {
				log.Warnf("persist history: %v", err)
			}
		}
	}
	c.state = Idle
	c.host.SetPromptEnabled(true)
}
