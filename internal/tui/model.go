package tui

import (
	"context"
	"strings"

	"interwebz-cli/internal/completion"
	"interwebz-cli/internal/console"
	"interwebz-cli/internal/logger"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var log = logger.Named("tui")

type Options struct {
	Controller *console.Controller
	Output     *Output
	Completer  *completion.Completer
	Endpoint   string
	// InitialCommand 在启动（以及横幅完成）后自动提交。
	InitialCommand string
	Banner         bool
	// Inline 为 true 时不使用 alt screen，退出后输出留在终端里。
	Inline bool
	// Copy 默认写入系统剪贴板。
	Copy    func(string) error
	Context context.Context
}

// replyMsg 把 Execute 的结果带回 Update 所在的 goroutine。
type replyMsg struct {
	req console.Request
	out console.Outcome
}

type startMsg struct {
	Text string
}

type bannerMsg struct{}

type Model struct {
	ctrl      *console.Controller
	out       *Output
	completer *completion.Completer
	copy      func(string) error
	ctx       context.Context

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model

	endpoint    string
	initCommand string
	banner      bool
	notice      string
	width       int
	height      int
}

func New(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	out := opts.Output
	if out == nil {
		out = NewOutput(opts.Controller.Prompt())
	}
	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	completer := opts.Completer
	if completer == nil {
		completer = completion.New(console.LocalCommands...)
	}

	ti := textinput.New()
	ti.Prompt = opts.Controller.Prompt()
	ti.PromptStyle = promptStyle
	ti.CharLimit = 0
	ti.Width = 72
	ti.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	return &Model{
		ctrl:        opts.Controller,
		out:         out,
		completer:   completer,
		copy:        copyFn,
		ctx:         ctx,
		input:       ti,
		viewport:    viewport.New(80, 20),
		spin:        spin,
		endpoint:    opts.Endpoint,
		initCommand: strings.TrimSpace(opts.InitialCommand),
		banner:      opts.Banner,
		width:       80,
		height:      22,
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.banner {
		cmds = append(cmds, func() tea.Msg { return bannerMsg{} })
	} else if m.initCommand != "" {
		cmds = append(cmds, m.takeInitCommand())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case spinner.TickMsg:
		if m.ctrl.State() == console.Busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			cmds = append(cmds, cmd)
		}
	case bannerMsg:
		if req, ok := m.ctrl.Banner(); ok {
			cmds = append(cmds, m.execute(req), m.spin.Tick)
		}
	case startMsg:
		cmds = append(cmds, m.submit(msg.Text))
	case replyMsg:
		m.ctrl.Complete(msg.req, msg.out)
		if m.initCommand != "" {
			cmds = append(cmds, m.takeInitCommand())
		}
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "ctrl+d":
		return tea.Quit
	case "pgup":
		m.viewport.ViewUp()
		return nil
	case "pgdown":
		m.viewport.ViewDown()
		return nil
	}
	// Busy 期间输入框被禁用
	if m.ctrl.State() == console.Busy {
		return nil
	}
	m.notice = ""

	switch msg.Type {
	case tea.KeyEnter:
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			return nil
		}
		if console.QuitRequested(text) {
			return tea.Quit
		}
		return m.submit(text)
	case tea.KeyUp:
		if text, ok := m.ctrl.HistoryUp(m.input.Value()); ok {
			m.setInput(text)
		}
		return nil
	case tea.KeyDown:
		if text, ok := m.ctrl.HistoryDown(); ok {
			m.setInput(text)
		}
		return nil
	case tea.KeyTab:
		if text, ok := m.completer.Complete(m.input.Value()); ok {
			m.setInput(text)
		}
		return nil
	case tea.KeyCtrlY:
		m.copyLastReply()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) submit(text string) tea.Cmd {
	m.input.Reset()
	req, ok := m.ctrl.Submit(text)
	if !ok {
		return nil
	}
	return tea.Batch(m.execute(req), m.spin.Tick)
}

func (m *Model) execute(req console.Request) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return replyMsg{req: req, out: ctrl.Execute(ctx, req)}
	}
}

func (m *Model) takeInitCommand() tea.Cmd {
	text := m.initCommand
	m.initCommand = ""
	return func() tea.Msg { return startMsg{Text: text} }
}

// setInput 整体替换输入内容并把光标放到末尾。
func (m *Model) setInput(text string) {
	m.input.SetValue(text)
	m.input.CursorEnd()
}

func (m *Model) copyLastReply() {
	text := m.out.LastReply()
	if text == "" {
		m.notice = "nothing to copy"
		return
	}
	if err := m.copy(text); err != nil {
		log.Warnf("clipboard: %v", err)
		m.notice = "copy failed: " + err.Error()
		return
	}
	m.notice = "copied last reply"
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = maxInt(10, width)
	m.viewport.Height = maxInt(1, height-2)
	m.input.Width = maxInt(10, width-lipgloss.Width(m.input.Prompt)-1)
	m.out.dirty = true
}

// sync 把 Output 的变化同步到视口与输入框。
func (m *Model) sync() tea.Cmd {
	if m.out.dirty {
		m.viewport.SetContent(strings.Join(m.out.lines(m.viewport.Width), "\n"))
		m.viewport.GotoBottom()
		m.out.dirty = false
	}
	if m.out.PromptEnabled() && !m.input.Focused() {
		return m.input.Focus()
	}
	if !m.out.PromptEnabled() && m.input.Focused() {
		m.input.Blur()
	}
	return nil
}

func (m *Model) View() string {
	prompt := m.input.View()
	if m.ctrl.State() == console.Busy {
		prompt = m.spin.View() + hintStyle.Render(" waiting for "+m.endpoint)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), prompt, m.statusLine())
}

func (m *Model) statusLine() string {
	text := "Enter 发送 • ↑/↓ 历史 • Tab 补全 • Ctrl+Y 复制回复 • PgUp/PgDn 滚动 • Ctrl+C 退出"
	if m.notice != "" {
		text = m.notice + " • " + text
	}
	return hintStyle.Width(maxInt(20, m.width)).Render(text)
}

// History returns the submitted commands in order.
func (m *Model) History() []string {
	return m.ctrl.History()
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D7A85"))
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
