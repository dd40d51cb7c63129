package history

// Navigator 负责命令日志与上下箭头浏览状态。
// cursor 是距最新一条的偏移：0 表示未在浏览，显示实时草稿；上限为 len(entries)。
type Navigator struct {
	entries []string
	cursor  int
	draft   string
}

// NewNavigator 以已有日志（按提交顺序）初始化。
func NewNavigator(seed []string) *Navigator {
	n := &Navigator{}
	n.Seed(seed)
	return n
}

// Seed replaces the log and stops any browse in progress.
func (n *Navigator) Seed(entries []string) {
	n.entries = append([]string(nil), entries...)
	n.cursor = 0
	n.draft = ""
}

// Append 追加一条命令并把 cursor 归零。
func (n *Navigator) Append(command string) {
	n.entries = append(n.entries, command)
	n.cursor = 0
}

// Prev moves one entry back in time. At the oldest entry it reports false and
// the caller keeps its current text.
func (n *Navigator) Prev(current string) (string, bool) {
	if n.cursor >= len(n.entries) {
		return "", false
	}
	if n.cursor == 0 {
		n.draft = current
	}
	n.cursor++
	return n.entries[len(n.entries)-n.cursor], true
}

// Next moves one entry forward; reaching offset 0 yields the saved draft.
func (n *Navigator) Next() (string, bool) {
	if n.cursor == 0 {
		return "", false
	}
	n.cursor--
	if n.cursor == 0 {
		return n.draft, true
	}
	return n.entries[len(n.entries)-n.cursor], true
}

// Browsing reports whether a history entry is currently shown.
func (n *Navigator) Browsing() bool {
	return n.cursor > 0
}

// Cursor returns the current offset from the newest entry.
func (n *Navigator) Cursor() int {
	return n.cursor
}

// Len returns the number of logged commands.
func (n *Navigator) Len() int {
	return len(n.entries)
}

// Entries returns a copy of the log in submission order.
func (n *Navigator) Entries() []string {
	return append([]string(nil), n.entries...)
}
