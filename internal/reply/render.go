package reply

import (
	"strconv"
	"strings"
)

// Render formats a record the way redis-cli prints a reply.
// The result carries no trailing newline.
func Render(rec Record) string {
	if rec.IsError {
		return "(error) " + rec.ErrorText
	}
	return RenderValue(rec.Value, "")
}

// RenderValue formats v; indent is the prefix for every array label after the first.
func RenderValue(v Value, indent string) string {
	switch val := v.(type) {
	case nil, Nil:
		return "(nil)"
	case Integer:
		return "(integer) " + strconv.FormatInt(int64(val), 10)
	case Text:
		return `"` + string(val) + `"`
	case Array:
		return renderArray(val, indent)
	case Unknown:
		return protocolError(val.TypeName)
	default:
		return protocolError("unknown")
	}
}

func renderArray(items Array, indent string) string {
	if len(items) == 0 {
		return "(empty array)"
	}
	var b strings.Builder
	for i, item := range items {
		label := strconv.Itoa(i + 1)
		if i > 0 {
			b.WriteString("\n")
			b.WriteString(indent)
		}
		b.WriteString(label)
		b.WriteString(") ")
		// 嵌套缩进取决于当前元素标签宽度，而不是固定制表位。
		nested := indent + strings.Repeat(" ", len(label)+2)
		b.WriteString(RenderValue(item, nested))
	}
	return b.String()
}

func protocolError(typeName string) string {
	return "-PROTOCOLERR Unknown reply type " + typeName
}
