package tui

import "interwebz-cli/internal/tui/render"

// Output 实现 console.Host。控制台只在 Update 中被调用，所以这里不加锁。
type Output struct {
	transcript    *render.Transcript
	promptEnabled bool
	dirty         bool
}

func NewOutput(prompt string) *Output {
	return &Output{
		transcript:    render.NewTranscript(prompt),
		promptEnabled: true,
		dirty:         true,
	}
}

func (o *Output) RenderLine(text string) {
	o.transcript.Append(text)
	o.dirty = true
}

func (o *Output) SetPromptEnabled(enabled bool) {
	o.promptEnabled = enabled
}

func (o *Output) ClearOutput() {
	o.transcript.Clear()
	o.dirty = true
}

// PromptEnabled reports whether the console currently accepts input.
func (o *Output) PromptEnabled() bool {
	return o.promptEnabled
}

// LastReply returns everything rendered since the last echoed command.
func (o *Output) LastReply() string {
	return o.transcript.LastReply()
}

func (o *Output) lines(width int) []string {
	return render.LinesToStrings(o.transcript.Lines(width))
}
