package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Result 返回 TUI 运行后的必要信息。
type Result struct {
	History []string
}

// Run 封装 Bubble Tea 入口，返回最终的 UI 结果。
func Run(opts Options) (Result, error) {
	if opts.Controller == nil {
		return Result{}, errors.New("tui: controller is required")
	}
	programOptions := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !opts.Inline {
		programOptions = append(programOptions, tea.WithAltScreen())
	}
	if opts.Context != nil {
		programOptions = append(programOptions, tea.WithContext(opts.Context))
	}
	program := tea.NewProgram(New(opts), programOptions...)
	m, err := program.Run()
	if err != nil {
		return Result{}, err
	}
	tuiModel, ok := m.(*Model)
	if !ok {
		return Result{}, errors.New("unexpected tui model")
	}
	return Result{History: tuiModel.History()}, nil
}
