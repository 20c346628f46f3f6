package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"provcheck/internal/domain"
	"provcheck/internal/ports"
)

type detectedMsg struct {
	Mode domain.Mode
	Path string
}

type resolvedMsg struct {
	Resolution *domain.Resolution
}

type scannedMsg struct {
	Result domain.ScanResult
	Done   int
	Total  int
}

type checkDoneMsg struct {
	Report *domain.Report
	Err    error
}

// channelObserver forwards check progress to the program's event channel
type channelObserver struct {
	ctx    context.Context
	events chan<- tea.Msg
}

// Ensure channelObserver implements Observer
var _ ports.Observer = (*channelObserver)(nil)

func (o *channelObserver) send(msg tea.Msg) {
	select {
	case o.events <- msg:
	case <-o.ctx.Done():
	}
}

func (o *channelObserver) Detected(mode domain.Mode, path string) {
	o.send(detectedMsg{Mode: mode, Path: path})
}

func (o *channelObserver) Resolved(res *domain.Resolution) {
	o.send(resolvedMsg{Resolution: res})
}

func (o *channelObserver) Scanned(result domain.ScanResult, done, total int) {
	o.send(scannedMsg{Result: result, Done: done, Total: total})
}

// waitForEvent delivers the next progress event to Update
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}
