package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// logLineMsg carries an error-level log message into the status line.
type logLineMsg struct {
	level zerolog.Level
	text  string
}

// StatusHook forwards error-level log events to a running program.
type StatusHook struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

var _ zerolog.Hook = (*StatusHook)(nil)

// Attach starts forwarding to p.
func (h *StatusHook) Attach(p *tea.Program) {
	h.mu.Lock()
	h.send = p.Send
	h.mu.Unlock()
}

func (h *StatusHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	if level < zerolog.ErrorLevel {
		return
	}
	h.mu.Lock()
	send := h.send
	h.mu.Unlock()
	if send == nil {
		return
	}
	// Send blocks until Update receives; never call it from Update itself.
	go send(logLineMsg{level: level, text: msg})
}
