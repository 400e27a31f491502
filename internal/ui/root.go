package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwafle/unread/internal/app"
)

// Run spins up the Bubble Tea program and blocks until the TUI exits or ctx
// is cancelled. hook may be nil.
func Run(ctx context.Context, inbox *app.Inbox, hook *StatusHook) error {
	defer inbox.Close()

	m := newModel(ctx, inbox)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if hook != nil {
		hook.Attach(p)
	}
	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
