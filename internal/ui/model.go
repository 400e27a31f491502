package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwafle/unread/internal/app"
	"github.com/jwafle/unread/internal/transport"
	"github.com/jwafle/unread/internal/ui/styles"
)

// verticalMargin is the number of lines around the table: title, status, help.
const verticalMargin = 4

// batchMsg is one poll result delivered by readBatch.
type batchMsg transport.Batch

// streamClosedMsg is returned once the poller has stopped.
type streamClosedMsg struct{}

// Model is the Bubble Tea model driving the UI.
type Model struct {
	inbox   *app.Inbox
	ctx     context.Context
	cancel  context.CancelFunc
	batches <-chan transport.Batch

	spinner spinner.Model
	help    help.Model
	ready   bool
	paused  bool

	table *Table

	lastPoll time.Time
	lastErr  string

	err error
}

func newModel(ctx context.Context, inbox *app.Inbox) Model {
	ctx, cancel := context.WithCancel(ctx)
	return Model{
		inbox:   inbox,
		ctx:     ctx,
		cancel:  cancel,
		spinner: spinner.New(),
		help:    help.New(),
		table:   NewTable(),
	}
}

// readBatch returns a command that receives one batch from the poller.
func readBatch(ch <-chan transport.Batch) tea.Cmd {
	return func() tea.Msg {
		b, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return batchMsg(b)
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Quit):
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, Keys.Pause):
			m.paused = !m.paused
		default:
			cmds = append(cmds, m.table.Update(msg))
		}

	case tea.WindowSizeMsg:
		m.table.SetSize(msg.Width, msg.Height-verticalMargin)
		m.help.Width = msg.Width
		if !m.ready {
			// The table exists from here on; start polling into it.
			m.ready = true
			batches, err := m.inbox.Bootstrap(m.ctx, m.table)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.batches = batches
			cmds = append(cmds, readBatch(m.batches))
		}

	case batchMsg:
		m.lastPoll = time.Now()
		if !m.paused {
			m.inbox.Apply(transport.Batch(msg))
		}
		cmds = append(cmds, readBatch(m.batches))

	case streamClosedMsg:
		return m, tea.Quit

	case logLineMsg:
		m.lastErr = msg.text

	case spinner.TickMsg:
		var c tea.Cmd
		m.spinner, c = m.spinner.Update(msg)
		cmds = append(cmds, c)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.Header.Render("Unread messages"))
	b.WriteString(" ")
	b.WriteString(styles.Status.Render(m.inbox.URL()))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	var status strings.Builder
	if m.paused {
		status.WriteString("[PAUSED] ")
	} else {
		status.WriteString(m.spinner.View())
		status.WriteString(" Polling ")
	}
	fmt.Fprintf(&status, "%d messages", m.table.Len())
	if !m.lastPoll.IsZero() {
		fmt.Fprintf(&status, " · last poll %s", m.lastPoll.Format("15:04:05"))
	}
	b.WriteString(styles.Status.Render(status.String()))
	if m.err != nil {
		b.WriteString(" ")
		b.WriteString(styles.Error.Render("error: " + m.err.Error()))
	} else if m.lastErr != "" {
		b.WriteString(" ")
		b.WriteString(styles.Error.Render(m.lastErr))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(Keys))

	return b.String()
}
