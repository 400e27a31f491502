package ui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jwafle/unread/internal/format"
	"github.com/jwafle/unread/internal/render"
	"github.com/jwafle/unread/internal/ui/styles"
)

// receivedWidth fits format.TimestampLayout.
var receivedWidth = len(format.TimestampLayout)

// Table is the interactive message table. It is the render.Surface in TUI
// mode and is only touched from the Bubble Tea update loop.
type Table struct {
	model table.Model
	rows  []table.Row
}

var _ render.Surface = (*Table)(nil)

func NewTable() *Table {
	t := &Table{
		model: table.New(
			table.WithColumns(columns(80)),
			table.WithFocused(true),
		),
	}

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Accent).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(styles.Accent).
		Bold(false)
	t.model.SetStyles(s)
	return t
}

// columns splits width between sender and subject; the timestamp column is fixed.
func columns(width int) []table.Column {
	// each cell carries one column of padding on both sides
	free := width - receivedWidth - 6
	if free < 20 {
		free = 20
	}
	from := free * 2 / 5
	return []table.Column{
		{Title: render.Headers[0], Width: from},
		{Title: render.Headers[1], Width: free - from},
		{Title: render.Headers[2], Width: receivedWidth},
	}
}

// InsertTop makes row the first table row. A cursor below the top keeps
// pointing at the same message.
func (t *Table) InsertTop(row render.Row) {
	t.rows = append([]table.Row{table.Row(row.Cells())}, t.rows...)
	t.model.SetRows(t.rows)
	if c := t.model.Cursor(); c > 0 {
		t.model.SetCursor(c + 1)
	}
}

func (t *Table) SetSize(width, height int) {
	if height < 3 {
		height = 3
	}
	t.model.SetColumns(columns(width))
	t.model.SetWidth(width)
	t.model.SetHeight(height)
}

func (t *Table) Rows() []table.Row { return t.rows }

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return cmd
}

func (t *Table) View() string { return t.model.View() }
