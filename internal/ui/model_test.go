package ui

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jwafle/unread/internal/app"
	"github.com/jwafle/unread/internal/message"
	"github.com/jwafle/unread/internal/render"
	"github.com/jwafle/unread/internal/transport"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ok","messages":[]}`)
	}))
	t.Cleanup(srv.Close)

	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	inbox, err := app.NewInbox(app.Options{
		Server:   srv.URL,
		Interval: time.Hour,
		Location: time.UTC,
		Logger:   &logger,
	})
	require.NoError(t, err)
	t.Cleanup(inbox.Close)

	return newModel(context.Background(), inbox)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func mk(id int64, subject string) message.Message {
	return message.Message{ID: message.NumericID(id), From: "f", Subject: subject, Received: 1700000000}
}

func TestTableInsertTop(t *testing.T) {
	tbl := NewTable()
	tbl.SetSize(100, 10)
	tbl.InsertTop(render.Row{From: "a", Subject: "one", Received: "r1"})
	tbl.InsertTop(render.Row{From: "b", Subject: "two", Received: "r2"})

	require.Equal(t, 2, tbl.Len())
	require.Equal(t, "two", tbl.Rows()[0][1])
	require.Equal(t, "one", tbl.Rows()[1][1])
	require.Contains(t, tbl.View(), "SUBJECT")
}

func TestColumnsFitWidth(t *testing.T) {
	cols := columns(100)
	require.Len(t, cols, 3)
	require.Equal(t, receivedWidth, cols[2].Width)
	require.Equal(t, 100-6, cols[0].Width+cols[1].Width+cols[2].Width)

	narrow := columns(10)
	require.Equal(t, 20, narrow[0].Width+narrow[1].Width)
}

func TestFirstResizeBootstrapsPolling(t *testing.T) {
	m := newTestModel(t)
	require.False(t, m.ready)
	require.Nil(t, m.batches)

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	require.True(t, m.ready)
	require.NotNil(t, m.batches)
	require.NotNil(t, cmd)

	// A second resize must not bootstrap again.
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	require.NoError(t, m.err)
}

func TestBatchRendersNewestFirstAndDeduplicates(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})

	m, cmd := update(t, m, batchMsg(transport.Batch{Seq: 1, Messages: []message.Message{mk(1, "m1"), mk(2, "m2"), mk(3, "m3")}}))
	require.NotNil(t, cmd, "keeps reading batches")
	m, _ = update(t, m, batchMsg(transport.Batch{Seq: 2, Messages: []message.Message{mk(3, "m3 again"), mk(4, "m4")}}))

	var got []string
	for _, r := range m.table.Rows() {
		got = append(got, r[1])
	}
	require.Equal(t, []string{"m4", "m3", "m2", "m1"}, got)
	require.False(t, m.lastPoll.IsZero())
	require.Contains(t, m.View(), "4 messages")
}

func TestPausedBatchesAreNotRecorded(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	require.True(t, m.paused)
	m, _ = update(t, m, batchMsg(transport.Batch{Seq: 1, Messages: []message.Message{mk(1, "while paused")}}))
	require.Zero(t, m.table.Len())
	require.Contains(t, m.View(), "[PAUSED]")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m, _ = update(t, m, batchMsg(transport.Batch{Seq: 2, Messages: []message.Message{mk(1, "while paused")}}))
	require.Equal(t, 1, m.table.Len())
}

func TestLogLineShownInStatus(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, logLineMsg{level: zerolog.ErrorLevel, text: "poll failed"})
	require.Contains(t, m.View(), "poll failed")
}

func TestQuitCancelsContext(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.Error(t, m.ctx.Err())
}

func TestStreamClosedQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := update(t, m, streamClosedMsg{})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

func TestStatusHookIgnoresLowLevels(t *testing.T) {
	got := make(chan tea.Msg, 1)
	h := &StatusHook{send: func(msg tea.Msg) { got <- msg }}

	h.Run(nil, zerolog.InfoLevel, "fine")
	h.Run(nil, zerolog.ErrorLevel, "broken")

	select {
	case msg := <-got:
		require.Equal(t, logLineMsg{level: zerolog.ErrorLevel, text: "broken"}, msg)
	case <-time.After(time.Second):
		t.Fatal("error was not forwarded")
	}
}
