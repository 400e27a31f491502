// Package render turns messages into table rows, at most once per message id.
package render

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwafle/unread/internal/dedup"
	"github.com/jwafle/unread/internal/format"
	"github.com/jwafle/unread/internal/message"
)

// ErrSurfaceMissing is reported when there is no table to render into.
var ErrSurfaceMissing = errors.New("message table not found")

// Row is the display form of a message.
type Row struct {
	From     string
	Subject  string
	Received string
}

// Cells returns the row in column order.
func (r Row) Cells() []string { return []string{r.From, r.Subject, r.Received} }

// Headers are the column titles matching Row.Cells.
var Headers = []string{"FROM", "SUBJECT", "RECEIVED"}

// Surface is the table body rows are inserted into.
type Surface interface {
	// InsertTop makes row the first row of the table.
	InsertTop(row Row)
}

// Options configure a Renderer. The zero value renders local timestamps,
// truncates subjects at format.DefaultLimit and discards logs.
type Options struct {
	SubjectLimit int
	Location     *time.Location
	Logger       *zerolog.Logger // nil = discard
}

// Renderer inserts rows for messages it has not seen before.
type Renderer struct {
	store   *dedup.Store
	surface Surface
	limit   int
	loc     *time.Location
	logger  zerolog.Logger
}

func NewRenderer(store *dedup.Store, opts Options) *Renderer {
	if opts.SubjectLimit <= 0 {
		opts.SubjectLimit = format.DefaultLimit
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Renderer{
		store:  store,
		limit:  opts.SubjectLimit,
		loc:    opts.Location,
		logger: logger,
	}
}

// Attach sets the surface rows are inserted into.
func (r *Renderer) Attach(s Surface) { r.surface = s }

// Row formats m without touching the store or the surface.
func (r *Renderer) Row(m message.Message) Row {
	return Row{
		From:     m.From,
		Subject:  format.Truncate(m.Subject, r.limit),
		Received: format.TimestampIn(m.Received, r.loc),
	}
}

// Render inserts a row for m at the top of the surface and records its id.
// It reports whether a row was inserted. Already rendered ids are skipped
// silently; a missing surface is logged and leaves the id unrecorded.
func (r *Renderer) Render(m message.Message) bool {
	if r.store.Has(m.ID) {
		return false
	}
	if r.surface == nil {
		r.logger.Error().Err(ErrSurfaceMissing).Str("message_id", m.ID.String()).Msg("cannot render message")
		return false
	}

	r.surface.InsertTop(r.Row(m))
	r.store.Add(m.ID)
	return true
}

// ListSurface is an in-memory Surface.
type ListSurface struct {
	rows []Row
}

func (s *ListSurface) InsertTop(row Row) {
	s.rows = append([]Row{row}, s.rows...)
}

// Rows returns the rows top to bottom.
func (s *ListSurface) Rows() []Row { return s.rows }

func (s *ListSurface) Len() int { return len(s.rows) }
