package app

import (
	"context"
	"fmt"
	"io"

	"github.com/jwafle/unread/internal/render"
	"github.com/jwafle/unread/internal/ui/styles"
)

// PlainOptions configure RunPlain.
type PlainOptions struct {
	Once  bool // stop after the first batch
	Color bool // colour sender names
}

// RunPlain renders into an in-memory table and writes the whole table to out
// whenever a batch adds rows. It returns when ctx is done.
func RunPlain(ctx context.Context, in *Inbox, out io.Writer, opts PlainOptions) error {
	surface := &render.ListSurface{}
	batches, err := in.Bootstrap(ctx, surface)
	if err != nil {
		return err
	}
	defer in.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-batches:
			if !ok {
				return nil
			}
			added := in.Apply(b)
			if added > 0 || opts.Once {
				if err := writeSurface(out, surface, opts.Color); err != nil {
					return fmt.Errorf("write table: %w", err)
				}
			}
			if opts.Once {
				return nil
			}
		}
	}
}

func writeSurface(out io.Writer, s *render.ListSurface, color bool) error {
	rows := make([][]string, 0, s.Len())
	for _, r := range s.Rows() {
		cells := r.Cells()
		if color {
			cells[0] = styles.Sender(r.From)
		}
		rows = append(rows, cells)
	}
	if err := writeTable(out, render.Headers, rows); err != nil {
		return err
	}
	_, err := io.WriteString(out, "\n")
	return err
}
