package app

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// columnGap separates adjacent columns.
const columnGap = "  "

// cellWidth is the terminal width of a cell with its escape sequences removed.
func cellWidth(cell string) int { return runewidth.StringWidth(ansi.Strip(cell)) }

// writeTable writes headers and rows as left-aligned columns. Coloured and
// wide cells line up; the last column is never padded.
func writeTable(out io.Writer, headers []string, rows [][]string) error {
	lines := make([][]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, headers)
	}
	lines = append(lines, rows...)

	var widths []int
	for _, line := range lines {
		for i, cell := range line {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], cellWidth(cell))
		}
	}
	if len(widths) == 0 {
		return nil
	}

	w := bufio.NewWriter(out)
	last := len(widths) - 1
	for _, line := range lines {
		for i := range widths {
			var cell string
			if i < len(line) {
				cell = line[i]
			}
			w.WriteString(cell)
			if i < last {
				w.WriteString(strings.Repeat(" ", widths[i]-cellWidth(cell)))
				w.WriteString(columnGap)
			}
		}
		w.WriteByte('\n')
	}
	// bufio.Writer keeps the first write error and reports it here.
	return w.Flush()
}
