// Package format holds the display helpers used when rendering message rows.
package format

import (
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// TimestampLayout renders as HH:MM DD.MM.YYYY.
const TimestampLayout = "15:04 02.01.2006"

// DefaultLimit is the subject length kept before truncation.
const DefaultLimit = 15

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// Timestamp formats unix seconds in the local time zone.
func Timestamp(seconds int64) string {
	return TimestampIn(seconds, time.Local)
}

// TimestampIn formats unix seconds in loc. A nil loc means UTC.
func TimestampIn(seconds int64, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(seconds, 0).In(loc).Format(TimestampLayout)
}

// Truncate keeps the first limit characters of text and appends Ellipsis when
// text is longer than limit. Characters are grapheme clusters, so combining
// sequences and emoji are never split.
func Truncate(text string, limit int) string {
	if text == "" {
		return text
	}
	if limit < 0 {
		limit = 0
	}
	if uniseg.GraphemeClusterCount(text) <= limit {
		return text
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(text)
	for n := 0; n < limit && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	b.WriteString(Ellipsis)
	return b.String()
}
