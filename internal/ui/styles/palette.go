// Package styles holds the colours shared by the table views.
package styles

import (
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/gamut"
)

const paletteSize = 12

// Palette is a fixed blend used for per-sender colours, as hex strings.
var Palette = blend("#F25D94", "#5A56E0", paletteSize)

var (
	// Accent colours the table header and borders.
	Accent = lipgloss.Color(Palette[0])

	Header = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	Status = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
	Error  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func blend(from, to string, n int) []string {
	out := make([]string, 0, n)
	for _, c := range gamut.Blends(gamut.Hex(from), gamut.Hex(to), n) {
		cf, ok := colorful.MakeColor(c)
		if !ok {
			continue
		}
		out = append(out, cf.Hex())
	}
	if len(out) == 0 {
		out = append(out, from)
	}
	return out
}

// SenderColor returns a stable palette entry for sender.
func SenderColor(sender string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(sender))))
	return Palette[int(h.Sum32()%uint32(len(Palette)))]
}

// Sender renders sender in its colour.
func Sender(sender string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(SenderColor(sender))).Render(sender)
}
