package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"ms-venue/internal/analytics"
)

// ChartWidth is the bar length of the highest count.
const ChartWidth = 40

type ChartOptions struct {
	Width   int
	NoColor bool
}

// WriteBarChart renders ranked as horizontal bars scaled to the largest
// count. An empty ranking prints a single "no data" line.
func WriteBarChart(w io.Writer, title string, ranked []analytics.Ranked, opts ChartOptions) error {
	width := opts.Width
	if width <= 0 {
		width = ChartWidth
	}

	bar := color.New(color.FgGreen)
	heading := color.New(color.FgCyan, color.Bold)
	if opts.NoColor {
		bar.DisableColor()
		heading.DisableColor()
	}

	var sb strings.Builder
	sb.WriteString(heading.Sprint(title))
	sb.WriteString("\n")

	if len(ranked) == 0 {
		sb.WriteString("  (no data)\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	labelWidth, highest := 0, 0
	for _, r := range ranked {
		labelWidth = max(labelWidth, utf8.RuneCountInString(r.Label))
		highest = max(highest, r.Count)
	}

	for _, r := range ranked {
		n := 0
		if highest > 0 {
			n = r.Count * width / highest
		}
		pad := strings.Repeat(" ", labelWidth-utf8.RuneCountInString(r.Label))
		fmt.Fprintf(&sb, "  %s%s | %s %d\n", r.Label, pad, bar.Sprint(strings.Repeat("#", n)), r.Count)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
