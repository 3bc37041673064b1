package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

// DefaultWidth is the wrap width used when the caller has no terminal size.
const DefaultWidth = 80

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	width  int

	pathStyle   lipgloss.Style
	arrowStyle  lipgloss.Style
	termStyle   lipgloss.Style
	noticeStyle lipgloss.Style
}

// NewFormatter creates a new formatter. Styles are resolved against writer,
// so output to a pipe or buffer carries no escape codes.
func NewFormatter(writer io.Writer) *Formatter {
	r := lipgloss.NewRenderer(writer)
	return &Formatter{
		writer:      writer,
		width:       DefaultWidth,
		pathStyle:   r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#0C5FBA", Dark: "#54A0FF"}),
		arrowStyle:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#696969"}),
		termStyle:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#7FB069"}),
		noticeStyle: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FECA57"}),
	}
}

// WithWidth sets the wrap width for text output. Values below 20 are ignored.
func (f *Formatter) WithWidth(width int) *Formatter {
	if width >= 20 {
		f.width = width
	}
	return f
}

// FormatTemplates formats a list of templates as JSON
func (f *Formatter) FormatTemplates(templates []TemplateDTO) error {
	return f.encode(templates)
}

// FormatTerms formats the term index as JSON
func (f *Formatter) FormatTerms(terms []TermDTO) error {
	return f.encode(terms)
}

// FormatResult formats a write result as JSON
func (f *Formatter) FormatResult(result any) error {
	return f.encode(result)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteTemplates prints one "path <~ term, term" line per template with the
// arrows aligned in a column.
func (f *Formatter) WriteTemplates(templates []TemplateDTO) error {
	col := 0
	for _, t := range templates {
		col = max(col, runewidth.StringWidth(t.Path))
	}

	for _, t := range templates {
		pad := strings.Repeat(" ", col-runewidth.StringWidth(t.Path))
		line := f.pathStyle.Render(t.Path) + pad + " " + f.arrowStyle.Render("<~") + " " +
			f.termStyle.Render(strings.Join(t.Terms, ", "))
		if _, err := fmt.Fprintln(f.writer, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteTerms prints the term index, one term per line followed by the
// template names carrying it. Long name lists wrap under their own column.
func (f *Formatter) WriteTerms(terms []TermDTO) error {
	col := 0
	for _, t := range terms {
		col = max(col, runewidth.StringWidth(t.Term))
	}
	indent := strings.Repeat(" ", col+2)
	wrapAt := max(f.width-col-2, 10)

	for _, t := range terms {
		wrapped := wordwrap.String(strings.Join(t.Templates, ", "), wrapAt)
		lines := strings.Split(wrapped, "\n")

		pad := strings.Repeat(" ", col-runewidth.StringWidth(t.Term)+2)
		var b strings.Builder
		b.WriteString(f.termStyle.Render(t.Term))
		b.WriteString(pad)
		for i, l := range lines {
			if i > 0 {
				b.WriteString("\n")
				b.WriteString(indent)
			}
			b.WriteString(l)
		}
		if _, err := fmt.Fprintln(f.writer, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// Notice prints a highlighted informational line.
func (f *Formatter) Notice(format string, args ...any) {
	_, _ = fmt.Fprintln(f.writer, f.noticeStyle.Render(fmt.Sprintf(format, args...)))
}
