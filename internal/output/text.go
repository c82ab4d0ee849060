package output

import (
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
)

// TextWriter writes records and page summaries as styled text
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a new text writer
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// Write outputs a single record as styled text
func (w *TextWriter) Write(rec *domain.Record) error {
	entry := &rec.Entry
	timestamp := Styles.Timestamp.Render(entry.EntryTime.Format("15:04:05.000"))

	line := timestamp + " " + LevelIndicator(rec.Level) + " "
	if entry.PageID != "" {
		line += Styles.Page.Render("["+entry.PageID+"]") + " "
	}
	if entry.Heading != "" {
		line += Styles.Heading.Render(entry.Heading) + ": "
	}
	line += LevelStyle(rec.Level).Render(entry.Message) + "\n"

	_, err := io.WriteString(w.w, line)
	return err
}

// WriteSummary outputs one styled line per page followed by totals
func (w *TextWriter) WriteSummary(rep *domain.Report) error {
	line := Styles.Header.Render("Summary") + "\n"
	if rep.Empty() {
		line += Styles.Label.Render("No pages found") + "\n"
		_, err := io.WriteString(w.w, line)
		return err
	}

	for _, p := range rep.Pages {
		name := p.Row.SourcePage.Text
		if name == "" {
			name = p.Row.PageID
		}
		line += Styles.Page.Render(name) + " " +
			Styles.Label.Render("duration=") + Styles.Value.Render(p.Row.Duration) + " " +
			StatusText(p.Row.Status) + "\n"
	}

	line += Styles.Label.Render("Pages: ") + Styles.Value.Render(strconv.Itoa(len(rep.Pages))) + " | "
	line += countLabel(Styles.Caution, "Warnings", len(rep.Warnings)) + " | "
	line += countLabel(Styles.Danger, "Errors", len(rep.Errors)) + " | "
	line += countLabel(Styles.Danger, "Critical", len(rep.Criticals)) + "\n"

	_, err := io.WriteString(w.w, line)
	return err
}

// WriteError outputs a styled error
func (w *TextWriter) WriteError(code, message string) error {
	errorLabel := Styles.Danger.Render("Error")
	codeStr := Styles.Caution.Render("[" + code + "]")
	line := errorLabel + " " + codeStr + ": " + message + "\n"
	_, err := io.WriteString(w.w, line)
	return err
}

func countLabel(highlight lipgloss.Style, label string, n int) string {
	if n > 0 {
		return highlight.Render(label + ": " + strconv.Itoa(n))
	}
	return Styles.Label.Render(label+": ") + Styles.Value.Render(strconv.Itoa(n))
}
