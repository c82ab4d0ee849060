package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
)

// Tokens is the set of textual markers a report is written with. Swapping
// the token set changes the report style without touching aggregation.
type Tokens struct {
	Name      string
	Extension string

	Heading1 string
	Heading2 string
	Heading3 string
	Bullet   string

	StrongFormat   string
	EmphasisFormat string
	LinkFormat     string
	CodeFence      string

	// Unset is rendered in place of empty setting values
	Unset string

	cell     *strings.Replacer
	linkText *strings.Replacer
	linkURL  *strings.Replacer
	table    func() tw.Renderer
}

// Markdown renders headings, emphasis, links and pipe tables as markdown
var Markdown = Tokens{
	Name:           "markdown",
	Extension:      ".md",
	Heading1:       "# %s",
	Heading2:       "## %s",
	Heading3:       "### %s",
	Bullet:         "- ",
	StrongFormat:   "**%s**",
	EmphasisFormat: "_%s_",
	LinkFormat:     "[%s](%s)",
	CodeFence:      "```",
	Unset:          "(not set)",
	cell:           strings.NewReplacer("\r\n", "<br/>", "\n", "<br/>", "|", `\|`),
	linkText:       strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`),
	linkURL:        strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29"),
	table: func() tw.Renderer {
		return renderer.NewMarkdown()
	},
}

// Text renders a plain text report with ASCII tables
var Text = Tokens{
	Name:           "text",
	Extension:      ".txt",
	Heading1:       "==== %s ====",
	Heading2:       "=== %s ===",
	Heading3:       "--- %s ---",
	Bullet:         "* ",
	StrongFormat:   "*%s*",
	EmphasisFormat: "~%s~",
	LinkFormat:     "%s <%s>",
	CodeFence:      "----",
	Unset:          "(not set)",
	cell:           strings.NewReplacer("\r\n", " ", "\n", " "),
	table: func() tw.Renderer {
		return renderer.NewBlueprint(tw.Rendition{Symbols: tw.NewSymbols(tw.StyleASCII)})
	},
}

// TokensFor returns the token set registered under name
func TokensFor(name string) (Tokens, error) {
	switch strings.ToLower(name) {
	case "", "markdown", "md":
		return Markdown, nil
	case "text", "txt":
		return Text, nil
	default:
		return Tokens{}, fmt.Errorf("unknown report style %q (want markdown or text)", name)
	}
}

// Plain returns s unchanged
func (t Tokens) Plain(s string) string {
	return s
}

// Strong wraps s in strong emphasis
func (t Tokens) Strong(s string) string {
	return wrap(t.StrongFormat, s)
}

// Emphasis wraps s in light emphasis
func (t Tokens) Emphasis(s string) string {
	return wrap(t.EmphasisFormat, s)
}

// wrap applies format to s with surrounding whitespace kept outside the
// markers, which do not render when they touch a space
func wrap(format, s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	start := strings.Index(s, trimmed)
	return s[:start] + fmt.Sprintf(format, trimmed) + s[start+len(trimmed):]
}

// Link renders a hyperlink. An empty link renders with empty text and target.
func (t Tokens) Link(l domain.Link) string {
	text, url := l.Text, l.URL
	if t.linkText != nil {
		text = t.linkText.Replace(text)
	}
	if t.linkURL != nil {
		url = t.linkURL.Replace(url)
	}
	return fmt.Sprintf(t.LinkFormat, text, url)
}

// Cell makes s safe to place in a single table cell
func (t Tokens) Cell(s string) string {
	if t.cell == nil {
		return s
	}
	return t.cell.Replace(s)
}

// newTable creates a table writing to w in this token set's style
func (t Tokens) newTable(w io.Writer) *tablewriter.Table {
	opts := []tablewriter.Option{tablewriter.WithHeaderAutoFormat(tw.Off)}
	if t.table != nil {
		opts = append(opts, tablewriter.WithRenderer(t.table()))
	}
	return tablewriter.NewTable(w, opts...)
}
