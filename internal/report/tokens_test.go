package report

import (
	"testing"
	"time"

	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "markdown"},
		{"markdown", "markdown"},
		{"MD", "markdown"},
		{"text", "text"},
		{"txt", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := TokensFor(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tokens.Name)
		})
	}

	_, err := TokensFor("html")
	assert.Error(t, err)
}

func TestTokens(t *testing.T) {
	assert.Equal(t, "**x**", Markdown.Strong("x"))
	assert.Equal(t, "_x_", Markdown.Emphasis("x"))
	assert.Equal(t, "", Markdown.Strong(""))
	assert.Equal(t, "x", Markdown.Plain("x"))
	assert.Equal(t, "[a](b)", Markdown.Link(domain.Link{Text: "a", URL: "b"}))
	assert.Equal(t, "[]()", Markdown.Link(domain.Link{}))
	assert.Equal(t, `a\|b<br/>c`, Markdown.Cell("a|b\nc"))

	assert.Equal(t, "*x*", Text.Strong("x"))
	assert.Equal(t, "a b", Text.Cell("a\r\nb"))
	assert.Equal(t, "a <b>", Text.Link(domain.Link{Text: "a", URL: "b"}))
}

func TestTokens_MarkdownEscaping(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"brackets in link text", Markdown.Link(domain.Link{Text: "News [draft]", URL: "/a"}), `[News \[draft\]](/a)`},
		{"parentheses in link target", Markdown.Link(domain.Link{Text: "a", URL: "/sites/x/Page (1).aspx"}), "[a](/sites/x/Page%20%281%29.aspx)"},
		{"text links are not escaped", Text.Link(domain.Link{Text: "a [b]", URL: "/c (d)"}), "a [b] </c (d)>"},
		{"strong keeps spaces outside markers", Markdown.Strong("  slow asset "), "  **slow asset** "},
		{"emphasis keeps spaces outside markers", Markdown.Emphasis("noise\n"), "_noise_\n"},
		{"blank text is not wrapped", Markdown.Strong("   "), "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestEmphasize(t *testing.T) {
	assert.Equal(t, "_m_", emphasize(Markdown, domain.LogLevelDebug, "m"))
	assert.Equal(t, "m", emphasize(Markdown, domain.LogLevelInformation, "m"))
	assert.Equal(t, "**m**", emphasize(Markdown, domain.LogLevelWarning, "m"))
	assert.Equal(t, "m", emphasize(Markdown, domain.LogLevel("Trace"), "m"))
}

func TestSuggestedName(t *testing.T) {
	at := time.Date(2024, 1, 15, 9, 5, 3, 0, time.UTC)

	assert.Equal(t, "Report_2024-01-15_09-05-03.md", SuggestedName(at, "", Markdown))
	assert.Equal(t, "Report_2024-01-15_09-05-03_batch1.md", SuggestedName(at, "batch1", Markdown))
	assert.Equal(t, "Report_2024-01-15_09-05-03_hr-site.txt", SuggestedName(at, "hr/site", Text))
	assert.Equal(t, "Report_2024-01-15_09-05-03.md", SuggestedName(at, "///", Markdown))
}
