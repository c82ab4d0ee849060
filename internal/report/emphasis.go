package report

import "github.com/sceriffo01/sp-dev-modernization/internal/domain"

type emphasisFunc func(Tokens, string) string

// levelEmphasis maps a record level to how its detail row is emphasized
var levelEmphasis = map[domain.LogLevel]emphasisFunc{
	domain.LogLevelDebug:       Tokens.Emphasis,
	domain.LogLevelInformation: Tokens.Plain,
	domain.LogLevelWarning:     Tokens.Strong,
	domain.LogLevelError:       Tokens.Strong,
}

func emphasize(t Tokens, level domain.LogLevel, text string) string {
	if f, ok := levelEmphasis[level]; ok {
		return f(t, text)
	}
	return text
}
