package report

import (
	"regexp"
	"strings"
	"time"
)

const nameTimeFormat = "2006-01-02_15-04-05"

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SuggestedName returns the file name for a report generated at the given
// time, e.g. Report_2024-01-15_10-00-00_batch1.md
func SuggestedName(at time.Time, discriminator string, tokens Tokens) string {
	name := "Report_" + at.Format(nameTimeFormat)
	discriminator = strings.Trim(unsafeNameChars.ReplaceAllString(discriminator, "-"), "-")
	if discriminator != "" {
		name += "_" + discriminator
	}
	return name + tokens.Extension
}
