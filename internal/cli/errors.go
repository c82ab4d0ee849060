package cli

import (
	"errors"
	"fmt"

	"github.com/sceriffo01/sp-dev-modernization/internal/output"
)

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so scripts always get machine-readable failures.
func outputErrorCommon(globals *Globals, code, message string, hint ...string) error {
	if globals != nil && globals.Format == "ndjson" {
		_ = output.NewNDJSONWriter(globals.Stdout).WriteError(code, message, hint...)
	} else if globals != nil {
		_ = output.NewTextWriter(globals.Stderr).WriteError(code, message)
		if len(hint) > 0 && hint[0] != "" {
			fmt.Fprintf(globals.Stderr, "Hint: %s\n", hint[0])
		}
	}
	return errors.New(message)
}
