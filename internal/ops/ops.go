// Package ops implements the operations exposed by the CLI and MCP server.
// Each operation takes a plain input struct, runs the rx or va engine and
// returns a JSON-ready output struct.
package ops

import (
	"strings"

	"github.com/hpungsan/optom/internal/errors"
)

// requireText trims text and rejects an empty value for the named field.
func requireText(field, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.NewInvalidRequest(field + " is required")
	}
	return text, nil
}
