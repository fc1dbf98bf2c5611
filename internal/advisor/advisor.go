// Package advisor suggests furniture to browse for an uploaded room photo.
// It runs once per upload, before scene interaction begins; nothing here
// touches the gesture hot path.
package advisor

import (
	"context"
	"io"
)

// SuggestionPrompt is the shared prompt used by all advisor backends.
const SuggestionPrompt = `Look at this photo of a room being furnished.
Suggest furniture categories worth browsing for it. For each suggestion
provide: category, where in the room it would go, and a short note.
Respond in plain text, one suggestion per line,
format: category | placement | notes`

type Advisor interface {
	Suggest(ctx context.Context, r io.Reader, mimeType string) (*Advice, error)
}

type Advice struct {
	Suggestions []Suggestion
	RawResponse string
}

type Suggestion struct {
	Category  string
	Placement string
	Notes     string
}
