package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	raw := `Sofas | along the far wall | room has space for a three-seater
Coffee Tables | center | keep it low
Floor Lamps | left corner |`

	suggestions := ParseResponse(raw)
	require.Len(t, suggestions, 3)
	assert.Equal(t, "Sofas", suggestions[0].Category)
	assert.Equal(t, "along the far wall", suggestions[0].Placement)
	assert.Equal(t, "room has space for a three-seater", suggestions[0].Notes)
	assert.Empty(t, suggestions[2].Notes)
}

func TestParseResponseSkipsPreamble(t *testing.T) {
	raw := `Here are some suggestions for your room:
Sofas | far wall | fits nicely`

	suggestions := ParseResponse(raw)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Sofas", suggestions[0].Category)
}

func TestParseResponseEmpty(t *testing.T) {
	assert.Empty(t, ParseResponse(""))
	assert.Empty(t, ParseResponse("\n\n  \n"))
}

func TestParseResponseBareCategory(t *testing.T) {
	suggestions := ParseResponse("Bookshelves")
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Bookshelves", suggestions[0].Category)
	assert.Empty(t, suggestions[0].Placement)
}
