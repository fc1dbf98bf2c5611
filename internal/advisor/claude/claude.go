package claude

import (
	"context"
	"fmt"
	"io"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/oakhaus/decorator/internal/advisor"
)

// Advisor calls the Anthropic Messages API with the room photo and the
// shared suggestion prompt.
type Advisor struct {
	client *anthropic.Client
	model  string
}

func New(apiKey, model string, opts ...anthropic.ClientOption) *Advisor {
	return &Advisor{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (a *Advisor) Suggest(ctx context.Context, r io.Reader, mimeType string) (*advisor.Advice, error) {
	imageData, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(a.model),
		// Plenty for a handful of one-line suggestions.
		MaxTokens: 1024,
		Messages: []anthropic.Message{{
			Role: anthropic.RoleUser,
			Content: []anthropic.MessageContent{
				anthropic.NewImageMessageContent(anthropic.NewMessageContentSource(
					anthropic.MessagesContentSourceTypeBase64, mimeType, imageData,
				)),
				anthropic.NewTextMessageContent(advisor.SuggestionPrompt),
			},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call claude: %w", err)
	}

	var text string
	if len(resp.Content) > 0 {
		text = resp.Content[0].GetText()
	}
	return &advisor.Advice{
		Suggestions: advisor.ParseResponse(text),
		RawResponse: text,
	}, nil
}
