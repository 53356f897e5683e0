// Package llm wraps the Anthropic API for optional natural-language review
// narration. Narration is an add-on: the structured review never depends on
// it.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/joescharf/connoisseur/internal/models"
)

// Client wraps the Anthropic API.
type Client struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewClient creates an LLM client with the given API key and model.
func NewClient(apiKey, model string) *Client {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	return &Client{
		api:   &client,
		model: anthropic.Model(model),
	}
}

// buildPrompt constructs the system and user prompts for review narration.
func buildPrompt(r *models.ReviewResult) (system string, user string) {
	system = `You are a concise senior code reviewer. Given a unified diff and
static-analysis findings for one file, write a short review summary:
- 2-4 sentences on what changed and anything risky
- one bullet per lint finding worth acting on
Plain text only, no markdown headings, no praise filler.`

	var sb strings.Builder
	fmt.Fprintf(&sb, "File: %s\n", r.Path)
	fmt.Fprintf(&sb, "Lines added: %d, removed: %d\n", r.Diff.Added, r.Diff.Removed)
	if len(r.Analysis.Symbols.Functions) > 0 {
		fmt.Fprintf(&sb, "Functions: %s\n", strings.Join(r.Analysis.Symbols.Functions, ", "))
	}
	if len(r.Analysis.Symbols.Classes) > 0 {
		fmt.Fprintf(&sb, "Classes: %s\n", strings.Join(r.Analysis.Symbols.Classes, ", "))
	}
	for _, issue := range r.Analysis.Issues {
		fmt.Fprintf(&sb, "Finding (%s): %s\n", issue.Type, issue.Message)
	}
	if r.Diff.Patch != "" {
		sb.WriteString("\nDiff:\n")
		sb.WriteString(r.Diff.Patch)
	}
	user = sb.String()
	return
}

// Narrate sends one review to the LLM and returns a short textual summary.
func (c *Client) Narrate(ctx context.Context, r *models.ReviewResult) (string, error) {
	systemPrompt, userPrompt := buildPrompt(r)

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return "", fmt.Errorf("no text content in API response")
	}
	return strings.TrimSpace(text), nil
}
