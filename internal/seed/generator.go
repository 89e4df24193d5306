// ABOUTME: AI-assisted rewriting of templated ticket descriptions.
// ABOUTME: Uses OpenAI when configured and keeps the templated text otherwise.

package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/2389/deskgen/internal/config"
)

// DescriptionRequest is one templated description plus the context the model needs.
type DescriptionRequest struct {
	Category string `json:"category"`
	OrgType  string `json:"organization_type"`
	Priority string `json:"priority"`
	Text     string `json:"text"`
}

// Rewriter rephrases descriptions. The result has one entry per request, in order.
type Rewriter interface {
	RewriteDescriptions(ctx context.Context, reqs []DescriptionRequest) ([]string, error)
}

// Generator rewrites descriptions using OpenAI or falls back to the templated text.
type Generator struct {
	client    *openai.Client
	useAI     bool
	model     string
	batchSize int
	logger    *slog.Logger
}

// NewGenerator creates a generator. AI is used only when cfg is enabled and carries
// an API key.
func NewGenerator(cfg config.OpenAIConfig, logger *slog.Logger) *Generator {
	var client *openai.Client
	if cfg.Enabled && cfg.APIKey != "" {
		client = openai.NewClient(cfg.APIKey)
	}
	return newGenerator(client, cfg, logger)
}

// NewGeneratorWithClient creates a generator around an existing client, e.g. one
// pointed at a different base URL.
func NewGeneratorWithClient(client *openai.Client, cfg config.OpenAIConfig, logger *slog.Logger) *Generator {
	return newGenerator(client, cfg, logger)
}

func newGenerator(client *openai.Client, cfg config.OpenAIConfig, logger *slog.Logger) *Generator {
	g := &Generator{
		client:    client,
		useAI:     client != nil,
		model:     cfg.Model,
		batchSize: cfg.BatchSize,
		logger:    logger,
	}
	if g.model == "" {
		g.model = "gpt-5-mini"
	}
	if g.batchSize <= 0 {
		g.batchSize = 20
	}
	if g.useAI {
		logger.Info("OpenAI enabled, rewriting ticket descriptions", "model", g.model)
	} else if cfg.Enabled {
		logger.Warn("openai.enabled is set but no OPENAI_API_KEY found, using templated descriptions")
	}
	return g
}

// Enabled reports whether descriptions will actually be sent to the model.
func (g *Generator) Enabled() bool {
	return g.useAI
}

// RewriteDescriptions rewrites reqs in batches. A failed batch keeps its templated
// text; only context cancellation is returned as an error.
func (g *Generator) RewriteDescriptions(ctx context.Context, reqs []DescriptionRequest) ([]string, error) {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.Text
	}
	if !g.useAI {
		return out, nil
	}

	rewritten, failed, tooLong := 0, 0, 0
	for start := 0; start < len(reqs); start += g.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+g.batchSize, len(reqs))
		batch := reqs[start:end]

		texts, err := complete[[]string](ctx, g.client, g.model, buildPrompt(batch))
		if err == nil && len(texts) != len(batch) {
			err = fmt.Errorf("expected %d descriptions, got %d", len(batch), len(texts))
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			g.logger.Warn("description rewrite failed, keeping templated text", "batch_start", start, "error", err)
			failed += len(batch)
			continue
		}
		for i, t := range texts {
			t = strings.TrimSpace(t)
			switch {
			case t == "":
			case len(t) > MaxDescriptionLen:
				tooLong++
			default:
				out[start+i] = t
				rewritten++
			}
		}
	}

	g.logger.Info("description rewrite complete", "rewritten", rewritten, "kept", failed, "too_long", tooLong)
	return out, nil
}

// complete sends one prompt and decodes the reply as JSON into T. Replies wrapped in a
// markdown fence are accepted.
func complete[T any](ctx context.Context, client *openai.Client, model string, p chatPrompt) (T, error) {
	var result T

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               model,
		MaxCompletionTokens: p.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.System},
			{Role: openai.ChatMessageRoleUser, Content: p.User},
		},
	})
	if err != nil {
		return result, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return result, fmt.Errorf("no response from OpenAI")
	}

	content := stripFence(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return result, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
