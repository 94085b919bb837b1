package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.openly.dev/pointy"
	"google.golang.org/genai"

	"github.com/rise-platform/rise-edge/internal/metrics"
)

const jsonMimeType = "application/json"

type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	return &GeminiClient{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	var err error
	defer func(start time.Time) {
		metrics.CollectRequestsMetric("gemini", "generate_content", err, start)
	}(time.Now())

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents, cfg := buildGeminiRequest(req)
	model := c.model
	if req.Model != "" {
		model = req.Model
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("genai.GenerateContent: %w", err)
	}

	text := geminiText(resp)
	if text == "" {
		err = ErrEmptyReply
		return "", fmt.Errorf("genai.GenerateContent: %w", err)
	}

	return text, nil
}

func buildGeminiRequest(req Request) ([]*genai.Content, *genai.GenerateContentConfig) {
	list := withoutSystem(req.Messages)
	contents := make([]*genai.Content, 0, len(list))
	for _, msg := range list {
		role := genai.RoleUser
		if msg.Role == RoleAssistant {
			role = genai.RoleModel
		}

		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		})
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: pointy.Float32(req.Temperature),
	}

	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}

	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	if req.JSON {
		cfg.ResponseMIMEType = jsonMimeType
	}

	return contents, cfg
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}

	return sb.String()
}
