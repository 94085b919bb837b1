package ai

import (
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func conversation() Request {
	return Request{
		System: "policy",
		Messages: []Message{
			{Role: RoleUser, Content: "first"},
			{Role: RoleSystem, Content: "injected"},
			{Role: RoleAssistant, Content: "second"},
			{Role: RoleUser, Content: "third"},
		},
		Temperature: 0.7,
		MaxTokens:   300,
		JSON:        true,
	}
}

func TestUnitOpenAIBuildRequest(t *testing.T) {
	c := NewOpenAIClient("key", "gpt-test", "", 0)
	req := c.buildRequest(conversation())

	require.Equal(t, "gpt-test", req.Model)
	require.Equal(t, float32(0.7), req.Temperature)
	require.Equal(t, 300, req.MaxTokens)
	require.NotNil(t, req.ResponseFormat)
	require.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)

	require.Len(t, req.Messages, 4)
	require.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	require.Equal(t, "policy", req.Messages[0].Content)
	require.Equal(t, "first", req.Messages[1].Content)
	require.Equal(t, openai.ChatMessageRoleAssistant, req.Messages[2].Role)
	require.Equal(t, "third", req.Messages[3].Content)
}

func TestUnitOpenAIBuildRequestModelOverride(t *testing.T) {
	c := NewOpenAIClient("key", "gpt-test", "", 0)
	req := conversation()
	req.Model = "ft:gpt-test:rise"

	require.Equal(t, "ft:gpt-test:rise", c.buildRequest(req).Model)
}

func TestUnitOpenAIBuildRequestArray(t *testing.T) {
	c := NewOpenAIClient("key", "gpt-test", "", 0)
	req := conversation()
	req.JSONArray = true

	require.Nil(t, c.buildRequest(req).ResponseFormat)
}

func TestUnitGeminiBuildRequest(t *testing.T) {
	contents, cfg := buildGeminiRequest(conversation())

	require.Len(t, contents, 3)
	require.Equal(t, genai.RoleUser, contents[0].Role)
	require.Equal(t, "first", contents[0].Parts[0].Text)
	require.Equal(t, genai.RoleModel, contents[1].Role)
	require.Equal(t, "second", contents[1].Parts[0].Text)
	require.Equal(t, "third", contents[2].Parts[0].Text)

	require.NotNil(t, cfg.SystemInstruction)
	require.Equal(t, "policy", cfg.SystemInstruction.Parts[0].Text)
	require.Equal(t, float32(0.7), *cfg.Temperature)
	require.Equal(t, "application/json", cfg.ResponseMIMEType)

	req := conversation()
	req.JSONArray = true
	_, cfg = buildGeminiRequest(req)
	require.Equal(t, "application/json", cfg.ResponseMIMEType)
}

func TestUnitGeminiText(t *testing.T) {
	require.Empty(t, geminiText(nil))
	require.Empty(t, geminiText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "hello "}, nil, {Text: "world"}}},
		}},
	}
	require.Equal(t, "hello world", geminiText(resp))
}
