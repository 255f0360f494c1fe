package facades

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sbilibin2017/gw-content-studio/internal/logger"
)

// ErrEmptyCompletion is returned when the model answers without any text.
var ErrEmptyCompletion = errors.New("empty completion")

// ChatCompleter is the part of the OpenAI client the facade uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewOpenAIClient builds an OpenAI client. A non-empty baseURL points it at a
// compatible gateway.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// TextGenerationOpenAIFacade generates marketing text with OpenAI chat completions.
type TextGenerationOpenAIFacade struct {
	client    ChatCompleter
	model     string
	maxTokens int
}

// NewTextGenerationOpenAIFacade creates a new facade with an OpenAI client.
func NewTextGenerationOpenAIFacade(client ChatCompleter, model string, maxTokens int) *TextGenerationOpenAIFacade {
	return &TextGenerationOpenAIFacade{client: client, model: model, maxTokens: maxTokens}
}

// Generate sends the system and user prompts and returns the first choice.
func (f *TextGenerationOpenAIFacade) Generate(ctx context.Context, system, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: f.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: f.maxTokens,
	}

	resp, err := f.client.CreateChatCompletion(ctx, req)
	if err != nil {
		logger.Log.Errorw("failed to create chat completion", "model", f.model, "error", err)
		return "", err
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		logger.Log.Errorw("chat completion returned no text", "model", f.model, "choices", len(resp.Choices))
		return "", ErrEmptyCompletion
	}

	logger.Log.Infow("chat completion created",
		"model", f.model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)

	return resp.Choices[0].Message.Content, nil
}
