package facades

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fake OpenAI client ---
type fakeChatClient struct {
	resp openai.ChatCompletionResponse
	err  error
	req  openai.ChatCompletionRequest
}

func (f *fakeChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.req = req
	return f.resp, f.err
}

func completion(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: text}},
		},
	}
}

// --- Tests ---
func TestGenerate(t *testing.T) {
	client := &fakeChatClient{resp: completion("# Summer sale\nBuy now")}
	facade := NewTextGenerationOpenAIFacade(client, "gpt-4o", 1000)

	text, err := facade.Generate(context.Background(), "system", "prompt")
	assert.NoError(t, err)
	assert.Equal(t, "# Summer sale\nBuy now", text)

	assert.Equal(t, "gpt-4o", client.req.Model)
	assert.Equal(t, 1000, client.req.MaxTokens)
	require.Len(t, client.req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, client.req.Messages[0].Role)
	assert.Equal(t, "system", client.req.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, client.req.Messages[1].Role)
	assert.Equal(t, "prompt", client.req.Messages[1].Content)
}

func TestGenerate_Error(t *testing.T) {
	client := &fakeChatClient{err: errors.New("rate limited")}
	facade := NewTextGenerationOpenAIFacade(client, "gpt-4o", 1000)

	text, err := facade.Generate(context.Background(), "system", "prompt")
	assert.Error(t, err)
	assert.Empty(t, text)
}

func TestGenerate_EmptyCompletion(t *testing.T) {
	tests := []struct {
		name string
		resp openai.ChatCompletionResponse
	}{
		{name: "no choices", resp: openai.ChatCompletionResponse{}},
		{name: "blank text", resp: completion("  \n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := NewTextGenerationOpenAIFacade(&fakeChatClient{resp: tt.resp}, "gpt-4o", 1000)

			_, err := facade.Generate(context.Background(), "system", "prompt")
			assert.ErrorIs(t, err, ErrEmptyCompletion)
		})
	}
}

func TestGenerate_OverHTTP(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion("Hello from the gateway"))
	}))
	defer srv.Close()

	facade := NewTextGenerationOpenAIFacade(NewOpenAIClient("test-key", srv.URL), "gpt-4o-mini", 256)

	text, err := facade.Generate(context.Background(), "system", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Hello from the gateway", text)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, 256, got.MaxTokens)
}
