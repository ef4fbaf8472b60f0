package openai

import (
	"context"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

var ErrNotConfigured = errors.New("openai api key not configured")

// Client wraps the OpenAI API for chat completions and image generation.
type Client struct {
	api *openai.Client
}

// ChatOptions tune a single completion call. Zero values fall back to the
// defaults used across the generators.
type ChatOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

func New(apiKey string) *Client {
	if apiKey == "" {
		return &Client{}
	}
	return &Client{api: openai.NewClient(apiKey)}
}

// Chat sends a system+user prompt pair and returns the first choice.
func (c *Client) Chat(ctx context.Context, system, user string, opts ChatOptions) (string, error) {
	if c.api == nil {
		return "", ErrNotConfigured
	}

	model := opts.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.7
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateImage creates one DALL-E image and returns its hosted URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if c.api == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Model:          openai.CreateImageModelDallE3,
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", errors.New("openai returned no image data")
	}
	return resp.Data[0].URL, nil
}
