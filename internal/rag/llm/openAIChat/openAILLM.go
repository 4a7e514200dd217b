package openAIChat

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/kaviapp/kavi/internal/config"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

var logger = logger_i.NewLogger("llm_openai")

type Client struct {
	openAi openai.Client
	model  openai.ChatModel
}

func New(modelName string, apikey string) *Client {
	c := openai.NewClient(option.WithAPIKey(apikey))
	logger.Info("OpenAI chat client created", "model", modelName)
	return &Client{openAi: c, model: openai.ChatModel(modelName)}
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	completion, err := c.openAi.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.ModelContext),
			openai.UserMessage(prompt),
		},
		Model: c.model,
	})
	if err != nil {
		log.Error("Error generating content with OpenAI", "error", err.Error())
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
