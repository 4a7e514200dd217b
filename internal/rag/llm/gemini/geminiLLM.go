package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/kaviapp/kavi/internal/config"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

var logger = logger_i.NewLogger("llm_gemini")

type Client struct {
	genAi     *genai.Client
	modelName string
}

func New(ctx context.Context, modelName string, apikey string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	logger.Info("Gemini client created", "model", modelName)
	return &Client{genAi: c, modelName: modelName}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: config.ModelContext},
			},
		},
	}

	result, err := c.genAi.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), contentConfig)
	if err != nil {
		log.Error("Error generating content with Gemini", "error", err.Error())
		return "", err
	}
	return result.Text(), nil
}
