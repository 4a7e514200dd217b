package openAIEmbedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/kaviapp/kavi/internal/config"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

var logger = logger_i.NewLogger("openai_embedding")

type Client struct {
	openAi openai.Client
	model  openai.EmbeddingModel
}

func New(modelName string, apikey string) *Client {
	c := openai.NewClient(option.WithAPIKey(apikey))
	logger.Info("OpenAI Embedding client created", "model", modelName)
	return &Client{openAi: c, model: openai.EmbeddingModel(modelName)}
}

func (c *Client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.BatchEmbedding(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *Client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	response, err := c.openAi.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: chunks},
		Model: c.model,
	})
	if err != nil {
		log.Error("Error getting Embeddings from OpenAI", "error", err.Error())
		return nil, err
	}
	if len(response.Data) != len(chunks) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d inputs", len(response.Data), len(chunks))
	}

	vectors := make([][]float32, len(response.Data))
	for _, item := range response.Data {
		vector := make([]float32, len(item.Embedding))
		for i, v := range item.Embedding {
			vector[i] = float32(v)
		}
		vectors[int(item.Index)] = vector
	}
	return vectors, nil
}
