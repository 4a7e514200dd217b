package googleEmbedding

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kaviapp/kavi/internal/config"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

var logger = logger_i.NewLogger("google_embedding")
var dimension int32 = config.EmbeddingOutputDimensionality

type Client struct {
	genAi *genai.Client
	model string
}

func New(ctx context.Context, modelName string, apikey string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		return nil, fmt.Errorf("create google embedding client: %w", err)
	}
	logger.Info("Google Embedding client created", "model", modelName)
	return &Client{genAi: c, model: modelName}, nil
}

func (c *Client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	result, err := c.doCall(ctx, genai.Text(query))
	if err != nil {
		log.Error("Error getting Embedding from Google", "error", err.Error())
		return nil, err
	}
	return result.Embeddings[0].Values, nil
}

func (c *Client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	result, err := c.doCall(ctx, getContent(chunks))
	if err != nil {
		if !doRetry(err, log) {
			return nil, err
		}
		log.Debug("Retrying in 5 seconds")
		time.Sleep(5 * time.Second)
		result, err = c.doCall(ctx, getContent(chunks))
		if err != nil {
			log.Error("Error getting batch Embeddings from Google", "error", err.Error())
			return nil, err
		}
	}

	embeddingResults := make([][]float32, 0, len(result.Embeddings))
	for _, r := range result.Embeddings {
		embeddingResults = append(embeddingResults, r.Values)
	}
	return embeddingResults, nil
}

func (c *Client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content,
		&genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_DOCUMENT"})
}

func getContent(chunks []string) []*genai.Content {
	contentsToSend := make([]*genai.Content, 0, len(chunks))
	for _, chunk := range chunks {
		contentsToSend = append(contentsToSend, &genai.Content{
			Parts: []*genai.Part{{Text: chunk}},
		})
	}
	return contentsToSend
}

func doRetry(err error, log *logger_i.Logger) bool {
	if s, ok := status.FromError(err); ok {
		if s.Code() == codes.ResourceExhausted {
			log.Warn("Rate limit hit", "error", err)
			return true
		}
	}
	return false
}
