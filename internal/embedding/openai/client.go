// Package openai implements the embedder against the OpenAI Embeddings API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"

	"docarchive-backend/internal/embedding"
)

const apiURL = "https://api.openai.com/v1/embeddings"

// Client implements embedding.Embedder using the OpenAI Embeddings API.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new embeddings client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("EMBEDDING_MODEL is required")
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type embeddingRequest struct {
	Input string `json:"input"`
	Model string `json:"model"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// EmbedDocument returns the vector for a document body.
func (c *Client) EmbedDocument(ctx context.Context, text string) (pgvector.Vector, error) {
	return c.embed(ctx, text)
}

// EmbedQuery returns the vector for a search query.
func (c *Client) EmbedQuery(ctx context.Context, text string) (pgvector.Vector, error) {
	return c.embed(ctx, text)
}

func (c *Client) embed(ctx context.Context, text string) (pgvector.Vector, error) {
	payload, err := json.Marshal(embeddingRequest{Input: text, Model: c.model})
	if err != nil {
		return pgvector.Vector{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return pgvector.Vector{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("%w: %v", embedding.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("%w: %v", embedding.ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return pgvector.Vector{}, fmt.Errorf("%w: status %d: %s", embedding.ErrUnavailable, resp.StatusCode, string(body))
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return pgvector.Vector{}, fmt.Errorf("embedding response parse: %w", err)
	}
	if parsed.Error != nil {
		return pgvector.Vector{}, fmt.Errorf("%w: %s (%s)", embedding.ErrUnavailable, parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("no embedding data received")
	}
	return pgvector.NewVector(parsed.Data[0].Embedding), nil
}
