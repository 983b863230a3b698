package embedding

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// Titan text embeddings request/response format
type titanEmbedRequest struct {
	InputText string `json:"inputText"`
}

type titanEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// BedrockEmbedder encodes texts with an Amazon Titan embedding model.
type BedrockEmbedder struct {
	client  *bedrockruntime.Client
	modelID string
}

func NewBedrockEmbedder(client *bedrockruntime.Client, modelID string) *BedrockEmbedder {
	if modelID == "" {
		modelID = "amazon.titan-embed-text-v2:0"
	}
	return &BedrockEmbedder{
		client:  client,
		modelID: modelID,
	}
}

func (e *BedrockEmbedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for i, text := range texts {
		payload, err := json.Marshal(titanEmbedRequest{InputText: text})
		if err != nil {
			return nil, fmt.Errorf("unable to serialize embedding request: %w", err)
		}

		output, err := e.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
			ModelId:     &e.modelID,
			Body:        payload,
			Accept:      aws.String("application/json"),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			return nil, fmt.Errorf("unable to invoke embedding model for text %d: %w", i, err)
		}

		var response titanEmbedResponse
		if err := json.Unmarshal(output.Body, &response); err != nil {
			return nil, fmt.Errorf("failed to unmarshal embedding response: %w", err)
		}

		vectors = append(vectors, Normalize(response.Embedding))
	}

	return vectors, nil
}
