package clients

import (
	"context"
	"net/http"
	"time"

	"github.com/appLSI/decentralized-rental-app-sub000/dto"
)

// PredictionClient llama al microservicio de ML que sugiere el precio por noche
type PredictionClient interface {
	PredictPrice(ctx context.Context, req dto.PredictionRequest) (*dto.PredictionResponse, error)
}

type predictionClient struct {
	restClient
}

func NewPredictionClient(baseURL string, timeout time.Duration) PredictionClient {
	return &predictionClient{restClient: newRestClient(baseURL, timeout)}
}

func (c *predictionClient) PredictPrice(ctx context.Context, req dto.PredictionRequest) (*dto.PredictionResponse, error) {
	var resp dto.PredictionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/predict", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
