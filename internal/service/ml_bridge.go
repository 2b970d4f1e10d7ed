package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/healthpremium/backend/internal/domain"
)

// MLBridge handles communication with a remote model server that hosts
// the young and rest premium models
type MLBridge struct {
	serviceURL string
	httpClient *http.Client
}

// NewMLBridge creates a new ML bridge
func NewMLBridge(serviceURL string, timeout time.Duration) *MLBridge {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MLBridge{
		serviceURL: serviceURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// inferRequest is the model server's batch inference payload
type inferRequest struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

type inferResponse struct {
	Predictions []float64 `json:"predictions"`
}

// Model returns a domain.Model served remotely for the given band
func (b *MLBridge) Model(band domain.AgeBand) domain.Model {
	return &remoteModel{bridge: b, band: band}
}

type remoteModel struct {
	bridge *MLBridge
	band   domain.AgeBand
}

func (m *remoteModel) Infer(ctx context.Context, features domain.FeatureVector) ([]float64, error) {
	return m.bridge.Infer(ctx, m.band, features)
}

// Infer posts one row to the band's model and returns its predictions
func (b *MLBridge) Infer(ctx context.Context, band domain.AgeBand, features domain.FeatureVector) ([]float64, error) {
	body, err := json.Marshal(inferRequest{
		Columns: domain.FeatureColumns[:],
		Rows:    [][]float64{features.Values()},
	})
	if err != nil {
		return nil, fmt.Errorf("ml_bridge: failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s/infer", b.serviceURL, band)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ml_bridge: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ml_bridge: %s model request failed: %w", band, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		// The server rejects rows that do not match the fitted feature names
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ml_bridge: %s model rejected row: %s: %w", band, bytes.TrimSpace(msg), domain.ErrSchemaMismatch)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("ml_bridge: %s model returned status %d", band, resp.StatusCode)
	}

	var prediction inferResponse
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("ml_bridge: failed to decode response: %w", err)
	}

	return prediction.Predictions, nil
}

// Health checks ML service connectivity
func (b *MLBridge) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", b.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("ml_bridge: failed to create health request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ml_bridge: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ml_bridge: health check returned status %d", resp.StatusCode)
	}

	return nil
}
