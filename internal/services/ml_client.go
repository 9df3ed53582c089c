package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"agrisoil-backend/internal/config"
	"agrisoil-backend/internal/models"
	"agrisoil-backend/internal/rules"
)

// IMLClient talks to the soil and crop classifier service.
type IMLClient interface {
	ClassifySoil(m rules.Measurement) (*rules.SoilClassification, error)
	PredictCrop(m rules.Measurement) (*rules.CropPrediction, error)
	ModelStatus() (*models.ModelStatus, error)
}

type MLClient struct {
	baseURL string
	client  *http.Client
}

func NewMLClient(cfg config.MLConfig) IMLClient {
	return &MLClient{
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *MLClient) ClassifySoil(m rules.Measurement) (*rules.SoilClassification, error) {
	var result rules.SoilClassification
	if err := c.post("/classify-soil", m, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *MLClient) PredictCrop(m rules.Measurement) (*rules.CropPrediction, error) {
	var result rules.CropPrediction
	if err := c.post("/predict", m, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *MLClient) ModelStatus() (*models.ModelStatus, error) {
	resp, err := c.client.Get(c.baseURL + "/model-status")
	if err != nil {
		return nil, fmt.Errorf("failed to call classifier service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier response: %w", err)
	}

	var status models.ModelStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to parse classifier response: %w", err)
	}
	return &status, nil
}

func (c *MLClient) post(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("classifier call %s failed: %v", path, err)
		return fmt.Errorf("failed to call classifier service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read classifier response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("classifier call %s returned status %d: %s", path, resp.StatusCode, string(respBody))
		return fmt.Errorf("classifier service returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse classifier response: %w", err)
	}
	return nil
}
