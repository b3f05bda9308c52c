package ai

import (
	"context"
	"fmt"
)

// ModelInfo describes one model advertised by the provider.
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
}

// ListModels returns the models available to the configured credentials.
func (s *Service) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var models []ModelInfo
	for info, err := range s.client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		models = append(models, ModelInfo{
			Name:        info.Name,
			DisplayName: info.DisplayName,
			Description: info.Description,
		})
	}

	return models, nil
}
