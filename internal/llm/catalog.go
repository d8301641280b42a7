package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/set-night/docqa/internal/config"
	"github.com/set-night/docqa/internal/domain"
	"github.com/shopspring/decimal"
)

// ModelInfo is one entry of the OpenRouter model listing.
type ModelInfo struct {
	ID            string
	Name          string
	ContextLength int
	// Prices are USD per 1M tokens.
	PromptPerM     decimal.Decimal
	CompletionPerM decimal.Decimal
}

// Catalog lists the models served by an OpenRouter-compatible endpoint.
type Catalog struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewCatalog(apiKey, baseURL string) *Catalog {
	if baseURL == "" {
		baseURL = config.OpenRouterBaseURL
	}
	return &Catalog{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: config.CatalogRequestTimeout},
	}
}

func (c *Catalog) ListModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch models: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var result struct {
		Data []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Pricing struct {
				Prompt     string `json:"prompt"`
				Completion string `json:"completion"`
			} `json:"pricing"`
			ContextLength int `json:"context_length"`
			TopProvider   struct {
				ContextLength int `json:"context_length"`
			} `json:"top_provider"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse models: %w", err)
	}

	million := decimal.NewFromInt(1_000_000)
	models := make([]ModelInfo, 0, len(result.Data))
	for _, m := range result.Data {
		ctxLen := m.ContextLength
		if m.TopProvider.ContextLength > 0 {
			ctxLen = m.TopProvider.ContextLength
		}
		// Listed prices are per token.
		models = append(models, ModelInfo{
			ID:             m.ID,
			Name:           m.Name,
			ContextLength:  ctxLen,
			PromptPerM:     parsePrice(m.Pricing.Prompt).Mul(million),
			CompletionPerM: parsePrice(m.Pricing.Completion).Mul(million),
		})
	}

	return models, nil
}

// Lookup returns the listing entry for modelID.
func (c *Catalog) Lookup(ctx context.Context, modelID string) (*ModelInfo, error) {
	models, err := c.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range models {
		if m.ID == modelID {
			return &m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrModelNotFound, modelID)
}

func parsePrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
