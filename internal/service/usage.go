package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/set-night/docqa/internal/domain"
	"github.com/set-night/docqa/internal/llm"
	"github.com/shopspring/decimal"
)

// Pricing is the provider price in USD per 1M tokens.
type Pricing struct {
	PromptPerM     decimal.Decimal
	CompletionPerM decimal.Decimal
}

func NewPricing(promptPerM, completionPerM float64) Pricing {
	return Pricing{
		PromptPerM:     decimal.NewFromFloat(promptPerM),
		CompletionPerM: decimal.NewFromFloat(completionPerM),
	}
}

func (p Pricing) IsFree() bool {
	return p.PromptPerM.IsZero() && p.CompletionPerM.IsZero()
}

// Cost estimates the price of one answer.
func (p Pricing) Cost(u domain.Usage) decimal.Decimal {
	million := decimal.NewFromInt(1_000_000)
	promptCost := decimal.NewFromInt(int64(u.PromptTokens)).Mul(p.PromptPerM).Div(million)
	completionCost := decimal.NewFromInt(int64(u.CompletionTokens)).Mul(p.CompletionPerM).Div(million)
	return promptCost.Add(completionCost)
}

// FormatUsage renders the usage line shown under an answer.
func (p Pricing) FormatUsage(a *domain.Answer) string {
	text := fmt.Sprintf("📊 Tokens: %d→%d | %s", a.Usage.PromptTokens, a.Usage.CompletionTokens, a.Model)
	if !p.IsFree() {
		text += fmt.Sprintf(" | ~$%s", p.Cost(a.Usage).StringFixed(6))
	}
	return text
}

// ModelLookup finds the listed price of a model.
type ModelLookup interface {
	Lookup(ctx context.Context, modelID string) (*llm.ModelInfo, error)
}

// ResolvePricing returns configured when it carries prices, otherwise the
// listed price of model. A failed lookup keeps configured.
func ResolvePricing(ctx context.Context, lookup ModelLookup, model string, configured Pricing) Pricing {
	if !configured.IsFree() || lookup == nil {
		return configured
	}
	info, err := lookup.Lookup(ctx, model)
	if err != nil {
		slog.Warn("model price lookup failed", "model", model, "error", err)
		return configured
	}
	return Pricing{PromptPerM: info.PromptPerM, CompletionPerM: info.CompletionPerM}
}
