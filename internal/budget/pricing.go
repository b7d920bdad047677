package budget

import "github.com/shopspring/decimal"

// ModelPricing holds per-model token prices in USD per million tokens.
type ModelPricing struct {
	InputPerMTok  decimal.Decimal
	OutputPerMTok decimal.Decimal
}

var million = decimal.NewFromInt(1_000_000)

// Cost calculates the cost of a single call under this pricing.
func (p ModelPricing) Cost(inputTokens, outputTokens int64) decimal.Decimal {
	in := decimal.NewFromInt(inputTokens).Mul(p.InputPerMTok).Div(million)
	out := decimal.NewFromInt(outputTokens).Mul(p.OutputPerMTok).Div(million)
	return in.Add(out)
}

// DefaultPricing contains built-in pricing for Claude models (USD per million tokens).
var DefaultPricing = map[string]ModelPricing{
	"claude-opus-4-6": {
		InputPerMTok:  decimal.NewFromInt(15),
		OutputPerMTok: decimal.NewFromInt(75),
	},
	"claude-sonnet-4-5": {
		InputPerMTok:  decimal.NewFromInt(3),
		OutputPerMTok: decimal.NewFromInt(15),
	},
	"claude-haiku-4-5": {
		InputPerMTok:  decimal.NewFromInt(1),
		OutputPerMTok: decimal.NewFromInt(5),
	},
}
