package strategy

import (
	"StockNewsAlert/internal/model"

	"github.com/shopspring/decimal"
)

// Gate decides whether a price move is large enough to notify about.
// Direction is ignored: a drop qualifies the same as a rise.
type Gate struct {
	Threshold decimal.Decimal // percent
}

// NewGate creates a Gate for the given threshold percentage.
func NewGate(thresholdPercent float64) *Gate {
	return &Gate{Threshold: decimal.NewFromFloat(thresholdPercent)}
}

// Passes reports whether change.Percentage >= threshold. The boundary is
// inclusive and the comparison uses the rounded percentage.
func (g *Gate) Passes(change *model.ChangeResult) bool {
	if change == nil {
		return false
	}
	return change.Percentage.GreaterThanOrEqual(g.Threshold)
}
