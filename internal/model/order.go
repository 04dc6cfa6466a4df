package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is the history projection of a broker order. Field order matches
// the rendered JSON. Qty is nil when the broker reports none and renders as null.
type OrderRecord struct {
	Symbol      string           `json:"symbol"`
	Qty         *decimal.Decimal `json:"qty"`
	Side        string           `json:"side"`
	Type        string           `json:"type"`
	Status      string           `json:"status"`
	SubmittedAt time.Time        `json:"submitted_at"`
	FilledQty   decimal.Decimal  `json:"filled_qty"`
}
