package broker

import (
	"context"
	"time"

	"paper-dashboard/internal/types"

	"github.com/shopspring/decimal"
)

type OrderRequest struct {
	Symbol      string
	Qty         int64
	Side        types.OrderSide
	Type        types.OrderType
	TimeInForce types.TimeInForce
}

type Order struct {
	ID          string
	Symbol      string
	Qty         *decimal.Decimal // nil for notional orders
	Side        string
	Type        string
	Status      string
	SubmittedAt time.Time
	FilledQty   decimal.Decimal
}

// Adapter is the boundary to the brokerage. Matching, risk checks and fills
// all happen on the other side of it.
type Adapter interface {
	Name() string
	SubmitOrder(ctx context.Context, req OrderRequest) (Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
}
