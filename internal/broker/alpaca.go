package broker

import (
	"context"
	"fmt"
	"strings"

	"paper-dashboard/internal/types"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/shopspring/decimal"
)

const (
	PaperBaseURL = "https://paper-api.alpaca.markets"
	LiveBaseURL  = "https://api.alpaca.markets"
)

type AlpacaConfig struct {
	KeyID     string
	SecretKey string
	BaseURL   string
	Paper     bool
}

// alpacaClient is the subset of *alpaca.Client the adapter calls.
type alpacaClient interface {
	PlaceOrder(req alpaca.PlaceOrderRequest) (*alpaca.Order, error)
	GetOrders(req alpaca.GetOrdersRequest) ([]alpaca.Order, error)
}

type AlpacaAdapter struct {
	client  alpacaClient
	baseURL string
}

func NewAlpacaAdapter(cfg AlpacaConfig) *AlpacaAdapter {
	baseURL := ResolveBaseURL(cfg.BaseURL, cfg.Paper)
	client := alpaca.NewClient(alpaca.ClientOpts{
		APIKey:    cfg.KeyID,
		APISecret: cfg.SecretKey,
		BaseURL:   baseURL,
	})
	return &AlpacaAdapter{client: client, baseURL: baseURL}
}

// ResolveBaseURL picks the endpoint when none is configured explicitly.
func ResolveBaseURL(configured string, paper bool) string {
	configured = strings.TrimRight(strings.TrimSpace(configured), "/")
	if configured != "" {
		return configured
	}
	if paper {
		return PaperBaseURL
	}
	return LiveBaseURL
}

func (a *AlpacaAdapter) Name() string { return "alpaca" }

func (a *AlpacaAdapter) BaseURL() string { return a.baseURL }

func (a *AlpacaAdapter) SubmitOrder(ctx context.Context, req OrderRequest) (Order, error) {
	if err := ctx.Err(); err != nil {
		return Order{}, err
	}
	order, err := a.client.PlaceOrder(toAlpacaRequest(req))
	if err != nil {
		return Order{}, err
	}
	if order == nil {
		return Order{}, fmt.Errorf("alpaca returned no order for %s", req.Symbol)
	}
	return fromAlpacaOrder(*order), nil
}

func (a *AlpacaAdapter) ListOrders(ctx context.Context) ([]Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list, err := a.client.GetOrders(alpaca.GetOrdersRequest{})
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0, len(list))
	for _, o := range list {
		out = append(out, fromAlpacaOrder(o))
	}
	return out, nil
}

func toAlpacaRequest(req OrderRequest) alpaca.PlaceOrderRequest {
	qty := decimal.NewFromInt(req.Qty)
	return alpaca.PlaceOrderRequest{
		Symbol:      req.Symbol,
		Qty:         &qty,
		Side:        toAlpacaSide(req.Side),
		Type:        toAlpacaType(req.Type),
		TimeInForce: toAlpacaTimeInForce(req.TimeInForce),
	}
}

func toAlpacaSide(s types.OrderSide) alpaca.Side {
	if s == types.OrderSideSell {
		return alpaca.Sell
	}
	return alpaca.Buy
}

func toAlpacaType(t types.OrderType) alpaca.OrderType {
	switch t {
	case types.OrderTypeMarket:
		return alpaca.Market
	default:
		return alpaca.OrderType(t)
	}
}

func toAlpacaTimeInForce(t types.TimeInForce) alpaca.TimeInForce {
	switch t {
	case types.TimeInForceDay:
		return alpaca.Day
	case types.TimeInForceGTC:
		return alpaca.GTC
	default:
		return alpaca.TimeInForce(t)
	}
}

func fromAlpacaOrder(o alpaca.Order) Order {
	out := Order{
		ID:          o.ID,
		Symbol:      o.Symbol,
		Side:        string(o.Side),
		Type:        string(o.Type),
		Status:      string(o.Status),
		SubmittedAt: o.SubmittedAt,
		FilledQty:   o.FilledQty,
	}
	if o.Qty != nil {
		qty := *o.Qty
		out.Qty = &qty
	}
	return out
}
