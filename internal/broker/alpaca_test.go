package broker

import (
	"context"
	"errors"
	"testing"
	"time"

	"paper-dashboard/internal/types"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/shopspring/decimal"
)

type fakeAlpacaClient struct {
	placed    []alpaca.PlaceOrderRequest
	placeResp *alpaca.Order
	placeErr  error
	listCalls int
	listResp  []alpaca.Order
	listErr   error
}

func (f *fakeAlpacaClient) PlaceOrder(req alpaca.PlaceOrderRequest) (*alpaca.Order, error) {
	f.placed = append(f.placed, req)
	return f.placeResp, f.placeErr
}

func (f *fakeAlpacaClient) GetOrders(req alpaca.GetOrdersRequest) ([]alpaca.Order, error) {
	f.listCalls++
	return f.listResp, f.listErr
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		paper      bool
		want       string
	}{
		{"paper default", "", true, PaperBaseURL},
		{"live default", "", false, LiveBaseURL},
		{"explicit wins", "https://example.test/", true, "https://example.test"},
		{"whitespace ignored", "   ", true, PaperBaseURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveBaseURL(tt.configured, tt.paper); got != tt.want {
				t.Fatalf("ResolveBaseURL(%q, %v) = %q, want %q", tt.configured, tt.paper, got, tt.want)
			}
		})
	}
}

func TestAlpacaAdapter_SubmitOrderMapsRequest(t *testing.T) {
	submitted := time.Date(2026, 10, 1, 14, 30, 0, 0, time.UTC)
	qty := decimal.NewFromInt(1)
	fake := &fakeAlpacaClient{placeResp: &alpaca.Order{
		ID:          "ord-123",
		Symbol:      "AAPL",
		Qty:         &qty,
		Side:        alpaca.Buy,
		Type:        alpaca.Market,
		Status:      "accepted",
		SubmittedAt: submitted,
	}}
	a := &AlpacaAdapter{client: fake}

	got, err := a.SubmitOrder(context.Background(), OrderRequest{
		Symbol:      "AAPL",
		Qty:         1,
		Side:        types.OrderSideBuy,
		Type:        types.OrderTypeMarket,
		TimeInForce: types.TimeInForceGTC,
	})
	if err != nil {
		t.Fatalf("SubmitOrder failed: %v", err)
	}
	if got.ID != "ord-123" {
		t.Fatalf("expected id ord-123, got %q", got.ID)
	}
	if len(fake.placed) != 1 {
		t.Fatalf("expected 1 place call, got %d", len(fake.placed))
	}
	req := fake.placed[0]
	if req.Symbol != "AAPL" {
		t.Errorf("symbol = %q", req.Symbol)
	}
	if req.Qty == nil || !req.Qty.Equal(decimal.NewFromInt(1)) {
		t.Errorf("qty = %v", req.Qty)
	}
	if req.Side != alpaca.Buy {
		t.Errorf("side = %q", req.Side)
	}
	if req.Type != alpaca.Market {
		t.Errorf("type = %q", req.Type)
	}
	if req.TimeInForce != alpaca.GTC {
		t.Errorf("time_in_force = %q", req.TimeInForce)
	}
}

func TestAlpacaAdapter_SellDay(t *testing.T) {
	fake := &fakeAlpacaClient{placeResp: &alpaca.Order{ID: "ord-9"}}
	a := &AlpacaAdapter{client: fake}

	_, err := a.SubmitOrder(context.Background(), OrderRequest{
		Symbol:      "MSFT",
		Qty:         5,
		Side:        types.OrderSideSell,
		Type:        types.OrderTypeMarket,
		TimeInForce: types.TimeInForceDay,
	})
	if err != nil {
		t.Fatalf("SubmitOrder failed: %v", err)
	}
	req := fake.placed[0]
	if req.Side != alpaca.Sell || req.TimeInForce != alpaca.Day {
		t.Fatalf("unexpected mapping: side=%q tif=%q", req.Side, req.TimeInForce)
	}
	if !req.Qty.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("qty = %s", req.Qty)
	}
}

func TestAlpacaAdapter_SubmitOrderError(t *testing.T) {
	fake := &fakeAlpacaClient{placeErr: errors.New("insufficient buying power")}
	a := &AlpacaAdapter{client: fake}

	_, err := a.SubmitOrder(context.Background(), OrderRequest{Symbol: "AAPL", Qty: 1})
	if err == nil || err.Error() != "insufficient buying power" {
		t.Fatalf("expected broker error to pass through, got %v", err)
	}
}

func TestAlpacaAdapter_SubmitOrderNilOrder(t *testing.T) {
	a := &AlpacaAdapter{client: &fakeAlpacaClient{}}
	if _, err := a.SubmitOrder(context.Background(), OrderRequest{Symbol: "AAPL", Qty: 1}); err == nil {
		t.Fatal("expected error for nil order")
	}
}

func TestAlpacaAdapter_CanceledContext(t *testing.T) {
	fake := &fakeAlpacaClient{}
	a := &AlpacaAdapter{client: fake}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.SubmitOrder(ctx, OrderRequest{Symbol: "AAPL", Qty: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := a.ListOrders(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(fake.placed) != 0 || fake.listCalls != 0 {
		t.Fatal("client must not be called with a canceled context")
	}
}

func TestAlpacaAdapter_ListOrdersPreservesOrder(t *testing.T) {
	q1 := decimal.NewFromInt(3)
	q2 := decimal.RequireFromString("0.5")
	fake := &fakeAlpacaClient{listResp: []alpaca.Order{
		{ID: "a", Symbol: "AAPL", Qty: &q1, FilledQty: decimal.NewFromInt(3), Side: alpaca.Buy, Type: alpaca.Market, Status: "filled"},
		{ID: "b", Symbol: "TSLA", Qty: &q2, Side: alpaca.Sell, Type: alpaca.Market, Status: "new"},
		{ID: "c", Symbol: "NVDA", Side: alpaca.Buy, Type: alpaca.Market, Status: "new"},
	}}
	a := &AlpacaAdapter{client: fake}

	got, err := a.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(got))
	}
	for i, id := range []string{"a", "b", "c"} {
		if got[i].ID != id {
			t.Fatalf("order %d: expected id %s, got %s", i, id, got[i].ID)
		}
	}
	if !got[0].FilledQty.Equal(decimal.NewFromInt(3)) || got[0].Status != "filled" {
		t.Fatalf("unexpected first order: %+v", got[0])
	}
	if got[1].Side != "sell" || got[1].Qty == nil || !got[1].Qty.Equal(q2) {
		t.Fatalf("unexpected second order: %+v", got[1])
	}
	if got[2].Qty != nil {
		t.Fatalf("missing qty must stay nil, got %s", got[2].Qty)
	}
}

func TestDisabledAdapter(t *testing.T) {
	a := NewDisabledAdapter()
	if _, err := a.SubmitOrder(context.Background(), OrderRequest{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := a.ListOrders(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
