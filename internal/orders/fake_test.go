package orders

import (
	"context"
	"sync"

	"paper-dashboard/internal/broker"

	"github.com/shopspring/decimal"
)

// fakeBroker records every request and replays canned responses.
type fakeBroker struct {
	mu        sync.Mutex
	submitted []broker.OrderRequest
	listCalls int

	submitResp broker.Order
	submitErr  error
	listResp   []broker.Order
	listErr    error
}

func (f *fakeBroker) Name() string { return "fake" }

func (f *fakeBroker) SubmitOrder(ctx context.Context, req broker.OrderRequest) (broker.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, req)
	if f.submitErr != nil {
		return broker.Order{}, f.submitErr
	}
	return f.submitResp, nil
}

func (f *fakeBroker) ListOrders(ctx context.Context) ([]broker.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.listResp, f.listErr
}

func qty(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}
