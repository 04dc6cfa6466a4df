package broker

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("broker adapter not configured")

type DisabledAdapter struct{}

func NewDisabledAdapter() *DisabledAdapter {
	return &DisabledAdapter{}
}

func (a *DisabledAdapter) Name() string { return "disabled" }

func (a *DisabledAdapter) SubmitOrder(ctx context.Context, req OrderRequest) (Order, error) {
	return Order{}, ErrNotConfigured
}

func (a *DisabledAdapter) ListOrders(ctx context.Context) ([]Order, error) {
	return nil, ErrNotConfigured
}
