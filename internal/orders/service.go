package orders

import (
	"context"
	"log/slog"

	"paper-dashboard/internal/broker"
	"paper-dashboard/internal/events"
	"paper-dashboard/internal/model"

	"github.com/go-chi/chi/v5/middleware"
)

const NoOrdersMessage = "No orders found."

func SubmittedMessage(orderID string) string {
	return "Order submitted: ID " + orderID
}

func SubmitErrorMessage(err error) string {
	return "Error submitting order: " + err.Error()
}

func HistoryErrorMessage(err error) string {
	return "Error retrieving orders: " + err.Error()
}

type Service struct {
	broker broker.Adapter
	bus    *events.Bus
	log    *slog.Logger
}

func NewService(adapter broker.Adapter, bus *events.Bus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{broker: adapter, bus: bus, log: logger.With("component", "orders")}
}

type SubmitResult struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status,omitempty"`
}

type submittedEvent struct {
	OrderID string `json:"order_id"`
	Symbol  string `json:"symbol"`
	Qty     int64  `json:"qty"`
	Side    string `json:"side"`
	Status  string `json:"status,omitempty"`
}

type failedEvent struct {
	Symbol string `json:"symbol"`
	Error  string `json:"error"`
}

// Submit forwards req to the broker as is. One call, no retry.
func (s *Service) Submit(ctx context.Context, req broker.OrderRequest) (SubmitResult, error) {
	log := s.log.With("request_id", middleware.GetReqID(ctx), "broker", s.broker.Name())
	order, err := s.broker.SubmitOrder(ctx, req)
	if err != nil {
		log.Warn("submit order failed", "symbol", req.Symbol, "qty", req.Qty, "side", req.Side, "err", err)
		s.publish(events.New(events.TypeOrderFailed, failedEvent{Symbol: req.Symbol, Error: err.Error()}))
		return SubmitResult{}, err
	}
	log.Info("order submitted", "order_id", order.ID, "symbol", req.Symbol, "qty", req.Qty, "side", req.Side, "time_in_force", req.TimeInForce)
	s.publish(events.New(events.TypeOrderSubmitted, submittedEvent{
		OrderID: order.ID,
		Symbol:  req.Symbol,
		Qty:     req.Qty,
		Side:    string(req.Side),
		Status:  order.Status,
	}))
	return SubmitResult{OrderID: order.ID, Status: order.Status}, nil
}

// History returns the broker's order list projected to records, in broker order.
func (s *Service) History(ctx context.Context) ([]model.OrderRecord, error) {
	list, err := s.broker.ListOrders(ctx)
	if err != nil {
		s.log.Warn("list orders failed", "request_id", middleware.GetReqID(ctx), "broker", s.broker.Name(), "err", err)
		return nil, err
	}
	out := make([]model.OrderRecord, 0, len(list))
	for _, o := range list {
		out = append(out, ToRecord(o))
	}
	return out, nil
}

func ToRecord(o broker.Order) model.OrderRecord {
	return model.OrderRecord{
		Symbol:      o.Symbol,
		Qty:         o.Qty,
		Side:        o.Side,
		Type:        o.Type,
		Status:      o.Status,
		SubmittedAt: o.SubmittedAt,
		FilledQty:   o.FilledQty,
	}
}

func (s *Service) publish(evt events.Event) {
	if s.bus != nil {
		s.bus.Publish(evt)
	}
}
