package orders

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"paper-dashboard/internal/broker"
	"paper-dashboard/internal/types"
)

const DefaultSymbol = "MSFT"

// Ticket holds the trade form exactly as submitted.
type Ticket struct {
	Symbol      string
	Qty         string
	Side        string
	Type        string
	TimeInForce string
}

// DefaultTicket is what the trade form shows before anything is typed.
func DefaultTicket() Ticket {
	return Ticket{
		Symbol:      DefaultSymbol,
		Qty:         "1",
		Side:        string(types.OrderSideBuy),
		Type:        string(types.OrderTypeMarket),
		TimeInForce: string(types.TimeInForceGTC),
	}
}

// ParseTicket applies the form widget constraints and nothing more. Whether the
// symbol trades or the account can afford it is for the broker to say.
func ParseTicket(t Ticket) (broker.OrderRequest, error) {
	symbol := strings.ToUpper(strings.TrimSpace(t.Symbol))
	if symbol == "" {
		return broker.OrderRequest{}, errors.New("symbol is required")
	}
	qtyRaw := strings.TrimSpace(t.Qty)
	if qtyRaw == "" {
		return broker.OrderRequest{}, errors.New("quantity is required")
	}
	qty, err := strconv.ParseInt(qtyRaw, 10, 64)
	if err != nil {
		return broker.OrderRequest{}, fmt.Errorf("invalid quantity %q", qtyRaw)
	}
	if qty < 1 {
		return broker.OrderRequest{}, errors.New("quantity must be at least 1")
	}
	side := types.OrderSide(strings.ToLower(strings.TrimSpace(t.Side)))
	if !side.Valid() {
		return broker.OrderRequest{}, fmt.Errorf("invalid side %q", t.Side)
	}
	typ := types.OrderType(strings.ToLower(strings.TrimSpace(t.Type)))
	if typ == "" {
		typ = types.OrderTypeMarket
	}
	if !typ.Valid() {
		return broker.OrderRequest{}, fmt.Errorf("invalid order type %q", t.Type)
	}
	tif := types.TimeInForce(strings.ToLower(strings.TrimSpace(t.TimeInForce)))
	if tif == "" {
		tif = types.TimeInForceGTC
	}
	if !tif.Valid() {
		return broker.OrderRequest{}, fmt.Errorf("invalid time_in_force %q", t.TimeInForce)
	}
	return broker.OrderRequest{
		Symbol:      symbol,
		Qty:         qty,
		Side:        side,
		Type:        typ,
		TimeInForce: tif,
	}, nil
}
