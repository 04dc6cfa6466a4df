package types

type OrderSide string

type OrderType string

type TimeInForce string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

const (
	OrderTypeMarket OrderType = "market"
)

const (
	TimeInForceGTC TimeInForce = "gtc"
	TimeInForceDay TimeInForce = "day"
)

// Choices offered by the trade form, in display order.
var (
	OrderSides   = []OrderSide{OrderSideBuy, OrderSideSell}
	OrderTypes   = []OrderType{OrderTypeMarket}
	TimeInForces = []TimeInForce{TimeInForceGTC, TimeInForceDay}
)

func (s OrderSide) Valid() bool {
	return s == OrderSideBuy || s == OrderSideSell
}

func (t OrderType) Valid() bool {
	return t == OrderTypeMarket
}

func (t TimeInForce) Valid() bool {
	return t == TimeInForceGTC || t == TimeInForceDay
}
