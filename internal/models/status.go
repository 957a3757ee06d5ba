package models

import "fmt"

// OrderStatus is the closed set of states an order moves through. Orders are
// always created as StatusPreparing; later states are reserved for fulfilment.
type OrderStatus string

const (
	StatusPreparing OrderStatus = "preparing"
	StatusOnTheWay  OrderStatus = "on_the_way"
	StatusDelayed   OrderStatus = "delayed"
	StatusDelivered OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPreparing, StatusOnTheWay, StatusDelayed, StatusDelivered:
		return true
	}
	return false
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return status, nil
}
