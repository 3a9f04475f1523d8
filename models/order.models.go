package models

import (
	"errors"
	"fmt"
	"time"
)

// OrderStatus is the workflow state of a persisted order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

var (
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrIllegalTransition = errors.New("illegal order status transition")
)

// statusTransitions is the single source of truth for the order workflow.
// Both the admin action gating and the server-side update consult it, so an
// offered transition is always a permitted one.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// Valid reports whether s is one of the enumerated workflow states.
func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// Terminal reports whether no further transitions are possible.
func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(statusTransitions[s]) == 0
}

// CanTransitionTo reports whether next is reachable from s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the states reachable from s. The admin panel
// renders one action button per entry.
func (s OrderStatus) AllowedTransitions() []OrderStatus {
	allowed := statusTransitions[s]
	out := make([]OrderStatus, len(allowed))
	copy(out, allowed)
	return out
}

// OrderItem is a purchased line snapshot, frozen at checkout time.
type OrderItem struct {
	ID                string             `bson:"_id" json:"id"`
	OrderID           string             `bson:"order_id" json:"order_id"`
	ProductName       string             `bson:"product_name" json:"product_name"`
	Quantity          int                `bson:"quantity" json:"quantity"`
	UnitPrice         float64            `bson:"unit_price" json:"unit_price"`
	SelectedVariation VariationSelection `bson:"selected_variation,omitempty" json:"selected_variation,omitempty"`
	SelectedWeight    *float64           `bson:"selected_weight,omitempty" json:"selected_weight,omitempty"`
	WeightUnit        string             `bson:"weight_unit,omitempty" json:"weight_unit,omitempty"`
}

// Order represents a customer's order. Orders are created by checkout and
// never deleted; this service only reads them and advances their status.
type Order struct {
	ID         string      `bson:"_id" json:"id"`
	CustomerID string      `bson:"customer_id" json:"customer_id"`
	Status     OrderStatus `bson:"status" json:"status"`
	Total      float64     `bson:"total" json:"total"`
	CreatedAt  time.Time   `bson:"created_at" json:"created_at"`

	// Joined in memory from the profiles and order_items collections.
	CustomerName string      `bson:"-" json:"customer_name,omitempty"`
	Items        []OrderItem `bson:"-" json:"items,omitempty"`
}

// Transition validates the requested status change against the workflow
// table and applies it in place.
func (o *Order) Transition(next OrderStatus) error {
	if !next.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, next)
	}
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, o.Status, next)
	}
	o.Status = next
	return nil
}
