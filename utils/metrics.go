package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CartOperations counts storefront cart and wishlist mutations by type.
	CartOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mosaicgrove_cart_operations_total",
		Help: "Cart and wishlist operations by type.",
	}, []string{"operation"})

	// OrderStatusTransitions counts applied order workflow transitions.
	OrderStatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mosaicgrove_order_status_transitions_total",
		Help: "Applied order status transitions.",
	}, []string{"from", "to"})

	// OrderStatusRejections counts updates rejected by the transition table.
	OrderStatusRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mosaicgrove_order_status_rejections_total",
		Help: "Order status updates rejected by the transition table.",
	})
)
