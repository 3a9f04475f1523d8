package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/GhOsCoDeR/mosaic-grove-farm/models"
	"github.com/GhOsCoDeR/mosaic-grove-farm/utils"
)

// OrderController handles the admin order workflow
type OrderController struct {
	Orders     *mongo.Collection
	OrderItems *mongo.Collection
	Profiles   *mongo.Collection

	EmailService *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(client *mongo.Client, emailService *utils.EmailService) *OrderController {
	db := client.Database(utils.DatabaseName)
	return &OrderController{
		Orders:       db.Collection("orders"),
		OrderItems:   db.Collection("order_items"),
		Profiles:     db.Collection("profiles"),
		EmailService: emailService,
	}
}

// orderView is an order enriched with the actions the admin panel may offer
type orderView struct {
	models.Order
	AllowedTransitions []models.OrderStatus `json:"allowed_transitions"`
}

func toOrderView(order models.Order) orderView {
	return orderView{
		Order:              order,
		AllowedTransitions: order.Status.AllowedTransitions(),
	}
}

// attach loads the order's line snapshots and customer name. Item rows and
// profile rows live in their own collections; the join is by foreign-key
// equality here, not in the database.
func (oc *OrderController) attach(ctx context.Context, order *models.Order) error {
	cursor, err := oc.OrderItems.Find(ctx, bson.M{"order_id": order.ID})
	if err != nil {
		return err
	}
	items, err := decodeAll[models.OrderItem](ctx, cursor)
	if err != nil {
		return err
	}
	order.Items = items

	var profile models.Profile
	err = oc.Profiles.FindOne(ctx, bson.M{"_id": order.CustomerID}).Decode(&profile)
	if err == nil {
		order.CustomerName = profile.Name
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	return nil
}

// GetOrders lists all orders for the admin panel. An order whose related
// rows cannot be resolved is dropped from the listing rather than failing
// the whole response.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := oc.Orders.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}
	orders, err := decodeAll[models.Order](ctx, cursor)
	if err != nil {
		http.Error(w, "Error decoding orders", http.StatusInternalServerError)
		return
	}

	views := make([]orderView, 0, len(orders))
	for i := range orders {
		if err := oc.attach(ctx, &orders[i]); err != nil {
			slog.Warn("dropping order from listing", "order_id", orders[i].ID, "error", err)
			continue
		}
		views = append(views, toOrderView(orders[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

// GetOrderByID retrieves one order with its line snapshots
func (oc *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	orderID := params["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.Orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	if err := oc.attach(ctx, &order); err != nil {
		http.Error(w, "Failed to retrieve order details", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toOrderView(order))
}

// UpdateOrderStatus advances an order through the status workflow. The
// requested transition is re-validated server-side against the same table
// that gates the offered actions, so a direct call cannot set an illegal
// status. On a write failure nothing is mutated.
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	orderID := params["id"]

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.Orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	previous := order.Status
	if err := order.Transition(req.Status); err != nil {
		utils.OrderStatusRejections.Inc()
		switch {
		case errors.Is(err, models.ErrUnknownStatus):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, models.ErrIllegalTransition):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "Failed to update order status", http.StatusInternalServerError)
		}
		return
	}

	update := bson.M{"$set": bson.M{"status": order.Status}}
	result, err := oc.Orders.UpdateOne(ctx, bson.M{"_id": orderID}, update)
	if err != nil {
		http.Error(w, "Failed to update order status", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	utils.OrderStatusTransitions.WithLabelValues(string(previous), string(order.Status)).Inc()
	slog.Info("order status updated",
		"order_id", orderID,
		"from", previous,
		"to", order.Status,
	)

	oc.notifyCustomer(order)

	if err := oc.attach(ctx, &order); err != nil {
		slog.Warn("failed to load order details after update", "order_id", orderID, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toOrderView(order))
}

// notifyCustomer emails the customer about the new status. Fire and forget;
// a mail failure never fails the update.
func (oc *OrderController) notifyCustomer(order models.Order) {
	if oc.EmailService == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var profile models.Profile
		if err := oc.Profiles.FindOne(ctx, bson.M{"_id": order.CustomerID}).Decode(&profile); err != nil {
			slog.Warn("customer profile not found for notification", "order_id", order.ID)
			return
		}

		if err := oc.EmailService.SendOrderStatusEmail(profile.Email, profile.Name, order); err != nil {
			slog.Warn("failed to send order status email",
				"order_id", order.ID,
				"email", profile.Email,
				"error", err,
			)
		}
	}()
}
