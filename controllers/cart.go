package controllers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/GhOsCoDeR/mosaic-grove-farm/models"
	"github.com/GhOsCoDeR/mosaic-grove-farm/store"
	"github.com/GhOsCoDeR/mosaic-grove-farm/utils"
)

// SessionTokenHeader carries the storefront session token. A missing header
// starts a fresh session; the assigned token is echoed back so the client
// can keep using it.
const SessionTokenHeader = "X-Session-Token"

// CartController handles storefront cart and wishlist requests
type CartController struct {
	Products *mongo.Collection
	Sessions *store.Manager
}

// NewCartController creates a new CartController
func NewCartController(client *mongo.Client, sessions *store.Manager) *CartController {
	return &CartController{
		Products: client.Database(utils.DatabaseName).Collection("products"),
		Sessions: sessions,
	}
}

// cartItemRequest identifies a purchasable configuration plus a quantity
type cartItemRequest struct {
	ProductID         string                    `json:"product_id"`
	Quantity          int                       `json:"quantity"`
	SelectedVariation models.VariationSelection `json:"selected_variation,omitempty"`
	SelectedWeight    *float64                  `json:"selected_weight,omitempty"`
}

type cartResponse struct {
	SessionToken string            `json:"session_token"`
	Items        []models.CartItem `json:"items"`
}

func (cc *CartController) session(w http.ResponseWriter, r *http.Request) (string, *store.Cart) {
	token := r.Header.Get(SessionTokenHeader)
	if token == "" {
		token = uuid.New().String()
	}
	w.Header().Set(SessionTokenHeader, token)
	return token, cc.Sessions.Cart(r.Context(), token)
}

func (cc *CartController) persist(ctx context.Context, token string) {
	if err := cc.Sessions.Persist(ctx, token); err != nil {
		// The in-memory cart stays authoritative for this session; the
		// durable slot just misses one write.
		slog.Warn("failed to persist session cart", "error", err)
	}
}

func (cc *CartController) writeCart(w http.ResponseWriter, token string, cart *store.Cart) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cartResponse{SessionToken: token, Items: cart.Items()})
}

// AddToCart adds a product configuration to the session cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	token, cart := cc.session(w, r)

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := cc.Products.FindOne(ctx, bson.M{"_id": req.ProductID}).Decode(&product); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	cart.AddToCart(product, req.Quantity, req.SelectedVariation, req.SelectedWeight)
	utils.CartOperations.WithLabelValues("add_to_cart").Inc()
	cc.persist(ctx, token)

	cc.writeCart(w, token, cart)
}

// GetCart retrieves the session's cart contents
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	token, cart := cc.session(w, r)
	cc.writeCart(w, token, cart)
}

// UpdateQuantity sets the absolute quantity of a cart line; zero or less
// removes it
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	token, cart := cc.session(w, r)

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	cart.UpdateQuantity(req.ProductID, req.Quantity, req.SelectedVariation, req.SelectedWeight)
	utils.CartOperations.WithLabelValues("update_quantity").Inc()
	cc.persist(r.Context(), token)

	cc.writeCart(w, token, cart)
}

// RemoveFromCart deletes the cart line whose identity key matches exactly
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	token, cart := cc.session(w, r)

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	cart.RemoveFromCart(req.ProductID, req.SelectedVariation, req.SelectedWeight)
	utils.CartOperations.WithLabelValues("remove_from_cart").Inc()
	cc.persist(r.Context(), token)

	cc.writeCart(w, token, cart)
}

// ClearCart empties the cart; the wishlist is untouched
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	token, cart := cc.session(w, r)

	cart.ClearCart()
	utils.CartOperations.WithLabelValues("clear_cart").Inc()
	cc.persist(r.Context(), token)

	cc.writeCart(w, token, cart)
}

// AddToWishlist adds a product to the session wishlist. Idempotent.
func (cc *CartController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	token, cart := cc.session(w, r)

	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := cc.Products.FindOne(ctx, bson.M{"_id": req.ProductID}).Decode(&product); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	cart.AddToWishlist(product)
	utils.CartOperations.WithLabelValues("add_to_wishlist").Inc()
	cc.persist(ctx, token)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cart.Wishlist())
}

// GetWishlist retrieves the session's wishlist
func (cc *CartController) GetWishlist(w http.ResponseWriter, r *http.Request) {
	_, cart := cc.session(w, r)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cart.Wishlist())
}

// RemoveFromWishlist deletes a wishlist entry. No-op if absent.
func (cc *CartController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	token, cart := cc.session(w, r)

	params := mux.Vars(r)
	cart.RemoveFromWishlist(params["productId"])
	utils.CartOperations.WithLabelValues("remove_from_wishlist").Inc()
	cc.persist(r.Context(), token)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cart.Wishlist())
}
