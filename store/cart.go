package store

import (
	"sync"

	"github.com/GhOsCoDeR/mosaic-grove-farm/models"
)

// Cart holds the authoritative cart and wishlist contents for one storefront
// session. It is an explicitly owned state object: callers obtain one from
// the session Manager and mutate it only through the methods below. All
// operations are total and never fail.
type Cart struct {
	mu       sync.Mutex
	items    []models.CartItem
	wishlist []models.Product
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddToCart adds a product with its chosen options. If a line item with the
// same identity key (product id, variation selection, weight) already
// exists, its quantity is incremented instead of appending a duplicate row.
// A quantity below 1 defaults to 1.
func (c *Cart) AddToCart(product models.Product, quantity int, variation models.VariationSelection, weight *float64) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Matches(product.ID, variation, weight) {
			c.items[i].Quantity += quantity
			return
		}
	}

	c.items = append(c.items, models.CartItem{
		Product:           product,
		Quantity:          quantity,
		SelectedVariation: variation,
		SelectedWeight:    weight,
	})
}

// RemoveFromCart deletes the line item whose identity key matches exactly.
// No-op if absent.
func (c *Cart) RemoveFromCart(productID string, variation models.VariationSelection, weight *float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Matches(productID, variation, weight) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of the matching line item to the given
// absolute value. A quantity of zero or less deletes the line item.
func (c *Cart) UpdateQuantity(productID string, quantity int, variation models.VariationSelection, weight *float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if !c.items[i].Matches(productID, variation, weight) {
			continue
		}
		if quantity <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else {
			c.items[i].Quantity = quantity
		}
		return
	}
}

// ClearCart empties the cart unconditionally. The wishlist is untouched.
func (c *Cart) ClearCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// AddToWishlist appends the product unless an entry with that product id
// already exists.
func (c *Cart) AddToWishlist(product models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.wishlist {
		if models.SameProductID(p.ID, product.ID) {
			return
		}
	}
	c.wishlist = append(c.wishlist, product)
}

// RemoveFromWishlist deletes the matching entry if present.
func (c *Cart) RemoveFromWishlist(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, p := range c.wishlist {
		if models.SameProductID(p.ID, productID) {
			c.wishlist = append(c.wishlist[:i], c.wishlist[i+1:]...)
			return
		}
	}
}

// IsInCart reports whether any line item refers to the given product,
// regardless of chosen options. The id may be a string or a number.
func (c *Cart) IsInCart(productID any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if models.SameProductID(item.Product.ID, productID) {
			return true
		}
	}
	return false
}

// IsInWishlist reports whether the product is wishlisted. The id may be a
// string or a number.
func (c *Cart) IsInWishlist(productID any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.wishlist {
		if models.SameProductID(p.ID, productID) {
			return true
		}
	}
	return false
}

// Empty reports whether the cart holds no line items and no wishlist
// entries.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0 && len(c.wishlist) == 0
}

// Items returns a copy of the current cart lines. Variation selections are
// cloned so callers cannot mutate live cart state through the returned
// items; the embedded Product rows are shared read-only catalog data.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)
	for i := range items {
		items[i].SelectedVariation = items[i].SelectedVariation.Clone()
	}
	return items
}

// Wishlist returns a copy of the current wishlist entries.
func (c *Cart) Wishlist() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	wishlist := make([]models.Product, len(c.wishlist))
	copy(wishlist, c.wishlist)
	return wishlist
}

// State is the serializable form of a cart, used by the session store.
type State struct {
	Items    []models.CartItem `json:"items"`
	Wishlist []models.Product  `json:"wishlist"`
}

// Snapshot captures the cart contents for persistence.
func (c *Cart) Snapshot() State {
	return State{Items: c.Items(), Wishlist: c.Wishlist()}
}

// Restore replaces the cart contents with a previously captured state.
func (c *Cart) Restore(state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = state.Items
	c.wishlist = state.Wishlist
}
