package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhOsCoDeR/mosaic-grove-farm/models"
)

func f(v float64) *float64 { return &v }

func TestAddToCartMergesByIdentityKey(t *testing.T) {
	cart := NewCart()
	product := models.Product{ID: "1", Name: "Organic Cashews", Price: 12.99}

	cart.AddToCart(product, 2, models.VariationSelection{"Type": "Raw"}, f(500))
	cart.AddToCart(product, 3, models.VariationSelection{"Type": "Raw"}, f(500))

	items := cart.Items()
	require.Len(t, items, 1, "matching identity keys must merge into one line")
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddToCartVariationOrderIndependent(t *testing.T) {
	cart := NewCart()
	product := models.Product{ID: "1"}

	cart.AddToCart(product, 1, models.VariationSelection{"Type": "Raw", "Grind": "Fine"}, nil)
	cart.AddToCart(product, 1, models.VariationSelection{"Grind": "Fine", "Type": "Raw"}, nil)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddToCartDistinctConfigurations(t *testing.T) {
	cart := NewCart()
	product := models.Product{ID: "1"}

	cart.AddToCart(product, 1, models.VariationSelection{"Type": "Raw"}, f(500))
	cart.AddToCart(product, 1, models.VariationSelection{"Type": "Roasted"}, f(500))
	cart.AddToCart(product, 1, models.VariationSelection{"Type": "Raw"}, f(250))
	cart.AddToCart(product, 1, models.VariationSelection{"Type": "Raw"}, nil)

	assert.Len(t, cart.Items(), 4, "each distinct identity key is its own line")
}

func TestAddToCartPartialVariationIsDistinct(t *testing.T) {
	cart := NewCart()
	product := models.Product{ID: "1"}

	// The store does not validate completeness of the selection; a subset of
	// axes is simply a different identity key.
	cart.AddToCart(product, 1, models.VariationSelection{"Type": "Raw"}, nil)
	cart.AddToCart(product, 1, models.VariationSelection{"Type": "Raw", "Grind": "Fine"}, nil)

	assert.Len(t, cart.Items(), 2)
}

func TestAddToCartQuantityDefaultsToOne(t *testing.T) {
	cart := NewCart()
	cart.AddToCart(models.Product{ID: "1"}, 0, nil, nil)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveFromCartExactKeyOnly(t *testing.T) {
	cart := NewCart()
	product := models.Product{ID: "1"}

	cart.AddToCart(product, 1, models.VariationSelection{"Type": "Raw"}, f(500))
	cart.AddToCart(product, 1, models.VariationSelection{"Type": "Roasted"}, f(500))

	cart.RemoveFromCart("1", models.VariationSelection{"Type": "Raw"}, f(500))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Roasted", items[0].SelectedVariation["Type"])

	// Removing an absent key is a no-op.
	cart.RemoveFromCart("1", models.VariationSelection{"Type": "Raw"}, f(500))
	assert.Len(t, cart.Items(), 1)
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	cart := NewCart()
	product := models.Product{ID: "1"}

	cart.AddToCart(product, 2, nil, nil)
	cart.UpdateQuantity("1", 7, nil, nil)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity, "update is an absolute set, not a delta")
}

func TestUpdateQuantityZeroOrNegativeRemovesLine(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		cart := NewCart()
		cart.AddToCart(models.Product{ID: "1"}, 2, models.VariationSelection{"Type": "Raw"}, f(500))

		cart.UpdateQuantity("1", quantity, models.VariationSelection{"Type": "Raw"}, f(500))
		assert.Empty(t, cart.Items(), "quantity %d must delete the line", quantity)
	}
}

func TestCartScenario(t *testing.T) {
	cart := NewCart()
	product := models.Product{ID: "1"}

	cart.AddToCart(product, 2, models.VariationSelection{"Type": "Raw"}, f(500))
	require.Len(t, cart.Items(), 1)
	assert.Equal(t, 2, cart.Items()[0].Quantity)

	cart.AddToCart(product, 1, models.VariationSelection{"Type": "Roasted"}, f(500))
	require.Len(t, cart.Items(), 2)

	cart.UpdateQuantity("1", 0, models.VariationSelection{"Type": "Raw"}, f(500))
	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Roasted", items[0].SelectedVariation["Type"])
}

func TestClearCartLeavesWishlistUntouched(t *testing.T) {
	cart := NewCart()
	cart.AddToCart(models.Product{ID: "1"}, 2, nil, nil)
	cart.AddToWishlist(models.Product{ID: "7"})

	cart.ClearCart()

	assert.Empty(t, cart.Items())
	assert.Len(t, cart.Wishlist(), 1)
}

func TestAddToWishlistIdempotent(t *testing.T) {
	cart := NewCart()
	product := models.Product{ID: "7", Name: "Tiger Nut Flour"}

	cart.AddToWishlist(product)
	cart.AddToWishlist(product)

	assert.Len(t, cart.Wishlist(), 1)
}

func TestWishlistScenario(t *testing.T) {
	cart := NewCart()
	cart.AddToWishlist(models.Product{ID: "7"})
	cart.RemoveFromWishlist("7")

	assert.False(t, cart.IsInWishlist("7"))
	assert.Empty(t, cart.Wishlist())

	// Removing again is a no-op.
	cart.RemoveFromWishlist("7")
	assert.Empty(t, cart.Wishlist())
}

func TestMembershipPredicatesAcrossIDRepresentations(t *testing.T) {
	cart := NewCart()
	cart.AddToCart(models.Product{ID: "3"}, 1, nil, nil)
	cart.AddToWishlist(models.Product{ID: "7"})

	assert.True(t, cart.IsInCart("3"))
	assert.True(t, cart.IsInCart(3))
	assert.False(t, cart.IsInCart(4))

	assert.True(t, cart.IsInWishlist("7"))
	assert.True(t, cart.IsInWishlist(7))
	assert.False(t, cart.IsInWishlist("8"))
}

func TestIsInCartIgnoresOptions(t *testing.T) {
	cart := NewCart()
	cart.AddToCart(models.Product{ID: "3"}, 1, models.VariationSelection{"Type": "Raw"}, f(500))

	assert.True(t, cart.IsInCart("3"), "membership is by product, not by configuration")
}

func TestItemsCopyIsIsolatedFromCartState(t *testing.T) {
	cart := NewCart()
	cart.AddToCart(models.Product{ID: "1"}, 1, models.VariationSelection{"Type": "Raw"}, nil)

	items := cart.Items()
	items[0].SelectedVariation["Type"] = "Roasted"
	items[0].Quantity = 99

	live := cart.Items()
	require.Len(t, live, 1)
	assert.Equal(t, "Raw", live[0].SelectedVariation["Type"], "mutating a returned item must not touch the cart")
	assert.Equal(t, 1, live[0].Quantity)

	// The identity key is intact, so an exact-key removal still matches.
	cart.RemoveFromCart("1", models.VariationSelection{"Type": "Raw"}, nil)
	assert.Empty(t, cart.Items())
}

func TestEmpty(t *testing.T) {
	cart := NewCart()
	assert.True(t, cart.Empty())

	cart.AddToWishlist(models.Product{ID: "7"})
	assert.False(t, cart.Empty(), "a wishlist entry counts as session state")

	cart.RemoveFromWishlist("7")
	cart.AddToCart(models.Product{ID: "1"}, 1, nil, nil)
	assert.False(t, cart.Empty())
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	cart := NewCart()
	cart.AddToCart(models.Product{ID: "1", Name: "Organic Cashews"}, 2, models.VariationSelection{"Type": "Raw"}, f(500))
	cart.AddToWishlist(models.Product{ID: "7"})

	restored := NewCart()
	restored.Restore(cart.Snapshot())

	assert.Equal(t, cart.Items(), restored.Items())
	assert.Equal(t, cart.Wishlist(), restored.Wishlist())
}
