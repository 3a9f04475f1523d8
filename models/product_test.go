package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtendProduct(t *testing.T) {
	categories := []Category{
		{ID: "cat-nuts", Name: "Nuts"},
		{ID: "cat-flour", Name: "Flour"},
	}
	weights := []ProductWeight{
		{ID: "w1", ProductID: "p1", Weight: 250, Unit: "g"},
		{ID: "w2", ProductID: "p1", Weight: 500, Unit: "g"},
		{ID: "w3", ProductID: "p2", Weight: 1000, Unit: "g"},
	}
	variations := []ProductVariation{
		{ID: "v1", ProductID: "p1", Name: "Type", Options: []string{"Raw", "Roasted"}},
		{ID: "v2", ProductID: "p2", Name: "Grind", Options: []string{"Fine", "Coarse"}},
	}

	product := Product{ID: "p1", Name: "Organic Cashews", CategoryID: "cat-nuts"}
	extended := ExtendProduct(product, categories, weights, variations)

	require.NotNil(t, extended.Category)
	assert.Equal(t, "Nuts", extended.Category.Name)

	require.Len(t, extended.Weights, 2)
	assert.Equal(t, 250.0, extended.Weights[0].Weight)
	assert.Equal(t, 500.0, extended.Weights[1].Weight)

	require.Len(t, extended.Variations, 1)
	assert.Equal(t, "Type", extended.Variations[0].Name)
}

func TestExtendProductNoRelatedRows(t *testing.T) {
	product := Product{ID: "p9", Name: "Tiger Nut Milk"}
	extended := ExtendProduct(product, nil, nil, nil)

	assert.Nil(t, extended.Category)
	assert.Empty(t, extended.Weights)
	assert.Empty(t, extended.Variations)
}

func TestExtendProductUnknownCategory(t *testing.T) {
	product := Product{ID: "p1", CategoryID: "cat-missing"}
	extended := ExtendProduct(product, []Category{{ID: "cat-nuts"}}, nil, nil)

	assert.Nil(t, extended.Category)
}

func TestExtendProducts(t *testing.T) {
	products := []Product{
		{ID: "p1", CategoryID: "cat-nuts"},
		{ID: "p2", CategoryID: "cat-flour"},
	}
	categories := []Category{
		{ID: "cat-nuts", Name: "Nuts"},
		{ID: "cat-flour", Name: "Flour"},
	}
	weights := []ProductWeight{
		{ID: "w1", ProductID: "p2", Weight: 500, Unit: "g"},
	}

	extended := ExtendProducts(products, categories, weights, nil)

	require.Len(t, extended, 2)
	assert.Equal(t, "Nuts", extended[0].Category.Name)
	assert.Empty(t, extended[0].Weights)
	assert.Equal(t, "Flour", extended[1].Category.Name)
	require.Len(t, extended[1].Weights, 1)
}

func TestDefaultWeight(t *testing.T) {
	product := Product{ID: "p1"}
	assert.Nil(t, product.DefaultWeight())

	product.Weights = []ProductWeight{
		{ID: "w1", ProductID: "p1", Weight: 250, Unit: "g"},
		{ID: "w2", ProductID: "p1", Weight: 500, Unit: "g"},
	}
	w := product.DefaultWeight()
	require.NotNil(t, w)
	assert.Equal(t, 250.0, w.Weight)
}
