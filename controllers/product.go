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
	"github.com/GhOsCoDeR/mosaic-grove-farm/utils"
)

// ProductController handles catalog and inventory requests
type ProductController struct {
	Products   *mongo.Collection
	Categories *mongo.Collection
	Weights    *mongo.Collection
	Variations *mongo.Collection
}

// NewProductController creates a new ProductController
func NewProductController(client *mongo.Client) *ProductController {
	db := client.Database(utils.DatabaseName)
	return &ProductController{
		Products:   db.Collection("products"),
		Categories: db.Collection("categories"),
		Weights:    db.Collection("product_weights"),
		Variations: db.Collection("product_variations"),
	}
}

func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]T, error) {
	defer cursor.Close(ctx)
	var rows []T
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetProducts retrieves the full catalog. Categories, weights and variations
// are fetched separately and joined in memory by foreign-key equality.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := pc.Products.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	products, err := decodeAll[models.Product](ctx, cursor)
	if err != nil {
		http.Error(w, "Error reading products", http.StatusInternalServerError)
		return
	}

	categories, weights, variations, err := pc.fetchRelated(ctx, bson.M{})
	if err != nil {
		slog.Error("failed to fetch related product rows", "error", err)
		http.Error(w, "Error fetching product details", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.ExtendProducts(products, categories, weights, variations))
}

// GetProductByID retrieves a single product with its related rows
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := pc.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	categories, weights, variations, err := pc.fetchRelated(ctx, bson.M{"product_id": id})
	if err != nil {
		http.Error(w, "Error fetching product details", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.ExtendProduct(product, categories, weights, variations))
}

// fetchRelated loads category, weight and variation rows. The weight and
// variation filter narrows to one product where given; categories are always
// fetched whole since the product carries only a category_id.
func (pc *ProductController) fetchRelated(ctx context.Context, rowFilter bson.M) ([]models.Category, []models.ProductWeight, []models.ProductVariation, error) {
	catCursor, err := pc.Categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, nil, nil, err
	}
	categories, err := decodeAll[models.Category](ctx, catCursor)
	if err != nil {
		return nil, nil, nil, err
	}

	weightCursor, err := pc.Weights.Find(ctx, rowFilter)
	if err != nil {
		return nil, nil, nil, err
	}
	weights, err := decodeAll[models.ProductWeight](ctx, weightCursor)
	if err != nil {
		return nil, nil, nil, err
	}

	varCursor, err := pc.Variations.Find(ctx, rowFilter)
	if err != nil {
		return nil, nil, nil, err
	}
	variations, err := decodeAll[models.ProductVariation](ctx, varCursor)
	if err != nil {
		return nil, nil, nil, err
	}

	return categories, weights, variations, nil
}

// GetCategories retrieves all categories
func (pc *ProductController) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := pc.Categories.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}
	categories, err := decodeAll[models.Category](ctx, cursor)
	if err != nil {
		http.Error(w, "Error reading categories", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

// CreateProduct handles adding a new product (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if product.Name == "" || product.Price <= 0 {
		http.Error(w, "Product name and a positive price are required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	product.ID = uuid.New().String()
	product.CreatedAt = now
	product.UpdatedAt = now

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := pc.Products.InsertOne(ctx, product); err != nil {
		http.Error(w, "Error creating product", http.StatusInternalServerError)
		return
	}

	slog.Info("product created", "product_id", product.ID, "name", product.Name)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(product)
}

// UpdateProduct handles updating a product (Admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	update := bson.M{
		"$set": bson.M{
			"name":            product.Name,
			"description":     product.Description,
			"price":           product.Price,
			"image_url":       product.ImageURL,
			"category_id":     product.CategoryID,
			"inventory_count": product.InventoryCount,
			"is_featured":     product.IsFeatured,
			"updated_at":      time.Now(),
		},
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	result, err := pc.Products.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		http.Error(w, "Error updating product", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Product updated"})
}

// DeleteProduct removes a product and its weight/variation rows (Admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := pc.Products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		http.Error(w, "Error deleting product", http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	// Orphaned option rows would otherwise linger in the related collections.
	if _, err := pc.Weights.DeleteMany(ctx, bson.M{"product_id": id}); err != nil {
		slog.Warn("failed to delete product weights", "product_id", id, "error", err)
	}
	if _, err := pc.Variations.DeleteMany(ctx, bson.M{"product_id": id}); err != nil {
		slog.Warn("failed to delete product variations", "product_id", id, "error", err)
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Product deleted"})
}

// CreateCategory adds a new category (Admin only)
func (pc *ProductController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if category.Name == "" {
		http.Error(w, "Category name is required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	category.ID = uuid.New().String()
	category.CreatedAt = now
	category.UpdatedAt = now

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := pc.Categories.InsertOne(ctx, category); err != nil {
		http.Error(w, "Error creating category", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(category)
}

// AddWeight declares a weight option for a product (Admin only)
func (pc *ProductController) AddWeight(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	productID := params["id"]

	var weight models.ProductWeight
	if err := json.NewDecoder(r.Body).Decode(&weight); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if weight.Weight <= 0 || weight.Unit == "" {
		http.Error(w, "A positive weight and a unit are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := pc.Products.FindOne(ctx, bson.M{"_id": productID}).Err(); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	now := time.Now()
	weight.ID = uuid.New().String()
	weight.ProductID = productID
	weight.CreatedAt = now
	weight.UpdatedAt = now

	if _, err := pc.Weights.InsertOne(ctx, weight); err != nil {
		http.Error(w, "Error creating weight option", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(weight)
}

// AddVariation declares a variation axis for a product (Admin only)
func (pc *ProductController) AddVariation(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	productID := params["id"]

	var variation models.ProductVariation
	if err := json.NewDecoder(r.Body).Decode(&variation); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if variation.Name == "" || len(variation.Options) == 0 {
		http.Error(w, "A variation name and at least one option are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := pc.Products.FindOne(ctx, bson.M{"_id": productID}).Err(); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	now := time.Now()
	variation.ID = uuid.New().String()
	variation.ProductID = productID
	variation.CreatedAt = now
	variation.UpdatedAt = now

	if _, err := pc.Variations.InsertOne(ctx, variation); err != nil {
		http.Error(w, "Error creating variation", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(variation)
}
