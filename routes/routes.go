package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GhOsCoDeR/mosaic-grove-farm/controllers"
	"github.com/GhOsCoDeR/mosaic-grove-farm/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, productController *controllers.ProductController, cartController *controllers.CartController, orderController *controllers.OrderController) {
	// Public routes
	router.HandleFunc("/signup", userController.Signup).Methods("POST")
	router.HandleFunc("/login", userController.Login).Methods("POST")

	// Catalog routes
	router.HandleFunc("/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")
	router.HandleFunc("/categories", productController.GetCategories).Methods("GET")

	// Session cart and wishlist routes
	router.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	router.HandleFunc("/cart", cartController.ClearCart).Methods("DELETE")
	router.HandleFunc("/cart/items", cartController.AddToCart).Methods("POST")
	router.HandleFunc("/cart/items", cartController.UpdateQuantity).Methods("PUT")
	router.HandleFunc("/cart/items", cartController.RemoveFromCart).Methods("DELETE")
	router.HandleFunc("/wishlist", cartController.GetWishlist).Methods("GET")
	router.HandleFunc("/wishlist", cartController.AddToWishlist).Methods("POST")
	router.HandleFunc("/wishlist/{productId}", cartController.RemoveFromWishlist).Methods("DELETE")

	// Protected customer routes
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/profile", userController.GetProfile).Methods("GET")

	// Admin back-office routes
	router.HandleFunc("/admin/login", userController.AdminLogin).Methods("POST")

	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/session", userController.AdminSession).Methods("GET")
	admin.HandleFunc("/logout", userController.AdminLogout).Methods("POST")
	admin.HandleFunc("/customers", userController.ListCustomers).Methods("GET")
	admin.HandleFunc("/orders", orderController.GetOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}", orderController.GetOrderByID).Methods("GET")
	admin.HandleFunc("/orders/{id}/status", orderController.UpdateOrderStatus).Methods("PUT")
	admin.HandleFunc("/products", productController.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", productController.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", productController.DeleteProduct).Methods("DELETE")
	admin.HandleFunc("/products/{id}/weights", productController.AddWeight).Methods("POST")
	admin.HandleFunc("/products/{id}/variations", productController.AddVariation).Methods("POST")
	admin.HandleFunc("/categories", productController.CreateCategory).Methods("POST")

	// Operational endpoints
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}
