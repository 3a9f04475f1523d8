package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/GhOsCoDeR/mosaic-grove-farm/controllers"
	"github.com/GhOsCoDeR/mosaic-grove-farm/routes"
	"github.com/GhOsCoDeR/mosaic-grove-farm/store"
	"github.com/GhOsCoDeR/mosaic-grove-farm/utils"
)

const sessionTTL = 7 * 24 * time.Hour

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Structured JSON logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("service", "mosaic-grove"),
	)
	slog.SetDefault(logger)

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	// Connect to Redis and set up the session stores
	rdb := utils.ConnectRedis()
	defer rdb.Close()
	sessionKV := store.NewSessionKV(rdb, sessionTTL)
	sessions := store.NewManager(sessionKV)

	// Initialize controllers
	userController := controllers.NewUserController(client, sessionKV)
	productController := controllers.NewProductController(client)
	cartController := controllers.NewCartController(client, sessions)
	orderController := controllers.NewOrderController(client, emailService)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, productController, cartController, orderController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	slog.Info("server is running", "port", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
