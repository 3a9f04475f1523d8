package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/GhOsCoDeR/mosaic-grove-farm/middleware"
	"github.com/GhOsCoDeR/mosaic-grove-farm/models"
	"github.com/GhOsCoDeR/mosaic-grove-farm/store"
	"github.com/GhOsCoDeR/mosaic-grove-farm/utils"
)

// UserController handles customer accounts and admin sessions
type UserController struct {
	Profiles   *mongo.Collection
	AdminRoles *mongo.Collection
	Orders     *mongo.Collection
	Sessions   *store.SessionKV
}

// NewUserController creates a new UserController
func NewUserController(client *mongo.Client, sessions *store.SessionKV) *UserController {
	db := client.Database(utils.DatabaseName)
	return &UserController{
		Profiles:   db.Collection("profiles"),
		AdminRoles: db.Collection("admin_roles"),
		Orders:     db.Collection("orders"),
		Sessions:   sessions,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles customer registration
func (uc *UserController) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Name, email and password are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	email := strings.ToLower(req.Email)
	count, err := uc.Profiles.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "Email already in use", http.StatusBadRequest)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	profile := models.Profile{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     email,
		Password:  string(hashedPassword),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := uc.Profiles.InsertOne(ctx, profile); err != nil {
		http.Error(w, "Error creating account", http.StatusInternalServerError)
		return
	}

	token, err := utils.GenerateJWT(profile.ID, profile.Email, "user", uuid.New().String())
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	slog.Info("customer signed up", "user_id", profile.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"token":   token,
		"profile": profile,
	})
}

// Login handles customer authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var profile models.Profile
	err := uc.Profiles.FindOne(ctx, bson.M{"email": strings.ToLower(creds.Email)}).Decode(&profile)
	if err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(creds.Password)); err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateJWT(profile.ID, profile.Email, "user", uuid.New().String())
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// GetProfile retrieves the authenticated customer's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		http.Error(w, "Could not parse user from context", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var profile models.Profile
	if err := uc.Profiles.FindOne(ctx, bson.M{"_id": claims.UserID}).Decode(&profile); err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	profile.Password = ""
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// AdminLogin authenticates an operator. The profile credentials are checked
// first, then the admin_roles collection decides whether the account has
// back-office access at all.
func (uc *UserController) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var profile models.Profile
	err := uc.Profiles.FindOne(ctx, bson.M{"email": strings.ToLower(creds.Email)}).Decode(&profile)
	if err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(creds.Password)); err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	var role models.AdminRole
	err = uc.AdminRoles.FindOne(ctx, bson.M{"user_id": profile.ID}).Decode(&role)
	if errors.Is(err, mongo.ErrNoDocuments) {
		http.Error(w, "Forbidden: Admins only", http.StatusForbidden)
		return
	}
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	sessionID := uuid.New().String()
	token, err := utils.GenerateJWT(profile.ID, profile.Email, role.Role, sessionID)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	snapshot := models.AdminSnapshot{
		ID:       profile.ID,
		Username: profile.Name,
		Role:     role.Role,
	}
	if err := uc.Sessions.SaveAdminSnapshot(ctx, sessionID, snapshot); err != nil {
		slog.Warn("failed to persist admin snapshot", "user_id", profile.ID, "error", err)
	}

	slog.Info("admin logged in", "user_id", profile.ID, "role", role.Role)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"token": token,
		"admin": snapshot,
	})
}

// AdminSession restores the admin identity snapshot for the current session,
// the way the panel rehydrates itself after a reload.
func (uc *UserController) AdminSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		http.Error(w, "Could not parse user from context", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	snapshot, found, err := uc.Sessions.LoadAdminSnapshot(ctx, claims.SessionID)
	if err != nil {
		http.Error(w, "Session store unavailable", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Session expired", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

// AdminLogout discards the admin identity snapshot
func (uc *UserController) AdminLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		http.Error(w, "Could not parse user from context", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := uc.Sessions.DeleteAdminSnapshot(ctx, claims.SessionID); err != nil {
		slog.Warn("failed to delete admin snapshot", "error", err)
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Logged out"})
}

// customerView is a profile with order aggregates joined in memory
type customerView struct {
	models.Profile
	OrderCount int     `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
}

// ListCustomers lists customer profiles with per-customer order stats for
// the admin panel. Supports a ?q= substring filter on name or email.
func (uc *UserController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := uc.Profiles.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, "Failed to load customer data", http.StatusInternalServerError)
		return
	}
	profiles, err := decodeAll[models.Profile](ctx, cursor)
	if err != nil {
		http.Error(w, "Failed to load customer data", http.StatusInternalServerError)
		return
	}

	orderCursor, err := uc.Orders.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, "Failed to load order data", http.StatusInternalServerError)
		return
	}
	orders, err := decodeAll[models.Order](ctx, orderCursor)
	if err != nil {
		http.Error(w, "Failed to load order data", http.StatusInternalServerError)
		return
	}

	counts := make(map[string]int)
	totals := make(map[string]float64)
	for _, order := range orders {
		counts[order.CustomerID]++
		totals[order.CustomerID] += order.Total
	}

	query := strings.ToLower(r.URL.Query().Get("q"))
	customers := make([]customerView, 0, len(profiles))
	for _, profile := range profiles {
		if query != "" &&
			!strings.Contains(strings.ToLower(profile.Name), query) &&
			!strings.Contains(strings.ToLower(profile.Email), query) {
			continue
		}
		profile.Password = ""
		customers = append(customers, customerView{
			Profile:    profile,
			OrderCount: counts[profile.ID],
			TotalSpent: totals[profile.ID],
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customers)
}
