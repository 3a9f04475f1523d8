package models

import (
	"time"
)

// Address represents a customer's delivery address
type Address struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode string `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

// Profile represents a customer account
type Profile struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Password  string    `bson:"password,omitempty" json:"-"`
	Address   Address   `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// AdminRole grants back-office access to a profile. A profile without a row
// here is a regular customer.
type AdminRole struct {
	ID     string `bson:"_id" json:"id"`
	UserID string `bson:"user_id" json:"user_id"`
	Role   string `bson:"role" json:"role"` // "admin" or "super-admin"
}

// AdminSnapshot is the minimal authenticated-admin identity persisted in the
// session store so an admin session survives reloads.
type AdminSnapshot struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
