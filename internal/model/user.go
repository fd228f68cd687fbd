package model

import "time"

// Role defines user permissions scope
type Role string

const (
	// RoleAdmin grants access to management endpoints
	RoleAdmin Role = "ADMIN"
	// RoleStaff grants read-only back office access
	RoleStaff Role = "STAFF"
)

// User is back office account entity
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         Role       `json:"role"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// RefreshToken is refresh token model entity
type RefreshToken struct {
	ID          string
	UserID      string
	Fingerprint string
	ExpiresIn   int
	CreatedAt   time.Time
}

// Visit is single recorded page view
type Visit struct {
	Path      string    `json:"path" bson:"path"`
	IP        string    `json:"ip" bson:"ip"`
	UserAgent string    `json:"userAgent" bson:"userAgent"`
	Referer   string    `json:"referer" bson:"referer"`
	VisitedAt time.Time `json:"visitedAt" bson:"visitedAt"`
}
