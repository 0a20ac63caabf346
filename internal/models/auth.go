package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role the registration service knows about.
const RoleAdmin = "ADMIN"

// AdminLoginRequest holds credentials for authenticating the academy admin.
type AdminLoginRequest struct {
	Phone     string `json:"phone" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// AdminLoginResponse returns the issued access token.
type AdminLoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
}

// AdminClaims represents the JWT payload for admin access tokens.
type AdminClaims struct {
	Phone string `json:"phone"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
