package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims are the access-token claims. Master mirrors IsMaster(Username)
// at issue time; services still gate on the explicit actor name.
type JWTClaims struct {
	Username string `json:"username"`
	Master   bool   `json:"master"`
	jwt.RegisteredClaims
}

// LoginRequest is the credential payload for the login gate.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued access token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	Username    string    `json:"username"`
	Master      bool      `json:"master"`
}

// RecoverRequest resets a user's password given the master recovery code.
type RecoverRequest struct {
	Username    string `json:"username" validate:"required"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=4"`
}
