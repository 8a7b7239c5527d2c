package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// APIClaims is the bearer-token payload accepted by the HTTP layer.
// Token issuance lives outside this service; only verification happens here.
type APIClaims struct {
	CustomerID uint   `json:"customer_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}
