package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	JTI       string
}

// AccessTokenClaims represents the typed JWT issued to clients. The account
// id rides along so handlers can authorize balance operations without a
// lookup; the core still treats it as a caller-supplied actor id.
type AccessTokenClaims struct {
	UserID    uuid.UUID `json:"user_id"`
	AccountID uuid.UUID `json:"account_id"`
	jwt.RegisteredClaims
}
