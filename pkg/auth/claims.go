package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/luminaretail/orders-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	AdminID uuid.UUID
	Branch  string
	Role    enums.AdminRole
	JTI     string
}

// AccessTokenClaims represents the typed JWT issued to operator clients.
type AccessTokenClaims struct {
	AdminID uuid.UUID       `json:"admin_id"`
	Branch  string          `json:"branch"`
	Role    enums.AdminRole `json:"role"`
	jwt.RegisteredClaims
}
