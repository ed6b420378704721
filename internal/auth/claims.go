package auth

import "github.com/golang-jwt/jwt/v5"

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Roles supported by the API.
// Guests are anonymous device-scoped identities minted by IssueGuest; they may
// schedule calls and verify a phone, but not manage account or subscription
// state.
const (
	RoleUser  = "user"
	RoleGuest = "guest"
)

// Claims are the only supported JWT claims shape for this service.
// Every per-user query downstream is scoped by UserID resolved from these claims.
type Claims struct {
	jwt.RegisteredClaims

	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	TokenType TokenType `json:"token_type"`
}
