package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the available roles for the RBAC system. Token
// issuance and user management live in the external identity service; this
// API only validates tokens and gates routes by role.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleFaculty UserRole = "FACULTY"
)

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}
