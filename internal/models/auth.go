package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the roles carried by portal-issued tokens.
type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleRegistrar UserRole = "REGISTRAR"
	RoleStudent   UserRole = "STUDENT"
)

// JWTClaims represents the payload of a portal access token. For students
// the subject is the student number.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// StudentID resolves the student number from the claims.
func (c *JWTClaims) StudentID() string {
	if c == nil {
		return ""
	}
	if c.Subject != "" {
		return c.Subject
	}
	return c.UserID
}
