package models

import (
	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleSeeker  Role = "seeker"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// Principal is the authenticated caller, passed explicitly into service
// calls. Exactly one of the role ID fields is set for its role; admin
// carries no ID beyond the role tag.
type Principal struct {
	Role      Role
	SeekerID  string
	CompanyID string
	Email     string
}

func (p Principal) IsSeeker() bool  { return p.Role == RoleSeeker }
func (p Principal) IsCompany() bool { return p.Role == RoleCompany }
func (p Principal) IsAdmin() bool   { return p.Role == RoleAdmin }

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// ShadowClaims is the short-lived token that keys an ephemeral seeker
// registration awaiting second-step verification.
type ShadowClaims struct {
	jwt.RegisteredClaims
	TokenID string `json:"tokenId"`
	Email   string `json:"email"`
}
