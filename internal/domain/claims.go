package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims são as claims do token emitido pelo serviço de autenticação externo.
// Este serviço apenas valida o token; emissão e gestão de sessão ficam fora
// do escopo.
type Claims struct {
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// Roles reconhecidos nas claims
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)
