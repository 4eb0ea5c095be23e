package usecase

import (
	"saulstari/internal/domain/auth"
	"saulstari/internal/pkg/jwt"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (string, auth.Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (string, auth.Role, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return "", "", ErrTokenValidation
	}

	role, err := auth.NewRole(claims.Role)
	if err != nil {
		return "", "", ErrTokenValidation
	}

	return claims.User, role, nil
}
