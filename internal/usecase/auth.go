package usecase

import (
	"errors"

	"saulstari/internal/domain/auth"
	"saulstari/internal/pkg/config"
	"saulstari/internal/pkg/jwt"
	"saulstari/internal/pkg/password"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenGeneration    = errors.New("token generation failed")
	ErrTokenValidation    = errors.New("token validation failed")
)

type AuthUseCase interface {
	// Login resolves a role from static credentials and issues a session token.
	Login(credentials auth.Credentials) (string, auth.Role, error)
	// ResolveCredentials checks credentials without issuing a token (Basic auth path).
	ResolveCredentials(credentials auth.Credentials) (auth.Role, error)
}

type authUseCaseImpl struct {
	creds      config.AuthConfig
	jwtService *jwt.Service
}

func NewAuthUseCase(cfg config.Config, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		creds:      cfg.Auth,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Login(credentials auth.Credentials) (string, auth.Role, error) {
	role, err := a.ResolveCredentials(credentials)
	if err != nil {
		return "", "", err
	}

	token, err := a.jwtService.GenerateToken(credentials.Username(), role)
	if err != nil {
		return "", "", ErrTokenGeneration
	}

	return token, role, nil
}

// ResolveCredentials tries the admin pair then the staff pair. Both password
// checks run against uniform comparison primitives and the caller gets the
// same error whichever part failed.
func (a *authUseCaseImpl) ResolveCredentials(credentials auth.Credentials) (auth.Role, error) {
	if credentials.UsernameEquals(a.creds.AdminUser) &&
		password.Compare(a.creds.AdminPass, credentials.Password()) == nil {
		return auth.RoleAdmin, nil
	}

	if credentials.UsernameEquals(a.creds.StaffUser) &&
		password.Compare(a.creds.StaffPass, credentials.Password()) == nil {
		return auth.RoleStaff, nil
	}

	return "", ErrInvalidCredentials
}
