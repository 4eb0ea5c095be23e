package usecase

import (
	"testing"
	"time"

	"saulstari/internal/domain/auth"
	"saulstari/internal/pkg/config"
	"saulstari/internal/pkg/jwt"
	"saulstari/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthUseCase(t *testing.T, cfg config.Config) (AuthUseCase, *jwt.Service) {
	t.Helper()
	svc := jwt.NewService(cfg.JWT.Secret, time.Hour)
	return NewAuthUseCase(cfg, svc), svc
}

func mustCredentials(t *testing.T, user, pass string) auth.Credentials {
	t.Helper()
	creds, err := auth.NewCredentials(user, pass)
	require.NoError(t, err)
	return creds
}

func TestLogin_AdminAndStaff(t *testing.T) {
	cfg := config.NewTestConfig()
	uc, svc := newAuthUseCase(t, cfg)

	token, role, err := uc.Login(mustCredentials(t, "admin", "admin-pass"))
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, role)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.User)
	assert.Equal(t, "admin", claims.Role)

	_, role, err = uc.Login(mustCredentials(t, "staff", "staff-pass"))
	require.NoError(t, err)
	assert.Equal(t, auth.RoleStaff, role)
}

func TestLogin_UniformRejection(t *testing.T) {
	cfg := config.NewTestConfig()
	uc, _ := newAuthUseCase(t, cfg)

	// wrong password for a known username and a completely unknown username
	// must be indistinguishable
	_, _, errWrongPass := uc.Login(mustCredentials(t, "admin", "not-the-pass"))
	_, _, errUnknown := uc.Login(mustCredentials(t, "nobody", "whatever"))

	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
}

func TestLogin_StaffPasswordDoesNotUnlockAdmin(t *testing.T) {
	cfg := config.NewTestConfig()
	uc, _ := newAuthUseCase(t, cfg)

	_, _, err := uc.Login(mustCredentials(t, "admin", "staff-pass"))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveCredentials_BcryptHashedPassword(t *testing.T) {
	cfg := config.NewTestConfig()
	hashed, err := password.Hash("hashed-admin-pass")
	require.NoError(t, err)
	cfg.Auth.AdminPass = hashed

	uc, _ := newAuthUseCase(t, cfg)

	role, err := uc.ResolveCredentials(mustCredentials(t, "admin", "hashed-admin-pass"))
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, role)

	_, err = uc.ResolveCredentials(mustCredentials(t, "admin", "wrong"))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenValidator(t *testing.T) {
	cfg := config.NewTestConfig()
	svc := jwt.NewService(cfg.JWT.Secret, time.Hour)
	validator := NewTokenValidator(svc)

	token, err := svc.GenerateToken("staff", auth.RoleStaff)
	require.NoError(t, err)

	user, role, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff", user)
	assert.Equal(t, auth.RoleStaff, role)

	_, _, err = validator.ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrTokenValidation)
}
