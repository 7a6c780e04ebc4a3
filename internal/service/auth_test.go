package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modavista/storefront/internal/tokens"
	"github.com/modavista/storefront/internal/transport"
)

func newAuthService(env *testEnv) *AuthService {
	return &AuthService{
		Repo:          env.Repo,
		JWTSecret:     []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	user, err := auth.Register(ctx(), transport.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)
	require.Equal(t, "user", user.Role)
	require.NotEqual(t, "hunter22", user.PasswordHash)

	pair, err := auth.Login(ctx(), transport.LoginRequest{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := tokens.Parse(pair.AccessToken, auth.JWTSecret)
	require.NoError(t, err)
	id, err := tokens.UserID(claims)
	require.NoError(t, err)
	require.Equal(t, user.ID, id)
	require.Equal(t, "user", tokens.Role(claims))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	_, err := auth.Register(ctx(), transport.RegisterRequest{Username: "alice", Password: "pw123456"})
	require.NoError(t, err)

	_, err = auth.Register(ctx(), transport.RegisterRequest{Username: "alice", Password: "other"})
	require.True(t, errors.Is(err, ErrConflict))
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	_, err := auth.Register(ctx(), transport.RegisterRequest{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	_, err = auth.Login(ctx(), transport.LoginRequest{Username: "alice", Password: "wrong"})
	require.True(t, errors.Is(err, ErrUnauthorized))

	_, err = auth.Login(ctx(), transport.LoginRequest{Username: "nobody", Password: "x"})
	require.True(t, errors.Is(err, ErrUnauthorized))
}

func TestRefreshRotatesToken(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	_, err := auth.Register(ctx(), transport.RegisterRequest{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)
	pair, err := auth.Login(ctx(), transport.LoginRequest{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	next, err := auth.Refresh(ctx(), pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, next.AccessToken)

	// the spent token cannot be replayed
	_, err = auth.Refresh(ctx(), pair.RefreshToken)
	require.True(t, errors.Is(err, ErrUnauthorized))
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	_, err := auth.Register(ctx(), transport.RegisterRequest{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)
	pair, err := auth.Login(ctx(), transport.LoginRequest{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	_, err = auth.Refresh(ctx(), pair.AccessToken)
	require.True(t, errors.Is(err, ErrUnauthorized))
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	_, err := auth.Register(ctx(), transport.RegisterRequest{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)
	pair, err := auth.Login(ctx(), transport.LoginRequest{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx(), pair.RefreshToken))

	_, err = auth.Refresh(ctx(), pair.RefreshToken)
	require.True(t, errors.Is(err, ErrUnauthorized))
}

func TestSetUserRole(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	user, err := auth.Register(ctx(), transport.RegisterRequest{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	require.NoError(t, auth.SetUserRole(ctx(), user.ID, "admin"))
	require.Error(t, auth.SetUserRole(ctx(), user.ID, "root"))

	got, err := env.Repo.UserByID(ctx(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "admin", got.Role)
}
