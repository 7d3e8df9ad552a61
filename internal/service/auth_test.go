package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/online_pharmacy/pkg/events"
	"github.com/Skotchmaster/online_pharmacy/pkg/tokens"

	"github.com/Skotchmaster/online_pharmacy/internal/transport"
)

var testSecret = []byte("test-jwt-secret")

func newTestAuthService(t *testing.T) (*AuthService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	return &AuthService{
		Repo:      newTestRepo(t),
		Events:    pub,
		JWTSecret: testSecret,
		TokenTTL:  time.Hour,
	}, pub
}

func TestAuthService_Register(t *testing.T) {
	svc, pub := newTestAuthService(t)

	u, err := svc.Register(context.Background(), transport.RegisterRequest{
		Name:     "Asha",
		Email:    "  Asha@Example.COM ",
		Mobile:   "9999999999",
		Address:  "12 Lane",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.Equal(t, "user", u.Role)
	assert.NotEqual(t, "secret", u.PasswordHash)

	sent := pub.published()
	require.Len(t, sent, 1)
	assert.Equal(t, events.TopicUserEvents, sent[0].topic)
	ev, ok := sent[0].event.(events.UserRegistered)
	require.True(t, ok)
	assert.Equal(t, u.ID, ev.UserID)
	assert.Equal(t, events.TypeUserRegistered, ev.Type)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	tests := []struct {
		name string
		req  transport.RegisterRequest
	}{
		{name: "empty email", req: transport.RegisterRequest{Password: "secret"}},
		{name: "blank email", req: transport.RegisterRequest{Email: "   ", Password: "secret"}},
		{name: "empty password", req: transport.RegisterRequest{Email: "a@example.com"}},
		{name: "password over 72 bytes", req: transport.RegisterRequest{Email: "a@example.com", Password: strings.Repeat("p", 80)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, pub := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Email: "dup@example.com", Password: "one"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, transport.RegisterRequest{Email: "DUP@example.com", Password: "two"})
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "Email already exists")
	assert.Len(t, pub.published(), 1)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, transport.RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "pa55"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, transport.LoginRequest{Email: "Ravi@example.com", Password: "pa55"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	assert.Equal(t, "Ravi", res.User.Name)
	require.NotEmpty(t, res.AccessToken)

	claims, err := tokens.AccessClaimsFromToken(res.AccessToken, testSecret)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.Equal(t, "user", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Email: "k@example.com", Password: "right"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "k@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "nobody@example.com", Password: "right"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "k@example.com"})
	assert.ErrorIs(t, err, ErrValidation)
}
