package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	pkg_hash "github.com/Skotchmaster/online_pharmacy/pkg/hash"
	"github.com/Skotchmaster/online_pharmacy/pkg/events"
	"github.com/Skotchmaster/online_pharmacy/pkg/logging"
	"github.com/Skotchmaster/online_pharmacy/pkg/tokens"

	"github.com/Skotchmaster/online_pharmacy/internal/models"
	"github.com/Skotchmaster/online_pharmacy/internal/repo"
	"github.com/Skotchmaster/online_pharmacy/internal/transport"
)

type AuthService struct {
	Repo      repo.Users
	Events    events.Publisher
	JWTSecret []byte
	TokenTTL  time.Duration
	Now       func() time.Time
}

type LoginResult struct {
	User        *models.User
	AccessToken string
	AccessExp   time.Time
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if len(req.Password) > pkg_hash.MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, pkg_hash.MaxPasswordBytes)
	}

	exists, err := s.Repo.EmailExists(ctx, email)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot check email", "error", err)
		return nil, err
	}
	if exists {
		l.Warn("register_error", "status", 400, "reason", "email already exists")
		return nil, fmt.Errorf("%w: Email already exists", ErrConflict)
	}

	pwHash, err := pkg_hash.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, pkg_hash.MaxPasswordBytes)
		}
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Mobile:       strings.TrimSpace(req.Mobile),
		Address:      req.Address,
		PasswordHash: pwHash,
		Role:         "user",
		CreatedAt:    s.now(),
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			l.Warn("register_error", "status", 400, "reason", "email already exists")
			return nil, fmt.Errorf("%w: Email already exists", ErrConflict)
		}
		l.Error("register_error", "status", 500, "reason", "cannot create user", "error", err)
		return nil, err
	}

	publish(ctx, s.Events, events.TopicUserEvents, strconv.FormatUint(uint64(user.ID), 10), events.UserRegistered{
		Type:   events.TypeUserRegistered,
		UserID: user.ID,
		Email:  user.Email,
		At:     user.CreatedAt,
	})

	l.Info("register_success", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	email := normalizeEmail(req.Email)
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", email)

	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	if !pkg_hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	accessExp := s.now().Add(ttl)
	accessToken, err := tokens.CreateAccessToken(user.ID, user.Role, accessExp, s.JWTSecret)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return &LoginResult{
		User:        user,
		AccessToken: accessToken,
		AccessExp:   accessExp,
	}, nil
}
