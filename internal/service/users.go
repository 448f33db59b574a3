// Package service implements the identity and channel operations on top of the stores.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/esterlin12/tvplus/internal/apperr"
	"github.com/esterlin12/tvplus/internal/auth"
	"github.com/esterlin12/tvplus/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both unknown users and wrong passwords.
var ErrInvalidCredentials = apperr.Unauthenticated("incorrect username or password")

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	SetSuperUser(ctx context.Context, id string, now models.Timestamp) error
	List(ctx context.Context) ([]models.User, error)
}

// AuditLogger records who changed what. Failures are logged, never returned to callers.
type AuditLogger interface {
	Log(ctx context.Context, userID, action, resourceType, resourceID, details string) error
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

type UserService struct {
	users    UserStore
	tokens   *auth.TokenIssuer
	tokenTTL time.Duration
	audit    AuditLogger
	logger   *slog.Logger
}

// NewUserService wires the identity operations. audit may be nil.
func NewUserService(users UserStore, tokens *auth.TokenIssuer, tokenTTL time.Duration, audit AuditLogger, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{users: users, tokens: tokens, tokenTTL: tokenTTL, audit: audit, logger: logger}
}

// Register creates a regular account. Username and email must both be unused.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperr.ValidationFields("validation failed", map[string]string{
				"password": "must be at most 72 bytes",
			})
		}
		return nil, apperr.Wrap(apperr.KindInternal, "hash password", err)
	}

	// Not atomic with the insert; the UNIQUE constraints catch the race and surface the same conflict.
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("username or email already registered")
	}

	now := models.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate checks a username/password pair.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a bearer token whose subject is the username.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(user.Username, s.tokenTTL)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "issue token", err)
	}
	return &LoginResult{AccessToken: token, TokenType: "bearer", User: user}, nil
}

// ByUsername resolves a token subject to its user.
func (s *UserService) ByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// PromoteToSuper grants the super-user flag to the user with id.
func (s *UserService) PromoteToSuper(ctx context.Context, actor *models.User, id string) error {
	if err := s.users.SetSuperUser(ctx, id, models.Now()); err != nil {
		return err
	}
	s.record(ctx, actor, "promote", id)
	return nil
}

// ListAll returns every user, newest first.
func (s *UserService) ListAll(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) record(ctx context.Context, actor *models.User, action, userID string) {
	if s.audit == nil || actor == nil {
		return
	}
	if err := s.audit.Log(ctx, actor.ID, action, models.ResourceUser, userID, ""); err != nil {
		s.logger.Warn("audit log failed", "action", action, "user_id", userID, "error", err)
	}
}
