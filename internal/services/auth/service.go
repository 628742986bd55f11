package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/staffdir/internal/dependencies/clock"
	"github.com/mcoot/staffdir/internal/model"
	"github.com/mcoot/staffdir/internal/storage"
)

// ErrMissingSecret is returned by New when no signing secret is configured
var ErrMissingSecret = errors.New("auth: token signing secret is required")

// Claims is the signed payload carried by a session token
type Claims struct {
	UserID   model.AccountID `json:"userId"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     model.Role      `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token holder has the admin role
func (c *Claims) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

// Session is the result of a successful login or registration
type Session struct {
	Token   string
	Account *model.Account
}

// RegisterInput is the input for creating an account
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     model.Role // Defaults to RoleEmployee when empty
}

// LoginInput is the input for authenticating an account
type LoginInput struct {
	Username string
	Password string
}

// Config holds configuration for the auth service
type Config struct {
	// Secret signs and verifies tokens. Required.
	Secret []byte
	// TokenTTL is how long an issued token stays valid
	TokenTTL time.Duration
	// HashCost is the bcrypt work factor
	HashCost int
}

// DefaultConfig returns default auth configuration without a secret
func DefaultConfig() Config {
	return Config{
		TokenTTL: 7 * 24 * time.Hour,
		HashCost: bcrypt.DefaultCost,
	}
}

// Service handles password hashing, token issuance and the login/register flows
type Service struct {
	storage storage.DirectoryStore
	clock   clock.Clock
	logger  *slog.Logger

	secret   []byte
	tokenTTL time.Duration
	hashCost int
}

// New creates a new auth Service
func New(store storage.DirectoryStore, clk clock.Clock, cfg Config, logger *slog.Logger) (*Service, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrMissingSecret
	}
	defaults := DefaultConfig()
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaults.TokenTTL
	}
	if cfg.HashCost == 0 {
		cfg.HashCost = defaults.HashCost
	}
	return &Service{
		storage:  store,
		clock:    clk,
		logger:   logger,
		secret:   cfg.Secret,
		tokenTTL: cfg.TokenTTL,
		hashCost: cfg.HashCost,
	}, nil
}

// HashPassword returns a salted bcrypt hash of plain
func (s *Service) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches hash
func (s *Service) VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IssueToken signs a token identifying the account
func (s *Service) IssueToken(account *model.Account) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		UserID:   account.ID,
		Username: account.Username,
		Email:    account.Email,
		Role:     account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken decodes a token. It returns false for any token that is
// malformed, expired, or not signed with this service's secret.
func (s *Service) VerifyToken(token string) (*Claims, bool) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, false
	}
	return claims, true
}

// Register creates an account and returns a session for it
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	// Friendly pre-checks; the store re-checks atomically on create
	if _, err := s.storage.GetAccountByUsername(ctx, input.Username); err == nil {
		return nil, model.ErrUsernameTaken
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	if _, err := s.storage.GetAccountByEmail(ctx, input.Email); err == nil {
		return nil, model.ErrEmailTaken
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account, err := s.storage.CreateAccount(ctx, model.NewAccount{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account registered", "user_id", account.ID, "username", account.Username, "role", account.Role)
	return s.newSession(account)
}

// Login verifies credentials and returns a session
func (s *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	if input.Username == "" || input.Password == "" {
		return nil, model.ValidationError("Username and password required")
	}

	account, err := s.storage.GetAccountByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(input.Password, account.PasswordHash) {
		s.logger.Debug("login rejected", "username", input.Username)
		return nil, model.ErrInvalidCredentials
	}

	return s.newSession(account)
}

// Me returns the account of the caller identified in ctx
func (s *Service) Me(ctx context.Context) (*model.Account, error) {
	claims, err := RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	return s.storage.GetAccount(ctx, claims.UserID)
}

func (s *Service) newSession(account *model.Account) (*Session, error) {
	token, err := s.IssueToken(account)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Account: account}, nil
}

func (in RegisterInput) validate() error {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return model.ValidationError("Username, email, and password required")
	}
	if in.Role != "" && !in.Role.Valid() {
		return model.ValidationError("Role must be admin or employee")
	}
	return nil
}
