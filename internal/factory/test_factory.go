package factory

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/staffdir/internal/dependencies/mocks"
	"github.com/mcoot/staffdir/internal/seed"
	"github.com/mcoot/staffdir/internal/services/auth"
	"github.com/mcoot/staffdir/internal/storage/memory"
	"github.com/mcoot/staffdir/internal/testutil"
)

// TestSecret signs tokens issued by a TestApp
const TestSecret = "test-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates a seeded in-memory App with a mocked clock and the
// cheapest bcrypt cost
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	store := memory.New(mockClock)
	logger := testutil.NopLogger()

	app, err := newWithDependencies(store, mockClock, auth.Config{
		Secret:   []byte(TestSecret),
		HashCost: bcrypt.MinCost,
	}, logger)
	if err != nil {
		panic(err)
	}
	if err := seed.Run(context.Background(), store, app.AuthService, logger); err != nil {
		panic(err)
	}

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}

// Login authenticates a seeded account and returns its bearer token
func (t *TestApp) Login(username, password string) (string, error) {
	session, err := t.AuthService.Login(context.Background(), auth.LoginInput{
		Username: username,
		Password: password,
	})
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

// Context returns a context carrying the claims of the given token
func (t *TestApp) Context(token string) context.Context {
	ctx := context.Background()
	if claims, ok := t.AuthService.VerifyToken(token); ok {
		ctx = auth.WithClaims(ctx, claims)
	}
	return ctx
}
