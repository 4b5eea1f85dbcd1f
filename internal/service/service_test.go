package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"quotes-api/internal/domain"
	"quotes-api/internal/repository/sqlite"
)

// newTestServices wires both services over a fresh sqlite database in a
// temp dir, the same stack the server runs in production.
func newTestServices(t *testing.T) (UserService, QuoteService) {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	quoteRepo := sqlite.NewQuoteRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, quoteRepo.Init(ctx))

	return NewUserService(userRepo), NewQuoteService(quoteRepo)
}

func signupTestUser(t *testing.T, users UserService, username string) *domain.User {
	t.Helper()

	user, err := users.Signup(context.Background(), username, "Str0ngPass!")
	require.NoError(t, err)
	return user
}
