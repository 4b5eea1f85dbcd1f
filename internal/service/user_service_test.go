package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Signup(t *testing.T) {
	ctx := context.Background()
	users, _ := newTestServices(t)

	user, err := users.Signup(ctx, "alice", "Str0ngPass!")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash, "signup must not return credential material")
}

func TestUserService_Signup_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	users, _ := newTestServices(t)

	tests := []struct {
		name      string
		username  string
		password  string
		wantField string
	}{
		{name: "empty username", username: "", password: "Str0ngPass!", wantField: "username"},
		{name: "empty password", username: "carol", password: "", wantField: "password"},
		{name: "short password", username: "carol", password: "abc123", wantField: "password"},
		{name: "numeric password", username: "carol", password: "4812673905", wantField: "password"},
		{name: "common password", username: "carol", password: "qwertyuiop", wantField: "password"},
		{name: "password over 72 bytes", username: "carol", password: strings.Repeat("Str0ngPass!", 10), wantField: "password"},
		{name: "password similar to username", username: "carolinesmith", password: "carolinesmith1", wantField: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := users.Signup(ctx, tt.username, tt.password)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Fields[tt.wantField])
		})
	}
}

func TestUserService_Signup_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	users, _ := newTestServices(t)

	signupTestUser(t, users, "alice")

	_, err := users.Signup(ctx, "alice", "An0therPass!")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["username"], "username already taken")

	// the duplicate attempt must not have broken the original account
	user, err := users.Authenticate(ctx, "alice", "Str0ngPass!")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	users, _ := newTestServices(t)

	created := signupTestUser(t, users, "alice")

	user, err := users.Authenticate(ctx, "alice", "Str0ngPass!")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestUserService_Authenticate_GenericFailure(t *testing.T) {
	ctx := context.Background()
	users, _ := newTestServices(t)

	signupTestUser(t, users, "alice")

	// unknown user and wrong password are indistinguishable
	_, err := users.Authenticate(ctx, "nobody", "Str0ngPass!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.Authenticate(ctx, "alice", "WrongPass99")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()
	users, _ := newTestServices(t)

	created := signupTestUser(t, users, "alice")

	user, err := users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = users.GetByID(ctx, 9999)
	assert.Error(t, err)
}
