package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/5ecured/e-commerce/models"
)

func newAuthFixture() (*fakeUserRepo, AuthService, TokenService) {
	users := newFakeUserRepo()
	tokens := NewTokenService("test-secret", time.Hour)
	return users, NewAuthService(users, tokens, zap.NewNop()), tokens
}

func TestSignupHashesPassword(t *testing.T) {
	users, svc, _ := newAuthFixture()

	user, err := svc.Signup(context.Background(), &SignupRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.Nil(t, err)

	stored := users.users[user.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "hunter22", stored.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("hunter22")))
	assert.Equal(t, models.RoleCustomer, stored.Role)
	assert.NotNil(t, stored.History)
}

func TestSignupDuplicateEmail(t *testing.T) {
	users, svc, _ := newAuthFixture()
	users.insertErr = mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key"}},
	}

	_, err := svc.Signup(context.Background(), &SignupRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NotNil(t, err)
	assert.Equal(t, 400, err.StatusCode)
	assert.Equal(t, "Email is taken", err.Message)
}

func TestSigninUnknownEmail(t *testing.T) {
	_, svc, _ := newAuthFixture()

	_, err := svc.Signin(context.Background(), &SigninRequest{Email: "ghost@example.com", Password: "whatever"})
	require.NotNil(t, err)
	assert.Equal(t, 400, err.StatusCode)
	assert.Equal(t, "User with that email does not exist", err.Message)
}

func TestSigninWrongPassword(t *testing.T) {
	_, svc, _ := newAuthFixture()
	_, signupErr := svc.Signup(context.Background(), &SignupRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.Nil(t, signupErr)

	_, err := svc.Signin(context.Background(), &SigninRequest{Email: "alice@example.com", Password: "wrong"})
	require.NotNil(t, err)
	assert.Equal(t, 401, err.StatusCode)
	assert.Equal(t, "Email and password do not match", err.Message)
}

func TestSigninIssuesVerifiableToken(t *testing.T) {
	_, svc, tokens := newAuthFixture()
	user, signupErr := svc.Signup(context.Background(), &SignupRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.Nil(t, signupErr)

	resp, err := svc.Signin(context.Background(), &SigninRequest{Email: "alice@example.com", Password: "hunter22"})
	require.Nil(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, "alice@example.com", resp.User.Email)

	claims, verr := tokens.Validate(resp.Token)
	require.NoError(t, verr)
	assert.Equal(t, user.ID.Hex(), claims.Subject)
	assert.Equal(t, models.RoleCustomer, claims.Role)
}
