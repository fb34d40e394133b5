package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/5ecured/e-commerce/models"
)

func TestUserUpdateRehashesPassword(t *testing.T) {
	users := newFakeUserRepo()
	u := &models.User{ID: primitive.NewObjectID(), Name: "alice", HashedPassword: "old-hash"}
	users.users[u.ID] = u
	svc := NewUserService(users, zap.NewNop())

	password := "new-password"
	updated, err := svc.Update(context.Background(), u.ID, &UpdateUserRequest{Password: &password})
	require.Nil(t, err)
	assert.NotEqual(t, "old-hash", updated.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.HashedPassword), []byte("new-password")))
}

func TestUserUpdatePartialFields(t *testing.T) {
	users := newFakeUserRepo()
	u := &models.User{ID: primitive.NewObjectID(), Name: "alice", Address: "1 Main St", HashedPassword: "hash"}
	users.users[u.ID] = u
	svc := NewUserService(users, zap.NewNop())

	name := "alice b"
	updated, err := svc.Update(context.Background(), u.ID, &UpdateUserRequest{Name: &name})
	require.Nil(t, err)
	assert.Equal(t, "alice b", updated.Name)
	assert.Equal(t, "1 Main St", updated.Address)
	assert.Equal(t, "hash", updated.HashedPassword)
}

func TestUserGetUnknown(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), zap.NewNop())

	_, err := svc.Get(context.Background(), primitive.NewObjectID())
	require.NotNil(t, err)
	assert.Equal(t, 404, err.StatusCode)
}
