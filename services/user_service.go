package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/5ecured/e-commerce/models"
	"github.com/5ecured/e-commerce/repository"
)

// UpdateUserRequest carries a partial profile update; nil fields are
// untouched. A new password is re-hashed before storage.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Address  *string `json:"address"`
}

// UserService reads and updates user profiles. Responses are sanitized of
// credential material by the model's serialization tags.
type UserService interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.User, *ServiceError)
	Update(ctx context.Context, id primitive.ObjectID, req *UpdateUserRequest) (*models.User, *ServiceError)
}

type userService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewUserService(users repository.UserRepository, logger *zap.Logger) UserService {
	return &userService{users: users, logger: logger}
}

func (s *userService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, *ServiceError) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, errNotFound("User not found")
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id primitive.ObjectID, req *UpdateUserRequest) (*models.User, *ServiceError) {
	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("failed to hash password", zap.Error(err))
			return nil, errInternal("Could not update user")
		}
		updates["hashed_password"] = string(hashed)
	}

	user, err := s.users.Update(ctx, id, updates)
	if err != nil {
		s.logger.Error("user update failed", zap.Error(err))
		return nil, errBadRequest("Could not update user")
	}
	return user, nil
}
