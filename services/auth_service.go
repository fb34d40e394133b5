package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/5ecured/e-commerce/models"
	"github.com/5ecured/e-commerce/repository"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Address  string `json:"address"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthUser is the sanitized account view returned after signin.
type AuthUser struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  int                `json:"role"`
}

type SigninResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// AuthService implements signup and signin. Token verification lives in
// TokenService; role and ownership checks in the middleware package.
type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*models.User, *ServiceError)
	Signin(ctx context.Context, req *SigninRequest) (*SigninResponse, *ServiceError)
}

type authService struct {
	users  repository.UserRepository
	tokens TokenService
	logger *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens TokenService, logger *zap.Logger) AuthService {
	return &authService{users: users, tokens: tokens, logger: logger}
}

func (s *authService) Signup(ctx context.Context, req *SignupRequest) (*models.User, *ServiceError) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, errInternal("Could not create user")
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:             primitive.NewObjectID(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hashed),
		Role:           models.RoleCustomer,
		History:        []models.PurchaseRecord{},
		Address:        req.Address,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errBadRequest("Email is taken")
		}
		s.logger.Error("failed to insert user", zap.Error(err))
		return nil, errBadRequest("Could not create user")
	}
	return user, nil
}

func (s *authService) Signin(ctx context.Context, req *SigninRequest) (*SigninResponse, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errBadRequest("User with that email does not exist")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, errUnauthorized("Email and password do not match")
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Role)
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err))
		return nil, errInternal("Could not sign in")
	}

	return &SigninResponse{
		Token: token,
		User: AuthUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}
