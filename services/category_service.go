package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/5ecured/e-commerce/models"
	"github.com/5ecured/e-commerce/repository"
)

type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

// CategoryService is plain CRUD over the category taxonomy. Deleting a
// category leaves referencing products orphaned; that inconsistency is not
// guarded against.
type CategoryService interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Category, *ServiceError)
	List(ctx context.Context) ([]models.Category, *ServiceError)
	Create(ctx context.Context, input *CategoryInput) (*models.Category, *ServiceError)
	Update(ctx context.Context, id primitive.ObjectID, input *CategoryInput) (*models.Category, *ServiceError)
	Delete(ctx context.Context, id primitive.ObjectID) *ServiceError
}

type categoryService struct {
	categories repository.CategoryRepository
	logger     *zap.Logger
}

func NewCategoryService(categories repository.CategoryRepository, logger *zap.Logger) CategoryService {
	return &categoryService{categories: categories, logger: logger}
}

func (s *categoryService) Get(ctx context.Context, id primitive.ObjectID) (*models.Category, *ServiceError) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, errNotFound("Category does not exist")
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, *ServiceError) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		s.logger.Error("category listing failed", zap.Error(err))
		return nil, errBadRequest("Categories not found")
	}
	return categories, nil
}

func (s *categoryService) Create(ctx context.Context, input *CategoryInput) (*models.Category, *ServiceError) {
	category := &models.Category{
		ID:   primitive.NewObjectID(),
		Name: input.Name,
	}
	if err := s.categories.Insert(ctx, category); err != nil {
		s.logger.Error("category insert failed", zap.Error(err))
		return nil, errBadRequest("Could not create category")
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id primitive.ObjectID, input *CategoryInput) (*models.Category, *ServiceError) {
	matched, err := s.categories.UpdateName(ctx, id, input.Name)
	if err != nil {
		s.logger.Error("category update failed", zap.Error(err))
		return nil, errBadRequest("Could not update category")
	}
	if matched == 0 {
		return nil, errNotFound("Category does not exist")
	}
	return &models.Category{ID: id, Name: input.Name}, nil
}

func (s *categoryService) Delete(ctx context.Context, id primitive.ObjectID) *ServiceError {
	deleted, err := s.categories.Delete(ctx, id)
	if err != nil {
		s.logger.Error("category delete failed", zap.Error(err))
		return errBadRequest("Could not delete category")
	}
	if deleted == 0 {
		return errNotFound("Category does not exist")
	}
	return nil
}
