package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/5ecured/e-commerce/models"
	"github.com/5ecured/e-commerce/repository"
)

const (
	defaultListLimit   = 6
	defaultSearchLimit = 100
	defaultSortField   = "_id"

	// Sentinel category value meaning "no category restriction" on keyword
	// search.
	CategoryAll = "All"
)

// ListParams parameterizes the top-N catalog listing. Zero values select the
// defaults (_id, ascending, 6).
type ListParams struct {
	SortBy string
	Order  string
	Limit  int64
}

// PriceRange is an inclusive-inclusive price constraint.
type PriceRange struct {
	Min float64
	Max float64
}

// SearchFilters is the explicit filter configuration for faceted search: a
// price range and an exact-match category id set. Empty sets impose no
// constraint.
type SearchFilters struct {
	Price      *PriceRange
	Categories []primitive.ObjectID
}

// SearchParams parameterizes faceted search. Zero values select the defaults
// (_id, descending, 100, no skip).
type SearchParams struct {
	SortBy  string
	Order   string
	Limit   int64
	Skip    int64
	Filters SearchFilters
}

// SearchResult is the faceted search page. Size is the length of the returned
// page, not the full matching set size.
type SearchResult struct {
	Size int             `json:"size"`
	Data []ProductDetail `json:"data"`
}

// ProductDetail is a product with its category reference resolved. The outer
// Category shadows the embedded reference id in the JSON payload.
type ProductDetail struct {
	models.Product
	Category *models.Category `json:"category"`
}

// ProductInput carries the validated fields of a product create.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    primitive.ObjectID
	Quantity    int
	Shipping    *bool
	Photo       *models.Photo
}

// ProductUpdate carries a partial product update; nil fields are untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *primitive.ObjectID
	Quantity    *int
	Shipping    *bool
	Photo       *models.Photo
}

// CatalogService is the product catalog query engine plus the admin-facing
// product CRUD.
type CatalogService interface {
	Get(ctx context.Context, id primitive.ObjectID) (*ProductDetail, *ServiceError)
	List(ctx context.Context, params ListParams) ([]ProductDetail, *ServiceError)
	ListRelated(ctx context.Context, id primitive.ObjectID, limit int64) ([]ProductDetail, *ServiceError)
	ListUsedCategories(ctx context.Context) ([]primitive.ObjectID, *ServiceError)
	SearchByFilter(ctx context.Context, params SearchParams) (*SearchResult, *ServiceError)
	SearchByKeyword(ctx context.Context, keyword, category string) ([]models.Product, *ServiceError)
	Photo(ctx context.Context, id primitive.ObjectID) (*models.Photo, *ServiceError)
	Create(ctx context.Context, input ProductInput) (*models.Product, *ServiceError)
	Update(ctx context.Context, id primitive.ObjectID, update ProductUpdate) (*models.Product, *ServiceError)
	Delete(ctx context.Context, id primitive.ObjectID) *ServiceError
}

type catalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	logger     *zap.Logger
}

func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository, logger *zap.Logger) CatalogService {
	return &catalogService{products: products, categories: categories, logger: logger}
}

func (s *catalogService) Get(ctx context.Context, id primitive.ObjectID) (*ProductDetail, *ServiceError) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, errNotFound("Product not found")
	}
	details, svcErr := s.withCategories(ctx, []models.Product{*product})
	if svcErr != nil {
		return nil, svcErr
	}
	return &details[0], nil
}

func (s *catalogService) List(ctx context.Context, params ListParams) ([]ProductDetail, *ServiceError) {
	q := repository.ProductQuery{
		SortBy: params.SortBy,
		Order:  params.Order,
		Limit:  params.Limit,
	}
	if q.SortBy == "" {
		q.SortBy = defaultSortField
	}
	if q.Order == "" {
		q.Order = "asc"
	}
	if q.Limit == 0 {
		q.Limit = defaultListLimit
	}

	products, err := s.products.Search(ctx, q)
	if err != nil {
		s.logger.Error("product listing failed", zap.Error(err))
		return nil, errBadRequest("Products not found")
	}
	return s.withCategories(ctx, products)
}

func (s *catalogService) ListRelated(ctx context.Context, id primitive.ObjectID, limit int64) ([]ProductDetail, *ServiceError) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, errNotFound("Product not found")
	}
	if limit == 0 {
		limit = defaultListLimit
	}

	q := repository.ProductQuery{
		Category: product.Category,
		Exclude:  product.ID,
		Limit:    limit,
	}
	related, err := s.products.Search(ctx, q)
	if err != nil {
		s.logger.Error("related product lookup failed", zap.Error(err))
		return nil, errBadRequest("Products not found")
	}
	return s.withCategories(ctx, related)
}

func (s *catalogService) ListUsedCategories(ctx context.Context) ([]primitive.ObjectID, *ServiceError) {
	ids, err := s.products.DistinctCategories(ctx)
	if err != nil {
		s.logger.Error("distinct category lookup failed", zap.Error(err))
		return nil, errBadRequest("Categories not found")
	}
	return ids, nil
}

func (s *catalogService) SearchByFilter(ctx context.Context, params SearchParams) (*SearchResult, *ServiceError) {
	q := repository.ProductQuery{
		SortBy:     params.SortBy,
		Order:      params.Order,
		Limit:      params.Limit,
		Skip:       params.Skip,
		Categories: params.Filters.Categories,
	}
	if q.SortBy == "" {
		q.SortBy = defaultSortField
	}
	if q.Order == "" {
		q.Order = "desc"
	}
	if q.Limit == 0 {
		q.Limit = defaultSearchLimit
	}
	if params.Filters.Price != nil {
		q.PriceMin = &params.Filters.Price.Min
		q.PriceMax = &params.Filters.Price.Max
	}

	products, err := s.products.Search(ctx, q)
	if err != nil {
		s.logger.Error("faceted search failed", zap.Error(err))
		return nil, errBadRequest("Products not found")
	}
	details, svcErr := s.withCategories(ctx, products)
	if svcErr != nil {
		return nil, svcErr
	}
	// Size reports the page length, not the full match count.
	return &SearchResult{Size: len(details), Data: details}, nil
}

func (s *catalogService) SearchByKeyword(ctx context.Context, keyword, category string) ([]models.Product, *ServiceError) {
	// Without a keyword the store is never consulted and the result is empty,
	// never the unfiltered catalog.
	if keyword == "" {
		return []models.Product{}, nil
	}

	q := repository.ProductQuery{NameContains: keyword}
	if category != "" && category != CategoryAll {
		categoryID, err := primitive.ObjectIDFromHex(category)
		if err != nil {
			return nil, errBadRequest("Invalid category id")
		}
		q.Category = categoryID
	}

	products, err := s.products.Search(ctx, q)
	if err != nil {
		s.logger.Error("keyword search failed", zap.Error(err))
		return nil, errBadRequest("Products not found")
	}
	return products, nil
}

func (s *catalogService) Photo(ctx context.Context, id primitive.ObjectID) (*models.Photo, *ServiceError) {
	photo, err := s.products.FindPhoto(ctx, id)
	if err != nil {
		return nil, errNotFound("Product not found")
	}
	if photo == nil || len(photo.Data) == 0 {
		return nil, errNotFound("Product has no photo")
	}
	return photo, nil
}

func (s *catalogService) Create(ctx context.Context, input ProductInput) (*models.Product, *ServiceError) {
	now := time.Now().UTC()
	product := &models.Product{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Quantity:    input.Quantity,
		Sold:        0,
		Photo:       input.Photo,
		Shipping:    input.Shipping,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Insert(ctx, product); err != nil {
		s.logger.Error("product insert failed", zap.Error(err))
		return nil, errBadRequest("Could not create product")
	}
	product.Photo = nil
	return product, nil
}

func (s *catalogService) Update(ctx context.Context, id primitive.ObjectID, update ProductUpdate) (*models.Product, *ServiceError) {
	updates := bson.M{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Price != nil {
		updates["price"] = *update.Price
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Quantity != nil {
		updates["quantity"] = *update.Quantity
	}
	if update.Shipping != nil {
		updates["shipping"] = *update.Shipping
	}
	if update.Photo != nil {
		updates["photo"] = update.Photo
	}

	matched, err := s.products.Update(ctx, id, updates)
	if err != nil {
		s.logger.Error("product update failed", zap.Error(err))
		return nil, errBadRequest("Could not update product")
	}
	if matched == 0 {
		return nil, errNotFound("Product not found")
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, errNotFound("Product not found")
	}
	return product, nil
}

func (s *catalogService) Delete(ctx context.Context, id primitive.ObjectID) *ServiceError {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		s.logger.Error("product delete failed", zap.Error(err))
		return errBadRequest("Could not delete product")
	}
	if deleted == 0 {
		return errNotFound("Product not found")
	}
	return nil
}

// withCategories resolves the category reference of each product to its
// document in one batched lookup. Orphaned references resolve to nil.
func (s *catalogService) withCategories(ctx context.Context, products []models.Product) ([]ProductDetail, *ServiceError) {
	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			ids = append(ids, p.Category)
		}
	}

	categories, err := s.categories.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("category resolution failed", zap.Error(err))
		return nil, errBadRequest("Products not found")
	}
	byID := make(map[primitive.ObjectID]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}

	details := make([]ProductDetail, 0, len(products))
	for _, p := range products {
		details = append(details, ProductDetail{Product: p, Category: byID[p.Category]})
	}
	return details, nil
}
