package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/5ecured/e-commerce/services"
)

// ProductController handles HTTP requests for the product catalog.
type ProductController struct {
	catalog   services.CatalogService
	validator *RequestValidator
}

func NewProductController(catalog services.CatalogService, validator *RequestValidator) *ProductController {
	return &ProductController{catalog: catalog, validator: validator}
}

// Get handles GET /product/:id.
func (pc *ProductController) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	product, svcErr := pc.catalog.Get(c.Request.Context(), id)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, product)
}

// List handles GET /products?sortBy=&order=&limit=. A top-N view for
// homepage widgets; there is no pagination offset.
func (pc *ProductController) List(c *gin.Context) {
	params, err := pc.validator.ParseListQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	products, svcErr := pc.catalog.List(c.Request.Context(), params)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Related handles GET /products/related/:id.
func (pc *ProductController) Related(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit value"})
			return
		}
		limit = parsed
	}
	products, svcErr := pc.catalog.ListRelated(c.Request.Context(), id, limit)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, products)
}

// UsedCategories handles GET /products/categories: the category ids actually
// referenced by at least one product.
func (pc *ProductController) UsedCategories(c *gin.Context) {
	ids, svcErr := pc.catalog.ListUsedCategories(c.Request.Context())
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, ids)
}

// searchByFilterRequest is the faceted search payload. Filter fields other
// than price and category are ignored.
type searchByFilterRequest struct {
	Order   string `json:"order"`
	SortBy  string `json:"sortBy"`
	Limit   int64  `json:"limit"`
	Skip    int64  `json:"skip"`
	Filters struct {
		Price    []float64 `json:"price"`
		Category []string  `json:"category"`
	} `json:"filters"`
}

// SearchByFilter handles POST /products/by/search.
func (pc *ProductController) SearchByFilter(c *gin.Context) {
	var req searchByFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	params := services.SearchParams{
		SortBy: req.SortBy,
		Order:  req.Order,
		Limit:  req.Limit,
		Skip:   req.Skip,
	}

	switch len(req.Filters.Price) {
	case 0:
		// no price constraint
	case 2:
		params.Filters.Price = &services.PriceRange{
			Min: req.Filters.Price[0],
			Max: req.Filters.Price[1],
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price filter must be a [min, max] pair"})
		return
	}

	for _, raw := range req.Filters.Category {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		params.Filters.Categories = append(params.Filters.Categories, id)
	}

	result, svcErr := pc.catalog.SearchByFilter(c.Request.Context(), params)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Search handles GET /products/search?search=&category=.
func (pc *ProductController) Search(c *gin.Context) {
	products, svcErr := pc.catalog.SearchByKeyword(c.Request.Context(), c.Query("search"), c.Query("category"))
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Photo handles GET /product/photo/:id, serving the raw binary payload.
func (pc *ProductController) Photo(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	photo, svcErr := pc.catalog.Photo(c.Request.Context(), id)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.Data(http.StatusOK, photo.ContentType, photo.Data)
}

// Create handles POST /product/create (admin, multipart form).
func (pc *ProductController) Create(c *gin.Context) {
	input, err := pc.validator.ParseCreateProductForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, svcErr := pc.catalog.Create(c.Request.Context(), input)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Update handles PUT /product/:id (admin, multipart form).
func (pc *ProductController) Update(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	update, err := pc.validator.ParseUpdateProductForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, svcErr := pc.catalog.Update(c.Request.Context(), id, update)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /product/:id (admin).
func (pc *ProductController) Delete(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if svcErr := pc.catalog.Delete(c.Request.Context(), id); svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// objectIDParam parses the named path parameter as an ObjectID, writing the
// error response itself on failure.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id format"})
		return primitive.NilObjectID, false
	}
	return id, true
}
