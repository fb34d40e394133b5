package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/5ecured/e-commerce/services"
)

// CategoryController handles HTTP requests for the category taxonomy.
type CategoryController struct {
	categories services.CategoryService
}

func NewCategoryController(categories services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

// Get handles GET /category/:id.
func (cc *CategoryController) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	category, svcErr := cc.categories.Get(c.Request.Context(), id)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, category)
}

// List handles GET /categories.
func (cc *CategoryController) List(c *gin.Context) {
	categories, svcErr := cc.categories.List(c.Request.Context())
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Create handles POST /category (admin only).
func (cc *CategoryController) Create(c *gin.Context) {
	var input services.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	category, svcErr := cc.categories.Create(c.Request.Context(), &input)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, category)
}

// Update handles PUT /category/:id (admin only).
func (cc *CategoryController) Update(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var input services.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	category, svcErr := cc.categories.Update(c.Request.Context(), id, &input)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /category/:id (admin only).
func (cc *CategoryController) Delete(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if svcErr := cc.categories.Delete(c.Request.Context(), id); svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
