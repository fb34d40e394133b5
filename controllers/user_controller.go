package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/5ecured/e-commerce/services"
)

// UserController handles profile reads and updates. Routes are guarded so the
// token subject always equals the target profile id.
type UserController struct {
	users services.UserService
}

func NewUserController(users services.UserService) *UserController {
	return &UserController{users: users}
}

// Get handles GET /user/:id (self only).
func (uc *UserController) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	user, svcErr := uc.users.Get(c.Request.Context(), id)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update handles PUT /user/:id (self only).
func (uc *UserController) Update(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	user, svcErr := uc.users.Update(c.Request.Context(), id, &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, user)
}
