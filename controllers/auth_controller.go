package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/5ecured/e-commerce/middleware"
	"github.com/5ecured/e-commerce/services"
)

// sessionMaxAge matches the token TTL of 24 hours.
const sessionMaxAge = 24 * 60 * 60

// AuthController handles signup, signin and signout.
type AuthController struct {
	auth services.AuthService
}

func NewAuthController(auth services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Signup handles POST /signup.
func (ac *AuthController) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	user, svcErr := ac.auth.Signup(c.Request.Context(), &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Signin handles POST /signin. The token is persisted in the session cookie
// and also returned in the body.
func (ac *AuthController) Signin(c *gin.Context) {
	var req services.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	resp, svcErr := ac.auth.Signin(c.Request.Context(), &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.SetCookie(middleware.SessionCookie, resp.Token, sessionMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, resp)
}

// Signout handles GET /signout by clearing the session cookie.
func (ac *AuthController) Signout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Signout successful"})
}
