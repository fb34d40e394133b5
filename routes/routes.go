package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/5ecured/e-commerce/controllers"
	"github.com/5ecured/e-commerce/middleware"
	"github.com/5ecured/e-commerce/services"
)

// Controllers bundles the wired controllers for route registration.
type Controllers struct {
	Auth     *controllers.AuthController
	Category *controllers.CategoryController
	Product  *controllers.ProductController
	User     *controllers.UserController
	Order    *controllers.OrderController
	Payment  *controllers.PaymentController
}

// Register sets up the full REST surface under /api.
func Register(r *gin.Engine, c Controllers, tokens services.TokenService) {
	api := r.Group("/api")

	signedIn := middleware.RequireSignin(tokens)
	adminOnly := middleware.AdminOnly()

	authRoutes := api.Group("")
	authRoutes.Use(middleware.RateLimit())
	{
		authRoutes.POST("/signup", c.Auth.Signup)
		authRoutes.POST("/signin", c.Auth.Signin)
		authRoutes.GET("/signout", c.Auth.Signout)
	}

	api.GET("/categories", c.Category.List)
	categoryRoutes := api.Group("/category")
	{
		categoryRoutes.GET("/:id", c.Category.Get)
		categoryRoutes.POST("", signedIn, adminOnly, c.Category.Create)
		categoryRoutes.PUT("/:id", signedIn, adminOnly, c.Category.Update)
		categoryRoutes.DELETE("/:id", signedIn, adminOnly, c.Category.Delete)
	}

	productRoutes := api.Group("/product")
	{
		productRoutes.GET("/:id", c.Product.Get)
		productRoutes.GET("/photo/:id", c.Product.Photo)
		productRoutes.POST("/create", signedIn, adminOnly, c.Product.Create)
		productRoutes.PUT("/:id", signedIn, adminOnly, c.Product.Update)
		productRoutes.DELETE("/:id", signedIn, adminOnly, c.Product.Delete)
	}

	productsRoutes := api.Group("/products")
	{
		productsRoutes.GET("", c.Product.List)
		productsRoutes.GET("/search", c.Product.Search)
		productsRoutes.POST("/by/search", c.Product.SearchByFilter)
		productsRoutes.GET("/related/:id", c.Product.Related)
		productsRoutes.GET("/categories", c.Product.UsedCategories)
	}

	userRoutes := api.Group("/user")
	userRoutes.Use(signedIn, middleware.SelfOnly("id"))
	{
		userRoutes.GET("/:id", c.User.Get)
		userRoutes.PUT("/:id", c.User.Update)
	}

	api.POST("/order/create", signedIn, c.Order.Create)
	api.GET("/orders/by/user/:userId", signedIn, middleware.SelfOnly("userId"), c.Order.PurchaseHistory)
	orderAdminRoutes := api.Group("/order")
	orderAdminRoutes.Use(signedIn, adminOnly)
	{
		orderAdminRoutes.GET("/list", c.Order.List)
		orderAdminRoutes.GET("/status-values", c.Order.StatusValues)
		orderAdminRoutes.PUT("/status", c.Order.UpdateStatus)
	}

	paymentRoutes := api.Group("/braintree")
	paymentRoutes.Use(signedIn, middleware.SelfOnly("userId"))
	{
		paymentRoutes.GET("/token/:userId", c.Payment.Token)
		paymentRoutes.POST("/payment/:userId", c.Payment.Payment)
	}
}
