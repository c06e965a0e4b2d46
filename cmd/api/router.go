package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"readgrid-backend/internal/shared/middleware"
	"readgrid-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupCommentRoutes(v1, c)
		setupFavoriteRoutes(v1, c)
		setupPaymentRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetProfile)
		users.PUT("/me", c.UserHandler.UpdateProfile)
		users.GET("/:id/comments", c.CommentHandler.ListByUser)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.List)
		books.GET("/:id", c.BookHandler.Get)
		books.GET("/:id/comments", c.CommentHandler.ListByBook)
		books.GET("/:id/download",
			middleware.AuthMiddleware(c.JWTManager), c.BookHandler.Download)
	}
}

func setupCommentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	comments := v1.Group("/comments")
	{
		comments.GET("", c.CommentHandler.ListByBookQuery)
		comments.POST("",
			middleware.AuthMiddleware(c.JWTManager), c.CommentHandler.SubmitComment)
		comments.DELETE("/:id",
			middleware.AuthMiddleware(c.JWTManager), c.CommentHandler.DeleteComment)
	}
}

func setupFavoriteRoutes(v1 *gin.RouterGroup, c *container.Container) {
	favorites := v1.Group("/favorites")
	favorites.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		favorites.POST("", c.FavoriteHandler.Add)
		favorites.DELETE("", c.FavoriteHandler.Remove)
		favorites.GET("", c.FavoriteHandler.List)
	}
}

func setupPaymentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	payment := v1.Group("/payment")
	{
		payment.POST("/create",
			middleware.AuthMiddleware(c.JWTManager), c.SubscriptionHandler.CreatePayment)
		// The gateway calls this; it cannot carry a user token.
		payment.POST("/callback", c.SubscriptionHandler.Callback)
		payment.POST("/demo-activate",
			middleware.AuthMiddleware(c.JWTManager), c.SubscriptionHandler.DemoActivate)
	}

	subscription := v1.Group("/subscription")
	subscription.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		subscription.POST("/cancel", c.SubscriptionHandler.Cancel)
	}
}

func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.POST("/books", c.BookHandler.Create)
		admin.PUT("/books/:id", c.BookHandler.Update)
		admin.DELETE("/books/:id", c.BookHandler.Delete)
		admin.PATCH("/comments/:id", c.CommentHandler.ToggleHidden)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		dbStatus := "up"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}

		cacheStatus := "down"
		if c.Cache != nil {
			if err := c.Cache.Ping(ctx.Request.Context()); err == nil {
				cacheStatus = "up"
			}
		}

		ctx.JSON(status, gin.H{
			"status":   dbStatus,
			"database": dbStatus,
			"cache":    cacheStatus,
			"version":  c.Config.App.Version,
		})
	}
}
