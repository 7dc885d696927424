package api

import (
	"log"
	stdhttp "net/http"

	intconfig "storefront/internal/config"
	h "storefront/internal/http/handlers"
	"storefront/internal/http/middleware"
	"storefront/internal/metrics"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, a *h.API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		api.POST("/login", a.Login)
		api.POST("/users", a.CreateUser)

		protected := api.Group("")
		protected.Use(middleware.RequireAuth([]byte(env.JWTSecret)))

		// Users
		users := protected.Group("/users")
		users.GET("", a.ListUsers)
		users.GET("/:id", a.GetUser)
		users.PUT("/:id", a.UpdateUser)
		users.DELETE("/:id", a.DeleteUser)
		users.POST("/:id/change-password", a.ChangePassword)

		// Products
		products := protected.Group("/products")
		products.GET("", a.ListProducts)
		products.GET("/:id", a.GetProduct)
		products.POST("", a.CreateProduct)
		products.PUT("/:id", a.UpdateProduct)
		products.DELETE("/:id", a.DeleteProduct)

		// Purchases
		purchases := protected.Group("/purchases")
		purchases.GET("", a.ListPurchases)
		purchases.GET("/:id", a.GetPurchase)
		purchases.GET("/:id/receipt", a.PurchaseReceipt)
		purchases.POST("", a.CreatePurchase)
		purchases.PUT("/:id", a.UpdatePurchase)
		purchases.DELETE("/:id", a.DeletePurchase)
	}

	return r
}
