package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glamour-inventory/internal/inventory"
	"glamour-inventory/internal/server/handlers"
	"glamour-inventory/internal/server/middleware"
)

// NewRouter wires the middleware stack and the inventory routes. The
// recovery handler guarantees every request gets a structured JSON error,
// even on a panic.
func NewRouter(store *inventory.Store, rateLimit string) *gin.Engine {
	r := gin.New()

	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}))
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(rateLimit))

	inventoryHandler := handlers.NewInventoryHTTPHandler(store)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		items := api.Group("/inventory")
		{
			items.GET("", inventoryHandler.ListItems)
			items.POST("", inventoryHandler.CreateItem)
			items.GET("/stats", inventoryHandler.GetStats)
			items.GET("/low-stock", inventoryHandler.ListLowStock)
			items.GET("/:id", inventoryHandler.GetItem)
			items.PUT("/:id", inventoryHandler.UpdateItem)
			items.DELETE("/:id", inventoryHandler.DeleteItem)
		}
	}

	return r
}
