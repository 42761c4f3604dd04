package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/controllers"
	"marketplace/metrics"
	"marketplace/middleware"
)

type Controllers struct {
	Products   *controllers.ProductController
	Categories *controllers.CategoryController
	Cart       *controllers.CartController
	Checkout   *controllers.CheckoutController
	Orders     *controllers.OrderController
}

func RegisterRoutes(r *gin.Engine, ctl Controllers, m *metrics.ServerMetrics, jwtSecret []byte) {
	r.Use(middleware.MetricsMiddleware(m))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/products", ctl.Products.GetProducts)
		api.GET("/products/:id", ctl.Products.GetProduct)
		api.GET("/categories", ctl.Categories.GetCategories)
		api.GET("/categories/:id", ctl.Categories.GetCategory)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			admin := protected.Group("/admin")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.POST("/products", ctl.Products.CreateProduct)
				admin.PUT("/products/:id", ctl.Products.UpdateProduct)
				admin.DELETE("/products/:id", ctl.Products.DeleteProduct)

				admin.POST("/categories", ctl.Categories.CreateCategory)
				admin.PUT("/categories/:id", ctl.Categories.UpdateCategory)
				admin.DELETE("/categories/:id", ctl.Categories.DeleteCategory)

				admin.GET("/orders", ctl.Orders.GetOrdersAdmin)
				admin.GET("/orders/:id", ctl.Orders.GetOrderByID)
			}

			user := protected.Group("/user")
			{
				user.POST("/cart", ctl.Cart.AddToCart)
				user.GET("/cart", ctl.Cart.GetCart)
				user.DELETE("/cart", ctl.Cart.ClearCart)
				user.DELETE("/cart/:productId", ctl.Cart.RemoveFromCart)

				user.POST("/checkout/intent", ctl.Checkout.Intent)
				user.POST("/checkout/verify", ctl.Checkout.Verify)

				user.GET("/orders", ctl.Orders.GetOrders)
				user.GET("/orders/:id", ctl.Orders.GetOrderByID)
			}
		}
	}
}
