package router

import (
	"github.com/ayeshaishere/admin-dashboard/internal/cart"
	"github.com/ayeshaishere/admin-dashboard/internal/config"
	"github.com/ayeshaishere/admin-dashboard/internal/dummyjson"
	"github.com/ayeshaishere/admin-dashboard/internal/handler"
	"github.com/ayeshaishere/admin-dashboard/internal/middleware"
	"github.com/ayeshaishere/admin-dashboard/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all storefront routes.
func SetupRouter(cfg *config.Config, db *gorm.DB, api *dummyjson.Client, sessions *session.Store, cartStore *cart.Store) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// ====== API ======
	apiGroup := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// 登录/注册/忘记密码（不需要鉴权）
	authHandler := handler.NewAuthHandler(sessions, cartStore, jwtSecret, cfg.JWT.ExpireHours)
	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/forgot-password", authHandler.ForgotPassword)

	// 商品浏览/搜索（游客可用）
	productHandler := handler.NewProductHandler(api, cfg.App.PageSize)
	apiGroup.GET("/products", productHandler.List)
	apiGroup.GET("/products/search", productHandler.Search)
	apiGroup.GET("/products/:id", productHandler.Get)

	// 需要登录才能访问的接口
	protected := apiGroup.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, sessions),
		middleware.AuditMiddleware(db, cfg.Security.EncryptionKey),
	)

	protected.GET("/me", authHandler.GetMe)
	protected.POST("/auth/logout", authHandler.Logout)
	protected.POST("/profile", handler.UpdateProfile(sessions))

	cartHandler := handler.NewCartHandler(cartStore)
	protected.GET("/cart", cartHandler.Get)
	protected.POST("/cart/items", cartHandler.AddItem)
	protected.PUT("/cart/items/:id", cartHandler.UpdateQuantity)
	protected.DELETE("/cart/items/:id", cartHandler.RemoveItem)
	protected.DELETE("/cart", cartHandler.Clear)

	checkoutHandler := handler.NewCheckoutHandler(cartStore, db, cfg.CheckoutDelay())
	protected.POST("/checkout", checkoutHandler.PlaceOrder)
	protected.GET("/orders", checkoutHandler.ListOrders)

	// 管理端：额外要求管理员会话
	admin := protected.Group("/admin")
	admin.Use(middleware.AdminMiddleware(sessions))

	adminHandler := handler.NewAdminHandler(api, sessions)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.POST("/products", adminHandler.AddProduct)
	admin.PUT("/products/:id", adminHandler.UpdateProduct)
	admin.DELETE("/products/:id", adminHandler.DeleteProduct)
	admin.GET("/export/users", adminHandler.ExportUsersXLSX)
	admin.GET("/export/products", adminHandler.ExportProductsXLSX)

	return r
}
