package api

import (
	"tavolo-be/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every route. Identity is parsed globally; each group
// then declares how much of it is required.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging())
	r.Use(middleware.Auth())
	r.Use(middleware.RateLimit())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws", func(c *gin.Context) { h.Hub.ServeWS(c.Writer, c.Request) })

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/password-reset", h.RequestPasswordReset)
		auth.POST("/password-reset/confirm", h.ResetPassword)
		auth.GET("/me", middleware.RequireAuth(), h.Me)
	}

	r.GET("/params/:type", h.ListParams)

	catalog := r.Group("/")
	{
		catalog.GET("categories", h.GetCategoryTree)
		catalog.GET("menu-items", h.ListMenuItems)
		catalog.GET("menu-items/:id", h.GetMenuItem)
		catalog.GET("combos", h.ListCombos)
		catalog.GET("combos/:id", h.GetCombo)
		catalog.GET("tables", h.ListTables)
		catalog.GET("tables/:id", h.GetTable)
		catalog.GET("tables/available", h.GetAvailableTables)
	}

	me := r.Group("/", middleware.RequireAuth())
	{
		me.GET("cart", h.GetCart)
		me.POST("cart/items", h.AddCartItem)
		me.POST("cart/combos", h.AddCartCombo)
		me.PATCH("cart/items/:menuItemId", h.UpdateCartItemQuantity)
		me.DELETE("cart/items/:menuItemId", h.RemoveCartItem)
		me.DELETE("cart/combos/:comboId", h.RemoveCartCombo)
		me.DELETE("cart", h.ClearCart)

		me.POST("orders/checkout", h.Checkout)
		me.GET("orders", h.ListMyOrders)
		me.GET("orders/:publicId", h.GetOrder)

		me.POST("payments", h.InitiatePayment)
		me.GET("payments/:publicId", h.GetPayment)
		me.POST("payments/:publicId/approve", h.ApprovePayment)
		me.POST("payments/:publicId/cancel", h.CancelPayment)

		me.POST("reservations", h.CreateReservation)
		me.GET("reservations", h.ListMyReservations)
		me.GET("reservations/:publicId", h.GetReservation)
		me.PATCH("reservations/:publicId", h.UpdateReservation)
		me.POST("reservations/:publicId/cancel", h.CancelReservation)

		me.POST("addresses", h.CreateAddress)
		me.GET("addresses", h.ListAddresses)
		me.DELETE("addresses/:id", h.DeleteAddress)
	}

	staff := r.Group("/admin", middleware.RequireAuth(), middleware.RequireStaff())
	{
		staff.POST("/categories", h.CreateCategory)
		staff.PATCH("/categories/:id/parent", h.ReparentCategory)

		staff.POST("/menu-items", h.CreateMenuItem)
		staff.PATCH("/menu-items/:id/price", h.UpdateMenuItemPrice)
		staff.POST("/combos", h.CreateCombo)

		staff.GET("/inventory/:menuItemId", h.GetStock)
		staff.POST("/inventory/:menuItemId/restock", h.Restock)

		staff.POST("/tables", h.CreateTable)

		staff.PATCH("/orders/:publicId/status", h.UpdateOrderStatus)
		staff.PATCH("/reservations/:publicId", h.UpdateReservation)
		staff.DELETE("/reservations/:publicId", h.DeleteReservation)

		staff.GET("/stats/daily-revenue", h.GetDailyRevenue)
		staff.GET("/stats/top-items", h.GetTopItems)
		staff.GET("/stats/orders-by-status", h.GetOrdersByStatus)
	}

	return r
}
