package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/controllers"
	"github.com/comandaflow/comanda-app/middlewares"
	"github.com/comandaflow/comanda-app/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares())

	// Service layer (DI eksplisit, tanpa singleton DB)
	tables := services.NewTableRegistry(db)
	sessions := services.NewSessionManager(db, tables)
	orders := services.NewOrderAggregator(db)
	bills := services.NewBillEngine(db, orders)
	transfers := services.NewTransferCoordinator(db, tables)

	authCtrl := controllers.NewAuthController(db)
	areaCtrl := controllers.NewAreaController(db)
	tableCtrl := controllers.NewTableController(db, tables)
	productCtrl := controllers.NewProductController(db)
	sessionCtrl := controllers.NewSessionController(db, sessions, transfers)
	orderCtrl := controllers.NewOrderController(db, orders)
	billCtrl := controllers.NewBillController(db, bills)
	eventsCtrl := controllers.NewEventsController()

	api := r.Group("/api")

	authLimiter := middlewares.NewAuthRateLimiter()
	auth := api.Group("/auth")
	auth.Use(authLimiter.RateLimit())
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
	}

	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.GET("/areas", areaCtrl.GetAllAreas)
		protected.POST("/areas", middlewares.RequireRole("admin", "manager"), areaCtrl.CreateArea)

		protected.GET("/tables", tableCtrl.GetAllTables)
		protected.POST("/tables", middlewares.RequireRole("admin", "manager"), tableCtrl.CreateTable)
		protected.GET("/tables/:table_id", tableCtrl.GetTableByID)
		protected.PATCH("/tables/:table_id", tableCtrl.UpdateTableStatus)
		protected.DELETE("/tables/:table_id", middlewares.RequireRole("admin", "manager"), tableCtrl.DeleteTable)
		protected.GET("/tables/:table_id/session", sessionCtrl.GetActiveSessionByTable)
		protected.POST("/tables/:table_id/sessions", sessionCtrl.OpenSession)

		protected.GET("/products", productCtrl.GetAllProducts)
		protected.POST("/products", middlewares.RequireRole("admin", "manager"), productCtrl.CreateProduct)
		protected.GET("/products/:product_id", productCtrl.GetProductByID)

		protected.GET("/sessions", sessionCtrl.GetAllSessions)
		protected.GET("/sessions/:session_id", sessionCtrl.GetSessionByID)
		protected.POST("/sessions/:session_id/close", sessionCtrl.CloseSession)
		protected.POST("/sessions/:session_id/transfer", sessionCtrl.TransferSession)

		protected.GET("/sessions/:session_id/orders", orderCtrl.GetSessionOrders)
		protected.POST("/sessions/:session_id/orders", orderCtrl.CreateOrder)
		protected.GET("/sessions/:session_id/subtotal", orderCtrl.GetSessionSubtotal)
		protected.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)

		protected.POST("/sessions/:session_id/bill", billCtrl.CreateBill)
		protected.GET("/bills/:bill_id", billCtrl.GetBillByID)
		protected.POST("/bills/:bill_id/split/equal", billCtrl.SplitEqual)
		protected.POST("/bills/:bill_id/split/items", billCtrl.SplitByItems)
		protected.POST("/bills/:bill_id/payments", billCtrl.AddPayment)
		protected.POST("/bills/:bill_id/close", billCtrl.CloseBill)

		protected.GET("/ws/dashboard", eventsCtrl.DashboardSocket)
	}

	return r
}
