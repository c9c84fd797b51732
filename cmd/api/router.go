package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// newRouter 创建Gin引擎并注册全部路由
func newRouter(
	cfg *config.Config,
	zlog *zap.Logger,
	catalogHandler *handler.CatalogHandler,
	customerHandler *handler.CustomerHandler,
	orderHandler *handler.OrderHandler,
	reviewHandler *handler.ReviewHandler,
	reportHandler *handler.ReportHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zlog))

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档,访问 /swagger/index.html
	// 生产环境建议禁用或加访问控制
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 客户模块
		customers := v1.Group("/customers")
		{
			customers.POST("/register", customerHandler.Register)
			customers.POST("/login", customerHandler.Login)

			me := customers.Group("")
			me.Use(authMiddleware.RequireAuth())
			{
				me.POST("/logout", customerHandler.Logout)
				me.GET("/me", customerHandler.GetProfile)
				me.PUT("/me", customerHandler.UpdateProfile)
				me.DELETE("/me", customerHandler.DeleteAccount)
			}
		}

		// 图书模块(搜索与详情公开,维护需要登录)
		books := v1.Group("/books")
		{
			books.GET("", catalogHandler.SearchBooks)
			books.GET("/:id", catalogHandler.GetBook)
			books.GET("/:id/reviews", reviewHandler.ListBookReviews)

			books.POST("", authMiddleware.RequireAuth(), catalogHandler.CreateBook)
			books.PUT("/:id", authMiddleware.RequireAuth(), catalogHandler.UpdateBook)
			books.DELETE("/:id", authMiddleware.RequireAuth(), catalogHandler.DeleteBook)
			books.POST("/:id/reviews", authMiddleware.RequireAuth(), reviewHandler.AddReview)
		}

		// 出版社模块
		publishers := v1.Group("/publishers")
		{
			publishers.GET("", catalogHandler.ListPublishers)
			publishers.GET("/:id", catalogHandler.GetPublisher)
			publishers.POST("", authMiddleware.RequireAuth(), catalogHandler.CreatePublisher)
			publishers.PUT("/:id", authMiddleware.RequireAuth(), catalogHandler.UpdatePublisher)
			publishers.DELETE("/:id", authMiddleware.RequireAuth(), catalogHandler.DeletePublisher)
		}

		// 作者模块
		authors := v1.Group("/authors")
		{
			authors.GET("", catalogHandler.ListAuthors)
			authors.GET("/:id", catalogHandler.GetAuthor)
			authors.POST("", authMiddleware.RequireAuth(), catalogHandler.CreateAuthor)
			authors.PUT("/:id", authMiddleware.RequireAuth(), catalogHandler.UpdateAuthor)
			authors.DELETE("/:id", authMiddleware.RequireAuth(), catalogHandler.DeleteAuthor)
		}

		// 图书-作者关联
		bookAuthors := v1.Group("/book-authors")
		bookAuthors.Use(authMiddleware.RequireAuth())
		{
			bookAuthors.POST("", catalogHandler.AssignAuthor)
			bookAuthors.DELETE("/:book_id/:author_id", catalogHandler.UnassignAuthor)
		}

		// 分类模块
		categories := v1.Group("/categories")
		{
			categories.GET("", catalogHandler.ListCategories)
			categories.GET("/:id", catalogHandler.GetCategory)
			categories.POST("", authMiddleware.RequireAuth(), catalogHandler.CreateCategory)
			categories.PUT("/:id/parent", authMiddleware.RequireAuth(), catalogHandler.MoveCategory)
			categories.DELETE("/:id", authMiddleware.RequireAuth(), catalogHandler.DeleteCategory)
		}

		// 订单模块(全部需要登录)
		orders := v1.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("", orderHandler.ListOrders)
			orders.POST("/:id/items", orderHandler.AddOrderItem)
			orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
		}

		// 报表模块
		reports := v1.Group("/reports")
		{
			reports.GET("/books/:id", reportHandler.BookDetail)
			reports.GET("/authors/:id/bibliography", reportHandler.AuthorBibliography)
			reports.GET("/ratings", reportHandler.BookRatingSummaries)
			reports.GET("/inventory", reportHandler.InventoryStatus)
			reports.GET("/orders/history", authMiddleware.RequireAuth(), reportHandler.CustomerOrderHistory)
		}
	}

	return r
}
