package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	appcatalog "github.com/xiebiao/bookshop/internal/application/catalog"
	appcustomer "github.com/xiebiao/bookshop/internal/application/customer"
	apporder "github.com/xiebiao/bookshop/internal/application/order"
	appreport "github.com/xiebiao/bookshop/internal/application/report"
	appreview "github.com/xiebiao/bookshop/internal/application/review"
	"github.com/xiebiao/bookshop/internal/domain/catalog"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// main 主程序入口
// 手动依赖注入组装(wire.go提供等价的Wire注入器)
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	zlog := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer zlog.Sync()

	zlog.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
	)

	// 3. 初始化指标
	metrics.Init()

	// 4. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		zlog.Fatal("初始化数据库失败", zap.Error(err))
	}

	// 5. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		zlog.Fatal("初始化Redis失败", zap.Error(err))
	}

	// 6. 初始化事件发布器(未启用MQ时降级为No-op)
	var publisher mq.EventPublisher
	if cfg.MQ.Enabled {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			zlog.Fatal("初始化消息队列失败", zap.Error(err))
		}
		publisher = p
	} else {
		publisher = mq.NewNopPublisher()
	}
	defer publisher.Close()

	// 7. 依赖注入（手动组装）
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	bookRepo := mysql.NewBookRepository(db)
	authorRepo := mysql.NewAuthorRepository(db)
	publisherRepo := mysql.NewPublisherRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	customerRepo := mysql.NewCustomerRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	reportRepo := mysql.NewReportRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	reportCache := redis.NewReportCache(redisClient, cfg.Report.CacheTTL)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	catalogService := catalog.NewService(bookRepo, authorRepo, publisherRepo, categoryRepo)
	customerService := customer.NewService(customerRepo)

	// 应用层
	createBookUseCase := appcatalog.NewCreateBookUseCase(catalogService)
	deleteBookUseCase := appcatalog.NewDeleteBookUseCase(bookRepo, authorRepo, orderRepo, reviewRepo, txManager)
	searchBooksUseCase := appcatalog.NewSearchBooksUseCase(bookRepo)
	manageCatalogUseCase := appcatalog.NewManageCatalogUseCase(catalogService, bookRepo, authorRepo, publisherRepo, categoryRepo, txManager)
	registerUseCase := appcustomer.NewRegisterUseCase(customerService)
	loginUseCase := appcustomer.NewLoginUseCase(customerService, jwtManager, sessionStore)
	logoutUseCase := appcustomer.NewLogoutUseCase(sessionStore)
	manageCustomerUseCase := appcustomer.NewManageCustomerUseCase(customerRepo, orderRepo, reviewRepo, txManager)
	placeOrderUseCase := apporder.NewPlaceOrderUseCase(orderRepo, customerRepo, txManager, publisher)
	addOrderItemUseCase := apporder.NewAddOrderItemUseCase(orderRepo, bookRepo, txManager, publisher)
	updateStatusUseCase := apporder.NewUpdateStatusUseCase(orderRepo, txManager, publisher)
	listOrdersUseCase := apporder.NewListOrdersUseCase(orderRepo)
	addReviewUseCase := appreview.NewAddReviewUseCase(reviewRepo, bookRepo, customerRepo, reportCache)
	listReviewsUseCase := appreview.NewListBookReviewsUseCase(reviewRepo, bookRepo)
	reportsUseCase := appreport.NewReportsUseCase(reportRepo, reportCache)

	// 接口层
	catalogHandler := handler.NewCatalogHandler(createBookUseCase, deleteBookUseCase, searchBooksUseCase, manageCatalogUseCase)
	customerHandler := handler.NewCustomerHandler(registerUseCase, loginUseCase, logoutUseCase, manageCustomerUseCase)
	orderHandler := handler.NewOrderHandler(placeOrderUseCase, addOrderItemUseCase, updateStatusUseCase, listOrdersUseCase)
	reviewHandler := handler.NewReviewHandler(addReviewUseCase, listReviewsUseCase)
	reportHandler := handler.NewReportHandler(reportsUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 8. 初始化Gin引擎并注册路由
	r := newRouter(cfg, zlog, catalogHandler, customerHandler, orderHandler, reviewHandler, reportHandler, authMiddleware)

	// 9. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zlog.Info("服务启动", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zlog.Fatal("启动服务失败", zap.Error(err))
	}
}
