//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 运行 `wire gen ./cmd/api` 生成wire_gen.go;
// main.go当前使用等价的手动组装,两者保持同一依赖图。

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
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
	"github.com/xiebiao/bookshop/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	provideLogger,
	provideJWTManager,
	provideEventPublisher,
	provideReportCache,
	redis.NewSessionStore,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewBookRepository,
	mysql.NewAuthorRepository,
	mysql.NewPublisherRepository,
	mysql.NewCategoryRepository,
	mysql.NewCustomerRepository,
	mysql.NewOrderRepository,
	mysql.NewReviewRepository,
	mysql.NewReportRepository,
	mysql.NewTxManager,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	catalog.NewService,
	customer.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appcatalog.NewCreateBookUseCase,
	appcatalog.NewDeleteBookUseCase,
	appcatalog.NewSearchBooksUseCase,
	appcatalog.NewManageCatalogUseCase,
	appcustomer.NewRegisterUseCase,
	appcustomer.NewLoginUseCase,
	appcustomer.NewLogoutUseCase,
	appcustomer.NewManageCustomerUseCase,
	apporder.NewPlaceOrderUseCase,
	apporder.NewAddOrderItemUseCase,
	apporder.NewUpdateStatusUseCase,
	apporder.NewListOrdersUseCase,
	appreview.NewAddReviewUseCase,
	appreview.NewListBookReviewsUseCase,
	appreport.NewReportsUseCase,
)

// interfaceSet 接口层依赖
var interfaceSet = wire.NewSet(
	middleware.NewAuthMiddleware,
	handler.NewCatalogHandler,
	handler.NewCustomerHandler,
	handler.NewOrderHandler,
	handler.NewReviewHandler,
	handler.NewReportHandler,
)

// provideLogger 从配置创建zap日志器
func provideLogger(cfg *config.Config) *zap.Logger {
	return logger.New(cfg.Log.Level, cfg.Log.Format)
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideEventPublisher 从配置创建事件发布器(未启用MQ时为No-op)
func provideEventPublisher(cfg *config.Config) (mq.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return mq.NewNopPublisher(), nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
}

// provideReportCache 从配置创建报表缓存
func provideReportCache(client *goredis.Client, cfg *config.Config) *redis.ReportCache {
	return redis.NewReportCache(client, cfg.Report.CacheTTL)
}

// InitializeApp 初始化整个应用,返回配置好的Gin引擎
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
		newRouter,
	)
	return nil, nil
}
