package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/bookshop/internal/domain/catalog"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/order"
)

// setupTestDB 创建SQLite内存库并建表
// 限制为单连接:内存库按连接隔离,连接池>1会导致事务看不到已建的表
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return db
}

// seedBookEntity 构造图书实体(不落库)
func seedBookEntity(isbn, title string, priceCents int64, stock int) *catalog.Book {
	return catalog.NewBook(isbn, title, "", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), priceCents, 100, stock, nil, nil)
}

// seedBook 插入一本测试图书
func seedBook(t *testing.T, db *gorm.DB, isbn, title string, priceCents int64, stock int) *catalog.Book {
	t.Helper()

	b := seedBookEntity(isbn, title, priceCents, stock)
	require.NoError(t, NewBookRepository(db).Create(context.Background(), b))
	return b
}

// mustDate 解析YYYY-MM-DD,仅用于测试夹具
func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// seedCustomer 插入一个测试客户
func seedCustomer(t *testing.T, db *gorm.DB, email string) *customer.Customer {
	t.Helper()

	c := &customer.Customer{
		Email:        email,
		PasswordHash: "$2a$12$fakehashfortests",
		FirstName:    "Test",
		LastName:     "Customer",
		RegisteredAt: time.Now(),
	}
	require.NoError(t, NewCustomerRepository(db).Create(context.Background(), c))
	return c
}

// seedOrder 插入一个测试订单
func seedOrder(t *testing.T, db *gorm.DB, customerID uint) *order.Order {
	t.Helper()

	o := order.NewOrder(order.GenerateOrderNo(), customerID, "addr", "addr", "card")
	require.NoError(t, NewOrderRepository(db).Create(context.Background(), o))
	return o
}
