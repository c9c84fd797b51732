package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（生产环境应使用版本化迁移脚本）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// 将驱动层的唯一索引冲突统一翻译为gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// AutoMigrate 自动迁移表结构
// 导出供测试使用(测试用SQLite内存库建表)
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&PublisherModel{},
		&AuthorModel{},
		&CategoryModel{},
		&BookModel{},
		&BookAuthorModel{},
		&CustomerModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ReviewModel{},
	)
}

// =========================================
// GORM数据模型
// 设计说明:
// 1. infrastructure层的数据模型,包含GORM tag;domain层实体不依赖GORM
// 2. Repository负责两者之间的转换
// 3. 级联与置空语义由应用层事务脚本显式执行,不依赖数据库触发器
//    (外键行为对调用方可见、可测试)
// =========================================

// PublisherModel GORM出版社模型
type PublisherModel struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:200;not null"`
	ContactEmail string    `gorm:"size:100"`
	ContactPhone string    `gorm:"size:30"`
	Address      string    `gorm:"size:255"`
	FoundedYear  int       `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (PublisherModel) TableName() string {
	return "publishers"
}

// AuthorModel GORM作者模型
// (first_name, last_name, birth_date)组合唯一
type AuthorModel struct {
	ID          uint      `gorm:"primaryKey"`
	FirstName   string    `gorm:"uniqueIndex:idx_author_identity;size:100;not null"`
	LastName    string    `gorm:"uniqueIndex:idx_author_identity;size:100;not null"`
	BirthDate   time.Time `gorm:"uniqueIndex:idx_author_identity"`
	Nationality string    `gorm:"size:60"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (AuthorModel) TableName() string {
	return "authors"
}

// CategoryModel GORM分类模型(自引用树)
type CategoryModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:100;not null"`
	Description string `gorm:"size:255"`
	ParentID    *uint  `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CategoryModel) TableName() string {
	return "categories"
}

// BookModel GORM图书模型
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. ISBN唯一索引防止重复
// 3. PublisherID/CategoryID可空:被引用方删除时置空
type BookModel struct {
	ID              uint      `gorm:"primaryKey"`
	ISBN            string    `gorm:"uniqueIndex;size:20;not null"`
	Title           string    `gorm:"index;size:200;not null"`
	Description     string    `gorm:"type:text"`
	PublicationDate time.Time
	PriceCents      int64     `gorm:"index;not null"`
	Pages           int       `gorm:"not null"`
	Stock           int       `gorm:"not null;default:0"`
	PublisherID     *uint     `gorm:"index"`
	CategoryID      *uint     `gorm:"index"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

func (BookModel) TableName() string {
	return "books"
}

// BookAuthorModel GORM图书-作者关联模型(复合主键)
type BookAuthorModel struct {
	BookID   uint   `gorm:"primaryKey;autoIncrement:false"`
	AuthorID uint   `gorm:"primaryKey;autoIncrement:false"`
	Role     string `gorm:"size:50"`
}

func (BookAuthorModel) TableName() string {
	return "book_authors"
}

// CustomerModel GORM客户模型
type CustomerModel struct {
	ID           uint       `gorm:"primaryKey"`
	Email        string     `gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string     `gorm:"size:255;not null"`
	FirstName    string     `gorm:"size:100"`
	LastName     string     `gorm:"size:100"`
	Phone        string     `gorm:"size:30"`
	Address      string     `gorm:"size:255"`
	City         string     `gorm:"size:100"`
	Country      string     `gorm:"size:100"`
	RegisteredAt time.Time
	LastLoginAt  *time.Time
	UpdatedAt    time.Time
}

func (CustomerModel) TableName() string {
	return "customers"
}

// OrderModel GORM订单模型
// 1. 与OrderItemModel是一对多关系
// 2. OrderNo唯一索引(业务主键)
// 3. TotalCents是派生字段,只通过AddItem流程增量更新
type OrderModel struct {
	ID              uint             `gorm:"primaryKey"`
	OrderNo         string           `gorm:"uniqueIndex;size:32;not null"`
	CustomerID      uint             `gorm:"index;not null"`
	TotalCents      int64            `gorm:"not null;default:0"`
	Status          int              `gorm:"index;type:tinyint;default:1"`
	ShippingAddress string           `gorm:"size:255"`
	BillingAddress  string           `gorm:"size:255"`
	PaymentMethod   string           `gorm:"size:50"`
	TrackingNumber  string           `gorm:"size:64"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time        `gorm:"index"`
	UpdatedAt       time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// UnitPriceCents记录下单时价格快照
type OrderItemModel struct {
	ID             uint    `gorm:"primaryKey"`
	OrderID        uint    `gorm:"index;not null"`
	BookID         uint    `gorm:"index;not null"`
	Quantity       int     `gorm:"not null"`
	UnitPriceCents int64   `gorm:"not null"`
	DiscountPct    float64 `gorm:"not null;default:0"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// ReviewModel GORM评价模型
// (customer_id, book_id)组合唯一:每个客户对每本书只能评价一次
type ReviewModel struct {
	ID         uint   `gorm:"primaryKey"`
	BookID     uint   `gorm:"uniqueIndex:idx_customer_book;index;not null"`
	CustomerID uint   `gorm:"uniqueIndex:idx_customer_book;not null"`
	Rating     int    `gorm:"not null"`
	Comment    string `gorm:"type:text"`
	CreatedAt  time.Time
}

func (ReviewModel) TableName() string {
	return "reviews"
}
