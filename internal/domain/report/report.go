package report

import (
	"context"
	"time"
)

// 报表投影(只读查询)
// 设计说明:
// 1. 按需计算,不做物化存储
// 2. 行类型即查询结果,不是聚合根,无业务行为
// 3. Repository由infrastructure层用SQL联表实现

// BookDetail 图书详情行:图书+出版社名+分类名
type BookDetail struct {
	BookID        uint
	ISBN          string
	Title         string
	PriceCents    int64
	Stock         int
	PublisherName string // 出版社已删除时为空
	CategoryName  string // 分类已删除时为空
}

// AuthorBibliographyRow 作者作品目录行
type AuthorBibliographyRow struct {
	AuthorID        uint
	FirstName       string
	LastName        string
	Title           string
	ISBN            string
	PublicationDate time.Time
}

// CustomerOrderRow 客户订单历史行
type CustomerOrderRow struct {
	OrderID    uint
	OrderNo    string
	OrderDate  time.Time
	Status     int
	TotalCents int64
	ItemCount  int64
}

// BookRatingSummary 图书评分汇总行
type BookRatingSummary struct {
	BookID      uint    `json:"book_id"`
	Title       string  `json:"title"`
	ReviewCount int64   `json:"review_count"`
	AvgRating   float64 `json:"avg_rating"` // 保留2位小数
}

// InventoryStatusRow 库存状态行
type InventoryStatusRow struct {
	BookID     uint
	Title      string
	Stock      int
	StockLabel string // Out of Stock / Low Stock / Medium Stock / Good Stock
}

// Repository 报表查询接口
type Repository interface {
	// BookDetail 单本图书详情(含出版社名、分类名)
	BookDetail(ctx context.Context, bookID uint) (*BookDetail, error)

	// AuthorBibliography 作者作品目录
	// 排序:作者姓、名升序,出版日期降序
	AuthorBibliography(ctx context.Context, authorID uint) ([]*AuthorBibliographyRow, error)

	// CustomerOrderHistory 客户订单历史(含每单明细条数),按下单时间降序
	CustomerOrderHistory(ctx context.Context, customerID uint) ([]*CustomerOrderRow, error)

	// BookRatingSummaries 全部有评价图书的评分汇总
	// 排序:平均分降序,评价数降序
	BookRatingSummaries(ctx context.Context) ([]*BookRatingSummary, error)

	// InventoryStatus 全部图书库存状态,按库存升序
	InventoryStatus(ctx context.Context) ([]*InventoryStatusRow, error)
}
