package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/catalog"
	"github.com/xiebiao/bookshop/internal/domain/report"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// reportRepository 报表查询实现(MySQL)
// 设计说明:
// 1. 只读联表查询,按需计算,不落地中间表
// 2. SQL限定在MySQL与SQLite共有的语法(测试用SQLite内存库)
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建报表查询仓储
func NewReportRepository(db *gorm.DB) report.Repository {
	return &reportRepository{db: db}
}

// BookDetail 单本图书详情(含出版社名、分类名)
// LEFT JOIN:出版社/分类被删除置空后仍能返回图书本身
func (r *reportRepository) BookDetail(ctx context.Context, bookID uint) (*report.BookDetail, error) {
	var row report.BookDetail
	err := getDB(ctx, r.db).Model(&BookModel{}).
		Select(`books.id AS book_id,
			books.isbn,
			books.title,
			books.price_cents,
			books.stock,
			COALESCE(publishers.name, '') AS publisher_name,
			COALESCE(categories.name, '') AS category_name`).
		Joins("LEFT JOIN publishers ON publishers.id = books.publisher_id").
		Joins("LEFT JOIN categories ON categories.id = books.category_id").
		Where("books.id = ?", bookID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书详情失败")
	}
	return &row, nil
}

// AuthorBibliography 作者作品目录
func (r *reportRepository) AuthorBibliography(ctx context.Context, authorID uint) ([]*report.AuthorBibliographyRow, error) {
	var rows []*report.AuthorBibliographyRow
	err := getDB(ctx, r.db).Model(&AuthorModel{}).
		Select(`authors.id AS author_id,
			authors.first_name,
			authors.last_name,
			books.title,
			books.isbn,
			books.publication_date`).
		Joins("JOIN book_authors ON book_authors.author_id = authors.id").
		Joins("JOIN books ON books.id = book_authors.book_id").
		Where("authors.id = ?", authorID).
		Order("authors.last_name ASC, authors.first_name ASC, books.publication_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询作者作品目录失败")
	}
	return rows, nil
}

// CustomerOrderHistory 客户订单历史(含每单明细条数)
func (r *reportRepository) CustomerOrderHistory(ctx context.Context, customerID uint) ([]*report.CustomerOrderRow, error) {
	var rows []*report.CustomerOrderRow
	err := getDB(ctx, r.db).Model(&OrderModel{}).
		Select(`orders.id AS order_id,
			orders.order_no,
			orders.created_at AS order_date,
			orders.status,
			orders.total_cents,
			COUNT(order_items.id) AS item_count`).
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.customer_id = ?", customerID).
		Group("orders.id, orders.order_no, orders.created_at, orders.status, orders.total_cents").
		Order("orders.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询客户订单历史失败")
	}
	return rows, nil
}

// BookRatingSummaries 全部有评价图书的评分汇总
// ROUND(AVG(rating), 2)在MySQL与SQLite下行为一致
func (r *reportRepository) BookRatingSummaries(ctx context.Context) ([]*report.BookRatingSummary, error) {
	var rows []*report.BookRatingSummary
	err := getDB(ctx, r.db).Model(&BookModel{}).
		Select(`books.id AS book_id,
			books.title,
			COUNT(reviews.id) AS review_count,
			ROUND(AVG(reviews.rating), 2) AS avg_rating`).
		Joins("JOIN reviews ON reviews.book_id = books.id").
		Group("books.id, books.title").
		Order("avg_rating DESC, review_count DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书评分汇总失败")
	}
	return rows, nil
}

// InventoryStatus 全部图书库存状态
// 标签映射在Go侧完成(catalog.StockLabel),避免各数据库CASE语法差异
func (r *reportRepository) InventoryStatus(ctx context.Context) ([]*report.InventoryStatusRow, error) {
	var models []BookModel
	err := getDB(ctx, r.db).
		Select("id, title, stock").
		Order("stock ASC, title ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询库存状态失败")
	}

	rows := make([]*report.InventoryStatusRow, len(models))
	for i := range models {
		rows[i] = &report.InventoryStatusRow{
			BookID:     models[i].ID,
			Title:      models[i].Title,
			Stock:      models[i].Stock,
			StockLabel: catalog.StockLabel(models[i].Stock),
		}
	}
	return rows, nil
}
