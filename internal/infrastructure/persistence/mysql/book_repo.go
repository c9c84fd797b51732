package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/catalog"
	"github.com/xiebiao/bookshop/internal/domain/order"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/catalog定义的BookRepository接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 数据库特定错误(如ISBN重复)转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) catalog.BookRepository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *catalog.Book) error {
	model := toBookModel(b)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return catalog.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 回填自增ID与时间戳
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*catalog.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*catalog.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where("isbn = ?", isbn).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Update 更新图书信息(全字段覆盖)
func (r *bookRepository) Update(ctx context.Context, b *catalog.Book) error {
	model := toBookModel(b)
	model.ID = b.ID
	model.CreatedAt = b.CreatedAt

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return catalog.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书(物理删除,级联清理由应用层事务负责)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrBookNotFound
	}
	return nil
}

// Search 多条件搜索图书
// 业务规则:
// 1. 所有条件取AND,零值条件不参与过滤
// 2. 作者名为模糊匹配,命中first_name或last_name即可
// 3. 结果按书名升序,保证稳定可分页
func (r *bookRepository) Search(ctx context.Context, params catalog.SearchParams) ([]*catalog.Book, error) {
	query := getDB(ctx, r.db).Model(&BookModel{})

	if params.Title != "" {
		query = query.Where("books.title LIKE ?", "%"+params.Title+"%")
	}
	if params.AuthorName != "" {
		pattern := "%" + params.AuthorName + "%"
		query = query.
			Joins("JOIN book_authors ON book_authors.book_id = books.id").
			Joins("JOIN authors ON authors.id = book_authors.author_id").
			Where("authors.first_name LIKE ? OR authors.last_name LIKE ?", pattern, pattern)
	}
	if params.CategoryID != nil {
		query = query.Where("books.category_id = ?", *params.CategoryID)
	}
	if params.MinPriceCents != nil {
		query = query.Where("books.price_cents >= ?", *params.MinPriceCents)
	}
	if params.MaxPriceCents != nil {
		query = query.Where("books.price_cents <= ?", *params.MaxPriceCents)
	}

	var models []BookModel
	err := query.Distinct("books.*").Order("books.title ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "搜索图书失败")
	}

	books := make([]*catalog.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// LockByID 悲观锁查询图书(用于订单加项的库存校验)
// 必须在TxManager.Transaction内调用,锁随事务提交/回滚释放
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*catalog.Book, error) {
	db := getDB(ctx, r.db)

	var model BookModel
	err := db.Clauses(lockingClause(db)...).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}
	return toBookEntity(&model), nil
}

// UpdateStock 更新库存(原子操作)
// UPDATE books SET stock = stock + delta WHERE id = ? AND stock + delta >= 0
// RowsAffected为0时区分"图书不存在"与"库存不足"
func (r *bookRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	db := getDB(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("stock + ? >= 0", delta). // 防止库存为负
		Update("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		var model BookModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
		// 图书存在,说明是库存不足
		return order.ErrInsufficientStock
	}
	return nil
}

// ClearPublisher 将指定出版社下所有图书的publisher_id置空
// 在删除出版社的事务中调用
func (r *bookRepository) ClearPublisher(ctx context.Context, publisherID uint) error {
	err := getDB(ctx, r.db).Model(&BookModel{}).
		Where("publisher_id = ?", publisherID).
		Update("publisher_id", nil).Error
	if err != nil {
		return apperrors.Wrap(err, "清除图书出版社关联失败")
	}
	return nil
}

// ClearCategory 将指定分类下所有图书的category_id置空
func (r *bookRepository) ClearCategory(ctx context.Context, categoryID uint) error {
	err := getDB(ctx, r.db).Model(&BookModel{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).Error
	if err != nil {
		return apperrors.Wrap(err, "清除图书分类关联失败")
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *catalog.Book) *BookModel {
	return &BookModel{
		ISBN:            b.ISBN,
		Title:           b.Title,
		Description:     b.Description,
		PublicationDate: b.PublicationDate,
		PriceCents:      b.PriceCents,
		Pages:           b.Pages,
		Stock:           b.Stock,
		PublisherID:     b.PublisherID,
		CategoryID:      b.CategoryID,
	}
}

func toBookEntity(model *BookModel) *catalog.Book {
	return &catalog.Book{
		ID:              model.ID,
		ISBN:            model.ISBN,
		Title:           model.Title,
		Description:     model.Description,
		PublicationDate: model.PublicationDate,
		PriceCents:      model.PriceCents,
		Pages:           model.Pages,
		Stock:           model.Stock,
		PublisherID:     model.PublisherID,
		CategoryID:      model.CategoryID,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
