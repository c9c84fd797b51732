package catalog

import (
	"context"
)

// SearchParams 图书搜索参数
// 每个条件均可选:指针/零值表示不应用该过滤条件,全部条件取逻辑与
type SearchParams struct {
	Title         string // 书名子串匹配
	AuthorName    string // 作者姓名子串匹配(名或姓)
	CategoryID    *uint  // 分类精确匹配
	MinPriceCents *int64 // 价格下限(含)
	MaxPriceCents *int64 // 价格上限(含)
}

// BookRepository 图书仓储接口(依赖倒置)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 所有方法都支持通过context传递事务
type BookRepository interface {
	// Create 创建图书,ISBN重复返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除)
	// 删除守卫(在途订单检查)由用例在同一事务内先行执行
	Delete(ctx context.Context, id uint) error

	// Search 组合条件搜索,结果去重并按书名升序排列
	Search(ctx context.Context, params SearchParams) ([]*Book, error)

	// LockByID 悲观锁查询图书(SELECT FOR UPDATE)
	// 订单流程中锁定库存行,防止并发超卖
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateStock 原子更新库存,delta为负表示扣减
	// 扣减导致负库存时返回ErrInvalidStock(调用方应先经LockByID检查并转换为库存不足错误)
	UpdateStock(ctx context.Context, id uint, delta int) error

	// ClearPublisher 将引用指定出版社的图书PublisherID置空
	ClearPublisher(ctx context.Context, publisherID uint) error

	// ClearCategory 将引用指定分类的图书CategoryID置空
	ClearCategory(ctx context.Context, categoryID uint) error
}

// AuthorRepository 作者仓储接口
type AuthorRepository interface {
	// Create 创建作者,(姓名+出生日期)重复返回ErrAuthorDuplicate
	Create(ctx context.Context, author *Author) error

	FindByID(ctx context.Context, id uint) (*Author, error)
	Update(ctx context.Context, author *Author) error

	// Delete 删除作者(关联行的级联删除由用例在同一事务内执行)
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context) ([]*Author, error)

	// Assign 建立图书-作者关联
	Assign(ctx context.Context, link BookAuthor) error

	// Unassign 解除图书-作者关联
	Unassign(ctx context.Context, bookID, authorID uint) error

	// DeleteLinksByAuthor 删除作者的全部关联行(删除作者时级联)
	DeleteLinksByAuthor(ctx context.Context, authorID uint) error

	// DeleteLinksByBook 删除图书的全部关联行(删除图书时级联)
	DeleteLinksByBook(ctx context.Context, bookID uint) error
}

// PublisherRepository 出版社仓储接口
type PublisherRepository interface {
	Create(ctx context.Context, publisher *Publisher) error
	FindByID(ctx context.Context, id uint) (*Publisher, error)
	Update(ctx context.Context, publisher *Publisher) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*Publisher, error)
}

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	// Create 创建分类,分类名重复返回ErrCategoryDuplicate
	Create(ctx context.Context, category *Category) error

	FindByID(ctx context.Context, id uint) (*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*Category, error)

	// ClearParent 将指定分类的全部子分类ParentID置空(删除父分类时)
	ClearParent(ctx context.Context, parentID uint) error
}
