package review

import (
	"context"
)

// Repository 评价仓储接口
type Repository interface {
	// Create 创建评价,(CustomerID, BookID)重复返回ErrDuplicateReview
	Create(ctx context.Context, review *Review) error

	// FindByID 根据ID查找评价
	FindByID(ctx context.Context, id uint) (*Review, error)

	// ListByBookID 查询图书的全部评价(按创建时间降序)
	ListByBookID(ctx context.Context, bookID uint) ([]*Review, error)

	// DeleteByBookID 删除图书的全部评价(删除图书时级联)
	DeleteByBookID(ctx context.Context, bookID uint) error

	// DeleteByCustomerID 删除客户的全部评价(删除客户时级联)
	DeleteByCustomerID(ctx context.Context, customerID uint) error
}
