package order

import (
	"context"
)

// Repository 订单仓储接口(依赖倒置)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 支持事务操作(通过context传递事务)
type Repository interface {
	// Create 创建订单(此时不含明细,明细由AddItem逐条追加)
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(包含订单明细)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByOrderNo 根据订单号查找订单
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)

	// LockByID 悲观锁查询订单(不含明细)
	// 追加明细时锁定订单行,保证总额增量更新不基于过期中间态
	LockByID(ctx context.Context, id uint) (*Order, error)

	// AddItem 插入一条订单明细
	AddItem(ctx context.Context, item *OrderItem) error

	// IncrTotal 原子增加订单总金额(派生字段的增量维护)
	IncrTotal(ctx context.Context, orderID uint, deltaCents int64) error

	// Update 更新订单(状态、运单号)
	Update(ctx context.Context, order *Order) error

	// ListByCustomerID 查询客户的订单列表(分页,含明细)
	ListByCustomerID(ctx context.Context, customerID uint, page, pageSize int) ([]*Order, int64, error)

	// CountActiveItemsByBook 统计引用指定图书且属于在途订单
	// (Pending/Processing/Shipped)的明细数量,图书删除守卫使用
	CountActiveItemsByBook(ctx context.Context, bookID uint) (int64, error)

	// DeleteByCustomerID 删除客户的全部订单及明细(删除客户时级联)
	DeleteByCustomerID(ctx context.Context, customerID uint) error
}
