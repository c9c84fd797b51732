package customer

import (
	"context"
)

// Repository 客户仓储接口
// 设计说明：
// 1. 接口定义在domain层（依赖倒置原则），具体实现在infrastructure层
// 2. 删除客户的级联（订单、评价）由应用层用例在同一事务内编排
type Repository interface {
	// Create 创建客户，邮箱已存在返回ErrEmailDuplicate
	Create(ctx context.Context, customer *Customer) error

	// FindByID 根据ID查找客户，不存在返回ErrCustomerNotFound
	FindByID(ctx context.Context, id uint) (*Customer, error)

	// FindByEmail 根据邮箱查找客户
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// Update 更新客户信息
	Update(ctx context.Context, customer *Customer) error

	// Delete 删除客户（物理删除，级联由用例编排）
	Delete(ctx context.Context, id uint) error
}
