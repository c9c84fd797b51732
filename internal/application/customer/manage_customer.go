package customer

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/review"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
)

// ManageCustomerUseCase 客户资料维护用例
// 删除客户时在同一事务内级联删除其订单(含明细)与评价
type ManageCustomerUseCase struct {
	customerRepo customer.Repository
	orderRepo    order.Repository
	reviewRepo   review.Repository
	txManager    *mysql.TxManager
}

// NewManageCustomerUseCase 创建客户维护用例
func NewManageCustomerUseCase(
	customerRepo customer.Repository,
	orderRepo order.Repository,
	reviewRepo review.Repository,
	txManager *mysql.TxManager,
) *ManageCustomerUseCase {
	return &ManageCustomerUseCase{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		reviewRepo:   reviewRepo,
		txManager:    txManager,
	}
}

// CustomerProfile 客户资料视图
type CustomerProfile struct {
	CustomerID   uint   `json:"customer_id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
	RegisteredAt string `json:"registered_at"`
	LastLoginAt  string `json:"last_login_at,omitempty"`
}

// GetCustomer 查询客户资料
func (uc *ManageCustomerUseCase) GetCustomer(ctx context.Context, id uint) (*CustomerProfile, error) {
	c, err := uc.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProfile(c), nil
}

// UpdateCustomerRequest 资料更新请求DTO(邮箱与密码不在此修改)
type UpdateCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// UpdateCustomer 更新客户资料
func (uc *ManageCustomerUseCase) UpdateCustomer(ctx context.Context, id uint, req UpdateCustomerRequest) (*CustomerProfile, error) {
	c, err := uc.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		c.FirstName = req.FirstName
	}
	if req.LastName != "" {
		c.LastName = req.LastName
	}
	c.UpdateContact(req.Phone, req.Address, req.City, req.Country)
	if err := uc.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toProfile(c), nil
}

// DeleteCustomer 删除客户
// 级联顺序:评价 → 订单明细+订单 → 客户本体,单事务内完成
func (uc *ManageCustomerUseCase) DeleteCustomer(ctx context.Context, id uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.customerRepo.FindByID(txCtx, id); err != nil {
			return err
		}
		if err := uc.reviewRepo.DeleteByCustomerID(txCtx, id); err != nil {
			return err
		}
		if err := uc.orderRepo.DeleteByCustomerID(txCtx, id); err != nil {
			return err
		}
		return uc.customerRepo.Delete(txCtx, id)
	})
}

func toProfile(c *customer.Customer) *CustomerProfile {
	p := &CustomerProfile{
		CustomerID:   c.ID,
		Email:        c.Email,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Phone:        c.Phone,
		Address:      c.Address,
		City:         c.City,
		Country:      c.Country,
		RegisteredAt: c.RegisteredAt.Format(time.RFC3339),
	}
	if c.LastLoginAt != nil {
		p.LastLoginAt = c.LastLoginAt.Format(time.RFC3339)
	}
	return p
}
