package customer

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/customer"
)

// RegisterUseCase 客户注册用例
type RegisterUseCase struct {
	customerSvc customer.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(customerSvc customer.Service) *RegisterUseCase {
	return &RegisterUseCase{customerSvc: customerSvc}
}

// RegisterRequest 注册请求DTO
type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// RegisterResponse 注册响应DTO
type RegisterResponse struct {
	CustomerID   uint   `json:"customer_id"`
	Email        string `json:"email"`
	RegisteredAt string `json:"registered_at"`
}

// Execute 执行注册
// 邮箱格式、密码强度校验与bcrypt哈希由domain Service完成
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	c, err := uc.customerSvc.Register(ctx, req.Email, req.Password,
		req.FirstName, req.LastName, req.Phone, req.Address, req.City, req.Country)
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		CustomerID:   c.ID,
		Email:        c.Email,
		RegisteredAt: c.RegisteredAt.Format(time.RFC3339),
	}, nil
}
