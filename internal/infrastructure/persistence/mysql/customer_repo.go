package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/customer"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// customerRepository 客户仓储实现(MySQL)
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓储
func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	model := toCustomerModel(c)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		// Email唯一索引冲突
		if isDuplicateError(err) {
			return customer.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建客户失败")
	}

	c.ID = model.ID
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	var model CustomerModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}
	return toCustomerEntity(&model), nil
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var model CustomerModel
	err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}
	return toCustomerEntity(&model), nil
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	model := toCustomerModel(c)
	model.ID = c.ID

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return customer.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "更新客户失败")
	}
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除客户
// 注意:该客户的订单与评价由应用层在同一事务中先行级联删除
func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&CustomerModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除客户失败")
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

func toCustomerModel(c *customer.Customer) *CustomerModel {
	return &CustomerModel{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Phone:        c.Phone,
		Address:      c.Address,
		City:         c.City,
		Country:      c.Country,
		RegisteredAt: c.RegisteredAt,
		LastLoginAt:  c.LastLoginAt,
	}
}

func toCustomerEntity(model *CustomerModel) *customer.Customer {
	return &customer.Customer{
		ID:           model.ID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		Phone:        model.Phone,
		Address:      model.Address,
		City:         model.City,
		Country:      model.Country,
		RegisteredAt: model.RegisteredAt,
		LastLoginAt:  model.LastLoginAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
