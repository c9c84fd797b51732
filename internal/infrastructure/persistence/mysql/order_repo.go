package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/order"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 设计说明:
// 1. 订单与明细两张表,FindByID/List通过Preload加载明细
// 2. TotalCents只通过IncrTotal增量更新,与明细写入在同一事务
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := &OrderModel{
		OrderNo:         o.OrderNo,
		CustomerID:      o.CustomerID,
		TotalCents:      o.TotalCents,
		Status:          int(o.Status),
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		PaymentMethod:   o.PaymentMethod,
		TrackingNumber:  o.TrackingNumber,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	o.OrderDate = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

func (r *orderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").Where("order_no = ?", orderNo).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// LockByID 悲观锁查询订单(不含明细)
// 追加明细与状态变更在锁内进行,避免并发写基于过期状态
func (r *orderRepository) LockByID(ctx context.Context, id uint) (*order.Order, error) {
	db := getDB(ctx, r.db)

	var model OrderModel
	err := db.Clauses(lockingClause(db)...).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "锁定订单失败")
	}
	return toOrderEntity(&model), nil
}

// AddItem 插入一条订单明细(UnitPriceCents为下单时价格快照)
func (r *orderRepository) AddItem(ctx context.Context, item *order.OrderItem) error {
	model := &OrderItemModel{
		OrderID:        item.OrderID,
		BookID:         item.BookID,
		Quantity:       item.Quantity,
		UnitPriceCents: item.UnitPriceCents,
		DiscountPct:    item.DiscountPct,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单明细失败")
	}

	item.ID = model.ID
	return nil
}

// IncrTotal 原子增加订单总金额
// UPDATE orders SET total_cents = total_cents + delta WHERE id = ?
func (r *orderRepository) IncrTotal(ctx context.Context, orderID uint, deltaCents int64) error {
	result := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("id = ?", orderID).
		Update("total_cents", gorm.Expr("total_cents + ?", deltaCents))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单总额失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// Update 更新订单(状态、运单号)
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	result := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":          int(o.Status),
			"tracking_number": o.TrackingNumber,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// ListByCustomerID 查询客户的订单列表(分页,按下单时间降序)
func (r *orderRepository) ListByCustomerID(ctx context.Context, customerID uint, page, pageSize int) ([]*order.Order, int64, error) {
	db := getDB(ctx, r.db)

	var total int64
	if err := db.Model(&OrderModel{}).Where("customer_id = ?", customerID).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	var models []OrderModel
	offset := (page - 1) * pageSize
	err := db.Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// CountActiveItemsByBook 统计引用指定图书且属于在途订单的明细数量
// 在途 = Pending/Processing/Shipped;终态订单不阻止图书删除
func (r *orderRepository) CountActiveItemsByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&OrderItemModel{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.book_id = ?", bookID).
		Where("orders.status IN ?", []int{
			int(order.OrderStatusPending),
			int(order.OrderStatusProcessing),
			int(order.OrderStatusShipped),
		}).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计在途订单明细失败")
	}
	return count, nil
}

// DeleteByCustomerID 删除客户的全部订单及明细(删除客户的事务中调用)
func (r *orderRepository) DeleteByCustomerID(ctx context.Context, customerID uint) error {
	db := getDB(ctx, r.db)

	// 先删明细再删订单,保持引用一致
	err := db.Where("order_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Model(&OrderModel{}).
			Select("id").Where("customer_id = ?", customerID),
	).Delete(&OrderItemModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "删除订单明细失败")
	}

	if err := db.Where("customer_id = ?", customerID).Delete(&OrderModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除订单失败")
	}
	return nil
}

func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(model.Items))
	for i, im := range model.Items {
		items[i] = order.OrderItem{
			ID:             im.ID,
			OrderID:        im.OrderID,
			BookID:         im.BookID,
			Quantity:       im.Quantity,
			UnitPriceCents: im.UnitPriceCents,
			DiscountPct:    im.DiscountPct,
		}
	}

	return &order.Order{
		ID:              model.ID,
		OrderNo:         model.OrderNo,
		CustomerID:      model.CustomerID,
		TotalCents:      model.TotalCents,
		Status:          order.OrderStatus(model.Status),
		ShippingAddress: model.ShippingAddress,
		BillingAddress:  model.BillingAddress,
		PaymentMethod:   model.PaymentMethod,
		TrackingNumber:  model.TrackingNumber,
		Items:           items,
		OrderDate:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
