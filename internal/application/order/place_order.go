package order

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// PlaceOrderUseCase 下单用例(创建空订单)
// 业务规则:
// 1. 新订单不含明细,总金额为0,状态为Pending
// 2. 明细通过AddOrderItemUseCase逐条追加
// 3. 客户不存在时返回NotFound
type PlaceOrderUseCase struct {
	orderRepo    order.Repository
	customerRepo customer.Repository
	txManager    *mysql.TxManager
	publisher    mq.EventPublisher
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(
	orderRepo order.Repository,
	customerRepo customer.Repository,
	txManager *mysql.TxManager,
	publisher mq.EventPublisher,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
		publisher:    publisher,
	}
}

// PlaceOrderRequest 下单请求DTO
type PlaceOrderRequest struct {
	CustomerID      uint   // 客户ID(从JWT中提取)
	ShippingAddress string `json:"shipping_address"`
	BillingAddress  string `json:"billing_address"`
	PaymentMethod   string `json:"payment_method"`
}

// PlaceOrderResponse 下单响应DTO
type PlaceOrderResponse struct {
	OrderID    uint   `json:"order_id"`
	OrderNo    string `json:"order_no"`
	TotalCents int64  `json:"total_cents"`
	Status     string `json:"status"`
	OrderDate  string `json:"order_date"`
}

// Execute 执行下单用例
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	// 1. 客户必须存在
	if _, err := uc.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	// 2. 创建空订单
	o := order.NewOrder(order.GenerateOrderNo(), req.CustomerID,
		req.ShippingAddress, req.BillingAddress, req.PaymentMethod)

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		return uc.orderRepo.Create(txCtx, o)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersPlacedTotal.Inc()

	// 3. 发布下单事件(尽力而为,失败不影响主流程)
	_ = uc.publisher.Publish(ctx, mq.EventOrderPlaced, map[string]interface{}{
		"order_id":    o.ID,
		"order_no":    o.OrderNo,
		"customer_id": o.CustomerID,
	})

	return &PlaceOrderResponse{
		OrderID:    o.ID,
		OrderNo:    o.OrderNo,
		TotalCents: o.TotalCents,
		Status:     o.Status.String(),
		OrderDate:  o.OrderDate.Format(time.RFC3339),
	}, nil
}
