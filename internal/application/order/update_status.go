package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// UpdateStatusUseCase 订单状态流转用例
// 业务规则:
// 1. 只允许沿Pending→Processing→Shipped→Delivered推进
// 2. 任何非终态可以取消(→Cancelled)
// 3. 终态(Delivered/Cancelled)不允许任何变更
// 4. 发货时可同时写入运单号
type UpdateStatusUseCase struct {
	orderRepo order.Repository
	txManager *mysql.TxManager
	publisher mq.EventPublisher
}

// NewUpdateStatusUseCase 创建状态流转用例
func NewUpdateStatusUseCase(
	orderRepo order.Repository,
	txManager *mysql.TxManager,
	publisher mq.EventPublisher,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		orderRepo: orderRepo,
		txManager: txManager,
		publisher: publisher,
	}
}

// UpdateStatusRequest 状态流转请求DTO
type UpdateStatusRequest struct {
	OrderID        uint
	Status         string  `json:"status"`          // 目标状态名(Pending/Processing/...)
	TrackingNumber *string `json:"tracking_number"` // 非nil时覆盖运单号
}

// UpdateStatusResponse 状态流转响应DTO
type UpdateStatusResponse struct {
	OrderID        uint   `json:"order_id"`
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number"`
}

// Execute 执行状态流转
// 在事务内先锁定订单行再校验流转,避免并发状态变更写覆盖
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, req UpdateStatusRequest) (*UpdateStatusResponse, error) {
	target, ok := order.ParseStatus(req.Status)
	if !ok {
		return nil, order.ErrUnknownStatus
	}

	var (
		resp UpdateStatusResponse
		from order.OrderStatus
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.LockByID(txCtx, req.OrderID)
		if err != nil {
			return err
		}

		from = o.Status
		if err := o.TransitionTo(target); err != nil {
			return err
		}
		if req.TrackingNumber != nil {
			o.AssignTracking(*req.TrackingNumber)
		}

		if err := uc.orderRepo.Update(txCtx, o); err != nil {
			return err
		}

		resp = UpdateStatusResponse{
			OrderID:        o.ID,
			Status:         o.Status.String(),
			TrackingNumber: o.TrackingNumber,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = uc.publisher.Publish(ctx, mq.EventOrderStatusChanged, map[string]interface{}{
		"order_id": req.OrderID,
		"from":     from.String(),
		"to":       resp.Status,
	})

	return &resp, nil
}
