package order

import (
	"context"
	"errors"

	"github.com/xiebiao/bookshop/internal/domain/catalog"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// 库存低水位,低于该值时发布book.stock_low事件
const stockLowThreshold = 5

// AddOrderItemUseCase 订单加项用例
// 这是整个系统最核心的一致性用例,一个事务内完成:
// 1. 锁定图书行,校验库存充足
// 2. 锁定订单行,校验订单仍为Pending
// 3. 写入明细(单价快照)
// 4. 原子扣减库存
// 5. 原子累加订单总金额
// 任意一步失败整体回滚:库存、明细、总额三者要么同时生效要么都不生效
type AddOrderItemUseCase struct {
	orderRepo order.Repository
	bookRepo  catalog.BookRepository
	txManager *mysql.TxManager
	publisher mq.EventPublisher
}

// NewAddOrderItemUseCase 创建订单加项用例
func NewAddOrderItemUseCase(
	orderRepo order.Repository,
	bookRepo catalog.BookRepository,
	txManager *mysql.TxManager,
	publisher mq.EventPublisher,
) *AddOrderItemUseCase {
	return &AddOrderItemUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		publisher: publisher,
	}
}

// AddOrderItemRequest 加项请求DTO
type AddOrderItemRequest struct {
	OrderID     uint
	CustomerID  uint    // 所有权校验(从JWT中提取)
	BookID      uint    `json:"book_id"`
	Quantity    int     `json:"quantity"`
	DiscountPct float64 `json:"discount_pct"`
}

// AddOrderItemResponse 加项响应DTO
type AddOrderItemResponse struct {
	ItemID         uint  `json:"item_id"`
	UnitPriceCents int64 `json:"unit_price_cents"`
	LineTotalCents int64 `json:"line_total_cents"`
	OrderTotal     int64 `json:"order_total_cents"`
	RemainingStock int   `json:"remaining_stock"`
}

// Execute 执行订单加项
//
// 防超卖:先SELECT FOR UPDATE锁定图书行,锁内校验库存,
// 再用UPDATE ... WHERE stock + ? >= 0原子扣减(双保险)。
// 其他事务必须等待当前事务COMMIT或ROLLBACK后才能扣减同一本书。
func (uc *AddOrderItemUseCase) Execute(ctx context.Context, req AddOrderItemRequest) (*AddOrderItemResponse, error) {
	// 1. 参数校验
	if req.Quantity <= 0 {
		return nil, order.ErrInvalidQuantity
	}
	if req.DiscountPct < 0 || req.DiscountPct > 100 {
		return nil, order.ErrInvalidDiscount
	}

	var resp AddOrderItemResponse
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 2. 锁定图书行并校验库存
		// 必须在锁定后检查,否则并发扣减会导致超卖
		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}
		if b.Stock < req.Quantity {
			return order.ErrInsufficientStock
		}

		// 3. 锁定订单行:明细只能追加到Pending订单
		o, err := uc.orderRepo.LockByID(txCtx, req.OrderID)
		if err != nil {
			return err
		}
		if req.CustomerID != 0 && !o.IsOwnedBy(req.CustomerID) {
			return order.ErrOrderNotFound
		}
		if o.Status != order.OrderStatusPending {
			return order.ErrOrderNotOpen
		}

		// 4. 写入明细,单价取锁定时刻的图书价格快照
		// 防止改价攻击:金额永远以服务端当前价为准
		item := &order.OrderItem{
			OrderID:        o.ID,
			BookID:         b.ID,
			Quantity:       req.Quantity,
			UnitPriceCents: b.PriceCents,
			DiscountPct:    req.DiscountPct,
		}
		if err := uc.orderRepo.AddItem(txCtx, item); err != nil {
			return err
		}

		// 5. 原子扣减库存
		if err := uc.bookRepo.UpdateStock(txCtx, b.ID, -req.Quantity); err != nil {
			return err
		}

		// 6. 原子累加订单总金额(派生字段增量维护)
		lineTotal := item.LineTotalCents()
		if err := uc.orderRepo.IncrTotal(txCtx, o.ID, lineTotal); err != nil {
			return err
		}

		resp = AddOrderItemResponse{
			ItemID:         item.ID,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: lineTotal,
			OrderTotal:     o.TotalCents + lineTotal,
			RemainingStock: b.Stock - req.Quantity,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, order.ErrInsufficientStock) {
			metrics.InsufficientStockTotal.Inc()
		}
		return nil, err
	}

	metrics.OrderItemsAddedTotal.Inc()
	metrics.OrderItemAmountCents.Observe(float64(resp.LineTotalCents))

	// 7. 低库存事件(事务外,尽力而为)
	if resp.RemainingStock < stockLowThreshold {
		_ = uc.publisher.Publish(ctx, mq.EventBookStockLow, map[string]interface{}{
			"book_id": req.BookID,
			"stock":   resp.RemainingStock,
		})
	}

	return &resp, nil
}
