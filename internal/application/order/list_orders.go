package order

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// ListOrdersUseCase 客户订单列表用例(只读)
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListOrdersUseCase 创建订单列表用例
func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// ListOrdersRequest 列表请求DTO
type ListOrdersRequest struct {
	CustomerID uint
	Page       int `form:"page"`
	PageSize   int `form:"page_size"`
}

// OrderSummary 订单摘要
type OrderSummary struct {
	OrderID    uint            `json:"order_id"`
	OrderNo    string          `json:"order_no"`
	Status     string          `json:"status"`
	TotalCents int64           `json:"total_cents"`
	OrderDate  string          `json:"order_date"`
	Items      []OrderItemView `json:"items"`
}

// OrderItemView 订单明细视图
type OrderItemView struct {
	BookID         uint    `json:"book_id"`
	Quantity       int     `json:"quantity"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	DiscountPct    float64 `json:"discount_pct"`
	LineTotalCents int64   `json:"line_total_cents"`
}

// Execute 执行订单列表查询
func (uc *ListOrdersUseCase) Execute(ctx context.Context, req ListOrdersRequest) ([]OrderSummary, int64, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 20
	}

	orders, total, err := uc.orderRepo.ListByCustomerID(ctx, req.CustomerID, req.Page, req.PageSize)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]OrderSummary, len(orders))
	for i, o := range orders {
		items := make([]OrderItemView, len(o.Items))
		for j, it := range o.Items {
			items[j] = OrderItemView{
				BookID:         it.BookID,
				Quantity:       it.Quantity,
				UnitPriceCents: it.UnitPriceCents,
				DiscountPct:    it.DiscountPct,
				LineTotalCents: it.LineTotalCents(),
			}
		}
		summaries[i] = OrderSummary{
			OrderID:    o.ID,
			OrderNo:    o.OrderNo,
			Status:     o.Status.String(),
			TotalCents: o.TotalCents,
			OrderDate:  o.OrderDate.Format(time.RFC3339),
			Items:      items,
		}
	}
	return summaries, total, nil
}
