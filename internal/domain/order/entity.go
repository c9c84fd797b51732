package order

import (
	"math"
	"time"
)

// OrderStatus 订单状态
// 1. 使用int类型而非string(节省存储空间,便于索引)
// 2. 状态值1-5递增,便于理解流转方向
type OrderStatus int

const (
	OrderStatusPending    OrderStatus = 1 // 待处理(刚创建)
	OrderStatusProcessing OrderStatus = 2 // 处理中(拣货打包)
	OrderStatusShipped    OrderStatus = 3 // 已发货(分配运单号)
	OrderStatusDelivered  OrderStatus = 4 // 已送达(终态)
	OrderStatusCancelled  OrderStatus = 5 // 已取消(终态)
)

// String 实现Stringer接口(方便日志与报表输出)
func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "Pending"
	case OrderStatusProcessing:
		return "Processing"
	case OrderStatusShipped:
		return "Shipped"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// ParseStatus 状态名 → 状态值
func ParseStatus(name string) (OrderStatus, bool) {
	switch name {
	case "Pending":
		return OrderStatusPending, true
	case "Processing":
		return OrderStatusProcessing, true
	case "Shipped":
		return OrderStatusShipped, true
	case "Delivered":
		return OrderStatusDelivered, true
	case "Cancelled":
		return OrderStatusCancelled, true
	default:
		return 0, false
	}
}

// IsTerminal 是否为终态
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// IsActive 是否为在途状态(删除守卫:引用在途订单的图书不能删除)
func (s OrderStatus) IsActive() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing || s == OrderStatusShipped
}

// Order 订单实体(聚合根)
// 设计说明:
// 1. Order是聚合根,OrderItem是子实体
// 2. TotalCents是派生字段:恒等于全部明细行金额之和,随明细追加增量维护,客户端不可直接设置
// 3. OrderNo为业务主键(全局唯一,时间有序)
type Order struct {
	ID              uint
	OrderNo         string      // 订单号(业务主键)
	CustomerID      uint        // 买家客户ID
	TotalCents      int64       // 订单总金额(分),派生字段
	Status          OrderStatus // 订单状态
	ShippingAddress string      // 收货地址
	BillingAddress  string      // 账单地址
	PaymentMethod   string      // 支付方式
	TrackingNumber  string      // 运单号(发货后分配)
	Items           []OrderItem // 订单明细(聚合内的子实体)
	OrderDate       time.Time   // 下单时间
	UpdatedAt       time.Time
}

// OrderItem 订单明细项
// 设计说明:
// 1. 不是独立聚合根,必须通过Order访问
// 2. UnitPriceCents记录"下单时的价格"(历史价格快照),商家改价不影响历史订单
// 3. 明细一经创建不可修改(只有插入路径)
type OrderItem struct {
	ID             uint
	OrderID        uint    // 所属订单ID
	BookID         uint    // 图书ID
	Quantity       int     // 购买数量
	UnitPriceCents int64   // 下单时单价(分)
	DiscountPct    float64 // 折扣百分比[0,100]
}

// LineTotalCents 明细行金额:quantity * unit_price * (1 - discount/100)
// 四舍五入到分
func (i OrderItem) LineTotalCents() int64 {
	return LineTotalCents(i.Quantity, i.UnitPriceCents, i.DiscountPct)
}

// LineTotalCents 计算明细行金额(分),四舍五入到货币最小单位
func LineTotalCents(quantity int, unitPriceCents int64, discountPct float64) int64 {
	return int64(math.Round(float64(quantity) * float64(unitPriceCents) * (1 - discountPct/100)))
}

// NewOrder 创建新订单(工厂方法)
// 订单初始为空:零明细、零总额、Pending状态
func NewOrder(orderNo string, customerID uint, shippingAddress, billingAddress, paymentMethod string) *Order {
	now := time.Now()
	return &Order{
		OrderNo:         orderNo,
		CustomerID:      customerID,
		TotalCents:      0,
		Status:          OrderStatusPending,
		ShippingAddress: shippingAddress,
		BillingAddress:  billingAddress,
		PaymentMethod:   paymentMethod,
		OrderDate:       now,
		UpdatedAt:       now,
	}
}

// CanTransitionTo 检查是否可以转换到目标状态
// 状态机:Pending→Processing→Shipped→Delivered,Cancelled可从任意非终态到达
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	if target == OrderStatusCancelled {
		return !o.Status.IsTerminal()
	}

	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusPending:    {OrderStatusProcessing},
		OrderStatusProcessing: {OrderStatusShipped},
		OrderStatusShipped:    {OrderStatusDelivered},
		OrderStatusDelivered:  {},
		OrderStatusCancelled:  {},
	}

	for _, allowed := range transitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo 状态转换
func (o *Order) TransitionTo(target OrderStatus) error {
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// AssignTracking 覆盖运单号(nil语义由调用方处理:未提供则不变更)
func (o *Order) AssignTracking(trackingNumber string) {
	o.TrackingNumber = trackingNumber
	o.UpdatedAt = time.Now()
}

// CalculateTotal 根据明细实时计算总金额
// 用于校验派生字段TotalCents与明细之和的一致性
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.LineTotalCents()
	}
	return total
}

// IsOwnedBy 检查订单是否属于指定客户(权限校验)
func (o *Order) IsOwnedBy(customerID uint) bool {
	return o.CustomerID == customerID
}
