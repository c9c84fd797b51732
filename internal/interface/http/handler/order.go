package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookshop/internal/application/order"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	placeOrder   *apporder.PlaceOrderUseCase
	addItem      *apporder.AddOrderItemUseCase
	updateStatus *apporder.UpdateStatusUseCase
	listOrders   *apporder.ListOrdersUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeOrder *apporder.PlaceOrderUseCase,
	addItem *apporder.AddOrderItemUseCase,
	updateStatus *apporder.UpdateStatusUseCase,
	listOrders *apporder.ListOrdersUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeOrder:   placeOrder,
		addItem:      addItem,
		updateStatus: updateStatus,
		listOrders:   listOrders,
	}
}

// PlaceOrder 下单
// @Summary      下单(创建空订单)
// @Description  创建Pending空订单,明细通过加项接口追加
// @Tags         订单模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body apporder.PlaceOrderRequest true "订单信息"
// @Success      200 {object} response.Response{data=apporder.PlaceOrderResponse}
// @Failure      404 {object} response.Response "客户不存在"
// @Router       /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req apporder.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}
	req.CustomerID = middleware.MustGetCustomerID(c)

	result, err := h.placeOrder.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AddOrderItem 订单加项
// @Summary      订单加项
// @Description  锁定图书行校验库存,单事务内完成明细写入、库存扣减、总额累加;
// @Description  库存不足时整体回滚,无任何部分效果
// @Tags         订单模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body apporder.AddOrderItemRequest true "明细"
// @Success      200 {object} response.Response{data=apporder.AddOrderItemResponse}
// @Failure      400 {object} response.Response "库存不足"
// @Failure      409 {object} response.Response "订单已不可追加明细"
// @Router       /orders/{id}/items [post]
func (h *OrderHandler) AddOrderItem(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req apporder.AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}
	req.OrderID = orderID
	req.CustomerID = middleware.MustGetCustomerID(c)

	result, err := h.addItem.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateOrderStatus 订单状态流转
// @Summary      订单状态流转
// @Description  只允许Pending→Processing→Shipped→Delivered推进;任意非终态可取消
// @Tags         订单模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body apporder.UpdateStatusRequest true "目标状态"
// @Success      200 {object} response.Response{data=apporder.UpdateStatusResponse}
// @Failure      400 {object} response.Response "非法的状态转换"
// @Router       /orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req apporder.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}
	req.OrderID = orderID

	result, err := h.updateStatus.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListOrders 当前客户订单列表
// @Summary      当前客户订单列表
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        page_size query int false "每页条数"
// @Success      200 {object} response.Response
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var req apporder.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}
	req.CustomerID = middleware.MustGetCustomerID(c)
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 20
	}

	summaries, total, err := h.listOrders.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, summaries, total, req.Page, req.PageSize)
}
