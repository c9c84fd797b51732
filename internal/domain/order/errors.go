package order

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrInsufficientStock 库存不足
	// 追加明细时请求数量超过当前库存,操作整体回滚,无任何部分效果
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")

	// ErrInvalidStatusTransition 非法的状态转换
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidTransition, "订单状态不允许此操作")

	// ErrOrderNotOpen 订单已进入处理流程,不能再追加明细
	ErrOrderNotOpen = apperrors.New(apperrors.ErrCodeConstraintViolation, "订单已不可追加明细")

	// ErrInvalidQuantity 购买数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeValueOutOfRange, "购买数量必须大于0")

	// ErrInvalidDiscount 折扣百分比必须在[0,100]内
	ErrInvalidDiscount = apperrors.New(apperrors.ErrCodeValueOutOfRange, "折扣百分比必须在0到100之间")

	// ErrUnknownStatus 无法识别的状态名
	ErrUnknownStatus = apperrors.New(apperrors.ErrCodeConstraintViolation, "无法识别的订单状态")
)
