package catalog

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 目录领域错误定义
var (
	// 资源不存在
	ErrBookNotFound      = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")
	ErrAuthorNotFound    = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")
	ErrPublisherNotFound = apperrors.New(apperrors.ErrCodePublisherNotFound, "出版社不存在")
	ErrCategoryNotFound  = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	// 唯一约束冲突
	ErrISBNDuplicate     = apperrors.New(apperrors.ErrCodeDuplicateEntry, "ISBN号已存在")
	ErrAuthorDuplicate   = apperrors.New(apperrors.ErrCodeDuplicateEntry, "作者已存在(姓名+出生日期重复)")
	ErrCategoryDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "分类名已存在")

	// 取值范围约束
	ErrInvalidPrice       = apperrors.New(apperrors.ErrCodeValueOutOfRange, "价格不能为负数")
	ErrInvalidPages       = apperrors.New(apperrors.ErrCodeValueOutOfRange, "页数必须大于0")
	ErrInvalidStock       = apperrors.New(apperrors.ErrCodeValueOutOfRange, "库存不能为负数")
	ErrInvalidFoundedYear = apperrors.New(apperrors.ErrCodeValueOutOfRange, "创立年份必须大于1400")
	ErrInvalidQuantity    = apperrors.New(apperrors.ErrCodeValueOutOfRange, "数量必须大于0")
	ErrInvalidISBN        = apperrors.New(apperrors.ErrCodeConstraintViolation, "ISBN格式不正确")
	ErrMissingName        = apperrors.New(apperrors.ErrCodeConstraintViolation, "名称不能为空")

	// ErrInvalidDate 日期格式不正确(期望YYYY-MM-DD)
	ErrInvalidDate = apperrors.New(apperrors.ErrCodeBindError, "日期格式不正确")

	// 完整性规则
	// ErrBookInActiveOrders 图书被在途订单(Pending/Processing/Shipped)引用时禁止删除
	// 错误消息保持与删除守卫的对外语义一致
	ErrBookInActiveOrders = apperrors.New(apperrors.ErrCodeIntegrityError, "Cannot delete book that is in active orders")

	// ErrCategoryCycle 分类父链成环
	ErrCategoryCycle = apperrors.New(apperrors.ErrCodeConstraintViolation, "分类父链不能成环")
)
