package review

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 评价领域错误定义
var (
	// ErrReviewNotFound 评价不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "评价不存在")

	// ErrInvalidRating 评分必须在[1,5]内
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeValueOutOfRange, "评分必须在1到5之间")

	// ErrDuplicateReview 同一客户对同一本书只能评价一次
	ErrDuplicateReview = apperrors.New(apperrors.ErrCodeDuplicateEntry, "已评价过该图书")
)
