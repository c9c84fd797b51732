package review

import (
	"time"
)

// Review 评价实体
// 设计说明:
// 1. 评分取值[1,5]
// 2. 每个客户对每本书只能评价一次((CustomerID, BookID)组合唯一)
// 3. 评价创建后不可修改;图书或客户被删除时级联删除
type Review struct {
	ID         uint
	BookID     uint
	CustomerID uint
	Rating     int    // 评分[1,5]
	Comment    string // 评价内容
	CreatedAt  time.Time
}

// NewReview 创建新评价(工厂方法)
func NewReview(bookID, customerID uint, rating int, comment string) *Review {
	return &Review{
		BookID:     bookID,
		CustomerID: customerID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now(),
	}
}

// ValidRating 评分是否在合法区间
func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
