package review

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/catalog"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/review"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
)

// AddReviewUseCase 新增评价用例
// 业务规则:
// 1. 评分必须在[1,5]内
// 2. 图书与客户必须存在
// 3. 同一客户对同一本书只能评价一次(数据库唯一索引兜底)
// 4. 成功后失效评分汇总缓存
type AddReviewUseCase struct {
	reviewRepo   review.Repository
	bookRepo     catalog.BookRepository
	customerRepo customer.Repository
	reportCache  *redis.ReportCache
}

// NewAddReviewUseCase 创建评价用例
func NewAddReviewUseCase(
	reviewRepo review.Repository,
	bookRepo catalog.BookRepository,
	customerRepo customer.Repository,
	reportCache *redis.ReportCache,
) *AddReviewUseCase {
	return &AddReviewUseCase{
		reviewRepo:   reviewRepo,
		bookRepo:     bookRepo,
		customerRepo: customerRepo,
		reportCache:  reportCache,
	}
}

// AddReviewRequest 评价请求DTO
type AddReviewRequest struct {
	BookID     uint
	CustomerID uint   // 从JWT中提取
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment"`
}

// AddReviewResponse 评价响应DTO
type AddReviewResponse struct {
	ReviewID  uint   `json:"review_id"`
	BookID    uint   `json:"book_id"`
	Rating    int    `json:"rating"`
	CreatedAt string `json:"created_at"`
}

// Execute 执行评价新增
func (uc *AddReviewUseCase) Execute(ctx context.Context, req AddReviewRequest) (*AddReviewResponse, error) {
	if !review.ValidRating(req.Rating) {
		return nil, review.ErrInvalidRating
	}

	// 引用实体存在性检查
	if _, err := uc.bookRepo.FindByID(ctx, req.BookID); err != nil {
		return nil, err
	}
	if _, err := uc.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	rv := review.NewReview(req.BookID, req.CustomerID, req.Rating, req.Comment)
	if err := uc.reviewRepo.Create(ctx, rv); err != nil {
		return nil, err
	}

	// 评分数据变了,失效汇总缓存(未接入Redis时为nil)
	if uc.reportCache != nil {
		uc.reportCache.Invalidate(ctx)
	}

	return &AddReviewResponse{
		ReviewID:  rv.ID,
		BookID:    rv.BookID,
		Rating:    rv.Rating,
		CreatedAt: rv.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ListBookReviewsUseCase 图书评价列表用例(只读)
type ListBookReviewsUseCase struct {
	reviewRepo review.Repository
	bookRepo   catalog.BookRepository
}

// NewListBookReviewsUseCase 创建评价列表用例
func NewListBookReviewsUseCase(reviewRepo review.Repository, bookRepo catalog.BookRepository) *ListBookReviewsUseCase {
	return &ListBookReviewsUseCase{reviewRepo: reviewRepo, bookRepo: bookRepo}
}

// ReviewView 评价视图
type ReviewView struct {
	ReviewID   uint   `json:"review_id"`
	CustomerID uint   `json:"customer_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	CreatedAt  string `json:"created_at"`
}

// Execute 查询图书全部评价(创建时间降序)
func (uc *ListBookReviewsUseCase) Execute(ctx context.Context, bookID uint) ([]ReviewView, error) {
	if _, err := uc.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	reviews, err := uc.reviewRepo.ListByBookID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	views := make([]ReviewView, len(reviews))
	for i, rv := range reviews {
		views[i] = ReviewView{
			ReviewID:   rv.ID,
			CustomerID: rv.CustomerID,
			Rating:     rv.Rating,
			Comment:    rv.Comment,
			CreatedAt:  rv.CreatedAt.Format(time.RFC3339),
		}
	}
	return views, nil
}
