package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/review"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// reviewRepository 评价仓储实现(MySQL)
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		BookID:     rv.BookID,
		CustomerID: rv.CustomerID,
		Rating:     rv.Rating,
		Comment:    rv.Comment,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		// (customer_id, book_id)组合唯一:一人一书一评
		if isDuplicateError(err) {
			return review.ErrDuplicateReview
		}
		return apperrors.Wrap(err, "创建评价失败")
	}

	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	var model ReviewModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评价失败")
	}
	return toReviewEntity(&model), nil
}

func (r *reviewRepository) ListByBookID(ctx context.Context, bookID uint) ([]*review.Review, error) {
	var models []ReviewModel
	err := getDB(ctx, r.db).
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询评价列表失败")
	}

	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews, nil
}

// DeleteByBookID 删除图书的全部评价(删除图书的事务中调用)
func (r *reviewRepository) DeleteByBookID(ctx context.Context, bookID uint) error {
	err := getDB(ctx, r.db).Where("book_id = ?", bookID).Delete(&ReviewModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "删除图书评价失败")
	}
	return nil
}

// DeleteByCustomerID 删除客户的全部评价(删除客户的事务中调用)
func (r *reviewRepository) DeleteByCustomerID(ctx context.Context, customerID uint) error {
	err := getDB(ctx, r.db).Where("customer_id = ?", customerID).Delete(&ReviewModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "删除客户评价失败")
	}
	return nil
}

func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:         model.ID,
		BookID:     model.BookID,
		CustomerID: model.CustomerID,
		Rating:     model.Rating,
		Comment:    model.Comment,
		CreatedAt:  model.CreatedAt,
	}
}
