package catalog

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/catalog"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/review"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
)

// DeleteBookUseCase 图书下架删除用例
// 业务规则:
// 1. 图书被在途订单(Pending/Processing/Shipped)的明细引用时禁止删除,
//    整个操作中止,无部分删除
// 2. 终态订单(Delivered/Cancelled)的明细不阻止删除,明细保留价格快照
// 3. 允许删除时,在同一事务内级联清理:作者关联、评价,最后删图书
type DeleteBookUseCase struct {
	bookRepo   catalog.BookRepository
	authorRepo catalog.AuthorRepository
	orderRepo  order.Repository
	reviewRepo review.Repository
	txManager  *mysql.TxManager
}

// NewDeleteBookUseCase 创建图书删除用例
func NewDeleteBookUseCase(
	bookRepo catalog.BookRepository,
	authorRepo catalog.AuthorRepository,
	orderRepo order.Repository,
	reviewRepo review.Repository,
	txManager *mysql.TxManager,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookRepo:   bookRepo,
		authorRepo: authorRepo,
		orderRepo:  orderRepo,
		reviewRepo: reviewRepo,
		txManager:  txManager,
	}
}

// Execute 执行图书删除
func (uc *DeleteBookUseCase) Execute(ctx context.Context, bookID uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 图书必须存在
		if _, err := uc.bookRepo.FindByID(txCtx, bookID); err != nil {
			return err
		}

		// 2. 删除守卫:在途订单引用检查
		count, err := uc.orderRepo.CountActiveItemsByBook(txCtx, bookID)
		if err != nil {
			return err
		}
		if count > 0 {
			return catalog.ErrBookInActiveOrders
		}

		// 3. 级联清理关联数据
		if err := uc.authorRepo.DeleteLinksByBook(txCtx, bookID); err != nil {
			return err
		}
		if err := uc.reviewRepo.DeleteByBookID(txCtx, bookID); err != nil {
			return err
		}

		// 4. 删除图书本体
		return uc.bookRepo.Delete(txCtx, bookID)
	})
}
