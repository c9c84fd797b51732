package report

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/report"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
)

// ReportsUseCase 报表查询用例(只读)
// 评分汇总走Redis短TTL缓存(熔断保护),其余报表直查数据库。
// 缓存不可用时静默降级为数据库查询。
type ReportsUseCase struct {
	reportRepo report.Repository
	cache      *redis.ReportCache
}

// NewReportsUseCase 创建报表用例
func NewReportsUseCase(reportRepo report.Repository, cache *redis.ReportCache) *ReportsUseCase {
	return &ReportsUseCase{reportRepo: reportRepo, cache: cache}
}

// BookDetail 图书详情报表
func (uc *ReportsUseCase) BookDetail(ctx context.Context, bookID uint) (*report.BookDetail, error) {
	return uc.reportRepo.BookDetail(ctx, bookID)
}

// AuthorBibliography 作者作品目录报表
func (uc *ReportsUseCase) AuthorBibliography(ctx context.Context, authorID uint) ([]*report.AuthorBibliographyRow, error) {
	return uc.reportRepo.AuthorBibliography(ctx, authorID)
}

// CustomerOrderHistory 客户订单历史报表
func (uc *ReportsUseCase) CustomerOrderHistory(ctx context.Context, customerID uint) ([]*report.CustomerOrderRow, error) {
	return uc.reportRepo.CustomerOrderHistory(ctx, customerID)
}

// BookRatingSummaries 图书评分汇总报表(缓存优先)
func (uc *ReportsUseCase) BookRatingSummaries(ctx context.Context) ([]*report.BookRatingSummary, error) {
	if uc.cache != nil {
		if rows, ok := uc.cache.GetRatingSummaries(ctx); ok {
			return rows, nil
		}
	}

	rows, err := uc.reportRepo.BookRatingSummaries(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.SetRatingSummaries(ctx, rows)
	}
	return rows, nil
}

// InventoryStatus 库存状态报表
func (uc *ReportsUseCase) InventoryStatus(ctx context.Context) ([]*report.InventoryStatusRow, error) {
	return uc.reportRepo.InventoryStatus(ctx)
}
