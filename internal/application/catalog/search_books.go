package catalog

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/catalog"
)

// SearchBooksUseCase 图书搜索用例(只读)
type SearchBooksUseCase struct {
	bookRepo catalog.BookRepository
}

// NewSearchBooksUseCase 创建图书搜索用例
func NewSearchBooksUseCase(bookRepo catalog.BookRepository) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookRepo: bookRepo}
}

// SearchBooksRequest 搜索请求DTO
// 所有条件可选,零值条件不参与过滤,多条件取AND
type SearchBooksRequest struct {
	Title         string `form:"title"`
	AuthorName    string `form:"author"`
	CategoryID    *uint  `form:"category_id"`
	MinPriceCents *int64 `form:"min_price_cents"`
	MaxPriceCents *int64 `form:"max_price_cents"`
}

// BookView 搜索结果行
type BookView struct {
	BookID     uint   `json:"book_id"`
	ISBN       string `json:"isbn"`
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
	Stock      int    `json:"stock"`
	StockLabel string `json:"stock_label"`
}

// Execute 执行图书搜索,结果按书名升序
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) ([]BookView, error) {
	books, err := uc.bookRepo.Search(ctx, catalog.SearchParams{
		Title:         req.Title,
		AuthorName:    req.AuthorName,
		CategoryID:    req.CategoryID,
		MinPriceCents: req.MinPriceCents,
		MaxPriceCents: req.MaxPriceCents,
	})
	if err != nil {
		return nil, err
	}

	views := make([]BookView, len(books))
	for i, b := range books {
		views[i] = BookView{
			BookID:     b.ID,
			ISBN:       b.ISBN,
			Title:      b.Title,
			PriceCents: b.PriceCents,
			Stock:      b.Stock,
			StockLabel: catalog.StockLabel(b.Stock),
		}
	}
	return views, nil
}
