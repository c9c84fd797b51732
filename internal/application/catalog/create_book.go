package catalog

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/catalog"
)

// CreateBookUseCase 图书上架用例
// 校验与跨实体检查(出版社/分类存在性)委托给domain Service
type CreateBookUseCase struct {
	catalogSvc catalog.Service
}

// NewCreateBookUseCase 创建图书上架用例
func NewCreateBookUseCase(catalogSvc catalog.Service) *CreateBookUseCase {
	return &CreateBookUseCase{catalogSvc: catalogSvc}
}

// CreateBookRequest 上架请求DTO
type CreateBookRequest struct {
	ISBN            string `json:"isbn" binding:"required"`
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	PublicationDate string `json:"publication_date"` // YYYY-MM-DD
	PriceCents      int64  `json:"price_cents"`
	Pages           int    `json:"pages"`
	Stock           int    `json:"stock"`
	PublisherID     *uint  `json:"publisher_id"`
	CategoryID      *uint  `json:"category_id"`
}

// CreateBookResponse 上架响应DTO
type CreateBookResponse struct {
	BookID     uint   `json:"book_id"`
	ISBN       string `json:"isbn"`
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
	Stock      int    `json:"stock"`
}

// Execute 执行图书上架
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*CreateBookResponse, error) {
	var pubDate time.Time
	if req.PublicationDate != "" {
		d, err := time.Parse("2006-01-02", req.PublicationDate)
		if err != nil {
			return nil, catalog.ErrInvalidDate
		}
		pubDate = d
	}

	b, err := uc.catalogSvc.CreateBook(ctx, req.ISBN, req.Title, req.Description,
		pubDate, req.PriceCents, req.Pages, req.Stock, req.PublisherID, req.CategoryID)
	if err != nil {
		return nil, err
	}

	return &CreateBookResponse{
		BookID:     b.ID,
		ISBN:       b.ISBN,
		Title:      b.Title,
		PriceCents: b.PriceCents,
		Stock:      b.Stock,
	}, nil
}
