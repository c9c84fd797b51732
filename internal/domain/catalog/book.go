package catalog

import (
	"time"
)

// Book 图书实体（目录聚合的核心实体）
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. ISBN作为业务唯一标识(数据库层保证唯一性)
// 3. PublisherID/CategoryID为可空引用：出版社或分类被删除时置空,图书本身保留
// 4. Stock初始为0,只能通过订单流程或补货变更
type Book struct {
	ID              uint
	ISBN            string     // ISBN号(国际标准书号)
	Title           string     // 书名
	Description     string     // 图书描述
	PublicationDate time.Time  // 出版日期
	PriceCents      int64      // 价格(单位:分)
	Pages           int        // 页数
	Stock           int        // 库存数量
	PublisherID     *uint      // 出版社ID(可空)
	CategoryID      *uint      // 分类ID(可空)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// 校验由Service完成,工厂只负责装配
func NewBook(isbn, title, description string, publicationDate time.Time, priceCents int64, pages, stock int, publisherID, categoryID *uint) *Book {
	now := time.Now()
	return &Book{
		ISBN:            isbn,
		Title:           title,
		Description:     description,
		PublicationDate: publicationDate,
		PriceCents:      priceCents,
		Pages:           pages,
		Stock:           stock,
		PublisherID:     publisherID,
		CategoryID:      categoryID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// UpdatePrice 更新价格(领域行为)
// 业务规则:价格不能为负数
func (b *Book) UpdatePrice(newPriceCents int64) error {
	if newPriceCents < 0 {
		return ErrInvalidPrice
	}
	b.PriceCents = newPriceCents
	b.UpdatedAt = time.Now()
	return nil
}

// Restock 补充库存
func (b *Book) Restock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b.Stock += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo 更新图书基本信息（空值表示不修改）
func (b *Book) UpdateInfo(title, description string) {
	if title != "" {
		b.Title = title
	}
	if description != "" {
		b.Description = description
	}
	b.UpdatedAt = time.Now()
}

// StockLabel 库存水位标签（库存报表投影使用）
func (b *Book) StockLabel() string {
	return StockLabel(b.Stock)
}

// StockLabel 库存数量 → 水位标签
func StockLabel(stock int) string {
	switch {
	case stock == 0:
		return "Out of Stock"
	case stock < 5:
		return "Low Stock"
	case stock < 20:
		return "Medium Stock"
	default:
		return "Good Stock"
	}
}
