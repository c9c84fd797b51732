package catalog

import (
	"time"
)

// Publisher 出版社实体
// 删除语义:删除出版社时引用它的图书PublisherID置空,不级联删除图书
type Publisher struct {
	ID           uint
	Name         string
	ContactEmail string
	ContactPhone string
	Address      string
	FoundedYear  int // 创立年份,必须>1400(活字印刷之后)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewPublisher 创建新出版社(工厂方法)
func NewPublisher(name, contactEmail, contactPhone, address string, foundedYear int) *Publisher {
	now := time.Now()
	return &Publisher{
		Name:         name,
		ContactEmail: contactEmail,
		ContactPhone: contactPhone,
		Address:      address,
		FoundedYear:  foundedYear,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
