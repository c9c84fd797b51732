package catalog

import (
	"time"
)

// Category 分类实体(自引用树结构)
// 设计说明:
// 1. ParentID可空,构成分类树;删除父分类时子分类的ParentID置空,不级联删除
// 2. 父链禁止成环:Service在设置父分类时沿父链检测
type Category struct {
	ID          uint
	Name        string // 分类名,全局唯一
	Description string
	ParentID    *uint // 父分类ID(可空)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory 创建新分类(工厂方法)
func NewCategory(name, description string, parentID *uint) *Category {
	now := time.Now()
	return &Category{
		Name:        name,
		Description: description,
		ParentID:    parentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsRoot 是否为根分类
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
