package catalog

import (
	"time"
)

// Author 作者实体
// 业务唯一性:(FirstName, LastName, BirthDate)组合唯一(数据库层保证)
type Author struct {
	ID          uint
	FirstName   string
	LastName    string
	BirthDate   time.Time
	Nationality string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewAuthor 创建新作者(工厂方法)
func NewAuthor(firstName, lastName string, birthDate time.Time, nationality string) *Author {
	now := time.Now()
	return &Author{
		FirstName:   firstName,
		LastName:    lastName,
		BirthDate:   birthDate,
		Nationality: nationality,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// FullName 作者全名（报表展示用）
func (a *Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

// BookAuthor 图书-作者关联(多对多)
// 设计说明:
// 1. 复合主键(BookID, AuthorID)
// 2. 图书或作者任意一侧被删除时级联删除关联行
// 3. Role描述作者在该书中的角色(Author/Co-Author/Translator等)
type BookAuthor struct {
	BookID   uint
	AuthorID uint
	Role     string
}
