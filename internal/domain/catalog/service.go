package catalog

import (
	"context"
	"regexp"
	"time"
)

// Service 目录领域服务接口
// 设计说明:
// 1. 封装跨实体的业务规则校验(引用存在性、分类成环检测)
// 2. 只做校验与装配,事务编排在应用层用例中完成
type Service interface {
	// CreateBook 创建图书
	// 业务规则:ISBN格式合法且不重复、价格>=0、页数>0、库存>=0、引用的出版社/分类必须存在
	CreateBook(ctx context.Context, isbn, title, description string, publicationDate time.Time, priceCents int64, pages, stock int, publisherID, categoryID *uint) (*Book, error)

	// CreatePublisher 创建出版社
	// 业务规则:名称必填,创立年份>1400
	CreatePublisher(ctx context.Context, name, contactEmail, contactPhone, address string, foundedYear int) (*Publisher, error)

	// CreateAuthor 创建作者
	// 业务规则:姓名必填,(姓名+出生日期)不重复
	CreateAuthor(ctx context.Context, firstName, lastName string, birthDate time.Time, nationality string) (*Author, error)

	// CreateCategory 创建分类
	// 业务规则:分类名必填且唯一,父分类(如指定)必须存在
	CreateCategory(ctx context.Context, name, description string, parentID *uint) (*Category, error)

	// MoveCategory 调整分类的父分类
	// 业务规则:父链不能成环(沿父链向上检测)
	MoveCategory(ctx context.Context, id uint, newParentID *uint) error

	// AssignAuthor 建立图书-作者关联
	AssignAuthor(ctx context.Context, bookID, authorID uint, role string) error
}

type service struct {
	books      BookRepository
	authors    AuthorRepository
	publishers PublisherRepository
	categories CategoryRepository
}

// NewService 创建目录领域服务
func NewService(books BookRepository, authors AuthorRepository, publishers PublisherRepository, categories CategoryRepository) Service {
	return &service{
		books:      books,
		authors:    authors,
		publishers: publishers,
		categories: categories,
	}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, isbn, title, description string, publicationDate time.Time, priceCents int64, pages, stock int, publisherID, categoryID *uint) (*Book, error) {
	// 1. 约束校验:任何校验失败都发生在写入之前
	if !isValidISBN(isbn) {
		return nil, ErrInvalidISBN
	}
	if title == "" {
		return nil, ErrMissingName
	}
	if priceCents < 0 {
		return nil, ErrInvalidPrice
	}
	if pages <= 0 {
		return nil, ErrInvalidPages
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	// 2. 引用存在性校验(可空引用,指定了才检查)
	if publisherID != nil {
		if _, err := s.publishers.FindByID(ctx, *publisherID); err != nil {
			return nil, err
		}
	}
	if categoryID != nil {
		if _, err := s.categories.FindByID(ctx, *categoryID); err != nil {
			return nil, err
		}
	}

	// 3. 创建并持久化(ISBN唯一性由数据库索引兜底)
	book := NewBook(isbn, title, description, publicationDate, priceCents, pages, stock, publisherID, categoryID)
	if err := s.books.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// CreatePublisher 创建出版社
func (s *service) CreatePublisher(ctx context.Context, name, contactEmail, contactPhone, address string, foundedYear int) (*Publisher, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	if foundedYear <= 1400 {
		return nil, ErrInvalidFoundedYear
	}

	publisher := NewPublisher(name, contactEmail, contactPhone, address, foundedYear)
	if err := s.publishers.Create(ctx, publisher); err != nil {
		return nil, err
	}
	return publisher, nil
}

// CreateAuthor 创建作者
func (s *service) CreateAuthor(ctx context.Context, firstName, lastName string, birthDate time.Time, nationality string) (*Author, error) {
	if firstName == "" || lastName == "" {
		return nil, ErrMissingName
	}

	author := NewAuthor(firstName, lastName, birthDate, nationality)
	if err := s.authors.Create(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// CreateCategory 创建分类
func (s *service) CreateCategory(ctx context.Context, name, description string, parentID *uint) (*Category, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	if parentID != nil {
		if _, err := s.categories.FindByID(ctx, *parentID); err != nil {
			return nil, err
		}
	}

	category := NewCategory(name, description, parentID)
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// MoveCategory 调整分类的父分类
// 成环检测:从新父分类出发沿父链向上走,遇到自身即成环
func (s *service) MoveCategory(ctx context.Context, id uint, newParentID *uint) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if newParentID != nil {
		cursor := *newParentID
		// 父链长度受树深限制,防御性设置步数上限
		for depth := 0; depth < 64; depth++ {
			if cursor == id {
				return ErrCategoryCycle
			}
			parent, err := s.categories.FindByID(ctx, cursor)
			if err != nil {
				return err
			}
			if parent.ParentID == nil {
				break
			}
			cursor = *parent.ParentID
		}
	}

	category.ParentID = newParentID
	category.UpdatedAt = time.Now()
	return s.categories.Update(ctx, category)
}

// AssignAuthor 建立图书-作者关联
func (s *service) AssignAuthor(ctx context.Context, bookID, authorID uint, role string) error {
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		return err
	}
	if _, err := s.authors.FindByID(ctx, authorID); err != nil {
		return err
	}
	return s.authors.Assign(ctx, BookAuthor{BookID: bookID, AuthorID: authorID, Role: role})
}

// isValidISBN 校验ISBN格式
// 支持ISBN-10/ISBN-13,允许分隔符(978-7-115-42802-8),只检查位数
func isValidISBN(isbn string) bool {
	re := regexp.MustCompile(`[^0-9Xx]`)
	clean := re.ReplaceAllString(isbn, "")
	return len(clean) == 10 || len(clean) == 13
}
