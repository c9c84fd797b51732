package catalog

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/catalog"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
)

// ManageCatalogUseCase 目录维护用例
// 出版社/作者/分类的增删改查与图书维护操作。
// 删除操作的置空/级联语义在事务内显式执行:
// - 删出版社:引用图书publisher_id置空,不删图书
// - 删分类:子分类parent_id置空、引用图书category_id置空,不级联删除
// - 删作者:book_authors关联行级联删除,不删图书
type ManageCatalogUseCase struct {
	catalogSvc    catalog.Service
	bookRepo      catalog.BookRepository
	authorRepo    catalog.AuthorRepository
	publisherRepo catalog.PublisherRepository
	categoryRepo  catalog.CategoryRepository
	txManager     *mysql.TxManager
}

// NewManageCatalogUseCase 创建目录维护用例
func NewManageCatalogUseCase(
	catalogSvc catalog.Service,
	bookRepo catalog.BookRepository,
	authorRepo catalog.AuthorRepository,
	publisherRepo catalog.PublisherRepository,
	categoryRepo catalog.CategoryRepository,
	txManager *mysql.TxManager,
) *ManageCatalogUseCase {
	return &ManageCatalogUseCase{
		catalogSvc:    catalogSvc,
		bookRepo:      bookRepo,
		authorRepo:    authorRepo,
		publisherRepo: publisherRepo,
		categoryRepo:  categoryRepo,
		txManager:     txManager,
	}
}

// ========== 出版社 ==========

// CreatePublisherRequest 创建出版社请求DTO
type CreatePublisherRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	FoundedYear  int    `json:"founded_year"`
}

// CreatePublisher 创建出版社
func (uc *ManageCatalogUseCase) CreatePublisher(ctx context.Context, req CreatePublisherRequest) (*catalog.Publisher, error) {
	return uc.catalogSvc.CreatePublisher(ctx, req.Name, req.ContactEmail, req.ContactPhone, req.Address, req.FoundedYear)
}

// GetPublisher 查询出版社
func (uc *ManageCatalogUseCase) GetPublisher(ctx context.Context, id uint) (*catalog.Publisher, error) {
	return uc.publisherRepo.FindByID(ctx, id)
}

// UpdatePublisher 更新出版社
func (uc *ManageCatalogUseCase) UpdatePublisher(ctx context.Context, id uint, req CreatePublisherRequest) (*catalog.Publisher, error) {
	if req.Name == "" {
		return nil, catalog.ErrMissingName
	}
	if req.FoundedYear <= 1400 {
		return nil, catalog.ErrInvalidFoundedYear
	}

	p, err := uc.publisherRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.ContactEmail = req.ContactEmail
	p.ContactPhone = req.ContactPhone
	p.Address = req.Address
	p.FoundedYear = req.FoundedYear
	if err := uc.publisherRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePublisher 删除出版社(引用图书publisher_id置空)
func (uc *ManageCatalogUseCase) DeletePublisher(ctx context.Context, id uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.publisherRepo.FindByID(txCtx, id); err != nil {
			return err
		}
		if err := uc.bookRepo.ClearPublisher(txCtx, id); err != nil {
			return err
		}
		return uc.publisherRepo.Delete(txCtx, id)
	})
}

// ListPublishers 出版社列表
func (uc *ManageCatalogUseCase) ListPublishers(ctx context.Context) ([]*catalog.Publisher, error) {
	return uc.publisherRepo.List(ctx)
}

// ========== 作者 ==========

// CreateAuthorRequest 创建作者请求DTO
type CreateAuthorRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	BirthDate   string `json:"birth_date"` // YYYY-MM-DD
	Nationality string `json:"nationality"`
}

// CreateAuthor 创建作者
func (uc *ManageCatalogUseCase) CreateAuthor(ctx context.Context, req CreateAuthorRequest) (*catalog.Author, error) {
	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return nil, err
	}
	return uc.catalogSvc.CreateAuthor(ctx, req.FirstName, req.LastName, birthDate, req.Nationality)
}

// GetAuthor 查询作者
func (uc *ManageCatalogUseCase) GetAuthor(ctx context.Context, id uint) (*catalog.Author, error) {
	return uc.authorRepo.FindByID(ctx, id)
}

// UpdateAuthor 更新作者
func (uc *ManageCatalogUseCase) UpdateAuthor(ctx context.Context, id uint, req CreateAuthorRequest) (*catalog.Author, error) {
	if req.FirstName == "" || req.LastName == "" {
		return nil, catalog.ErrMissingName
	}
	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	a, err := uc.authorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.FirstName = req.FirstName
	a.LastName = req.LastName
	a.BirthDate = birthDate
	a.Nationality = req.Nationality
	if err := uc.authorRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAuthor 删除作者(book_authors关联行级联删除)
func (uc *ManageCatalogUseCase) DeleteAuthor(ctx context.Context, id uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.authorRepo.FindByID(txCtx, id); err != nil {
			return err
		}
		if err := uc.authorRepo.DeleteLinksByAuthor(txCtx, id); err != nil {
			return err
		}
		return uc.authorRepo.Delete(txCtx, id)
	})
}

// ListAuthors 作者列表
func (uc *ManageCatalogUseCase) ListAuthors(ctx context.Context) ([]*catalog.Author, error) {
	return uc.authorRepo.List(ctx)
}

// AssignAuthorRequest 图书作者关联请求DTO
type AssignAuthorRequest struct {
	BookID   uint   `json:"book_id" binding:"required"`
	AuthorID uint   `json:"author_id" binding:"required"`
	Role     string `json:"role"`
}

// AssignAuthor 建立图书作者关联
func (uc *ManageCatalogUseCase) AssignAuthor(ctx context.Context, req AssignAuthorRequest) error {
	return uc.catalogSvc.AssignAuthor(ctx, req.BookID, req.AuthorID, req.Role)
}

// UnassignAuthor 解除图书作者关联
func (uc *ManageCatalogUseCase) UnassignAuthor(ctx context.Context, bookID, authorID uint) error {
	return uc.authorRepo.Unassign(ctx, bookID, authorID)
}

// ========== 分类 ==========

// CreateCategoryRequest 创建分类请求DTO
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
}

// CreateCategory 创建分类
func (uc *ManageCatalogUseCase) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*catalog.Category, error) {
	return uc.catalogSvc.CreateCategory(ctx, req.Name, req.Description, req.ParentID)
}

// GetCategory 查询分类
func (uc *ManageCatalogUseCase) GetCategory(ctx context.Context, id uint) (*catalog.Category, error) {
	return uc.categoryRepo.FindByID(ctx, id)
}

// MoveCategory 调整分类父节点(含成环检测)
func (uc *ManageCatalogUseCase) MoveCategory(ctx context.Context, id uint, newParentID *uint) error {
	return uc.catalogSvc.MoveCategory(ctx, id, newParentID)
}

// DeleteCategory 删除分类
// 同一事务内:子分类parent_id置空、引用图书category_id置空、删除分类
func (uc *ManageCatalogUseCase) DeleteCategory(ctx context.Context, id uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.categoryRepo.FindByID(txCtx, id); err != nil {
			return err
		}
		if err := uc.categoryRepo.ClearParent(txCtx, id); err != nil {
			return err
		}
		if err := uc.bookRepo.ClearCategory(txCtx, id); err != nil {
			return err
		}
		return uc.categoryRepo.Delete(txCtx, id)
	})
}

// ListCategories 分类列表
func (uc *ManageCatalogUseCase) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	return uc.categoryRepo.List(ctx)
}

// ========== 图书维护 ==========

// UpdateBookRequest 更新图书请求DTO
type UpdateBookRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int    `json:"stock"`
	PublisherID *uint  `json:"publisher_id"`
	CategoryID  *uint  `json:"category_id"`
}

// GetBook 查询图书
func (uc *ManageCatalogUseCase) GetBook(ctx context.Context, id uint) (*catalog.Book, error) {
	return uc.bookRepo.FindByID(ctx, id)
}

// UpdateBook 更新图书信息(ISBN不可变更)
func (uc *ManageCatalogUseCase) UpdateBook(ctx context.Context, id uint, req UpdateBookRequest) (*catalog.Book, error) {
	if req.Title == "" {
		return nil, catalog.ErrMissingName
	}
	if req.PriceCents < 0 {
		return nil, catalog.ErrInvalidPrice
	}
	if req.Stock < 0 {
		return nil, catalog.ErrInvalidStock
	}

	b, err := uc.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PublisherID != nil {
		if _, err := uc.publisherRepo.FindByID(ctx, *req.PublisherID); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := uc.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	b.Title = req.Title
	b.Description = req.Description
	b.PriceCents = req.PriceCents
	b.Stock = req.Stock
	b.PublisherID = req.PublisherID
	b.CategoryID = req.CategoryID
	if err := uc.bookRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, catalog.ErrInvalidDate
	}
	return d, nil
}
