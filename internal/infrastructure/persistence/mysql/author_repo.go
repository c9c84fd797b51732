package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/catalog"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// authorRepository 作者仓储实现(MySQL)
// 同时管理authors表和book_authors关联表
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) catalog.AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, a *catalog.Author) error {
	model := &AuthorModel{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		BirthDate:   a.BirthDate,
		Nationality: a.Nationality,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		// (first_name, last_name, birth_date)组合唯一
		if isDuplicateError(err) {
			return catalog.ErrAuthorDuplicate
		}
		return apperrors.Wrap(err, "创建作者失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *authorRepository) FindByID(ctx context.Context, id uint) (*catalog.Author, error) {
	var model AuthorModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

func (r *authorRepository) Update(ctx context.Context, a *catalog.Author) error {
	model := &AuthorModel{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		BirthDate:   a.BirthDate,
		Nationality: a.Nationality,
		CreatedAt:   a.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return catalog.ErrAuthorDuplicate
		}
		return apperrors.Wrap(err, "更新作者失败")
	}
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除作者
// 注意:book_authors关联行由应用层在同一事务中先调用DeleteLinksByAuthor清理
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&AuthorModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除作者失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrAuthorNotFound
	}
	return nil
}

func (r *authorRepository) List(ctx context.Context) ([]*catalog.Author, error) {
	var models []AuthorModel
	err := getDB(ctx, r.db).Order("last_name ASC, first_name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询作者列表失败")
	}

	authors := make([]*catalog.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, nil
}

// Assign 建立图书-作者关联
// 重复关联(同一复合主键)直接忽略,保证幂等
func (r *authorRepository) Assign(ctx context.Context, link catalog.BookAuthor) error {
	model := &BookAuthorModel{
		BookID:   link.BookID,
		AuthorID: link.AuthorID,
		Role:     link.Role,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return nil
		}
		return apperrors.Wrap(err, "关联图书作者失败")
	}
	return nil
}

// Unassign 解除图书-作者关联
func (r *authorRepository) Unassign(ctx context.Context, bookID, authorID uint) error {
	err := getDB(ctx, r.db).
		Where("book_id = ? AND author_id = ?", bookID, authorID).
		Delete(&BookAuthorModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "解除图书作者关联失败")
	}
	return nil
}

// DeleteLinksByAuthor 删除某作者的所有图书关联(删除作者的事务中调用)
func (r *authorRepository) DeleteLinksByAuthor(ctx context.Context, authorID uint) error {
	err := getDB(ctx, r.db).
		Where("author_id = ?", authorID).
		Delete(&BookAuthorModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "清理作者关联失败")
	}
	return nil
}

// DeleteLinksByBook 删除某图书的所有作者关联(删除图书的事务中调用)
func (r *authorRepository) DeleteLinksByBook(ctx context.Context, bookID uint) error {
	err := getDB(ctx, r.db).
		Where("book_id = ?", bookID).
		Delete(&BookAuthorModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "清理图书作者关联失败")
	}
	return nil
}

func toAuthorEntity(model *AuthorModel) *catalog.Author {
	return &catalog.Author{
		ID:          model.ID,
		FirstName:   model.FirstName,
		LastName:    model.LastName,
		BirthDate:   model.BirthDate,
		Nationality: model.Nationality,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
