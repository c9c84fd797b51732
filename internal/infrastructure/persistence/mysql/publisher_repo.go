package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/catalog"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// publisherRepository 出版社仓储实现(MySQL)
type publisherRepository struct {
	db *gorm.DB
}

// NewPublisherRepository 创建出版社仓储
func NewPublisherRepository(db *gorm.DB) catalog.PublisherRepository {
	return &publisherRepository{db: db}
}

func (r *publisherRepository) Create(ctx context.Context, p *catalog.Publisher) error {
	model := &PublisherModel{
		Name:         p.Name,
		ContactEmail: p.ContactEmail,
		ContactPhone: p.ContactPhone,
		Address:      p.Address,
		FoundedYear:  p.FoundedYear,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建出版社失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *publisherRepository) FindByID(ctx context.Context, id uint) (*catalog.Publisher, error) {
	var model PublisherModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrPublisherNotFound
		}
		return nil, apperrors.Wrap(err, "查询出版社失败")
	}
	return toPublisherEntity(&model), nil
}

func (r *publisherRepository) Update(ctx context.Context, p *catalog.Publisher) error {
	model := &PublisherModel{
		ID:           p.ID,
		Name:         p.Name,
		ContactEmail: p.ContactEmail,
		ContactPhone: p.ContactPhone,
		Address:      p.Address,
		FoundedYear:  p.FoundedYear,
		CreatedAt:    p.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新出版社失败")
	}
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除出版社
// 注意:图书的publisher_id置空由应用层在同一事务中先行处理
func (r *publisherRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&PublisherModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除出版社失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrPublisherNotFound
	}
	return nil
}

func (r *publisherRepository) List(ctx context.Context) ([]*catalog.Publisher, error) {
	var models []PublisherModel
	if err := getDB(ctx, r.db).Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询出版社列表失败")
	}

	publishers := make([]*catalog.Publisher, len(models))
	for i := range models {
		publishers[i] = toPublisherEntity(&models[i])
	}
	return publishers, nil
}

func toPublisherEntity(model *PublisherModel) *catalog.Publisher {
	return &catalog.Publisher{
		ID:           model.ID,
		Name:         model.Name,
		ContactEmail: model.ContactEmail,
		ContactPhone: model.ContactPhone,
		Address:      model.Address,
		FoundedYear:  model.FoundedYear,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
