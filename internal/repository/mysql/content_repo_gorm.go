package mysql

import (
	"context"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type contentRepo[T any] struct {
	db *gorm.DB
}

func NewContentRepository[T any](db *gorm.DB) repository.ContentRepository[T] {
	return &contentRepo[T]{db: db}
}

func (r *contentRepo[T]) Create(ctx context.Context, v *T) error {
	return translate(r.db.WithContext(ctx).Create(v).Error)
}

func (r *contentRepo[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var v T
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *contentRepo[T]) List(ctx context.Context, p repository.Page) ([]T, int64, error) {
	page := p.Normalize()
	q := r.db.WithContext(ctx).Model(new(T))
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var out []T
	if err := q.Order("created_at DESC").Offset(page.Offset()).Limit(page.Limit).Find(&out).Error; err != nil {
		return nil, 0, translate(err)
	}
	return out, total, nil
}

func (r *contentRepo[T]) Update(ctx context.Context, id string, v *T) error {
	return affected(r.db.WithContext(ctx).Model(v).Where("id = ?", id).Select("*").Omit("id", "created_at").Updates(v))
}

func (r *contentRepo[T]) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Delete(new(T), "id = ?", id))
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, c *domain.Category) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *categoryRepo) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).First(&c, "slug = ?", slug).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	return out, translate(r.db.WithContext(ctx).Order("name ASC").Find(&out).Error)
}

func (r *categoryRepo) Update(ctx context.Context, c *domain.Category) error {
	return affected(r.db.WithContext(ctx).Model(c).Select("*").Omit("created_at").Updates(c))
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id))
}
