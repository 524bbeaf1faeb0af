package mysql

import (
	"context"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productRepo) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, "slug = ?", slug).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, int64, error) {
	page := f.Page.Normalize()
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if f.Featured {
		q = q.Where("is_featured = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var out []domain.Product
	if err := q.Order("created_at DESC").Offset(page.Offset()).Limit(page.Limit).Find(&out).Error; err != nil {
		return nil, 0, translate(err)
	}
	return out, total, nil
}

func (r *productRepo) Update(ctx context.Context, p *domain.Product) error {
	return affected(r.db.WithContext(ctx).Model(p).Select("*").Omit("created_at", "rating", "num_reviews").Updates(p))
}

func (r *productRepo) UpdateStock(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now()
	return affected(r.db.WithContext(ctx).Model(p).Select("stock", "variants", "updated_at").Updates(p))
}

func (r *productRepo) UpdateRating(ctx context.Context, id string, s domain.RatingSummary) error {
	return translate(r.db.WithContext(ctx).
		Model(&domain.Product{ID: id}).
		Select("rating", "num_reviews").
		Updates(&domain.Product{Rating: s.Average, NumReviews: s.Count}).Error)
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id))
}
