package mysql

import (
	"context"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) repository.SaleRepository {
	return &saleRepo{db: db}
}

func (r *saleRepo) Create(ctx context.Context, s *domain.Sale) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *saleRepo) FindByID(ctx context.Context, id string) (*domain.Sale, error) {
	var s domain.Sale
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *saleRepo) Active(ctx context.Context) ([]domain.Sale, error) {
	var out []domain.Sale
	err := r.db.WithContext(ctx).
		Where("active = ? AND expires_at > ?", true, time.Now()).
		Order("created_at DESC").
		Find(&out).Error
	return out, translate(err)
}

func (r *saleRepo) Update(ctx context.Context, s *domain.Sale) error {
	return affected(r.db.WithContext(ctx).Model(s).Select("*").Omit("created_at").Updates(s))
}
