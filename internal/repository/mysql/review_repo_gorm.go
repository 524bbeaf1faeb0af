package mysql

import (
	"context"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	return translate(r.db.WithContext(ctx).Create(rv).Error)
}

func (r *reviewRepo) FindByProductAndUser(ctx context.Context, productID, userID string) (*domain.Review, error) {
	var rv domain.Review
	err := r.db.WithContext(ctx).First(&rv, "product_id = ? AND user_id = ?", productID, userID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rv, nil
}

func (r *reviewRepo) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("created_at DESC").Find(&out).Error
	return out, translate(err)
}

func (r *reviewRepo) Summary(ctx context.Context, productID string) (domain.RatingSummary, error) {
	var row struct {
		Average float64
		Count   int
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return domain.RatingSummary{}, translate(err)
	}
	return domain.RatingSummary{Average: row.Average, Count: row.Count}, nil
}
