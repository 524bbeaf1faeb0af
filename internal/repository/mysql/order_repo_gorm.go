package mysql

import (
	"context"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Save(ctx context.Context, o *domain.Order) error {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		log.Printf("order save error: %v", err)
		return translate(err)
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Where("id = ? OR order_id = ?", id, id).First(&o).Error; err != nil {
		return nil, translate(err)
	}
	o.Normalize()
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context, f repository.OrderFilter) ([]domain.Order, int64, error) {
	page := f.Page.Normalize()
	q := r.db.WithContext(ctx).Model(&domain.Order{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var out []domain.Order
	if err := q.Order("created_at DESC").Offset(page.Offset()).Limit(page.Limit).Find(&out).Error; err != nil {
		log.Printf("order list error: %v", err)
		return nil, 0, translate(err)
	}
	for i := range out {
		out[i].Normalize()
	}
	return out, total, nil
}

func (r *orderRepo) Update(ctx context.Context, o *domain.Order) error {
	return affected(r.db.WithContext(ctx).Model(o).Select("*").Omit("created_at").Updates(o))
}
