package mysql

import (
	"context"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	return affected(r.db.WithContext(ctx).
		Model(&domain.User{ID: id}).
		Select("password", "updated_at").
		Updates(&domain.User{Password: hash, UpdatedAt: time.Now()}))
}

func (r *userRepo) UpdateWishlist(ctx context.Context, id string, productIDs []string) error {
	return affected(r.db.WithContext(ctx).
		Model(&domain.User{ID: id}).
		Select("wishlist", "updated_at").
		Updates(&domain.User{Wishlist: productIDs, UpdatedAt: time.Now()}))
}

type resetRepo struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) repository.PasswordResetRepository {
	return &resetRepo{db: db}
}

func (r *resetRepo) Create(ctx context.Context, pr *domain.PasswordReset) error {
	return translate(r.db.WithContext(ctx).Create(pr).Error)
}

func (r *resetRepo) FindByTokenHash(ctx context.Context, hash string) (*domain.PasswordReset, error) {
	var pr domain.PasswordReset
	if err := r.db.WithContext(ctx).First(&pr, "token_hash = ?", hash).Error; err != nil {
		return nil, translate(err)
	}
	return &pr, nil
}

func (r *resetRepo) MarkUsed(ctx context.Context, id string) error {
	now := time.Now()
	return affected(r.db.WithContext(ctx).
		Model(&domain.PasswordReset{ID: id}).
		Where("used_at IS NULL").
		Update("used_at", &now))
}
