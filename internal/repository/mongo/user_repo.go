package mongo

import (
	"context"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepo struct {
	coll *mongo.Collection
}

func NewUserRepository(coll *mongo.Collection) repository.UserRepository {
	return &userRepo{coll: coll}
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	return insert(ctx, r.coll, u)
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.coll, bson.M{"_id": id})
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.coll, bson.M{"email": email})
}

func (r *userRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	set := bson.M{"password": hash, "updatedAt": time.Now()}
	return matched(r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}))
}

func (r *userRepo) UpdateWishlist(ctx context.Context, id string, productIDs []string) error {
	set := bson.M{"wishlist": productIDs, "updatedAt": time.Now()}
	return matched(r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}))
}

type resetRepo struct {
	coll *mongo.Collection
}

func NewPasswordResetRepository(coll *mongo.Collection) repository.PasswordResetRepository {
	return &resetRepo{coll: coll}
}

func (r *resetRepo) Create(ctx context.Context, pr *domain.PasswordReset) error {
	return insert(ctx, r.coll, pr)
}

func (r *resetRepo) FindByTokenHash(ctx context.Context, hash string) (*domain.PasswordReset, error) {
	return findOne[domain.PasswordReset](ctx, r.coll, bson.M{"tokenHash": hash})
}

func (r *resetRepo) MarkUsed(ctx context.Context, id string) error {
	filter := bson.M{"_id": id, "usedAt": bson.M{"$exists": false}}
	return matched(r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"usedAt": time.Now()}}))
}
