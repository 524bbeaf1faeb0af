package mongo

import (
	"context"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type contentRepo[T any] struct {
	coll *mongo.Collection
}

func NewContentRepository[T any](coll *mongo.Collection) repository.ContentRepository[T] {
	return &contentRepo[T]{coll: coll}
}

func (r *contentRepo[T]) Create(ctx context.Context, v *T) error {
	return insert(ctx, r.coll, v)
}

func (r *contentRepo[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return findOne[T](ctx, r.coll, bson.M{"_id": id})
}

func (r *contentRepo[T]) List(ctx context.Context, p repository.Page) ([]T, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, translate(err)
	}
	out, err := findAll[T](ctx, r.coll, bson.M{}, newestFirst(p))
	return out, total, err
}

func (r *contentRepo[T]) Update(ctx context.Context, id string, v *T) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, v)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *contentRepo[T]) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type categoryRepo struct {
	coll *mongo.Collection
}

func NewCategoryRepository(coll *mongo.Collection) repository.CategoryRepository {
	return &categoryRepo{coll: coll}
}

func (r *categoryRepo) Create(ctx context.Context, c *domain.Category) error {
	return insert(ctx, r.coll, c)
}

func (r *categoryRepo) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return findOne[domain.Category](ctx, r.coll, bson.M{"slug": slug})
}

func (r *categoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	return findAll[domain.Category](ctx, r.coll, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (r *categoryRepo) Update(ctx context.Context, c *domain.Category) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
