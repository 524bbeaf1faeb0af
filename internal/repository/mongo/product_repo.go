package mongo

import (
	"context"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type productRepo struct {
	coll *mongo.Collection
}

func NewProductRepository(coll *mongo.Collection) repository.ProductRepository {
	return &productRepo{coll: coll}
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	return insert(ctx, r.coll, p)
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return findOne[domain.Product](ctx, r.coll, bson.M{"_id": id})
}

func (r *productRepo) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return findOne[domain.Product](ctx, r.coll, bson.M{"slug": slug})
}

func (r *productRepo) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, int64, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Search != "" {
		filter["name"] = containsFold(f.Search)
	}
	if f.Featured {
		filter["isFeatured"] = true
	}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translate(err)
	}
	out, err := findAll[domain.Product](ctx, r.coll, filter, newestFirst(f.Page))
	return out, total, err
}

func (r *productRepo) Update(ctx context.Context, p *domain.Product) error {
	set := bson.M{
		"slug":        p.Slug,
		"name":        p.Name,
		"description": p.Description,
		"brand":       p.Brand,
		"category":    p.Category,
		"price":       p.Price,
		"stock":       p.Stock,
		"images":      p.Images,
		"variants":    p.Variants,
		"addOns":      p.AddOns,
		"isFeatured":  p.IsFeatured,
		"updatedAt":   p.UpdatedAt,
	}
	return matched(r.coll.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": set}))
}

func (r *productRepo) UpdateStock(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now()
	set := bson.M{"stock": p.Stock, "variants": p.Variants, "updatedAt": p.UpdatedAt}
	return matched(r.coll.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": set}))
}

func (r *productRepo) UpdateRating(ctx context.Context, id string, s domain.RatingSummary) error {
	set := bson.M{"rating": s.Average, "numReviews": s.Count}
	return matched(r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}))
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
