package mongo

import (
	"context"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type saleRepo struct {
	coll *mongo.Collection
}

func NewSaleRepository(coll *mongo.Collection) repository.SaleRepository {
	return &saleRepo{coll: coll}
}

func (r *saleRepo) Create(ctx context.Context, s *domain.Sale) error {
	return insert(ctx, r.coll, s)
}

func (r *saleRepo) FindByID(ctx context.Context, id string) (*domain.Sale, error) {
	return findOne[domain.Sale](ctx, r.coll, bson.M{"_id": id})
}

func (r *saleRepo) Active(ctx context.Context) ([]domain.Sale, error) {
	filter := bson.M{"active": true, "expiresAt": bson.M{"$gt": time.Now()}}
	return findAll[domain.Sale](ctx, r.coll, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *saleRepo) Update(ctx context.Context, s *domain.Sale) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
