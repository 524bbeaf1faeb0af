package mongo

import (
	"context"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type orderRepo struct {
	coll *mongo.Collection
}

func NewOrderRepository(coll *mongo.Collection) repository.OrderRepository {
	return &orderRepo{coll: coll}
}

func (r *orderRepo) Save(ctx context.Context, o *domain.Order) error {
	return insert(ctx, r.coll, o)
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := findOne[domain.Order](ctx, r.coll, bson.M{"$or": bson.A{
		bson.M{"_id": id},
		bson.M{"orderId": id},
	}})
	if err != nil {
		return nil, err
	}
	o.Normalize()
	return o, nil
}

func (r *orderRepo) List(ctx context.Context, f repository.OrderFilter) ([]domain.Order, int64, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["userId"] = f.UserID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translate(err)
	}
	out, err := findAll[domain.Order](ctx, r.coll, filter, newestFirst(f.Page))
	if err != nil {
		return nil, 0, err
	}
	for i := range out {
		out[i].Normalize()
	}
	return out, total, nil
}

func (r *orderRepo) Update(ctx context.Context, o *domain.Order) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
