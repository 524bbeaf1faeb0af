package mongo

import (
	"context"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type reviewRepo struct {
	coll *mongo.Collection
}

func NewReviewRepository(coll *mongo.Collection) repository.ReviewRepository {
	return &reviewRepo{coll: coll}
}

func (r *reviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	return insert(ctx, r.coll, rv)
}

func (r *reviewRepo) FindByProductAndUser(ctx context.Context, productID, userID string) (*domain.Review, error) {
	return findOne[domain.Review](ctx, r.coll, bson.M{"product": productID, "user": userID})
}

func (r *reviewRepo) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	return findAll[domain.Review](ctx, r.coll, bson.M{"product": productID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *reviewRepo) Summary(ctx context.Context, productID string) (domain.RatingSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product": productID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.RatingSummary{}, translate(err)
	}
	var rows []struct {
		Average float64 `bson:"average"`
		Count   int     `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return domain.RatingSummary{}, translate(err)
	}
	if len(rows) == 0 {
		return domain.RatingSummary{}, nil
	}
	return domain.RatingSummary{Average: rows[0].Average, Count: rows[0].Count}, nil
}
