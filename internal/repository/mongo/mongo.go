package mongo

import (
	"context"
	"errors"
	"regexp"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ProductsCollection     = "products"
	OrdersCollection       = "orders"
	SalesCollection        = "sales"
	ReviewsCollection      = "reviews"
	UsersCollection        = "users"
	ResetsCollection       = "password_resets"
	CategoriesCollection   = "categories"
	BlogsCollection        = "blogs"
	ProjectsCollection     = "projects"
	TestimonialsCollection = "testimonials"
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrConflict
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return domain.ErrTimeout
	}
	return err
}

func matched(res *mongo.UpdateResult, err error) error {
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func newestFirst(p repository.Page) *options.FindOptions {
	page := p.Normalize()
	return options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, translate(err)
	}
	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any) (*T, error) {
	var v T
	if err := coll.FindOne(ctx, filter).Decode(&v); err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func insert(ctx context.Context, coll *mongo.Collection, doc any) error {
	_, err := coll.InsertOne(ctx, doc)
	return translate(err)
}

func containsFold(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

// NewStore wires every collection-backed repository onto db.
func NewStore(db *mongo.Database) *repository.Store {
	return &repository.Store{
		Products:     NewProductRepository(db.Collection(ProductsCollection)),
		Orders:       NewOrderRepository(db.Collection(OrdersCollection)),
		Sales:        NewSaleRepository(db.Collection(SalesCollection)),
		Reviews:      NewReviewRepository(db.Collection(ReviewsCollection)),
		Users:        NewUserRepository(db.Collection(UsersCollection)),
		Resets:       NewPasswordResetRepository(db.Collection(ResetsCollection)),
		Categories:   NewCategoryRepository(db.Collection(CategoriesCollection)),
		Blogs:        NewContentRepository[domain.Blog](db.Collection(BlogsCollection)),
		Projects:     NewContentRepository[domain.Project](db.Collection(ProjectsCollection)),
		Testimonials: NewContentRepository[domain.Testimonial](db.Collection(TestimonialsCollection)),
		Close: func(ctx context.Context) error {
			return db.Client().Disconnect(ctx)
		},
	}
}

// Indexes lists the unique keys each collection relies on.
var Indexes = map[string][]mongo.IndexModel{
	ProductsCollection: {
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	},
	OrdersCollection: {
		{Keys: bson.D{{Key: "orderId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	},
	ReviewsCollection: {
		{Keys: bson.D{{Key: "product", Value: 1}, {Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	UsersCollection: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	ResetsCollection: {
		{Keys: bson.D{{Key: "tokenHash", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	CategoriesCollection: {
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
}
