package services

import (
	"context"
	"testing"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestContentService_Blog(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockContentRepository[domain.Blog])
	svc := NewContentService[domain.Blog](repo)
	svc.now = fixedClock

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Blog")).Return(nil)
	b, err := svc.Create(ctx, &domain.Blog{Title: "Choosing a Lamp", Content: "..."})
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "choosing-a-lamp", b.Slug)
	assert.Equal(t, testNow, b.CreatedAt)

	_, err = svc.Create(ctx, &domain.Blog{Title: "No body"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	created := testNow.Add(-48 * time.Hour)
	repo.On("FindByID", mock.Anything, "b1").Return(&domain.Blog{ID: "b1", Title: "Old", Content: "x", CreatedAt: created}, nil)
	repo.On("Update", mock.Anything, "b1", mock.AnythingOfType("*domain.Blog")).Return(nil)
	up, err := svc.Update(ctx, "b1", &domain.Blog{ID: "ignored", Title: "New Title", Content: "y"})
	require.NoError(t, err)
	assert.Equal(t, "b1", up.ID)
	assert.Equal(t, created, up.CreatedAt)
	assert.Equal(t, testNow, up.UpdatedAt)
	assert.Equal(t, "new-title", up.Slug)
}

func TestContentService_TestimonialNotFound(t *testing.T) {
	repo := new(mocks.MockContentRepository[domain.Testimonial])
	repo.On("FindByID", mock.Anything, "t9").Return(nil, domain.ErrNotFound)
	repo.On("Delete", mock.Anything, "t9").Return(domain.ErrNotFound)
	svc := NewContentService[domain.Testimonial](repo)

	_, err := svc.Update(context.Background(), "t9", &domain.Testimonial{Name: "A", Quote: "B"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "t9"), domain.ErrNotFound)
}

func TestCategoryService(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockCategoryRepository)
	svc := NewCategoryService(repo)
	svc.now = fixedClock

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Category")).Return(nil)
	c, err := svc.Create(ctx, &domain.Category{Name: "Floor Lamps"})
	require.NoError(t, err)
	assert.Equal(t, "floor-lamps", c.Slug)

	_, err = svc.Create(ctx, &domain.Category{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	repo.On("FindBySlug", mock.Anything, "floor-lamps").Return(&domain.Category{ID: "c1", Slug: "floor-lamps", Name: "Floor Lamps", CreatedAt: testNow}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Category")).Return(nil)
	repo.On("Delete", mock.Anything, "c1").Return(nil)

	up, err := svc.Update(ctx, "floor-lamps", &domain.Category{Name: "Standing Lamps"})
	require.NoError(t, err)
	assert.Equal(t, "c1", up.ID)
	assert.Equal(t, "floor-lamps", up.Slug)
	require.NoError(t, svc.Delete(ctx, "floor-lamps"))
}

func TestWishlistService(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.MockUserRepository)
	products := new(mocks.MockProductRepository)
	svc := NewWishlistService(users, products)

	users.On("FindByID", mock.Anything, "u1").Return(&domain.User{ID: "u1", Wishlist: []string{"lamp-1", "gone"}}, nil)
	products.On("FindByID", mock.Anything, "lamp-1").Return(CreateMockLamp(), nil)
	products.On("FindByID", mock.Anything, "gone").Return(nil, domain.ErrNotFound)
	products.On("FindByID", mock.Anything, "chair").Return(&domain.Product{ID: "chair"}, nil)
	users.On("UpdateWishlist", mock.Anything, "u1", []string{"lamp-1", "gone", "chair"}).Return(nil)
	users.On("UpdateWishlist", mock.Anything, "u1", []string{"gone"}).Return(nil)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "lamp-1", list[0].ID)

	ids, err := svc.Add(ctx, "u1", "lamp-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"lamp-1", "gone"}, ids)

	ids, err = svc.Add(ctx, "u1", "chair")
	require.NoError(t, err)
	assert.Equal(t, []string{"lamp-1", "gone", "chair"}, ids)

	_, err = svc.Add(ctx, "u1", "gone")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ids, err = svc.Remove(ctx, "u1", "lamp-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"gone"}, ids)
}
