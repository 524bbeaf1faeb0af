package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/cache"
	"storefront-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSaleService() (*SaleService, *mocks.MockSaleRepository, *mocks.MockCache) {
	repo := new(mocks.MockSaleRepository)
	c := new(mocks.MockCache)
	svc := NewSaleService(repo, c, time.Minute)
	svc.now = fixedClock
	return svc, repo, c
}

func TestSaleService_ActiveAll(t *testing.T) {
	ctx := context.Background()
	newer := domain.Sale{ID: "new", Name: "New", Active: true, ExpiresAt: testNow.Add(time.Hour), CreatedAt: testNow.Add(-time.Minute)}
	stale := domain.Sale{ID: "stale", Name: "Stale", Active: true, ExpiresAt: testNow.Add(-time.Second)}

	t.Run("filters sales that expired while cached", func(t *testing.T) {
		svc, repo, c := newSaleService()
		c.On("Get", mock.Anything, cache.ActiveSalesKey, mock.Anything).Return(true, nil).Run(func(args mock.Arguments) {
			*args.Get(2).(*[]domain.Sale) = []domain.Sale{newer, stale}
		})

		got, err := svc.ActiveAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "new", got[0].ID)
		repo.AssertNotCalled(t, "Active", mock.Anything)
	})

	t.Run("miss reads the repository", func(t *testing.T) {
		svc, repo, c := newSaleService()
		c.On("Get", mock.Anything, cache.ActiveSalesKey, mock.Anything).Return(false, errors.New("redis down"))
		repo.On("Active", mock.Anything).Return([]domain.Sale{newer}, nil)
		c.On("Set", mock.Anything, cache.ActiveSalesKey, []domain.Sale{newer}, time.Minute).Return(nil)

		cur, err := svc.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, "new", cur.ID)
	})

	t.Run("no sale running", func(t *testing.T) {
		svc, repo, c := newSaleService()
		c.On("Get", mock.Anything, cache.ActiveSalesKey, mock.Anything).Return(false, nil)
		repo.On("Active", mock.Anything).Return([]domain.Sale{}, nil)
		c.On("Set", mock.Anything, cache.ActiveSalesKey, mock.Anything, time.Minute).Return(nil)

		cur, err := svc.Current(ctx)
		require.NoError(t, err)
		assert.Nil(t, cur)
	})
}

func TestSaleService_ForProductPrefersNewest(t *testing.T) {
	svc, repo, c := newSaleService()
	c.On("Get", mock.Anything, cache.ActiveSalesKey, mock.Anything).Return(false, nil)
	c.On("Set", mock.Anything, cache.ActiveSalesKey, mock.Anything, time.Minute).Return(nil)
	repo.On("Active", mock.Anything).Return([]domain.Sale{
		{ID: "other", Name: "Chairs", Categories: []string{"chairs"}, DiscountPercent: 50, Active: true, ExpiresAt: testNow.Add(time.Hour)},
		{ID: "newest", Name: "Lamps", Categories: []string{"lighting"}, DiscountPercent: 5, Active: true, ExpiresAt: testNow.Add(time.Hour)},
		{ID: "older", Name: "All", DiscountPercent: 20, Active: true, ExpiresAt: testNow.Add(time.Hour)},
	}, nil)

	got, err := svc.ForProduct(context.Background(), CreateMockLamp())
	require.NoError(t, err)
	assert.Equal(t, "newest", got.ID)
}

func TestSaleService_Create(t *testing.T) {
	later := testNow.Add(24 * time.Hour)
	off := false
	tests := []struct {
		name    string
		in      SaleInput
		wantErr error
		active  bool
	}{
		{"defaults to active", SaleInput{Name: "Summer", DiscountPercent: 30, ExpiresAt: later}, nil, true},
		{"inactive draft may be expired", SaleInput{Name: "Draft", DiscountPercent: 30, ExpiresAt: testNow.Add(-time.Hour), Active: &off}, nil, false},
		{"discount above 95", SaleInput{Name: "Too much", DiscountPercent: 96, ExpiresAt: later}, domain.ErrValidation, false},
		{"negative discount", SaleInput{Name: "Neg", DiscountPercent: -1, ExpiresAt: later}, domain.ErrValidation, false},
		{"missing name", SaleInput{DiscountPercent: 10, ExpiresAt: later}, domain.ErrValidation, false},
		{"already expired", SaleInput{Name: "Past", DiscountPercent: 10, ExpiresAt: testNow}, domain.ErrValidation, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, c := newSaleService()
			repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return(nil).Maybe()
			c.On("Delete", mock.Anything, []string{cache.ActiveSalesKey}).Return(nil).Maybe()

			got, err := svc.Create(context.Background(), tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.active, got.Active)
			assert.NotNil(t, got.Categories)
			assert.Equal(t, testNow, got.CreatedAt)
			c.AssertCalled(t, "Delete", mock.Anything, []string{cache.ActiveSalesKey})
		})
	}
}

func TestSaleService_Update(t *testing.T) {
	svc, repo, c := newSaleService()
	cur := &domain.Sale{ID: "s1", Name: "Old", DiscountPercent: 5, Active: true, ExpiresAt: testNow.Add(time.Hour), CreatedAt: testNow.Add(-time.Hour)}
	repo.On("FindByID", mock.Anything, "s1").Return(cur, nil)
	repo.On("FindByID", mock.Anything, "nope").Return(nil, domain.ErrNotFound)
	repo.On("Update", mock.Anything, cur).Return(nil)
	c.On("Delete", mock.Anything, []string{cache.ActiveSalesKey}).Return(nil)

	got, err := svc.Update(context.Background(), "s1", SaleInput{Name: "New", DiscountPercent: 15, ExpiresAt: testNow.Add(2 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, 15, got.DiscountPercent)
	assert.True(t, got.Active)
	assert.Equal(t, testNow.Add(-time.Hour), got.CreatedAt)

	_, err = svc.Update(context.Background(), "nope", SaleInput{Name: "x", ExpiresAt: testNow.Add(time.Hour)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(context.Background(), "", SaleInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
