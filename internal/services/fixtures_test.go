package services

import (
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/cache"
	"storefront-service/internal/mocks"
	"storefront-service/internal/stock"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func CreateMockLamp() *domain.Product {
	return &domain.Product{
		ID:       "lamp-1",
		Slug:     "desk-lamp",
		Name:     "Desk Lamp",
		Category: "lighting",
		Price:    1000,
		Stock:    10,
		Images:   []string{"lamp.jpg"},
		Variants: []domain.Variant{{
			Name: "Finish",
			Options: []domain.Option{
				{Label: "Black", Stock: 4},
				{Label: "Brass", PriceModifier: 200, Stock: 5},
			},
		}},
		AddOns: []domain.AddOn{{ID: "bulb", Name: "Spare bulb", Price: 50}},
	}
}

func CreateMockOrder(id, userID string, status domain.OrderStatus, items ...domain.OrderItem) *domain.Order {
	o := &domain.Order{
		ID:         id,
		OrderID:    "ORD-" + id,
		UserID:     userID,
		Items:      items,
		Status:     domain.StatusOrdered,
		TotalPrice: 1000,
		CreatedAt:  testNow.Add(-time.Hour),
	}
	if status != domain.StatusOrdered {
		if err := o.TransitionTo(status, testNow.Add(-30*time.Minute)); err != nil {
			panic(err)
		}
	}
	return o
}

func pick(name, label string) domain.Selection {
	return domain.Selection{Name: name, OptionDetails: domain.OptionDetails{Label: label}}
}

type orderDeps struct {
	orders    *mocks.MockOrderRepository
	products  *mocks.MockProductRepository
	sales     *mocks.MockSaleRepository
	publisher *mocks.MockPublisher
	gateway   *mocks.MockGateway
}

func newOrderService() (*OrderService, orderDeps) {
	d := orderDeps{
		orders:    new(mocks.MockOrderRepository),
		products:  new(mocks.MockProductRepository),
		sales:     new(mocks.MockSaleRepository),
		publisher: new(mocks.MockPublisher),
		gateway:   new(mocks.MockGateway),
	}
	sales := NewSaleService(d.sales, cache.Nop{}, time.Minute)
	sales.now = fixedClock
	svc := NewOrderService(d.orders, d.products, sales, stock.NewManager(d.products, nil), d.publisher, d.gateway)
	svc.now = fixedClock
	return svc, d
}

const (
	TestUserID  = "user-1"
	TestAdminID = "admin-1"
)

var (
	customer = Actor{UserID: TestUserID, Role: domain.RoleUser}
	admin    = Actor{UserID: TestAdminID, Role: domain.RoleAdmin}
)
