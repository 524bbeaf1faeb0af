package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/payment"
	rabbit "storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"
	"storefront-service/internal/stock"

	"github.com/google/uuid"
)

type CheckoutRequest struct {
	Items           []LineRequest          `json:"orderItems"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// StatusView is the slice of an order the status endpoint exposes.
type StatusView struct {
	ID                 string             `json:"id"`
	OrderID            string             `json:"orderId"`
	Status             domain.OrderStatus `json:"status"`
	IsPaid             bool               `json:"isPaid"`
	IsConfirmed        bool               `json:"isConfirmed"`
	ConfirmedAt        *time.Time         `json:"confirmedAt,omitempty"`
	IsShipped          bool               `json:"isShipped"`
	ShippedAt          *time.Time         `json:"shippedAt,omitempty"`
	IsDelivered        bool               `json:"isDelivered"`
	DeliveredAt        *time.Time         `json:"deliveredAt,omitempty"`
	IsCancelled        bool               `json:"isCancelled"`
	CancelledAt        *time.Time         `json:"cancelledAt,omitempty"`
	CancellationReason string             `json:"cancellationReason,omitempty"`
}

func NewStatusView(o *domain.Order) StatusView {
	return StatusView{
		ID:                 o.ID,
		OrderID:            o.OrderID,
		Status:             o.Status,
		IsPaid:             o.IsPaid,
		IsConfirmed:        o.IsConfirmed,
		ConfirmedAt:        o.ConfirmedAt,
		IsShipped:          o.IsShipped,
		ShippedAt:          o.ShippedAt,
		IsDelivered:        o.IsDelivered,
		DeliveredAt:        o.DeliveredAt,
		IsCancelled:        o.IsCancelled,
		CancelledAt:        o.CancelledAt,
		CancellationReason: o.CancellationReason,
	}
}

type OrderService struct {
	repo      repository.OrderRepository
	products  repository.ProductRepository
	sales     *SaleService
	stock     *stock.Manager
	publisher rabbit.PublisherInterface
	gateway   payment.Gateway

	shippingPrice int64
	freeShipping  int64
	now           func() time.Time
}

func NewOrderService(r repository.OrderRepository, products repository.ProductRepository, sales *SaleService, sm *stock.Manager, pub rabbit.PublisherInterface, gw payment.Gateway) *OrderService {
	if pub == nil {
		pub = rabbit.Nop{}
	}
	if gw == nil {
		gw = payment.Disabled{}
	}
	return &OrderService{
		repo:      r,
		products:  products,
		sales:     sales,
		stock:     sm,
		publisher: pub,
		gateway:   gw,
		now:       time.Now,
	}
}

// SetShipping configures the flat shipping price and the items total from
// which shipping is free. A zero threshold never waives shipping.
func (u *OrderService) SetShipping(price, freeFrom int64) {
	u.shippingPrice = price
	u.freeShipping = freeFrom
}

// Checkout prices every line from the catalog, reserves stock and stores the
// order.
func (u *OrderService) Checkout(ctx context.Context, userID string, req CheckoutRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, invalid("order has no items")
	}
	if err := validateStruct(req.ShippingAddress); err != nil {
		return nil, err
	}

	var sales []domain.Sale
	if u.sales != nil {
		var err error
		if sales, err = u.sales.ActiveAll(ctx); err != nil {
			return nil, err
		}
	}

	now := u.now()
	items := make([]domain.OrderItem, 0, len(req.Items))
	var itemsPrice int64
	for _, line := range req.Items {
		p, err := u.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, invalid("product %s does not exist", line.ProductID)
			}
			return nil, err
		}
		item, b, err := buildLine(p, line, discountOf(saleFor(sales, p, now)))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		itemsPrice += b.LineTotal
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		OrderID:         newOrderToken(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   strings.TrimSpace(req.PaymentMethod),
		ItemsPrice:      itemsPrice,
		ShippingPrice:   u.shippingFor(itemsPrice),
		Status:          domain.StatusOrdered,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.TotalPrice = order.ItemsPrice + order.ShippingPrice
	if order.PaymentMethod == "" {
		order.PaymentMethod = "cod"
	}

	if err := u.stock.Reserve(ctx, items); err != nil {
		return nil, err
	}
	if err := u.repo.Save(ctx, order); err != nil {
		if rep := u.stock.Restore(ctx, items); rep.Failed > 0 {
			log.Printf("order %s: %d lines not released after failed save", order.OrderID, rep.Failed)
		}
		return nil, err
	}

	u.publish(ctx, domain.EventOrderCreated, domain.OrderCreatedEvent{
		OrderID:    order.OrderID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		Items:      len(order.Items),
		CreatedAt:  order.CreatedAt,
	})
	return order, nil
}

func (u *OrderService) shippingFor(itemsPrice int64) int64 {
	if u.freeShipping > 0 && itemsPrice >= u.freeShipping {
		return 0
	}
	return u.shippingPrice
}

func (u *OrderService) Get(ctx context.Context, id string, actor Actor) (*domain.Order, error) {
	o, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.owns(o.UserID) {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

func (u *OrderService) ListForUser(ctx context.Context, userID string, page repository.Page) ([]domain.Order, int64, error) {
	return u.List(ctx, repository.OrderFilter{UserID: userID, Page: page})
}

func (u *OrderService) List(ctx context.Context, f repository.OrderFilter) ([]domain.Order, int64, error) {
	orders, total, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		orders[i].Normalize()
	}
	return orders, total, nil
}

func (u *OrderService) Status(ctx context.Context, id string, actor Actor) (StatusView, error) {
	o, err := u.Get(ctx, id, actor)
	if err != nil {
		return StatusView{}, err
	}
	return NewStatusView(o), nil
}

// UpdateStatus applies an admin status change. Moving to cancelled takes the
// same path as Cancel, including stock restoration.
func (u *OrderService) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, *stock.Report, error) {
	next, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	o, err := u.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if next == domain.StatusCancelled {
		return u.cancel(ctx, o, "")
	}

	from := o.Status
	now := u.now()
	if err := o.TransitionTo(next, now); err != nil {
		return nil, nil, err
	}
	if err := u.repo.Update(ctx, o); err != nil {
		return nil, nil, err
	}
	u.publish(ctx, domain.EventOrderStatusChanged, domain.OrderStatusChangedEvent{
		OrderID:   o.OrderID,
		From:      from,
		To:        next,
		ChangedAt: now,
	})
	return o, nil, nil
}

// Cancel cancels the order on behalf of its owner or an admin and returns the
// outcome of restoring every line's stock.
func (u *OrderService) Cancel(ctx context.Context, id, reason string, actor Actor) (*domain.Order, *stock.Report, error) {
	o, err := u.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !actor.owns(o.UserID) {
		return nil, nil, domain.ErrForbidden
	}
	return u.cancel(ctx, o, reason)
}

// cancel restores stock for every line before committing the status. Restore
// failures are reported, never fatal: the order is cancelled regardless.
func (u *OrderService) cancel(ctx context.Context, o *domain.Order, reason string) (*domain.Order, *stock.Report, error) {
	if err := o.CanCancel(); err != nil {
		return nil, nil, err
	}

	report := u.stock.Restore(ctx, o.Items)
	for _, f := range report.Failures() {
		log.Printf("order %s: stock for %s (%s) not restored: %s", o.OrderID, f.ProductID, f.Name, f.Error)
	}

	now := u.now()
	if err := o.Cancel(reason, now); err != nil {
		return nil, nil, err
	}
	if err := u.repo.Update(ctx, o); err != nil {
		log.Printf("order %s: stock restored but cancel not saved: %v", o.OrderID, err)
		return nil, nil, err
	}

	u.publish(ctx, domain.EventOrderCancelled, domain.OrderCancelledEvent{
		OrderID:        o.OrderID,
		Reason:         o.CancellationReason,
		RestoredItems:  report.Restored,
		FailedRestores: report.Failed,
		CancelledAt:    now,
	})
	return o, &report, nil
}

// CreatePayment opens a gateway order for the order's total. Amounts are sent
// in the currency's minor unit.
func (u *OrderService) CreatePayment(ctx context.Context, id string, actor Actor) (*payment.Intent, error) {
	o, err := u.Get(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if o.Cancelled() {
		return nil, domain.ErrOrderCancelled
	}
	if o.IsPaid {
		return nil, fmt.Errorf("%w: order %s is already paid", domain.ErrConflict, o.OrderID)
	}

	intent, err := u.gateway.CreateOrder(ctx, o.OrderID, o.TotalPrice*100)
	if err != nil {
		return nil, err
	}
	o.PaymentRef = intent.GatewayOrderID
	o.UpdatedAt = u.now()
	if err := u.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return intent, nil
}

type PaymentConfirmation struct {
	GatewayOrderID string `json:"razorpayId"`
	PaymentID      string `json:"paymentId"`
	Signature      string `json:"signature"`
}

func (u *OrderService) VerifyPayment(ctx context.Context, id string, pc PaymentConfirmation, actor Actor) (*domain.Order, error) {
	o, err := u.Get(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if o.Cancelled() {
		return nil, domain.ErrOrderCancelled
	}
	if o.IsPaid {
		return o, nil
	}
	if o.PaymentRef == "" || o.PaymentRef != pc.GatewayOrderID {
		return nil, invalid("payment does not belong to order %s", o.OrderID)
	}
	if !u.gateway.VerifySignature(pc.GatewayOrderID, pc.PaymentID, pc.Signature) {
		return nil, invalid("payment signature mismatch")
	}

	o.MarkPaid(pc.PaymentID, u.now())
	if err := u.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (u *OrderService) find(ctx context.Context, id string) (*domain.Order, error) {
	o, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Normalize()
	return o, nil
}

// publish is best effort; a lost event never fails the request.
func (u *OrderService) publish(ctx context.Context, pattern string, evt any) {
	if err := u.publisher.Publish(context.WithoutCancel(ctx), pattern, evt); err != nil {
		log.Printf("failed to publish %s: %v", pattern, err)
	}
}

func newOrderToken() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
