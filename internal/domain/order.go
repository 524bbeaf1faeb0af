package domain

import (
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	StatusOrdered   OrderStatus = "ordered"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// forwardRank orders the non-terminal states. A forward status implies every
// flag whose rank is lower or equal.
var forwardRank = map[OrderStatus]int{
	StatusOrdered:   0,
	StatusConfirmed: 1,
	StatusShipped:   2,
	StatusDelivered: 3,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if st == StatusCancelled {
		return st, nil
	}
	if _, ok := forwardRank[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

type ShippingAddress struct {
	FullName   string `json:"fullName" bson:"fullName" validate:"required"`
	Address    string `json:"address" bson:"address" validate:"required"`
	City       string `json:"city" bson:"city" validate:"required"`
	PostalCode string `json:"postalCode" bson:"postalCode" validate:"required"`
	Country    string `json:"country" bson:"country" validate:"required"`
	Phone      string `json:"phone,omitempty" bson:"phone,omitempty"`
}

type OrderItem struct {
	ProductID string          `json:"product" bson:"product"`
	Name      string          `json:"name" bson:"name"`
	Image     string          `json:"image,omitempty" bson:"image,omitempty"`
	Quantity  int             `json:"quantity" bson:"quantity"`
	UnitPrice int64           `json:"price" bson:"price"`
	Variants  []Selection     `json:"variants,omitempty" bson:"variants,omitempty"`
	AddOns    []SelectedAddOn `json:"addOns,omitempty" bson:"addOns,omitempty"`
}

type Order struct {
	ID              string          `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	OrderID         string          `json:"orderId" bson:"orderId" gorm:"uniqueIndex;size:32"`
	UserID          string          `json:"userId" bson:"userId" gorm:"index;size:36"`
	Items           []OrderItem     `json:"orderItems" bson:"orderItems" gorm:"serializer:json"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress" gorm:"serializer:json"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentMethod" gorm:"size:32"`
	ItemsPrice      int64           `json:"itemsPrice" bson:"itemsPrice"`
	ShippingPrice   int64           `json:"shippingPrice" bson:"shippingPrice"`
	TotalPrice      int64           `json:"totalPrice" bson:"totalPrice"`

	Status OrderStatus `json:"status" bson:"status" gorm:"size:16;index"`

	IsPaid     bool       `json:"isPaid" bson:"isPaid"`
	PaidAt     *time.Time `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	PaymentRef string     `json:"paymentRef,omitempty" bson:"paymentRef,omitempty" gorm:"size:64;index"`
	PaymentID  string     `json:"paymentId,omitempty" bson:"paymentId,omitempty" gorm:"size:64"`

	// The flags below are projections of Status, kept on the document for
	// readers that still filter on them.
	IsConfirmed        bool       `json:"isConfirmed" bson:"isConfirmed"`
	ConfirmedAt        *time.Time `json:"confirmedAt,omitempty" bson:"confirmedAt,omitempty"`
	IsShipped          bool       `json:"isShipped" bson:"isShipped"`
	ShippedAt          *time.Time `json:"shippedAt,omitempty" bson:"shippedAt,omitempty"`
	IsDelivered        bool       `json:"isDelivered" bson:"isDelivered"`
	DeliveredAt        *time.Time `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	IsCancelled        bool       `json:"isCancelled" bson:"isCancelled"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty" bson:"cancellationReason,omitempty" gorm:"size:512"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Normalize derives Status from the flags for documents written before the
// status field existed.
func (o *Order) Normalize() {
	if o.Status != "" {
		return
	}
	switch {
	case o.IsCancelled:
		o.Status = StatusCancelled
	case o.IsDelivered:
		o.Status = StatusDelivered
	case o.IsShipped:
		o.Status = StatusShipped
	case o.IsConfirmed:
		o.Status = StatusConfirmed
	default:
		o.Status = StatusOrdered
	}
}

func (o *Order) Cancelled() bool {
	return o.Status == StatusCancelled || o.IsCancelled
}

// TransitionTo moves the order to next. Forward statuses reset every flag to
// the cumulative set implied by next; cancelled is delegated to Cancel.
func (o *Order) TransitionTo(next OrderStatus, now time.Time) error {
	if next == StatusCancelled {
		return o.Cancel("", now)
	}
	rank, ok := forwardRank[next]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	if o.Cancelled() {
		return ErrOrderCancelled
	}

	o.IsConfirmed, o.ConfirmedAt = flagAt(rank >= 1, o.ConfirmedAt, now)
	o.IsShipped, o.ShippedAt = flagAt(rank >= 2, o.ShippedAt, now)
	o.IsDelivered, o.DeliveredAt = flagAt(rank >= 3, o.DeliveredAt, now)
	o.Status = next
	o.UpdatedAt = now
	return nil
}

// CanCancel reports the reason a cancellation would be refused, or nil.
func (o *Order) CanCancel() error {
	if o.Cancelled() {
		return ErrOrderCancelled
	}
	if o.Status == StatusDelivered || o.IsDelivered {
		return ErrOrderDelivered
	}
	return nil
}

func (o *Order) Cancel(reason string, now time.Time) error {
	if err := o.CanCancel(); err != nil {
		return err
	}
	t := now
	o.Status = StatusCancelled
	o.IsCancelled = true
	o.CancelledAt = &t
	o.CancellationReason = strings.TrimSpace(reason)
	o.UpdatedAt = now
	return nil
}

func (o *Order) MarkPaid(paymentID string, now time.Time) {
	t := now
	o.IsPaid = true
	o.PaidAt = &t
	o.PaymentID = paymentID
	o.UpdatedAt = now
}

// flagAt keeps the original timestamp of a flag that stays set.
func flagAt(set bool, at *time.Time, now time.Time) (bool, *time.Time) {
	if !set {
		return false, nil
	}
	if at != nil {
		return true, at
	}
	t := now
	return true, &t
}
