package domain

import "time"

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderCancelled     = "order.cancelled"
	EventPasswordReset      = "user.password_reset_requested"
)

type OrderCreatedEvent struct {
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	TotalPrice int64     `json:"totalPrice"`
	Items      int       `json:"items"`
	CreatedAt  time.Time `json:"createdAt"`
}

type OrderStatusChangedEvent struct {
	OrderID   string      `json:"orderId"`
	From      OrderStatus `json:"from"`
	To        OrderStatus `json:"to"`
	ChangedAt time.Time   `json:"changedAt"`
}

type OrderCancelledEvent struct {
	OrderID        string    `json:"orderId"`
	Reason         string    `json:"reason,omitempty"`
	RestoredItems  int       `json:"restoredItems"`
	FailedRestores int       `json:"failedRestores"`
	CancelledAt    time.Time `json:"cancelledAt"`
}

type PasswordResetRequestedEvent struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
