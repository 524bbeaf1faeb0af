package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"ordered", "confirmed", "shipped", "delivered", "cancelled", " Shipped "} {
		_, err := ParseOrderStatus(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseOrderStatus("refunded")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrder_TransitionImpliesFlags(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		to                            OrderStatus
		confirmed, shipped, delivered bool
	}{
		{StatusOrdered, false, false, false},
		{StatusConfirmed, true, false, false},
		{StatusShipped, true, true, false},
		{StatusDelivered, true, true, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.to), func(t *testing.T) {
			o := &Order{Status: StatusOrdered}
			require.NoError(t, o.TransitionTo(tt.to, now))
			assert.Equal(t, tt.to, o.Status)
			assert.Equal(t, tt.confirmed, o.IsConfirmed)
			assert.Equal(t, tt.shipped, o.IsShipped)
			assert.Equal(t, tt.delivered, o.IsDelivered)
			assert.Equal(t, tt.confirmed, o.ConfirmedAt != nil)
			assert.Equal(t, tt.delivered, o.DeliveredAt != nil)
			assert.False(t, o.IsCancelled)
		})
	}
}

func TestOrder_BackwardsTransitionClearsFlags(t *testing.T) {
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	o := &Order{Status: StatusOrdered}
	require.NoError(t, o.TransitionTo(StatusShipped, first))
	require.NoError(t, o.TransitionTo(StatusConfirmed, first.Add(time.Hour)))

	assert.True(t, o.IsConfirmed)
	assert.Equal(t, first, *o.ConfirmedAt)
	assert.False(t, o.IsShipped)
	assert.Nil(t, o.ShippedAt)
}

func TestOrder_CancelledIsTerminal(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	o := &Order{Status: StatusConfirmed, IsConfirmed: true}
	require.NoError(t, o.Cancel("changed my mind", at))
	assert.True(t, o.IsCancelled)
	assert.Equal(t, "changed my mind", o.CancellationReason)

	for _, next := range []OrderStatus{StatusOrdered, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled} {
		err := o.TransitionTo(next, at.Add(time.Hour))
		assert.ErrorIs(t, err, ErrOrderCancelled, next)
	}
	assert.ErrorIs(t, o.Cancel("again", at.Add(time.Hour)), ErrOrderCancelled)
	assert.Equal(t, at, *o.CancelledAt)
	assert.Equal(t, "changed my mind", o.CancellationReason)
	assert.Equal(t, StatusCancelled, o.Status)
}

func TestOrder_DeliveredCannotBeCancelled(t *testing.T) {
	o := &Order{Status: StatusOrdered}
	require.NoError(t, o.TransitionTo(StatusDelivered, time.Now()))
	assert.ErrorIs(t, o.Cancel("late", time.Now()), ErrOrderDelivered)
	assert.ErrorIs(t, o.TransitionTo(StatusCancelled, time.Now()), ErrOrderDelivered)
	assert.False(t, o.IsCancelled)
}

func TestOrder_Normalize(t *testing.T) {
	tests := []struct {
		order Order
		want  OrderStatus
	}{
		{Order{}, StatusOrdered},
		{Order{IsConfirmed: true}, StatusConfirmed},
		{Order{IsConfirmed: true, IsShipped: true}, StatusShipped},
		{Order{IsDelivered: true}, StatusDelivered},
		{Order{IsCancelled: true, IsShipped: true}, StatusCancelled},
		{Order{Status: StatusShipped, IsCancelled: true}, StatusShipped},
	}
	for _, tt := range tests {
		o := tt.order
		o.Normalize()
		assert.Equal(t, tt.want, o.Status)
	}
}

func TestOrder_MarkPaid(t *testing.T) {
	now := time.Now()
	o := &Order{}
	o.MarkPaid("pay_1", now)
	assert.True(t, o.IsPaid)
	assert.Equal(t, "pay_1", o.PaymentID)
	assert.Equal(t, now, *o.PaidAt)
}
