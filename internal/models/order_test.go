// internal/models/order_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradecraft/backend/internal/apperrors"
)

func TestOrderLifecycle(t *testing.T) {
	order := &Order{Status: OrderStatusPending, PaymentStatus: PaymentStatusPending}

	require.NoError(t, order.MarkAsPaid("txn-123"))
	assert.Equal(t, OrderStatusProcessing, order.Status)
	assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "txn-123", order.PaymentTransactionID)
	require.NotNil(t, order.PaidAt)

	require.NoError(t, order.MarkAsShipped("TRACK-001"))
	assert.Equal(t, OrderStatusShipped, order.Status)
	assert.Equal(t, "TRACK-001", order.TrackingNumber)
	require.NotNil(t, order.ShippedAt)

	require.NoError(t, order.MarkAsDelivered())
	assert.Equal(t, OrderStatusDelivered, order.Status)
	require.NotNil(t, order.DeliveredAt)
}

func TestOrderMarkAsPaidRequiresPending(t *testing.T) {
	for _, status := range []OrderStatus{
		OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
	} {
		order := &Order{Status: status}
		err := order.MarkAsPaid("txn")
		require.Error(t, err, "status %s", status)
		assert.True(t, apperrors.Is(err, apperrors.CodeIllegalStateTransition))
		assert.Equal(t, status, order.Status, "failed transition must not mutate")
	}
}

func TestOrderMarkAsShippedRequiresProcessing(t *testing.T) {
	order := &Order{Status: OrderStatusPending}
	err := order.MarkAsShipped("TRACK-001")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeIllegalStateTransition))
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Empty(t, order.TrackingNumber)
}

func TestOrderMarkAsDeliveredRequiresShipped(t *testing.T) {
	order := &Order{Status: OrderStatusProcessing}
	err := order.MarkAsDelivered()
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeIllegalStateTransition))
	assert.Nil(t, order.DeliveredAt)
}

func TestOrderCancelFromEarlyStates(t *testing.T) {
	for _, status := range []OrderStatus{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
	} {
		order := &Order{Status: status}
		require.NoError(t, order.Cancel(), "status %s", status)
		assert.Equal(t, OrderStatusCancelled, order.Status)
	}
}

func TestOrderCancelDeliveredFails(t *testing.T) {
	order := &Order{Status: OrderStatusDelivered}
	err := order.Cancel()
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeIllegalStateTransition))
	assert.Equal(t, OrderStatusDelivered, order.Status)
}

func TestOrderCancelTwiceFails(t *testing.T) {
	order := &Order{Status: OrderStatusPending}
	require.NoError(t, order.Cancel())
	err := order.Cancel()
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeIllegalStateTransition))
}

func TestOrderCalculateTotal(t *testing.T) {
	order := &Order{
		ShippingFee: 12.5,
		TaxAmount:   2.5,
		Items: []OrderItem{
			{Quantity: 2, PriceSnapshot: 10.0},
			{Quantity: 1, PriceSnapshot: 99.99},
		},
	}

	assert.InDelta(t, 134.99, order.CalculateTotal(), 0.001)
}

func TestOrderCalculateTotalEmptyItems(t *testing.T) {
	order := &Order{ShippingFee: 5}
	assert.InDelta(t, 5.0, order.CalculateTotal(), 0.001)
}

func TestOrderItemSubtotal(t *testing.T) {
	item := &OrderItem{Quantity: 3, PriceSnapshot: 19.99}
	assert.InDelta(t, 59.97, item.Subtotal(), 0.001)
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, OrderStatusRefunding.Valid())
	assert.False(t, OrderStatus("unknown").Valid())
	assert.False(t, OrderStatus("").Valid())
}
