package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lapakku/models"
)

func TestOrderStatusValid(t *testing.T) {
	for _, status := range []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	} {
		assert.True(t, status.Valid(), "%s should be valid", status)
	}

	assert.False(t, models.OrderStatus("").Valid())
	assert.False(t, models.OrderStatus("paid").Valid())
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{"pending to confirmed", models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{"pending straight to shipped", models.OrderStatusPending, models.OrderStatusShipped, true},
		{"confirmed to processing", models.OrderStatusConfirmed, models.OrderStatusProcessing, true},
		{"processing to shipped", models.OrderStatusProcessing, models.OrderStatusShipped, true},
		{"shipped to delivered", models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{"repeat is idempotent", models.OrderStatusShipped, models.OrderStatusShipped, true},
		{"backwards is rejected", models.OrderStatusProcessing, models.OrderStatusConfirmed, false},
		{"delivered is terminal", models.OrderStatusDelivered, models.OrderStatusPending, false},
		{"cancelled is terminal", models.OrderStatusCancelled, models.OrderStatusPending, false},
		{"pending can cancel", models.OrderStatusPending, models.OrderStatusCancelled, true},
		{"processing can cancel", models.OrderStatusProcessing, models.OrderStatusCancelled, true},
		{"shipped cannot cancel", models.OrderStatusShipped, models.OrderStatusCancelled, false},
		{"unknown target", models.OrderStatusPending, models.OrderStatus("paid"), false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, models.CanTransition(tc.from, tc.to))
		})
	}
}

func TestTransactionStatusValid(t *testing.T) {
	assert.True(t, models.TransactionStatusSuccess.Valid())
	assert.True(t, models.TransactionStatusCancelled.Valid())
	assert.False(t, models.TransactionStatus("refunded").Valid())
}
