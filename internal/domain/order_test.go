package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		in   string
		want OrderStatus
		ok   bool
	}{
		{"Pending", OrderPending, true},
		{"shipped", OrderShipped, true},
		{" RETURNED ", OrderReturned, true},
		{"4", OrderDelivered, true},
		{"0", 0, false},
		{"7", 7, false},
		{"lost", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseOrderStatus(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestOrderStatusString(t *testing.T) {
	assert.Equal(t, "Cancelled", OrderCancelled.String())
	assert.Equal(t, "OrderStatus(9)", OrderStatus(9).String())
	assert.True(t, OrderProcessing.Valid())
	assert.False(t, OrderStatus(0).Valid())
}
