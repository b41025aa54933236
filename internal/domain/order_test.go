package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOrdinal(t *testing.T) {
	assert.Equal(t, 0, StatusPlaced.Ordinal())
	assert.Equal(t, 10, StatusPickedUp.Ordinal())
	assert.Equal(t, -1, StatusCancelled.Ordinal())
	assert.Equal(t, -1, OrderStatus("BOGUS").Ordinal())
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusPickedUp.Terminal())
	assert.False(t, StatusBaking.Terminal())
}

func TestPaymentRecompute(t *testing.T) {
	tests := []struct {
		name       string
		summary    PaymentSummary
		wantStatus PaymentStatus
		wantMet    bool
		wantBal    float64
	}{
		{
			name:       "untouched order",
			summary:    PaymentSummary{Total: 100, Deposit: 50, DepositRequired: true},
			wantStatus: PaymentStatusUnpaid,
			wantMet:    false,
			wantBal:    100,
		},
		{
			name:       "deposit met",
			summary:    PaymentSummary{Total: 100, Deposit: 50, DepositRequired: true, AmountPaid: 50},
			wantStatus: PaymentStatusDepositPaid,
			wantMet:    true,
			wantBal:    50,
		},
		{
			name:       "partial below deposit",
			summary:    PaymentSummary{Total: 100, Deposit: 50, DepositRequired: true, AmountPaid: 20},
			wantStatus: PaymentStatusPartial,
			wantMet:    false,
			wantBal:    80,
		},
		{
			name:       "paid in full",
			summary:    PaymentSummary{Total: 100, Deposit: 50, DepositRequired: true, AmountPaid: 100},
			wantStatus: PaymentStatusPaid,
			wantMet:    true,
			wantBal:    0,
		},
		{
			name:       "no deposit required",
			summary:    PaymentSummary{Total: 100, AmountPaid: 10},
			wantStatus: PaymentStatusPartial,
			wantMet:    true,
			wantBal:    90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.summary.Recompute()
			assert.Equal(t, tt.wantStatus, tt.summary.Status)
			assert.Equal(t, tt.wantMet, tt.summary.DepositMet)
			assert.Equal(t, tt.wantBal, tt.summary.Balance)
		})
	}
}
