package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/domain"
	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/repository"
)

func TestComputeDashboard_EmptyStore(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewDashboardService(store, zap.NewNop())

	metrics, err := svc.ComputeDashboard(context.Background(), time.Now().UTC())
	require.NoError(t, err)

	require.Len(t, metrics.KPIs, 4)
	for _, kpi := range metrics.KPIs {
		assert.Equal(t, 0.0, kpi.Value, kpi.Label)
		assert.Equal(t, 0.0, kpi.Delta, kpi.Label)
		assert.Equal(t, TrendFlat, kpi.Direction, kpi.Label)
	}
	assert.Empty(t, metrics.Activity)
	assert.Empty(t, metrics.RecentOrders)
}

func seedOrder(t *testing.T, store *repository.MemoryStore, id int, createdAt time.Time, status domain.OrderStatus, paid float64) {
	t.Helper()
	order := &domain.Order{
		ID:            id,
		Status:        status,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt.Add(45 * time.Minute),
		TrackingToken: "tok-" + string(rune('0'+id)),
		Customer:      domain.Customer{Name: "Customer"},
		Version:       1,
	}
	order.Payment = domain.PaymentSummary{
		Total:           100,
		Deposit:         50,
		DepositRequired: true,
		AmountPaid:      paid,
	}
	order.Payment.Recompute()
	require.NoError(t, store.CreateOrder(context.Background(), order))
}

func TestComputeDashboard_KPIsAndTrend(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewDashboardService(store, zap.NewNop())

	asOf := time.Now().UTC()
	// Current period: one open order with a paid deposit, one picked up.
	seedOrder(t, store, 1, asOf.Add(-24*time.Hour), domain.StatusBaking, 50)
	seedOrder(t, store, 2, asOf.Add(-48*time.Hour), domain.StatusPickedUp, 100)
	// Prior period: one open unpaid order.
	seedOrder(t, store, 3, asOf.Add(-40*24*time.Hour), domain.StatusDecorating, 0)

	metrics, err := svc.ComputeDashboard(context.Background(), asOf)
	require.NoError(t, err)
	require.Len(t, metrics.KPIs, 4)

	open := metrics.KPIs[0]
	assert.Equal(t, 1.0, open.Value)
	assert.Equal(t, TrendFlat, open.Direction) // one open now, one open prior

	revenue := metrics.KPIs[1]
	assert.Equal(t, 150.0, revenue.Value)
	assert.Equal(t, TrendUp, revenue.Direction)

	fulfillment := metrics.KPIs[2]
	assert.Equal(t, 45.0, fulfillment.Value)

	deposits := metrics.KPIs[3]
	assert.Equal(t, 0.0, deposits.Value) // current deposits are met
	assert.Equal(t, TrendDown, deposits.Direction)
}

func TestComputeDashboard_RecentOrdersNewestFirst(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewDashboardService(store, zap.NewNop())

	asOf := time.Now().UTC()
	for i := 1; i <= 7; i++ {
		seedOrder(t, store, i, asOf.Add(-time.Duration(i)*time.Hour), domain.StatusPlaced, 0)
	}

	metrics, err := svc.ComputeDashboard(context.Background(), asOf)
	require.NoError(t, err)

	require.Len(t, metrics.RecentOrders, 5)
	assert.Equal(t, 1, metrics.RecentOrders[0].OrderID)
	assert.Equal(t, 5, metrics.RecentOrders[4].OrderID)
}

func TestComputeDashboard_ActivityNewestFirst(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewDashboardService(store, zap.NewNop())

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		require.NoError(t, store.AppendActivity(context.Background(), domain.ActivityItem{
			ID:        string(rune('a' + i)),
			OrderID:   i,
			Action:    "status_changed",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	metrics, err := svc.ComputeDashboard(context.Background(), time.Now().UTC())
	require.NoError(t, err)

	require.Len(t, metrics.Activity, 10)
	for i := 1; i < len(metrics.Activity); i++ {
		assert.True(t, metrics.Activity[i-1].Timestamp.After(metrics.Activity[i].Timestamp))
	}
}
