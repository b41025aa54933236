package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/domain"
	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/repository"
)

const (
	// kpiWindow is the comparison period for trend deltas.
	kpiWindow = 30 * 24 * time.Hour

	recentActivityLimit = 10
	recentOrdersLimit   = 5
)

type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

type KPI struct {
	Label     string         `json:"label"`
	Value     float64        `json:"value"`
	Delta     float64        `json:"delta"`
	Direction TrendDirection `json:"direction"`
	Detail    string         `json:"detail"`
}

type RecentOrder struct {
	OrderID         int                `json:"order_id"`
	CustomerName    string             `json:"customer_name"`
	Status          domain.OrderStatus `json:"status"`
	FulfillmentDate time.Time          `json:"fulfillment_date"`
	Total           float64            `json:"total"`
}

// DashboardMetrics is recomputed on every request, never persisted.
type DashboardMetrics struct {
	AsOf         time.Time             `json:"as_of"`
	KPIs         []KPI                 `json:"kpis"`
	Activity     []domain.ActivityItem `json:"activity"`
	RecentOrders []RecentOrder         `json:"recent_orders"`
}

// DashboardService aggregates orders and activity into the staff dashboard
// summary. Pure aggregation, no mutation.
type DashboardService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewDashboardService(store repository.Store, logger *zap.Logger) *DashboardService {
	return &DashboardService{store: store, logger: logger}
}

// ComputeDashboard compiles the KPI slots, the trend versus the prior period,
// and the recent activity feed. An empty store yields zero KPIs with flat
// trends and empty lists, never an error.
func (s *DashboardService) ComputeDashboard(ctx context.Context, asOf time.Time) (*DashboardMetrics, error) {
	windowStart := asOf.Add(-kpiWindow)
	priorStart := asOf.Add(-2 * kpiWindow)

	orders, err := s.store.ListOrdersSince(ctx, priorStart)
	if err != nil {
		return nil, err
	}

	var current, prior []*domain.Order
	for _, o := range orders {
		if o.CreatedAt.After(asOf) {
			continue
		}
		if o.CreatedAt.Before(windowStart) {
			prior = append(prior, o)
		} else {
			current = append(current, o)
		}
	}
	sort.Slice(current, func(i, j int) bool {
		return current[i].CreatedAt.After(current[j].CreatedAt)
	})

	metrics := &DashboardMetrics{
		AsOf: asOf,
		KPIs: []KPI{
			trendKPI("Open Orders", countOpen(current), countOpen(prior), "orders still in production"),
			trendKPI("Revenue", sumPaid(current), sumPaid(prior), "collected this period"),
			trendKPI("Avg Fulfillment (min)", avgFulfillmentMinutes(current), avgFulfillmentMinutes(prior), "placed to picked up"),
			trendKPI("Deposits Outstanding", depositOutstanding(current), depositOutstanding(prior), "required deposits not yet met"),
		},
		Activity:     []domain.ActivityItem{},
		RecentOrders: []RecentOrder{},
	}

	activity, err := s.store.ListActivities(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	if activity != nil {
		metrics.Activity = activity
	}

	for i, o := range current {
		if i >= recentOrdersLimit {
			break
		}
		metrics.RecentOrders = append(metrics.RecentOrders, RecentOrder{
			OrderID:         o.ID,
			CustomerName:    o.Customer.Name,
			Status:          o.Status,
			FulfillmentDate: o.FulfillmentDate,
			Total:           o.Payment.Total,
		})
	}

	return metrics, nil
}

func trendKPI(label string, current, prior float64, detail string) KPI {
	kpi := KPI{
		Label:     label,
		Value:     current,
		Delta:     current - prior,
		Direction: TrendFlat,
		Detail:    detail,
	}
	switch {
	case kpi.Delta > 0:
		kpi.Direction = TrendUp
	case kpi.Delta < 0:
		kpi.Direction = TrendDown
	}
	if kpi.Delta != 0 {
		kpi.Detail = fmt.Sprintf("%s (%+.0f vs prior period)", detail, kpi.Delta)
	}
	return kpi
}

func countOpen(orders []*domain.Order) float64 {
	var n float64
	for _, o := range orders {
		if !o.Status.Terminal() {
			n++
		}
	}
	return n
}

func sumPaid(orders []*domain.Order) float64 {
	var total float64
	for _, o := range orders {
		total += o.Payment.AmountPaid
	}
	return total
}

func avgFulfillmentMinutes(orders []*domain.Order) float64 {
	var total float64
	var n int
	for _, o := range orders {
		if o.Status != domain.StatusPickedUp {
			continue
		}
		total += o.UpdatedAt.Sub(o.CreatedAt).Minutes()
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func depositOutstanding(orders []*domain.Order) float64 {
	var total float64
	for _, o := range orders {
		if !o.Payment.DepositRequired || o.Payment.DepositMet {
			continue
		}
		if o.Status == domain.StatusCancelled {
			continue
		}
		outstanding := o.Payment.Deposit - o.Payment.AmountPaid
		if outstanding > 0 {
			total += outstanding
		}
	}
	return total
}
