package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/auth"
	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/domain"
	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/events"
	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/repository"
	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/scheduling"
)

// depositRate is the share of the total collected up front when a deposit is
// required.
const depositRate = 0.5

// Publisher sends notification events downstream. Publishing is
// fire-and-forget: failures are logged, never returned to the caller.
type Publisher interface {
	Publish(ctx context.Context, event events.Notification) error
}

type OrderService struct {
	store     repository.Store
	scheduler scheduling.Checker
	producer  Publisher
	logger    *zap.Logger
}

func NewOrderService(store repository.Store, scheduler scheduling.Checker, producer Publisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		store:     store,
		scheduler: scheduler,
		producer:  producer,
		logger:    logger,
	}
}

// Create validates the wizard payload, reserves the fulfillment slot, and
// persists a new order in PLACED with a fresh tracking token.
func (s *OrderService) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	var verr domain.ValidationError

	if req.CustomerID == 0 && req.Customer == nil {
		verr.Add("customer", "customer_id or an embedded customer is required")
	}
	if req.Customer != nil {
		if req.Customer.Name == "" {
			verr.Add("customer.name", "name is required")
		}
		if req.Customer.Email == "" {
			verr.Add("customer.email", "email is required")
		}
	}
	if req.Cake.Flavor == "" {
		verr.Add("cake.flavor", "flavor is required")
	}
	if req.Cake.Size == "" {
		verr.Add("cake.size", "size is required")
	}
	if req.Cake.Layers < 1 {
		verr.Add("cake.layers", "at least one layer is required")
	}
	if req.Total <= 0 {
		verr.Add("total", "total must be positive")
	}
	if req.FulfillmentDate.IsZero() {
		verr.Add("fulfillment_date", "fulfillment date is required")
	} else if !req.FulfillmentDate.After(time.Now()) {
		verr.Add("fulfillment_date", "fulfillment date must be in the future")
	}

	snapshot := domain.Customer{}
	if req.CustomerID != 0 {
		customer, err := s.store.GetCustomer(ctx, req.CustomerID)
		if errors.Is(err, domain.ErrNotFound) {
			verr.Add("customer_id", "unknown customer")
		} else if err != nil {
			return nil, err
		} else {
			snapshot = *customer
		}
	} else if req.Customer != nil {
		snapshot = *req.Customer
	}

	if verr.HasViolations() {
		return nil, &verr
	}

	if err := s.scheduler.CheckAvailability(ctx, req.FulfillmentDate); err != nil {
		return nil, err
	}

	if snapshot.ID == 0 {
		if err := s.store.CreateCustomer(ctx, &snapshot); err != nil {
			return nil, err
		}
	}

	id, err := s.store.NextOrderID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:              id,
		Status:          domain.StatusPlaced,
		CreatedAt:       now,
		UpdatedAt:       now,
		TrackingToken:   uuid.NewString(),
		CustomerID:      snapshot.ID,
		Customer:        snapshot,
		Cake:            req.Cake,
		FulfillmentDate: req.FulfillmentDate.UTC(),
		Version:         1,
	}
	order.Payment = domain.PaymentSummary{
		Total:           req.Total,
		DepositRequired: req.DepositRequired,
	}
	if req.DepositRequired {
		order.Payment.Deposit = req.Total * depositRate
	}
	order.Payment.Recompute()

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, domain.ActivityItem{
		OrderID: order.ID,
		Actor:   snapshot.Name,
		Action:  "order_created",
		Detail:  fmt.Sprintf("%s %s cake, due %s", order.Cake.Size, order.Cake.Flavor, order.FulfillmentDate.Format("2006-01-02")),
	})

	s.notify(ctx, events.Notification{
		EventID:   uuid.NewString(),
		Type:      events.TypeOrderCreated,
		OrderID:   order.ID,
		Customer:  snapshot.Email,
		Status:    string(order.Status),
		Timestamp: time.Now().UTC(),
	})

	s.logger.Info("Order created",
		zap.Int("order_id", order.ID),
		zap.String("customer", snapshot.Email),
		zap.Float64("total", order.Payment.Total))

	return order, nil
}

// SetStatus moves an order to target. Staff may only move forward or cancel a
// non-terminal order; an owner may force any transition, including reopening
// a cancelled order, and the override is flagged in the activity log.
func (s *OrderService) SetStatus(ctx context.Context, id int, target domain.OrderStatus, actor auth.Identity) (*domain.Order, error) {
	if !target.Valid() {
		verr := domain.ValidationError{}
		verr.Add("status", "unknown status "+string(target))
		return nil, &verr
	}

	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == target {
		return order, nil
	}

	override := false
	if !allowedForStaff(order.Status, target) {
		if actor.Role != auth.RoleOwner {
			return nil, &domain.InvalidTransitionError{From: order.Status, To: target}
		}
		override = true
	}

	expected := order.Version
	previous := order.Status
	order.Status = target
	order.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateOrder(ctx, order, expected); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, domain.ActivityItem{
		OrderID:  order.ID,
		Actor:    actor.UserID,
		Action:   "status_changed",
		Detail:   fmt.Sprintf("%s -> %s", previous, target),
		Override: override,
	})

	s.notify(ctx, events.Notification{
		EventID:   uuid.NewString(),
		Type:      events.TypeStatusChanged,
		OrderID:   order.ID,
		Customer:  order.Customer.Email,
		Status:    string(target),
		OldStatus: string(previous),
		Actor:     actor.UserID,
		Timestamp: time.Now().UTC(),
	})

	if override {
		s.logger.Warn("Owner override on status change",
			zap.Int("order_id", order.ID),
			zap.String("actor", actor.UserID),
			zap.String("from", string(previous)),
			zap.String("to", string(target)))
	}

	return order, nil
}

// allowedForStaff encodes the non-owner transition rules: forward only, plus
// cancellation of any non-terminal order.
func allowedForStaff(current, target domain.OrderStatus) bool {
	if current.Terminal() {
		return false
	}
	if target == domain.StatusCancelled {
		return true
	}
	return target.Ordinal() > current.Ordinal()
}

// RecordPayment applies a payment to the order. Exact duplicates are detected
// by the caller-supplied idempotency key and collapse to a single effect.
func (s *OrderService) RecordPayment(ctx context.Context, id int, amount float64, idempotencyKey string, actor auth.Identity) (*domain.Order, error) {
	var verr domain.ValidationError
	if amount <= 0 {
		verr.Add("amount", "amount must be positive")
	}
	if idempotencyKey == "" {
		verr.Add("idempotency_key", "idempotency key is required")
	}
	if verr.HasViolations() {
		return nil, &verr
	}

	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, p := range order.Payments {
		if p.IdempotencyKey == idempotencyKey {
			s.logger.Info("Duplicate payment submission ignored",
				zap.Int("order_id", id),
				zap.String("idempotency_key", idempotencyKey))
			return order, nil
		}
	}

	expected := order.Version
	record := domain.PaymentRecord{
		ID:             uuid.NewString(),
		IdempotencyKey: idempotencyKey,
		Amount:         amount,
		RecordedBy:     actor.UserID,
		RecordedAt:     time.Now().UTC(),
	}
	order.Payments = append(order.Payments, record)
	order.Payment.AmountPaid += amount
	order.Payment.Recompute()
	order.UpdatedAt = record.RecordedAt

	if err := s.store.UpdateOrder(ctx, order, expected); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, domain.ActivityItem{
		OrderID: order.ID,
		Actor:   actor.UserID,
		Action:  "payment_recorded",
		Detail:  fmt.Sprintf("%.2f paid, balance %.2f", amount, order.Payment.Balance),
	})

	s.notify(ctx, events.Notification{
		EventID:   uuid.NewString(),
		Type:      events.TypePaymentRecorded,
		OrderID:   order.ID,
		Customer:  order.Customer.Email,
		Amount:    amount,
		Actor:     actor.UserID,
		Timestamp: time.Now().UTC(),
	})

	return order, nil
}

// Get returns the full order for staff views.
func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// TrackingView resolves a tracking token to the sanitized public projection.
// The stage shown is the wall-clock display heuristic, not the stored status.
func (s *OrderService) TrackingView(ctx context.Context, token string) (*domain.TrackingView, error) {
	if token == "" {
		return nil, domain.ErrNotFound
	}

	order, err := s.store.GetOrderByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	stage := domain.ResolveStage(order.CreatedAt, time.Now())
	return &domain.TrackingView{
		OrderID:         order.ID,
		Status:          order.Status,
		Stage:           stage,
		StageLabel:      domain.StageLabel(stage),
		Customer:        order.Customer,
		Cake:            order.Cake,
		FulfillmentDate: order.FulfillmentDate,
		Payment: domain.TrackingPayment{
			Total:      order.Payment.Total,
			Deposit:    order.Payment.Deposit,
			Balance:    order.Payment.Balance,
			DepositMet: order.Payment.DepositMet,
			Status:     order.Payment.Status,
		},
		CreatedAt: order.CreatedAt,
	}, nil
}

// recordActivity appends the audit entry for an already-committed mutation.
// The order write is the transactional anchor; a failed append is logged and
// does not undo the mutation.
func (s *OrderService) recordActivity(ctx context.Context, item domain.ActivityItem) {
	item.ID = uuid.NewString()
	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now().UTC()
	}
	if err := s.store.AppendActivity(ctx, item); err != nil {
		s.logger.Error("Failed to append activity record",
			zap.Int("order_id", item.OrderID),
			zap.String("action", item.Action),
			zap.Error(err))
	}
}

func (s *OrderService) notify(ctx context.Context, event events.Notification) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish notification",
			zap.String("type", event.Type),
			zap.Int("order_id", event.OrderID),
			zap.Error(err))
	}
}
