package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/domain"
)

// MemoryStore is the in-process Store used by tests and by local runs with
// STORE_DRIVER=memory. The same optimistic-version semantics apply as in the
// DynamoDB store.
type MemoryStore struct {
	mu         sync.RWMutex
	orders     map[int]*domain.Order
	byToken    map[string]int
	customers  map[int]*domain.Customer
	activities []domain.ActivityItem
	orderSeq   int
	custSeq    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:    make(map[int]*domain.Order),
		byToken:   make(map[string]int),
		customers: make(map[int]*domain.Customer),
	}
}

func (s *MemoryStore) NextOrderID(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderSeq++
	return s.orderSeq, nil
}

func (s *MemoryStore) CreateOrder(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[order.ID]; exists {
		return domain.ErrConflict
	}
	cp := *order
	s.orders[order.ID] = &cp
	if order.TrackingToken != "" {
		s.byToken[order.TrackingToken] = order.ID
	}
	return nil
}

func (s *MemoryStore) GetOrder(_ context.Context, id int) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *order
	return &cp, nil
}

func (s *MemoryStore) GetOrderByToken(_ context.Context, token string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byToken[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s.orders[id]
	return &cp, nil
}

func (s *MemoryStore) UpdateOrder(_ context.Context, order *domain.Order, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.orders[order.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Version != expectedVersion {
		return domain.ErrConflict
	}
	order.Version = expectedVersion + 1
	cp := *order
	s.orders[order.ID] = &cp
	return nil
}

func (s *MemoryStore) ListOrdersSince(_ context.Context, since time.Time) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*domain.Order
	for _, order := range s.orders {
		if order.CreatedAt.Before(since) {
			continue
		}
		cp := *order
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *MemoryStore) CreateCustomer(_ context.Context, customer *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if customer.ID == 0 {
		s.custSeq++
		customer.ID = s.custSeq
	}
	cp := *customer
	s.customers[customer.ID] = &cp
	return nil
}

func (s *MemoryStore) GetCustomer(_ context.Context, id int) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	customer, ok := s.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *customer
	return &cp, nil
}

func (s *MemoryStore) AppendActivity(_ context.Context, item domain.ActivityItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, item)
	return nil
}

func (s *MemoryStore) ListActivities(_ context.Context, limit int) ([]domain.ActivityItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.ActivityItem, len(s.activities))
	copy(items, s.activities)
	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
