package repository

import (
	"context"
	"time"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/domain"
)

// Store is the narrow contract the fulfillment core needs from durable
// storage: point lookups by id and by tracking token, version-checked writes
// and a time-range scan for the dashboard. Implementations translate driver
// failures into domain error kinds (ErrNotFound, ErrConflict) so callers
// never see driver errors.
type Store interface {
	NextOrderID(ctx context.Context) (int, error)
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	GetOrderByToken(ctx context.Context, token string) (*domain.Order, error)

	// UpdateOrder persists order only if the stored version still equals
	// expectedVersion, bumping order.Version on success. A stale writer gets
	// domain.ErrConflict.
	UpdateOrder(ctx context.Context, order *domain.Order, expectedVersion int64) error

	ListOrdersSince(ctx context.Context, since time.Time) ([]*domain.Order, error)

	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id int) (*domain.Customer, error)

	AppendActivity(ctx context.Context, item domain.ActivityItem) error
	ListActivities(ctx context.Context, limit int) ([]domain.ActivityItem, error)
}
