package events

import (
	"time"
)

// Notification events feed the email/notification pipeline downstream.
// Delivery is fire-and-forget: a publish failure never rolls back the order
// mutation that produced it.

const (
	TypeOrderCreated    = "order.created"
	TypeStatusChanged   = "order.status_changed"
	TypePaymentRecorded = "order.payment_recorded"
)

type Notification struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	OrderID   int       `json:"order_id"`
	Customer  string    `json:"customer_email,omitempty"`
	Status    string    `json:"status,omitempty"`
	OldStatus string    `json:"old_status,omitempty"`
	Amount    float64   `json:"amount,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
