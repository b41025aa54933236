package domain

import (
	"time"
)

type OrderStatus string

const (
	StatusPlaced             OrderStatus = "PLACED"
	StatusDesignApproved     OrderStatus = "DESIGN_APPROVED"
	StatusIngredientsPrepped OrderStatus = "INGREDIENTS_PREPPED"
	StatusBaking             OrderStatus = "BAKING"
	StatusCooling            OrderStatus = "COOLING"
	StatusFilling            OrderStatus = "FILLING"
	StatusCrumbCoat          OrderStatus = "CRUMB_COAT"
	StatusDecorating         OrderStatus = "DECORATING"
	StatusFinalInspection    OrderStatus = "FINAL_INSPECTION"
	StatusReadyForPickup     OrderStatus = "READY_FOR_PICKUP"
	StatusPickedUp           OrderStatus = "PICKED_UP"

	// Cancelled sits outside the production sequence and is terminal for
	// everyone except an owner override.
	StatusCancelled OrderStatus = "CANCELLED"
)

// statusSequence is the forward-only production order. Index matches the
// display stage index in stage.go.
var statusSequence = []OrderStatus{
	StatusPlaced,
	StatusDesignApproved,
	StatusIngredientsPrepped,
	StatusBaking,
	StatusCooling,
	StatusFilling,
	StatusCrumbCoat,
	StatusDecorating,
	StatusFinalInspection,
	StatusReadyForPickup,
	StatusPickedUp,
}

// Ordinal returns the position of s in the production sequence, or -1 for
// Cancelled and unknown values.
func (s OrderStatus) Ordinal() int {
	for i, st := range statusSequence {
		if st == s {
			return i
		}
	}
	return -1
}

func (s OrderStatus) Valid() bool {
	return s == StatusCancelled || s.Ordinal() >= 0
}

func (s OrderStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusPickedUp
}

type PaymentStatus string

const (
	PaymentStatusUnpaid      PaymentStatus = "UNPAID"
	PaymentStatusDepositPaid PaymentStatus = "DEPOSIT_PAID"
	PaymentStatusPartial     PaymentStatus = "PARTIAL"
	PaymentStatusPaid        PaymentStatus = "PAID"
)

type Order struct {
	ID              int             `json:"order_id" dynamodbav:"order_id"`
	Status          OrderStatus     `json:"status" dynamodbav:"status"`
	CreatedAt       time.Time       `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" dynamodbav:"updated_at"`
	TrackingToken   string          `json:"tracking_token,omitempty" dynamodbav:"tracking_token"`
	CustomerID      int             `json:"customer_id" dynamodbav:"customer_id"`
	Customer        Customer        `json:"customer" dynamodbav:"customer"`
	Cake            CakeSpec        `json:"cake" dynamodbav:"cake"`
	FulfillmentDate time.Time       `json:"fulfillment_date" dynamodbav:"fulfillment_date"`
	Payment         PaymentSummary  `json:"payment" dynamodbav:"payment"`
	Payments        []PaymentRecord `json:"payments,omitempty" dynamodbav:"payments"`

	// Version guards concurrent writes. Every successful update increments it;
	// a stale writer loses with ErrConflict.
	Version int64 `json:"version" dynamodbav:"version"`
}

// Customer is the contact snapshot embedded in the order at creation time.
// Tracking views render this copy, so later edits to the customer record do
// not rewrite history already shown to the customer.
type Customer struct {
	ID    int    `json:"id,omitempty" dynamodbav:"id"`
	Name  string `json:"name" dynamodbav:"name"`
	Email string `json:"email" dynamodbav:"email"`
	Phone string `json:"phone,omitempty" dynamodbav:"phone"`
}

type CakeSpec struct {
	Flavor      string `json:"flavor" dynamodbav:"flavor"`
	Size        string `json:"size" dynamodbav:"size"`
	Layers      int    `json:"layers" dynamodbav:"layers"`
	Inscription string `json:"inscription,omitempty" dynamodbav:"inscription"`
	Notes       string `json:"notes,omitempty" dynamodbav:"notes"`
}

type PaymentSummary struct {
	Total           float64       `json:"total" dynamodbav:"total"`
	Deposit         float64       `json:"deposit" dynamodbav:"deposit"`
	AmountPaid      float64       `json:"amount_paid" dynamodbav:"amount_paid"`
	Balance         float64       `json:"balance" dynamodbav:"balance"`
	DepositRequired bool          `json:"deposit_required" dynamodbav:"deposit_required"`
	DepositMet      bool          `json:"deposit_met" dynamodbav:"deposit_met"`
	Status          PaymentStatus `json:"status" dynamodbav:"payment_status"`
}

// Recompute derives the dependent payment fields from Total, Deposit and
// AmountPaid.
func (p *PaymentSummary) Recompute() {
	p.Balance = p.Total - p.AmountPaid
	if p.Balance < 0 {
		p.Balance = 0
	}
	p.DepositMet = !p.DepositRequired || p.AmountPaid >= p.Deposit
	switch {
	case p.AmountPaid <= 0:
		p.Status = PaymentStatusUnpaid
	case p.AmountPaid >= p.Total:
		p.Status = PaymentStatusPaid
	case p.DepositRequired && p.AmountPaid >= p.Deposit:
		p.Status = PaymentStatusDepositPaid
	default:
		p.Status = PaymentStatusPartial
	}
}

type PaymentRecord struct {
	ID             string    `json:"id" dynamodbav:"id"`
	IdempotencyKey string    `json:"idempotency_key" dynamodbav:"idempotency_key"`
	Amount         float64   `json:"amount" dynamodbav:"amount"`
	RecordedBy     string    `json:"recorded_by" dynamodbav:"recorded_by"`
	RecordedAt     time.Time `json:"recorded_at" dynamodbav:"recorded_at"`
}

// ActivityItem is an append-only log entry written once per successful
// mutation and read-only thereafter.
type ActivityItem struct {
	ID        string    `json:"id" dynamodbav:"id"`
	OrderID   int       `json:"order_id" dynamodbav:"order_id"`
	Actor     string    `json:"actor" dynamodbav:"actor"`
	Action    string    `json:"action" dynamodbav:"action"`
	Detail    string    `json:"detail,omitempty" dynamodbav:"detail"`
	Override  bool      `json:"override,omitempty" dynamodbav:"override"`
	Timestamp time.Time `json:"timestamp" dynamodbav:"timestamp"`
}

type CreateOrderRequest struct {
	CustomerID      int       `json:"customer_id,omitempty"`
	Customer        *Customer `json:"customer,omitempty"`
	Cake            CakeSpec  `json:"cake"`
	Total           float64   `json:"total"`
	DepositRequired bool      `json:"deposit_required"`
	FulfillmentDate time.Time `json:"fulfillment_date"`
}

// TrackingView is the sanitized public projection returned for a tracking
// token. No internal fields beyond the public order id.
type TrackingView struct {
	OrderID         int             `json:"order_id"`
	Status          OrderStatus     `json:"status"`
	Stage           int             `json:"stage"`
	StageLabel      string          `json:"stage_label"`
	Customer        Customer        `json:"customer"`
	Cake            CakeSpec        `json:"cake"`
	FulfillmentDate time.Time       `json:"fulfillment_date"`
	Payment         TrackingPayment `json:"payment"`
	CreatedAt       time.Time       `json:"created_at"`
}

type TrackingPayment struct {
	Total      float64       `json:"total"`
	Deposit    float64       `json:"deposit"`
	Balance    float64       `json:"balance"`
	DepositMet bool          `json:"deposit_met"`
	Status     PaymentStatus `json:"status"`
}
