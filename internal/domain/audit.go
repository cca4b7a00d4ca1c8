package domain

import "time"

// AuditLog records who did what to which reservation, for compliance and
// debugging.
type AuditLog struct {
	ID           string
	Actor        string // Who performed the action
	Action       string // What action (payment.register, refund.register, ...)
	ResourceType string // reservation or transaction
	ResourceID   string
	RequestID    string // Request ID for tracing
	BeforeState  JSON
	AfterState   JSON
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	AuditActionReservationCreate AuditAction = "reservation.create"
	AuditActionPriceChange       AuditAction = "reservation.price_change"
	AuditActionPaymentRegister   AuditAction = "payment.register"
	AuditActionRefundRegister    AuditAction = "refund.register"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)
