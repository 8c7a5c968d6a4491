package payment

import (
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

// Payment holds a single payment row, versioned for conditional writes.
type Payment struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	OrderID         uuid.UUID       `json:"orderId" db:"order_id"`
	CorrelationID   string          `json:"correlationId" db:"correlation_id"`
	BuyerID         uuid.UUID       `json:"buyerId" db:"buyer_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	ProcessingFee   decimal.Decimal `json:"processingFee" db:"processing_fee"`
	CurrencyCode    string          `json:"currencyCode" db:"currency_code"`
	MethodType      string          `json:"methodType" db:"method_type"`
	Status          Status          `json:"status" db:"status"`
	ServiceOrigin   *string         `json:"serviceOrigin,omitempty" db:"service_origin"`
	PaymentDate     *time.Time      `json:"paymentDate,omitempty" db:"payment_date"`
	FailureReason   *string         `json:"failureReason,omitempty" db:"failure_reason"`
	GatewayResponse *string         `json:"gatewayResponse,omitempty" db:"gateway_response"`
	RowVersion      int             `json:"rowVersion" db:"row_version"`
	IsDeleted       bool            `json:"-" db:"is_deleted"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// StatusHistory is an append-only record of one status change on a payment.
// Each row carries the failure reason and gateway payload reported for that
// transition so the audit trail survives later transitions overwriting the
// latest values on the payment row.
type StatusHistory struct {
	ID              uuid.UUID `json:"id" db:"id"`
	PaymentID       uuid.UUID `json:"paymentId" db:"payment_id"`
	PreviousStatus  *Status   `json:"previousStatus" db:"previous_status"`
	NewStatus       Status    `json:"newStatus" db:"new_status"`
	ChangedBy       string    `json:"changedBy" db:"changed_by"`
	ChangeReason    *string   `json:"changeReason,omitempty" db:"change_reason"`
	FailureReason   *string   `json:"failureReason,omitempty" db:"failure_reason"`
	GatewayResponse *string   `json:"gatewayResponse,omitempty" db:"gateway_response"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// PaymentStatusInfo describes one status in the lifecycle catalog.
type PaymentStatusInfo struct {
	Code        Status `json:"code" db:"code"`
	Description string `json:"description" db:"description"`
	IsTerminal  bool   `json:"isTerminal" db:"is_terminal"`
}

// MethodType describes a supported payment method and its limits.
type MethodType struct {
	Code                 string          `json:"code" db:"code"`
	DisplayName          string          `json:"displayName" db:"display_name"`
	MinAmount            decimal.Decimal `json:"minAmount" db:"min_amount"`
	MaxAmount            decimal.Decimal `json:"maxAmount" db:"max_amount"`
	ProcessingFeePercent decimal.Decimal `json:"processingFeePercent" db:"processing_fee_percent"`
	IsActive             bool            `json:"isActive" db:"is_active"`
}

// CurrencyCode describes a supported ISO 4217 currency.
type CurrencyCode struct {
	Code       string `json:"code" db:"code"`
	Name       string `json:"name" db:"name"`
	MinorUnits int    `json:"minorUnits" db:"minor_units"`
	IsActive   bool   `json:"isActive" db:"is_active"`
}

// CreateRequest is the payload for creating a payment. CorrelationID is
// optional, one is generated when the caller does not supply it.
type CreateRequest struct {
	OrderID       string          `json:"orderId" valid:"uuidv4"`
	CorrelationID string          `json:"correlationId" valid:"-"`
	BuyerID       string          `json:"buyerId" valid:"uuidv4"`
	Amount        decimal.Decimal `json:"amount" valid:"-"`
	CurrencyCode  string          `json:"currencyCode" valid:"alpha,length(3|3)"`
	MethodType    string          `json:"methodType" valid:"required"`
	ServiceOrigin string          `json:"serviceOrigin" valid:"-"`
}

// UpdateStatusRequest is the payload for requesting a status transition.
type UpdateStatusRequest struct {
	Status          string  `json:"status" valid:"required"`
	ExpectedVersion int     `json:"expectedVersion" valid:"-"`
	ChangedBy       string  `json:"changedBy" valid:"-"`
	ChangeReason    *string `json:"changeReason,omitempty" valid:"-"`
	FailureReason   *string `json:"failureReason,omitempty" valid:"-"`
	GatewayResponse *string `json:"gatewayResponse,omitempty" valid:"-"`
}
