package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	appctx "github.com/ebuy-platform/payment-go/libs/context"
	errorutils "github.com/ebuy-platform/payment-go/libs/errors"
	"github.com/ebuy-platform/payment-go/libs/inputs"
	"github.com/ebuy-platform/payment-go/libs/logging"
	cache "github.com/patrickmn/go-cache"
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

const (
	statusCatalogCacheKey = "payment_statuses"
	methodTypesCacheKey   = "payment_method_types"
	currencyCodesCacheKey = "currency_codes"
)

var oneHundred = decimal.NewFromFloat(100)

// Service wraps the datastore with lifecycle policy enforcement and catalog caching
type Service struct {
	Datastore    Datastore
	catalogCache *cache.Cache
}

// InitService creates a service using the passed context and datastore
func InitService(ctx context.Context, datastore Datastore) (*Service, error) {
	expiry, err := appctx.GetDurationFromContext(ctx, appctx.CatalogCacheExpiryDurationCTXKey)
	if err != nil {
		expiry = 5 * time.Minute
	}
	purge, err := appctx.GetDurationFromContext(ctx, appctx.CatalogCachePurgeDurationCTXKey)
	if err != nil {
		purge = 10 * time.Minute
	}

	return &Service{
		Datastore:    datastore,
		catalogCache: cache.New(expiry, purge),
	}, nil
}

// CreatePayment creates a new payment in PENDING status. Creation is
// idempotent on the correlation id, a second request with the same
// correlation id returns the payment created by the first.
func (service *Service) CreatePayment(ctx context.Context, req *CreateRequest) (*Payment, error) {
	logger := logging.Logger(ctx, "payment.CreatePayment")

	if req.CorrelationID == "" {
		// no correlation id supplied, mint one so retries of the stored
		// payment can still be correlated
		req.CorrelationID = uuid.NewV4().String()
	} else {
		// idempotency, return the payment already created under this correlation id
		existing, err := service.Datastore.GetPaymentByCorrelationID(ctx, req.CorrelationID)
		if err != nil {
			return nil, fmt.Errorf("failed to check correlation id: %w", err)
		}
		if existing != nil {
			logger.Info().
				Str("correlation_id", req.CorrelationID).
				Str("payment_id", existing.ID.String()).
				Msg("returning existing payment for correlation id")
			return existing, nil
		}
	}

	method, err := service.Datastore.GetMethodType(ctx, req.MethodType)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup payment method type: %w", err)
	}
	if method == nil {
		return nil, errorutils.New(errorutils.ErrNotFound,
			"payment method type does not exist",
			map[string]interface{}{"methodType": req.MethodType})
	}
	if !method.IsActive {
		return nil, errorutils.New(errorutils.ErrPaymentMethodInactive,
			"payment method type is not available",
			map[string]interface{}{"methodType": req.MethodType})
	}

	currency, err := service.Datastore.GetCurrencyCode(ctx, req.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup currency: %w", err)
	}
	if currency == nil {
		return nil, errorutils.New(errorutils.ErrNotFound,
			"currency does not exist",
			map[string]interface{}{"currencyCode": req.CurrencyCode})
	}
	if !currency.IsActive {
		return nil, errorutils.New(errorutils.ErrBadRequest,
			"currency is not supported",
			map[string]interface{}{"currencyCode": req.CurrencyCode})
	}

	if req.Amount.LessThan(method.MinAmount) || req.Amount.GreaterThan(method.MaxAmount) {
		return nil, errorutils.New(errorutils.ErrInvalidAmount,
			fmt.Sprintf("amount must be between %s and %s for %s",
				method.MinAmount, method.MaxAmount, method.Code),
			map[string]interface{}{"amount": req.Amount.String()})
	}

	orderID, err := uuid.FromString(req.OrderID)
	if err != nil {
		return nil, errorutils.Wrap(err, "orderId is not a uuid")
	}
	buyerID, err := uuid.FromString(req.BuyerID)
	if err != nil {
		return nil, errorutils.Wrap(err, "buyerId is not a uuid")
	}

	payment := &Payment{
		OrderID:       orderID,
		CorrelationID: req.CorrelationID,
		BuyerID:       buyerID,
		Amount:        req.Amount,
		ProcessingFee: req.Amount.Mul(method.ProcessingFeePercent).Div(oneHundred).Round(int32(currency.MinorUnits)),
		CurrencyCode:  req.CurrencyCode,
		MethodType:    req.MethodType,
	}
	if req.ServiceOrigin != "" {
		payment.ServiceOrigin = &req.ServiceOrigin
	}

	created, err := service.Datastore.InsertPayment(ctx, payment)
	if err != nil {
		if errors.Is(err, errorutils.ErrConcurrencyConflict) {
			// lost a creation race on the correlation id, hand back the winner
			existing, gerr := service.Datastore.GetPaymentByCorrelationID(ctx, req.CorrelationID)
			if gerr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	countPaymentsCreatedTotal.WithLabelValues(created.MethodType).Inc()

	return created, nil
}

// UpdateStatus transitions a payment to a new status using a conditional
// write against the caller supplied expected row version.
func (service *Service) UpdateStatus(ctx context.Context, paymentID uuid.UUID, req *UpdateStatusRequest) (*Payment, error) {
	to, err := ParseStatus(req.Status)
	if err != nil {
		// an unresolvable status code is a missing catalog entry
		return nil, errorutils.New(errorutils.ErrNotFound, err.Error(),
			map[string]interface{}{"status": req.Status})
	}

	current, err := service.Datastore.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if current == nil {
		return nil, errorutils.ErrNotFound
	}

	if err := ValidateTransition(current.Status, to); err != nil {
		return nil, errorutils.New(errorutils.ErrInvalidTransition, err.Error(),
			map[string]interface{}{
				"from": current.Status,
				"to":   to,
			})
	}

	updated, err := service.Datastore.UpdatePaymentStatus(ctx, current, to, req)
	if err != nil {
		if errors.Is(err, errorutils.ErrConcurrencyConflict) {
			countConcurrencyConflictsTotal.WithLabelValues("update_status").Inc()
		}
		return nil, err
	}

	countStatusTransitionsTotal.WithLabelValues(string(current.Status), string(to)).Inc()

	return updated, nil
}

// SoftDeletePayment marks a payment deleted. Only payments that have reached
// a terminal status may be deleted.
func (service *Service) SoftDeletePayment(ctx context.Context, paymentID uuid.UUID, expectedVersion int, deletedBy string) error {
	current, err := service.Datastore.GetPayment(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("failed to get payment: %w", err)
	}
	if current == nil {
		return errorutils.ErrNotFound
	}

	if !current.Status.IsTerminal() {
		return errorutils.New(errorutils.ErrPaymentNotTerminal,
			fmt.Sprintf("payment in status %s cannot be deleted", current.Status),
			map[string]interface{}{"status": current.Status})
	}

	err = service.Datastore.SoftDeletePayment(ctx, paymentID, expectedVersion, deletedBy)
	if err != nil {
		if errors.Is(err, errorutils.ErrConcurrencyConflict) {
			countConcurrencyConflictsTotal.WithLabelValues("soft_delete").Inc()
		}
		return err
	}
	return nil
}

// GetPayment by ID
func (service *Service) GetPayment(ctx context.Context, paymentID uuid.UUID) (*Payment, error) {
	payment, err := service.Datastore.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, errorutils.ErrNotFound
	}
	return payment, nil
}

// GetPaymentByCorrelationID returns the payment created under the given correlation id
func (service *Service) GetPaymentByCorrelationID(ctx context.Context, correlationID string) (*Payment, error) {
	payment, err := service.Datastore.GetPaymentByCorrelationID(ctx, correlationID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, errorutils.ErrNotFound
	}
	return payment, nil
}

// GetPaymentsByOrderID returns all payments attached to an order
func (service *Service) GetPaymentsByOrderID(ctx context.Context, orderID uuid.UUID) ([]Payment, error) {
	return service.Datastore.GetPaymentsByOrderID(ctx, orderID)
}

// GetPaymentsByStatus returns all payments currently in the given status
func (service *Service) GetPaymentsByStatus(ctx context.Context, status Status) ([]Payment, error) {
	return service.Datastore.GetPaymentsByStatus(ctx, status)
}

// GetPaymentsByDateRange returns payments created within [from, to]
func (service *Service) GetPaymentsByDateRange(ctx context.Context, from, to time.Time) ([]Payment, error) {
	return service.Datastore.GetPaymentsByDateRange(ctx, from, to)
}

// ListPayments returns one page of payments
func (service *Service) ListPayments(ctx context.Context, pagination *inputs.Pagination) ([]Payment, error) {
	return service.Datastore.ListPayments(ctx, pagination)
}

// GetHistoryByNewStatus returns one page of history entries that transitioned
// into the given status, for compliance sweeps
func (service *Service) GetHistoryByNewStatus(ctx context.Context, status Status, pagination *inputs.Pagination) ([]StatusHistory, error) {
	return service.Datastore.GetHistoryByNewStatus(ctx, status, pagination)
}

// GetStatusHistory returns the status change history for a payment, newest first
func (service *Service) GetStatusHistory(ctx context.Context, paymentID uuid.UUID) ([]StatusHistory, error) {
	payment, err := service.Datastore.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, errorutils.ErrNotFound
	}
	return service.Datastore.GetStatusHistory(ctx, paymentID)
}

// GetPaymentStatuses returns the status catalog, served from cache when warm
func (service *Service) GetPaymentStatuses(ctx context.Context) ([]PaymentStatusInfo, error) {
	if cached, ok := service.catalogCache.Get(statusCatalogCacheKey); ok {
		return cached.([]PaymentStatusInfo), nil
	}
	statuses, err := service.Datastore.GetPaymentStatuses(ctx)
	if err != nil {
		return nil, err
	}
	service.catalogCache.SetDefault(statusCatalogCacheKey, statuses)
	return statuses, nil
}

// GetMethodTypes returns all active payment method types, served from cache when warm
func (service *Service) GetMethodTypes(ctx context.Context) ([]MethodType, error) {
	if cached, ok := service.catalogCache.Get(methodTypesCacheKey); ok {
		return cached.([]MethodType), nil
	}
	methods, err := service.Datastore.GetMethodTypes(ctx)
	if err != nil {
		return nil, err
	}
	service.catalogCache.SetDefault(methodTypesCacheKey, methods)
	return methods, nil
}

// GetCurrencyCodes returns all active currencies, served from cache when warm
func (service *Service) GetCurrencyCodes(ctx context.Context) ([]CurrencyCode, error) {
	if cached, ok := service.catalogCache.Get(currencyCodesCacheKey); ok {
		return cached.([]CurrencyCode), nil
	}
	currencies, err := service.Datastore.GetCurrencyCodes(ctx)
	if err != nil {
		return nil, err
	}
	service.catalogCache.SetDefault(currencyCodesCacheKey, currencies)
	return currencies, nil
}
