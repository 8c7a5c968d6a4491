package payment

import (
	"context"
	"time"

	"github.com/ebuy-platform/payment-go/datastore/paymentserver"
	errorutils "github.com/ebuy-platform/payment-go/libs/errors"
	"github.com/ebuy-platform/payment-go/libs/inputs"
	"github.com/ebuy-platform/payment-go/libs/logging"
	"github.com/lib/pq"
	uuid "github.com/satori/go.uuid"
)

//go:generate mockgen -destination=mockdatastore/mockdatastore.go -package=mockdatastore . Datastore

// changedBySystem is recorded on history rows written without a caller identity.
const changedBySystem = "SYSTEM"

// Datastore abstracts over the underlying datastore
type Datastore interface {
	paymentserver.Datastore
	// InsertPayment creates a payment row along with its creation history entry
	InsertPayment(ctx context.Context, payment *Payment) (*Payment, error)
	// GetPayment by ID
	GetPayment(ctx context.Context, paymentID uuid.UUID) (*Payment, error)
	// GetPaymentByCorrelationID returns the payment created under the given correlation id
	GetPaymentByCorrelationID(ctx context.Context, correlationID string) (*Payment, error)
	// GetPaymentsByOrderID returns all payments attached to an order, newest first
	GetPaymentsByOrderID(ctx context.Context, orderID uuid.UUID) ([]Payment, error)
	// GetPaymentsByStatus returns all payments currently in the given status
	GetPaymentsByStatus(ctx context.Context, status Status) ([]Payment, error)
	// GetPaymentsByDateRange returns payments created within [from, to]
	GetPaymentsByDateRange(ctx context.Context, from, to time.Time) ([]Payment, error)
	// ListPayments returns one page of payments
	ListPayments(ctx context.Context, pagination *inputs.Pagination) ([]Payment, error)
	// UpdatePaymentStatus performs a conditional status transition against the
	// expected row version, recording a history entry in the same transaction
	UpdatePaymentStatus(ctx context.Context, current *Payment, to Status, req *UpdateStatusRequest) (*Payment, error)
	// SoftDeletePayment marks a payment deleted against the expected row version
	SoftDeletePayment(ctx context.Context, paymentID uuid.UUID, expectedVersion int, deletedBy string) error
	// GetStatusHistory returns the status change history for a payment, newest first
	GetStatusHistory(ctx context.Context, paymentID uuid.UUID) ([]StatusHistory, error)
	// GetHistoryByNewStatus returns one page of history entries that transitioned into the given status
	GetHistoryByNewStatus(ctx context.Context, status Status, pagination *inputs.Pagination) ([]StatusHistory, error)
	// GetPaymentStatuses returns the status catalog
	GetPaymentStatuses(ctx context.Context) ([]PaymentStatusInfo, error)
	// GetMethodTypes returns all active payment method types
	GetMethodTypes(ctx context.Context) ([]MethodType, error)
	// GetMethodType returns one payment method type by code, active or not
	GetMethodType(ctx context.Context, code string) (*MethodType, error)
	// GetCurrencyCodes returns all active currencies
	GetCurrencyCodes(ctx context.Context) ([]CurrencyCode, error)
	// GetCurrencyCode returns one currency by code, active or not
	GetCurrencyCode(ctx context.Context, code string) (*CurrencyCode, error)
}

// Postgres is a Datastore wrapper around a postgres database
type Postgres struct {
	paymentserver.Postgres
}

// NewPostgres creates a new Postgres Datastore
func NewPostgres(databaseURL string, performMigration bool, dbStatsPrefix ...string) (Datastore, error) {
	pg, err := paymentserver.NewPostgres(databaseURL, performMigration, dbStatsPrefix...)
	if pg != nil {
		return &Postgres{*pg}, err
	}
	return nil, err
}

// InsertPayment creates a payment row along with its creation history entry.
// The two inserts commit atomically so a payment can never exist without its
// creation record.
func (pg *Postgres) InsertPayment(ctx context.Context, payment *Payment) (*Payment, error) {
	tx, err := pg.BeginTx()
	if err != nil {
		return nil, err
	}
	defer pg.RollbackTx(tx)

	statement := `
	insert into payments
		(order_id, correlation_id, buyer_id, amount, processing_fee, currency_code,
		 method_type, status, service_origin)
	values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	returning *`
	payments := []Payment{}
	err = tx.Select(&payments, statement,
		payment.OrderID,
		payment.CorrelationID,
		payment.BuyerID,
		payment.Amount,
		payment.ProcessingFee,
		payment.CurrencyCode,
		payment.MethodType,
		Pending,
		payment.ServiceOrigin,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			// correlation id already used
			return nil, errorutils.ErrConcurrencyConflict
		}
		return nil, err
	}
	created := payments[0]

	statement = `
	insert into payment_status_history (payment_id, previous_status, new_status, changed_by)
	values ($1, null, $2, $3)`
	_, err = tx.Exec(statement, created.ID, Pending, changedBySystem)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetPayment by ID
func (pg *Postgres) GetPayment(ctx context.Context, paymentID uuid.UUID) (*Payment, error) {
	statement := "select * from payments where id = $1 and not is_deleted"
	payments := []Payment{}
	err := pg.RawDB().Select(&payments, statement, paymentID)
	if err != nil {
		return nil, err
	}

	if len(payments) > 0 {
		return &payments[0], nil
	}

	return nil, nil
}

// GetPaymentByCorrelationID returns the payment created under the given correlation id
func (pg *Postgres) GetPaymentByCorrelationID(ctx context.Context, correlationID string) (*Payment, error) {
	statement := "select * from payments where correlation_id = $1 and not is_deleted"
	payments := []Payment{}
	err := pg.RawDB().Select(&payments, statement, correlationID)
	if err != nil {
		return nil, err
	}

	if len(payments) > 0 {
		return &payments[0], nil
	}

	return nil, nil
}

// GetPaymentsByOrderID returns all payments attached to an order, newest first
func (pg *Postgres) GetPaymentsByOrderID(ctx context.Context, orderID uuid.UUID) ([]Payment, error) {
	statement := `
	select * from payments
	where order_id = $1 and not is_deleted
	order by created_at desc`
	payments := []Payment{}
	err := pg.RawDB().Select(&payments, statement, orderID)
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// GetPaymentsByStatus returns all payments currently in the given status
func (pg *Postgres) GetPaymentsByStatus(ctx context.Context, status Status) ([]Payment, error) {
	statement := `
	select * from payments
	where status = $1 and not is_deleted
	order by created_at desc`
	payments := []Payment{}
	err := pg.RawDB().Select(&payments, statement, status)
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// GetPaymentsByDateRange returns payments created within [from, to]
func (pg *Postgres) GetPaymentsByDateRange(ctx context.Context, from, to time.Time) ([]Payment, error) {
	statement := `
	select * from payments
	where created_at >= $1 and created_at <= $2 and not is_deleted
	order by created_at desc`
	payments := []Payment{}
	err := pg.RawDB().Select(&payments, statement, from, to)
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// ListPayments returns one page of payments
func (pg *Postgres) ListPayments(ctx context.Context, pagination *inputs.Pagination) ([]Payment, error) {
	orderBy := pagination.GetOrderBy(ctx)
	if orderBy == "" {
		orderBy = "created_at DESC"
	}

	statement := `
	select * from payments
	where not is_deleted
	order by ` + orderBy + `
	limit $1 offset $2`
	payments := []Payment{}
	err := pg.RawDB().Select(&payments, statement, pagination.Items, pagination.Page*pagination.Items)
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdatePaymentStatus performs a conditional status transition. The update
// only lands when the stored row_version matches req.ExpectedVersion, and the
// matching history entry commits in the same transaction. When the
// conditional write matches no row the payment is re-checked to distinguish a
// missing payment from a lost race.
func (pg *Postgres) UpdatePaymentStatus(ctx context.Context, current *Payment, to Status, req *UpdateStatusRequest) (*Payment, error) {
	logger := logging.Logger(ctx, "payment.UpdatePaymentStatus")

	tx, err := pg.BeginTx()
	if err != nil {
		return nil, err
	}
	defer pg.RollbackTx(tx)

	statement := `
	update payments
	set
		status = $1,
		failure_reason = coalesce($2, failure_reason),
		gateway_response = coalesce($3, gateway_response),
		payment_date = case when $1 = 'CAPTURED' and payment_date is null
			then current_timestamp else payment_date end,
		row_version = row_version + 1,
		updated_at = current_timestamp
	where id = $4 and row_version = $5 and not is_deleted
	returning *`
	payments := []Payment{}
	err = tx.Select(&payments, statement,
		to,
		req.FailureReason,
		req.GatewayResponse,
		current.ID,
		req.ExpectedVersion,
	)
	if err != nil {
		return nil, err
	}

	if len(payments) == 0 {
		// no row matched, find out why
		var count int
		err = tx.Get(&count, "select count(*) from payments where id = $1 and not is_deleted", current.ID)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, errorutils.ErrNotFound
		}
		logger.Warn().
			Str("payment_id", current.ID.String()).
			Int("expected_version", req.ExpectedVersion).
			Msg("conditional status update lost to a concurrent writer")
		return nil, errorutils.ErrConcurrencyConflict
	}
	updated := payments[0]

	changedBy := req.ChangedBy
	if changedBy == "" {
		changedBy = changedBySystem
	}

	statement = `
	insert into payment_status_history
		(payment_id, previous_status, new_status, changed_by, change_reason,
		 failure_reason, gateway_response)
	values ($1, $2, $3, $4, $5, $6, $7)`
	_, err = tx.Exec(statement, updated.ID, current.Status, to, changedBy,
		req.ChangeReason, req.FailureReason, req.GatewayResponse)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SoftDeletePayment marks a payment deleted against the expected row version
func (pg *Postgres) SoftDeletePayment(ctx context.Context, paymentID uuid.UUID, expectedVersion int, deletedBy string) error {
	statement := `
	update payments
	set is_deleted = true, row_version = row_version + 1, updated_at = current_timestamp
	where id = $1 and row_version = $2 and not is_deleted`
	result, err := pg.RawDB().Exec(statement, paymentID, expectedVersion)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var count int
		err = pg.RawDB().Get(&count, "select count(*) from payments where id = $1 and not is_deleted", paymentID)
		if err != nil {
			return err
		}
		if count == 0 {
			return errorutils.ErrNotFound
		}
		return errorutils.ErrConcurrencyConflict
	}
	return nil
}

// GetStatusHistory returns the status change history for a payment, newest first
func (pg *Postgres) GetStatusHistory(ctx context.Context, paymentID uuid.UUID) ([]StatusHistory, error) {
	statement := `
	select * from payment_status_history
	where payment_id = $1
	order by created_at desc`
	history := []StatusHistory{}
	err := pg.RawDB().Select(&history, statement, paymentID)
	if err != nil {
		return nil, err
	}
	return history, nil
}

// GetHistoryByNewStatus returns one page of history entries that transitioned
// into the given status
func (pg *Postgres) GetHistoryByNewStatus(ctx context.Context, status Status, pagination *inputs.Pagination) ([]StatusHistory, error) {
	orderBy := pagination.GetOrderBy(ctx)
	if orderBy == "" {
		orderBy = "created_at DESC"
	}

	statement := `
	select * from payment_status_history
	where new_status = $1
	order by ` + orderBy + `
	limit $2 offset $3`
	history := []StatusHistory{}
	err := pg.RawDB().Select(&history, statement, status, pagination.Items, pagination.Page*pagination.Items)
	if err != nil {
		return nil, err
	}
	return history, nil
}

// GetPaymentStatuses returns the status catalog
func (pg *Postgres) GetPaymentStatuses(ctx context.Context) ([]PaymentStatusInfo, error) {
	statement := "select * from payment_statuses order by code"
	statuses := []PaymentStatusInfo{}
	err := pg.RawDB().Select(&statuses, statement)
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

// GetMethodTypes returns all active payment method types
func (pg *Postgres) GetMethodTypes(ctx context.Context) ([]MethodType, error) {
	statement := "select * from payment_method_types where is_active order by code"
	methods := []MethodType{}
	err := pg.RawDB().Select(&methods, statement)
	if err != nil {
		return nil, err
	}
	return methods, nil
}

// GetMethodType returns one payment method type by code, active or not
func (pg *Postgres) GetMethodType(ctx context.Context, code string) (*MethodType, error) {
	statement := "select * from payment_method_types where code = $1"
	methods := []MethodType{}
	err := pg.RawDB().Select(&methods, statement, code)
	if err != nil {
		return nil, err
	}

	if len(methods) > 0 {
		return &methods[0], nil
	}

	return nil, nil
}

// GetCurrencyCodes returns all active currencies
func (pg *Postgres) GetCurrencyCodes(ctx context.Context) ([]CurrencyCode, error) {
	statement := "select * from currency_codes where is_active order by code"
	currencies := []CurrencyCode{}
	err := pg.RawDB().Select(&currencies, statement)
	if err != nil {
		return nil, err
	}
	return currencies, nil
}

// GetCurrencyCode returns one currency by code, active or not
func (pg *Postgres) GetCurrencyCode(ctx context.Context, code string) (*CurrencyCode, error) {
	statement := "select * from currency_codes where code = $1"
	currencies := []CurrencyCode{}
	err := pg.RawDB().Select(&currencies, statement, code)
	if err != nil {
		return nil, err
	}

	if len(currencies) > 0 {
		return &currencies[0], nil
	}

	return nil, nil
}
