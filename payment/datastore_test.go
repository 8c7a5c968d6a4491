//go:build integration
// +build integration

package payment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	errorutils "github.com/ebuy-platform/payment-go/libs/errors"
	"github.com/ebuy-platform/payment-go/libs/inputs"
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PostgresTestSuite struct {
	suite.Suite
	ds Datastore
}

func TestPostgresTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresTestSuite))
}

func (suite *PostgresTestSuite) SetupSuite() {
	ds, err := NewPostgres("", false)
	suite.Require().NoError(err, "Failed to get postgres conn")
	suite.ds = ds

	m, err := ds.NewMigrate()
	suite.Require().NoError(err, "Failed to create migrate instance")

	ver, dirty, _ := m.Version()
	if dirty {
		suite.Require().NoError(m.Force(int(ver)))
	}
	if ver > 0 {
		suite.Require().NoError(m.Down(), "Failed to migrate down cleanly")
	}

	suite.Require().NoError(ds.Migrate(), "Failed to fully migrate")
}

func (suite *PostgresTestSuite) SetupTest() {
	suite.CleanDB()
}

func (suite *PostgresTestSuite) CleanDB() {
	tables := []string{"payment_status_history", "payments"}

	for _, table := range tables {
		_, err := suite.ds.RawDB().Exec("delete from " + table)
		suite.Require().NoError(err, "Failed to get clean table")
	}
}

func (suite *PostgresTestSuite) insertPayment(correlationID string) *Payment {
	created, err := suite.ds.InsertPayment(context.Background(), &Payment{
		OrderID:       uuid.NewV4(),
		CorrelationID: correlationID,
		BuyerID:       uuid.NewV4(),
		Amount:        decimal.RequireFromString("100.00"),
		ProcessingFee: decimal.RequireFromString("2.90"),
		CurrencyCode:  "USD",
		MethodType:    "CREDIT_CARD",
	})
	suite.Require().NoError(err, "Insert payment should succeed")
	return created
}

func (suite *PostgresTestSuite) TestInsertPayment() {
	created := suite.insertPayment("it-insert-1")

	suite.Assert().Equal(Pending, created.Status)
	// versions start at 1
	suite.Assert().Equal(1, created.RowVersion)
	suite.Assert().False(created.IsDeleted)

	// the creation history entry commits with the payment
	history, err := suite.ds.GetStatusHistory(context.Background(), created.ID)
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)
	suite.Assert().Nil(history[0].PreviousStatus)
	suite.Assert().Equal(Pending, history[0].NewStatus)
	suite.Assert().Equal("SYSTEM", history[0].ChangedBy)
}

func (suite *PostgresTestSuite) TestInsertPaymentDuplicateCorrelationID() {
	suite.insertPayment("it-dup-1")

	_, err := suite.ds.InsertPayment(context.Background(), &Payment{
		OrderID:       uuid.NewV4(),
		CorrelationID: "it-dup-1",
		BuyerID:       uuid.NewV4(),
		Amount:        decimal.RequireFromString("10.00"),
		CurrencyCode:  "USD",
		MethodType:    "CREDIT_CARD",
	})
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errorutils.ErrConcurrencyConflict)
}

func (suite *PostgresTestSuite) TestUpdatePaymentStatusLadder() {
	ctx := context.Background()
	created := suite.insertPayment("it-ladder-1")

	authorized, err := suite.ds.UpdatePaymentStatus(ctx, created, Authorized, &UpdateStatusRequest{
		Status:          string(Authorized),
		ExpectedVersion: created.RowVersion,
		ChangedBy:       "gateway-worker",
	})
	suite.Require().NoError(err)
	suite.Assert().Equal(Authorized, authorized.Status)
	suite.Assert().Equal(created.RowVersion+1, authorized.RowVersion)
	suite.Assert().Nil(authorized.PaymentDate)

	captured, err := suite.ds.UpdatePaymentStatus(ctx, authorized, Captured, &UpdateStatusRequest{
		Status:          string(Captured),
		ExpectedVersion: authorized.RowVersion,
		ChangedBy:       "gateway-worker",
	})
	suite.Require().NoError(err)
	suite.Assert().Equal(Captured, captured.Status)
	suite.Assert().Equal(authorized.RowVersion+1, captured.RowVersion)
	// payment date stamps on first capture
	suite.Require().NotNil(captured.PaymentDate)

	history, err := suite.ds.GetStatusHistory(ctx, created.ID)
	suite.Require().NoError(err)
	suite.Require().Len(history, 3)
	// newest first
	suite.Assert().Equal(Captured, history[0].NewStatus)
	suite.Require().NotNil(history[0].PreviousStatus)
	suite.Assert().Equal(Authorized, *history[0].PreviousStatus)
}

func (suite *PostgresTestSuite) TestUpdatePaymentStatusStaleVersion() {
	ctx := context.Background()
	created := suite.insertPayment("it-stale-1")

	// first writer wins
	_, err := suite.ds.UpdatePaymentStatus(ctx, created, Authorized, &UpdateStatusRequest{
		Status:          string(Authorized),
		ExpectedVersion: created.RowVersion,
	})
	suite.Require().NoError(err)

	// second writer carries the stale version and must lose
	_, err = suite.ds.UpdatePaymentStatus(ctx, created, Failed, &UpdateStatusRequest{
		Status:          string(Failed),
		ExpectedVersion: created.RowVersion,
	})
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errorutils.ErrConcurrencyConflict)

	// the losing write leaves no history behind
	history, err := suite.ds.GetStatusHistory(ctx, created.ID)
	suite.Require().NoError(err)
	suite.Assert().Len(history, 2)

	// and the row still reflects the winner
	current, err := suite.ds.GetPayment(ctx, created.ID)
	suite.Require().NoError(err)
	suite.Assert().Equal(Authorized, current.Status)
}

func (suite *PostgresTestSuite) TestUpdatePaymentStatusConcurrentWriters() {
	ctx := context.Background()
	created := suite.insertPayment("it-race-1")

	// two writers race the same expected version, exactly one may win
	var (
		wg   sync.WaitGroup
		errs = make([]error, 2)
	)
	for i, to := range []Status{Authorized, Failed} {
		wg.Add(1)
		go func(i int, to Status) {
			defer wg.Done()
			_, errs[i] = suite.ds.UpdatePaymentStatus(ctx, created, to, &UpdateStatusRequest{
				Status:          string(to),
				ExpectedVersion: created.RowVersion,
			})
		}(i, to)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, errorutils.ErrConcurrencyConflict):
			losses++
		default:
			suite.Require().NoError(err)
		}
	}
	suite.Assert().Equal(1, wins)
	suite.Assert().Equal(1, losses)

	// creation entry plus exactly one transition entry
	history, err := suite.ds.GetStatusHistory(ctx, created.ID)
	suite.Require().NoError(err)
	suite.Assert().Len(history, 2)

	current, err := suite.ds.GetPayment(ctx, created.ID)
	suite.Require().NoError(err)
	suite.Assert().Equal(created.RowVersion+1, current.RowVersion)
}

func (suite *PostgresTestSuite) TestStatusHistoryKeepsPerTransitionGatewayData() {
	ctx := context.Background()
	created := suite.insertPayment("it-history-1")

	authResponse := `{"auth_code":"A1"}`
	authorized, err := suite.ds.UpdatePaymentStatus(ctx, created, Authorized, &UpdateStatusRequest{
		Status:          string(Authorized),
		ExpectedVersion: created.RowVersion,
		GatewayResponse: &authResponse,
	})
	suite.Require().NoError(err)

	failResponse := `{"code":"do_not_honor"}`
	failReason := "card declined"
	failed, err := suite.ds.UpdatePaymentStatus(ctx, authorized, Failed, &UpdateStatusRequest{
		Status:          string(Failed),
		ExpectedVersion: authorized.RowVersion,
		FailureReason:   &failReason,
		GatewayResponse: &failResponse,
	})
	suite.Require().NoError(err)

	// the payments row carries the latest payload only
	suite.Require().NotNil(failed.GatewayResponse)
	suite.Assert().Equal(failResponse, *failed.GatewayResponse)

	// each history row retains the payload reported for its own transition
	history, err := suite.ds.GetStatusHistory(ctx, created.ID)
	suite.Require().NoError(err)
	suite.Require().Len(history, 3)

	suite.Require().NotNil(history[0].GatewayResponse)
	suite.Assert().Equal(failResponse, *history[0].GatewayResponse)
	suite.Require().NotNil(history[0].FailureReason)
	suite.Assert().Equal(failReason, *history[0].FailureReason)

	suite.Require().NotNil(history[1].GatewayResponse)
	suite.Assert().Equal(authResponse, *history[1].GatewayResponse)
	suite.Assert().Nil(history[1].FailureReason)

	suite.Assert().Nil(history[2].GatewayResponse)
	suite.Assert().Nil(history[2].FailureReason)
}

func (suite *PostgresTestSuite) TestGetHistoryByNewStatus() {
	ctx := context.Background()

	for _, correlationID := range []string{"it-sweep-1", "it-sweep-2"} {
		created := suite.insertPayment(correlationID)
		reason := "card declined"
		_, err := suite.ds.UpdatePaymentStatus(ctx, created, Failed, &UpdateStatusRequest{
			Status:          string(Failed),
			ExpectedVersion: created.RowVersion,
			FailureReason:   &reason,
		})
		suite.Require().NoError(err)
	}
	suite.insertPayment("it-sweep-other")

	history, err := suite.ds.GetHistoryByNewStatus(ctx, Failed, &inputs.Pagination{Page: 0, Items: 10})
	suite.Require().NoError(err)
	suite.Assert().Len(history, 2)

	// one entry per page
	firstPage, err := suite.ds.GetHistoryByNewStatus(ctx, Failed, &inputs.Pagination{Page: 0, Items: 1})
	suite.Require().NoError(err)
	suite.Assert().Len(firstPage, 1)
	secondPage, err := suite.ds.GetHistoryByNewStatus(ctx, Failed, &inputs.Pagination{Page: 1, Items: 1})
	suite.Require().NoError(err)
	suite.Assert().Len(secondPage, 1)
	suite.Assert().NotEqual(firstPage[0].ID, secondPage[0].ID)
}

func (suite *PostgresTestSuite) TestUpdatePaymentStatusMissing() {
	ctx := context.Background()
	ghost := &Payment{ID: uuid.NewV4(), Status: Pending}

	_, err := suite.ds.UpdatePaymentStatus(ctx, ghost, Authorized, &UpdateStatusRequest{
		Status:          string(Authorized),
		ExpectedVersion: 1,
	})
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errorutils.ErrNotFound)
}

func (suite *PostgresTestSuite) TestSoftDeletePayment() {
	ctx := context.Background()
	created := suite.insertPayment("it-delete-1")

	voided, err := suite.ds.UpdatePaymentStatus(ctx, created, Voided, &UpdateStatusRequest{
		Status:          string(Voided),
		ExpectedVersion: created.RowVersion,
	})
	suite.Require().NoError(err)

	err = suite.ds.SoftDeletePayment(ctx, created.ID, voided.RowVersion, "ops")
	suite.Require().NoError(err)

	// deleted payments drop out of all lookups
	got, err := suite.ds.GetPayment(ctx, created.ID)
	suite.Require().NoError(err)
	suite.Assert().Nil(got)

	got, err = suite.ds.GetPaymentByCorrelationID(ctx, "it-delete-1")
	suite.Require().NoError(err)
	suite.Assert().Nil(got)

	// a second delete reports not found
	err = suite.ds.SoftDeletePayment(ctx, created.ID, voided.RowVersion+1, "ops")
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errorutils.ErrNotFound)

	// the correlation id becomes reusable after deletion
	suite.insertPayment("it-delete-1")
}

func (suite *PostgresTestSuite) TestSoftDeletePaymentStaleVersion() {
	ctx := context.Background()
	created := suite.insertPayment("it-delete-stale-1")

	voided, err := suite.ds.UpdatePaymentStatus(ctx, created, Voided, &UpdateStatusRequest{
		Status:          string(Voided),
		ExpectedVersion: created.RowVersion,
	})
	suite.Require().NoError(err)

	err = suite.ds.SoftDeletePayment(ctx, created.ID, voided.RowVersion+5, "ops")
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errorutils.ErrConcurrencyConflict)
}

func (suite *PostgresTestSuite) TestGetPaymentsByOrderID() {
	ctx := context.Background()
	orderID := uuid.NewV4()

	for i, correlationID := range []string{"it-order-1", "it-order-2"} {
		_, err := suite.ds.InsertPayment(ctx, &Payment{
			OrderID:       orderID,
			CorrelationID: correlationID,
			BuyerID:       uuid.NewV4(),
			Amount:        decimal.New(int64(i+1), 0),
			CurrencyCode:  "USD",
			MethodType:    "CREDIT_CARD",
		})
		suite.Require().NoError(err)
	}
	suite.insertPayment("it-order-other")

	payments, err := suite.ds.GetPaymentsByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Assert().Len(payments, 2)
}

func (suite *PostgresTestSuite) TestGetPaymentsByStatusAndDateRange() {
	ctx := context.Background()
	created := suite.insertPayment("it-query-1")

	_, err := suite.ds.UpdatePaymentStatus(ctx, created, Failed, &UpdateStatusRequest{
		Status:          string(Failed),
		ExpectedVersion: created.RowVersion,
		FailureReason:   strPtr("card declined"),
	})
	suite.Require().NoError(err)
	suite.insertPayment("it-query-2")

	failed, err := suite.ds.GetPaymentsByStatus(ctx, Failed)
	suite.Require().NoError(err)
	suite.Require().Len(failed, 1)
	suite.Require().NotNil(failed[0].FailureReason)
	suite.Assert().Equal("card declined", *failed[0].FailureReason)

	window, err := suite.ds.GetPaymentsByDateRange(ctx,
		time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	suite.Require().NoError(err)
	suite.Assert().Len(window, 2)
}

func (suite *PostgresTestSuite) TestCatalogs() {
	ctx := context.Background()

	statuses, err := suite.ds.GetPaymentStatuses(ctx)
	suite.Require().NoError(err)
	suite.Assert().Len(statuses, 6)

	methods, err := suite.ds.GetMethodTypes(ctx)
	suite.Require().NoError(err)
	suite.Assert().NotEmpty(methods)

	method, err := suite.ds.GetMethodType(ctx, "CREDIT_CARD")
	suite.Require().NoError(err)
	suite.Require().NotNil(method)
	suite.Assert().True(method.IsActive)

	currencies, err := suite.ds.GetCurrencyCodes(ctx)
	suite.Require().NoError(err)
	suite.Assert().NotEmpty(currencies)
}

func strPtr(s string) *string {
	return &s
}
