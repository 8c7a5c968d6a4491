package payment_test

import (
	"context"
	"testing"

	errorutils "github.com/ebuy-platform/payment-go/libs/errors"
	"github.com/ebuy-platform/payment-go/payment"
	"github.com/ebuy-platform/payment-go/payment/mockdatastore"
	"github.com/golang/mock/gomock"
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ServiceTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockDS   *mockdatastore.MockDatastore
	service  *payment.Service
	ctx      context.Context
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.mockCtrl = gomock.NewController(suite.T())
	suite.mockDS = mockdatastore.NewMockDatastore(suite.mockCtrl)
	suite.ctx = context.Background()

	service, err := payment.InitService(suite.ctx, suite.mockDS)
	suite.Require().NoError(err)
	suite.service = service
}

func (suite *ServiceTestSuite) TearDownTest() {
	suite.mockCtrl.Finish()
}

func (suite *ServiceTestSuite) creditCard() *payment.MethodType {
	return &payment.MethodType{
		Code:                 "CREDIT_CARD",
		DisplayName:          "Credit Card",
		MinAmount:            decimal.RequireFromString("0.50"),
		MaxAmount:            decimal.RequireFromString("50000"),
		ProcessingFeePercent: decimal.RequireFromString("2.90"),
		IsActive:             true,
	}
}

func (suite *ServiceTestSuite) usd() *payment.CurrencyCode {
	return &payment.CurrencyCode{
		Code:       "USD",
		Name:       "United States Dollar",
		MinorUnits: 2,
		IsActive:   true,
	}
}

func (suite *ServiceTestSuite) createRequest() *payment.CreateRequest {
	return &payment.CreateRequest{
		OrderID:       uuid.NewV4().String(),
		CorrelationID: "ord-12345-attempt-1",
		BuyerID:       uuid.NewV4().String(),
		Amount:        decimal.RequireFromString("100.00"),
		CurrencyCode:  "USD",
		MethodType:    "CREDIT_CARD",
	}
}

func (suite *ServiceTestSuite) TestCreatePayment() {
	req := suite.createRequest()

	suite.mockDS.EXPECT().GetPaymentByCorrelationID(gomock.Any(), gomock.Eq(req.CorrelationID)).Return(nil, nil)
	suite.mockDS.EXPECT().GetMethodType(gomock.Any(), gomock.Eq("CREDIT_CARD")).Return(suite.creditCard(), nil)
	suite.mockDS.EXPECT().GetCurrencyCode(gomock.Any(), gomock.Eq("USD")).Return(suite.usd(), nil)
	suite.mockDS.EXPECT().InsertPayment(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, p *payment.Payment) (*payment.Payment, error) {
			// 2.90% of 100.00 rounded to cents
			suite.Assert().True(p.ProcessingFee.Equal(decimal.RequireFromString("2.90")),
				"unexpected fee %s", p.ProcessingFee)
			created := *p
			created.ID = uuid.NewV4()
			created.Status = payment.Pending
			return &created, nil
		})

	created, err := suite.service.CreatePayment(suite.ctx, req)
	suite.Require().NoError(err)
	suite.Assert().Equal(payment.Pending, created.Status)
}

func (suite *ServiceTestSuite) TestCreatePaymentIdempotent() {
	req := suite.createRequest()
	existing := &payment.Payment{
		ID:            uuid.NewV4(),
		CorrelationID: req.CorrelationID,
		Status:        payment.Captured,
	}

	// no insert happens when the correlation id is already used
	suite.mockDS.EXPECT().GetPaymentByCorrelationID(gomock.Any(), gomock.Eq(req.CorrelationID)).Return(existing, nil)

	created, err := suite.service.CreatePayment(suite.ctx, req)
	suite.Require().NoError(err)
	suite.Assert().Equal(existing.ID, created.ID)
}

func (suite *ServiceTestSuite) TestCreatePaymentGeneratesCorrelationID() {
	req := suite.createRequest()
	req.CorrelationID = ""

	// no idempotency lookup happens for a freshly minted correlation id
	suite.mockDS.EXPECT().GetMethodType(gomock.Any(), gomock.Any()).Return(suite.creditCard(), nil)
	suite.mockDS.EXPECT().GetCurrencyCode(gomock.Any(), gomock.Any()).Return(suite.usd(), nil)
	suite.mockDS.EXPECT().InsertPayment(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, p *payment.Payment) (*payment.Payment, error) {
			_, err := uuid.FromString(p.CorrelationID)
			suite.Assert().NoError(err, "generated correlation id should be a uuid")
			created := *p
			created.ID = uuid.NewV4()
			created.Status = payment.Pending
			return &created, nil
		})

	created, err := suite.service.CreatePayment(suite.ctx, req)
	suite.Require().NoError(err)
	suite.Assert().NotEmpty(created.CorrelationID)
}

func (suite *ServiceTestSuite) TestCreatePaymentUnknownMethod() {
	req := suite.createRequest()

	suite.mockDS.EXPECT().GetPaymentByCorrelationID(gomock.Any(), gomock.Any()).Return(nil, nil)
	suite.mockDS.EXPECT().GetMethodType(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := suite.service.CreatePayment(suite.ctx, req)
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errorutils.ErrNotFound)
}

func (suite *ServiceTestSuite) TestCreatePaymentUnknownCurrency() {
	req := suite.createRequest()

	suite.mockDS.EXPECT().GetPaymentByCorrelationID(gomock.Any(), gomock.Any()).Return(nil, nil)
	suite.mockDS.EXPECT().GetMethodType(gomock.Any(), gomock.Any()).Return(suite.creditCard(), nil)
	suite.mockDS.EXPECT().GetCurrencyCode(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := suite.service.CreatePayment(suite.ctx, req)
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errorutils.ErrNotFound)
}

func (suite *ServiceTestSuite) TestCreatePaymentInactiveMethod() {
	req := suite.createRequest()
	method := suite.creditCard()
	method.IsActive = false

	suite.mockDS.EXPECT().GetPaymentByCorrelationID(gomock.Any(), gomock.Any()).Return(nil, nil)
	suite.mockDS.EXPECT().GetMethodType(gomock.Any(), gomock.Any()).Return(method, nil)

	_, err := suite.service.CreatePayment(suite.ctx, req)
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errorutils.ErrPaymentMethodInactive)
}

func (suite *ServiceTestSuite) TestCreatePaymentAmountOutOfRange() {
	req := suite.createRequest()
	req.Amount = decimal.RequireFromString("0.25")

	suite.mockDS.EXPECT().GetPaymentByCorrelationID(gomock.Any(), gomock.Any()).Return(nil, nil)
	suite.mockDS.EXPECT().GetMethodType(gomock.Any(), gomock.Any()).Return(suite.creditCard(), nil)
	suite.mockDS.EXPECT().GetCurrencyCode(gomock.Any(), gomock.Any()).Return(suite.usd(), nil)

	_, err := suite.service.CreatePayment(suite.ctx, req)
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errorutils.ErrInvalidAmount)
}

func (suite *ServiceTestSuite) TestUpdateStatus() {
	paymentID := uuid.NewV4()
	current := &payment.Payment{
		ID:         paymentID,
		Status:     payment.Pending,
		RowVersion: 1,
	}
	req := &payment.UpdateStatusRequest{
		Status:          "AUTHORIZED",
		ExpectedVersion: 1,
		ChangedBy:       "gateway-worker",
	}

	suite.mockDS.EXPECT().GetPayment(gomock.Any(), gomock.Eq(paymentID)).Return(current, nil)
	suite.mockDS.EXPECT().UpdatePaymentStatus(gomock.Any(), gomock.Eq(current), gomock.Eq(payment.Authorized), gomock.Eq(req)).
		DoAndReturn(func(ctx context.Context, c *payment.Payment, to payment.Status, r *payment.UpdateStatusRequest) (*payment.Payment, error) {
			updated := *c
			updated.Status = to
			updated.RowVersion = c.RowVersion + 1
			return &updated, nil
		})

	updated, err := suite.service.UpdateStatus(suite.ctx, paymentID, req)
	suite.Require().NoError(err)
	suite.Assert().Equal(payment.Authorized, updated.Status)
	suite.Assert().Equal(2, updated.RowVersion)
}

func (suite *ServiceTestSuite) TestUpdateStatusUnknownStatus() {
	paymentID := uuid.NewV4()

	// the payment is never loaded for an unresolvable status code
	_, err := suite.service.UpdateStatus(suite.ctx, paymentID, &payment.UpdateStatusRequest{
		Status: "SETTLED",
	})
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errorutils.ErrNotFound)
}

func (suite *ServiceTestSuite) TestUpdateStatusInvalidTransition() {
	paymentID := uuid.NewV4()
	current := &payment.Payment{
		ID:     paymentID,
		Status: payment.Pending,
	}

	// the conditional write is never attempted for an invalid transition
	suite.mockDS.EXPECT().GetPayment(gomock.Any(), gomock.Eq(paymentID)).Return(current, nil)

	_, err := suite.service.UpdateStatus(suite.ctx, paymentID, &payment.UpdateStatusRequest{
		Status: "REFUNDED",
	})
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errorutils.ErrInvalidTransition)
}

func (suite *ServiceTestSuite) TestUpdateStatusNotFound() {
	paymentID := uuid.NewV4()

	suite.mockDS.EXPECT().GetPayment(gomock.Any(), gomock.Eq(paymentID)).Return(nil, nil)

	_, err := suite.service.UpdateStatus(suite.ctx, paymentID, &payment.UpdateStatusRequest{
		Status: "AUTHORIZED",
	})
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errorutils.ErrNotFound)
}

func (suite *ServiceTestSuite) TestUpdateStatusConcurrencyConflict() {
	paymentID := uuid.NewV4()
	current := &payment.Payment{
		ID:         paymentID,
		Status:     payment.Pending,
		RowVersion: 2,
	}
	req := &payment.UpdateStatusRequest{
		Status:          "AUTHORIZED",
		ExpectedVersion: 1,
	}

	suite.mockDS.EXPECT().GetPayment(gomock.Any(), gomock.Eq(paymentID)).Return(current, nil)
	suite.mockDS.EXPECT().UpdatePaymentStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errorutils.ErrConcurrencyConflict)

	_, err := suite.service.UpdateStatus(suite.ctx, paymentID, req)
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errorutils.ErrConcurrencyConflict)
}

func (suite *ServiceTestSuite) TestSoftDeleteNonTerminal() {
	paymentID := uuid.NewV4()
	current := &payment.Payment{
		ID:     paymentID,
		Status: payment.Authorized,
	}

	suite.mockDS.EXPECT().GetPayment(gomock.Any(), gomock.Eq(paymentID)).Return(current, nil)

	err := suite.service.SoftDeletePayment(suite.ctx, paymentID, 1, "ops")
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errorutils.ErrPaymentNotTerminal)
}

func (suite *ServiceTestSuite) TestSoftDeleteTerminal() {
	paymentID := uuid.NewV4()
	current := &payment.Payment{
		ID:         paymentID,
		Status:     payment.Refunded,
		RowVersion: 3,
	}

	suite.mockDS.EXPECT().GetPayment(gomock.Any(), gomock.Eq(paymentID)).Return(current, nil)
	suite.mockDS.EXPECT().SoftDeletePayment(gomock.Any(), gomock.Eq(paymentID), gomock.Eq(3), gomock.Eq("ops")).Return(nil)

	err := suite.service.SoftDeletePayment(suite.ctx, paymentID, 3, "ops")
	suite.Require().NoError(err)
}

func (suite *ServiceTestSuite) TestGetPaymentNotFound() {
	paymentID := uuid.NewV4()

	suite.mockDS.EXPECT().GetPayment(gomock.Any(), gomock.Eq(paymentID)).Return(nil, nil)

	_, err := suite.service.GetPayment(suite.ctx, paymentID)
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errorutils.ErrNotFound)
}

func (suite *ServiceTestSuite) TestGetMethodTypesCached() {
	methods := []payment.MethodType{*suite.creditCard()}

	// a single datastore read serves both calls
	suite.mockDS.EXPECT().GetMethodTypes(gomock.Any()).Return(methods, nil).Times(1)

	first, err := suite.service.GetMethodTypes(suite.ctx)
	suite.Require().NoError(err)
	second, err := suite.service.GetMethodTypes(suite.ctx)
	suite.Require().NoError(err)
	suite.Assert().Equal(first, second)
}
