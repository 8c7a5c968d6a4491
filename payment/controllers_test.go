package payment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	errorutils "github.com/ebuy-platform/payment-go/libs/errors"
	"github.com/ebuy-platform/payment-go/payment"
	"github.com/ebuy-platform/payment-go/payment/mockdatastore"
	"github.com/golang/mock/gomock"
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ControllersTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockDS   *mockdatastore.MockDatastore
	service  *payment.Service
	router   http.Handler
}

func TestControllersTestSuite(t *testing.T) {
	suite.Run(t, new(ControllersTestSuite))
}

func (suite *ControllersTestSuite) SetupTest() {
	suite.mockCtrl = gomock.NewController(suite.T())
	suite.mockDS = mockdatastore.NewMockDatastore(suite.mockCtrl)

	service, err := payment.InitService(context.Background(), suite.mockDS)
	suite.Require().NoError(err)
	suite.service = service
	suite.router = payment.Router(service)
}

func (suite *ControllersTestSuite) TearDownTest() {
	suite.mockCtrl.Finish()
}

func (suite *ControllersTestSuite) do(method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Accept", "application/json")
	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)
	return rr
}

func (suite *ControllersTestSuite) errorCode(rr *httptest.ResponseRecorder) string {
	var resp struct {
		ErrorCode string `json:"errorCode"`
	}
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.ErrorCode
}

func (suite *ControllersTestSuite) TestCreatePayment() {
	method := &payment.MethodType{
		Code:                 "CREDIT_CARD",
		DisplayName:          "Credit Card",
		MinAmount:            decimal.RequireFromString("0.50"),
		MaxAmount:            decimal.RequireFromString("50000"),
		ProcessingFeePercent: decimal.RequireFromString("2.90"),
		IsActive:             true,
	}
	currency := &payment.CurrencyCode{Code: "USD", Name: "United States Dollar", MinorUnits: 2, IsActive: true}

	suite.mockDS.EXPECT().GetPaymentByCorrelationID(gomock.Any(), gomock.Any()).Return(nil, nil)
	suite.mockDS.EXPECT().GetMethodType(gomock.Any(), gomock.Any()).Return(method, nil)
	suite.mockDS.EXPECT().GetCurrencyCode(gomock.Any(), gomock.Any()).Return(currency, nil)
	suite.mockDS.EXPECT().InsertPayment(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, p *payment.Payment) (*payment.Payment, error) {
			created := *p
			created.ID = uuid.NewV4()
			created.Status = payment.Pending
			return &created, nil
		})

	rr := suite.do("POST", "/", &payment.CreateRequest{
		OrderID:       uuid.NewV4().String(),
		CorrelationID: "ord-999-attempt-1",
		BuyerID:       uuid.NewV4().String(),
		Amount:        decimal.RequireFromString("42.00"),
		CurrencyCode:  "USD",
		MethodType:    "CREDIT_CARD",
	})
	suite.Require().Equal(http.StatusCreated, rr.Code)

	var created payment.Payment
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &created))
	suite.Assert().Equal(payment.Pending, created.Status)
}

func (suite *ControllersTestSuite) TestCreatePaymentBadAmount() {
	rr := suite.do("POST", "/", map[string]interface{}{
		"orderId":       uuid.NewV4().String(),
		"correlationId": "ord-999-attempt-2",
		"buyerId":       uuid.NewV4().String(),
		"amount":        "-5",
		"currencyCode":  "USD",
		"methodType":    "CREDIT_CARD",
	})
	suite.Assert().Equal(http.StatusBadRequest, rr.Code)
}

func (suite *ControllersTestSuite) TestGetPaymentNotFound() {
	paymentID := uuid.NewV4()
	suite.mockDS.EXPECT().GetPayment(gomock.Any(), gomock.Eq(paymentID)).Return(nil, nil)

	rr := suite.do("GET", "/"+paymentID.String(), nil)
	suite.Assert().Equal(http.StatusNotFound, rr.Code)
	suite.Assert().Equal("not_found", suite.errorCode(rr))
}

func (suite *ControllersTestSuite) TestGetPaymentBadID() {
	rr := suite.do("GET", "/not-a-uuid", nil)
	suite.Assert().Equal(http.StatusBadRequest, rr.Code)
}

func (suite *ControllersTestSuite) TestUpdateStatusInvalidTransition() {
	paymentID := uuid.NewV4()
	current := &payment.Payment{ID: paymentID, Status: payment.Refunded, RowVersion: 4}

	suite.mockDS.EXPECT().GetPayment(gomock.Any(), gomock.Eq(paymentID)).Return(current, nil)

	rr := suite.do("PATCH", "/"+paymentID.String()+"/status", &payment.UpdateStatusRequest{
		Status:          "CAPTURED",
		ExpectedVersion: 4,
	})
	suite.Assert().Equal(http.StatusConflict, rr.Code)
	suite.Assert().Equal("invalid_transition", suite.errorCode(rr))
}

func (suite *ControllersTestSuite) TestUpdateStatusConcurrencyConflict() {
	paymentID := uuid.NewV4()
	current := &payment.Payment{ID: paymentID, Status: payment.Pending, RowVersion: 2}

	suite.mockDS.EXPECT().GetPayment(gomock.Any(), gomock.Eq(paymentID)).Return(current, nil)
	suite.mockDS.EXPECT().UpdatePaymentStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errorutils.ErrConcurrencyConflict)

	rr := suite.do("PATCH", "/"+paymentID.String()+"/status", &payment.UpdateStatusRequest{
		Status:          "AUTHORIZED",
		ExpectedVersion: 1,
	})
	suite.Assert().Equal(http.StatusConflict, rr.Code)
	suite.Assert().Equal("concurrency_conflict", suite.errorCode(rr))
}

func (suite *ControllersTestSuite) TestUpdateStatusVersionBelowOne() {
	paymentID := uuid.NewV4()

	// versions start at 1 so an expected version of 0 can never match
	rr := suite.do("PATCH", "/"+paymentID.String()+"/status", &payment.UpdateStatusRequest{
		Status:          "AUTHORIZED",
		ExpectedVersion: 0,
	})
	suite.Assert().Equal(http.StatusBadRequest, rr.Code)
}

func (suite *ControllersTestSuite) TestUpdateStatusUnknownStatus() {
	paymentID := uuid.NewV4()

	rr := suite.do("PATCH", "/"+paymentID.String()+"/status", &payment.UpdateStatusRequest{
		Status:          "SETTLED",
		ExpectedVersion: 1,
	})
	suite.Assert().Equal(http.StatusNotFound, rr.Code)
	suite.Assert().Equal("not_found", suite.errorCode(rr))
}

func (suite *ControllersTestSuite) TestUpdateStatusSuccess() {
	paymentID := uuid.NewV4()
	current := &payment.Payment{ID: paymentID, Status: payment.Authorized, RowVersion: 1}

	suite.mockDS.EXPECT().GetPayment(gomock.Any(), gomock.Eq(paymentID)).Return(current, nil)
	suite.mockDS.EXPECT().UpdatePaymentStatus(gomock.Any(), gomock.Any(), gomock.Eq(payment.Captured), gomock.Any()).
		DoAndReturn(func(ctx context.Context, c *payment.Payment, to payment.Status, r *payment.UpdateStatusRequest) (*payment.Payment, error) {
			updated := *c
			updated.Status = to
			updated.RowVersion = c.RowVersion + 1
			return &updated, nil
		})

	rr := suite.do("PATCH", "/"+paymentID.String()+"/status", &payment.UpdateStatusRequest{
		Status:          "CAPTURED",
		ExpectedVersion: 1,
	})
	suite.Require().Equal(http.StatusOK, rr.Code)

	var updated payment.Payment
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &updated))
	suite.Assert().Equal(payment.Captured, updated.Status)
	suite.Assert().Equal(2, updated.RowVersion)
}

func (suite *ControllersTestSuite) TestDeleteNonTerminal() {
	paymentID := uuid.NewV4()
	current := &payment.Payment{ID: paymentID, Status: payment.Pending, RowVersion: 1}

	suite.mockDS.EXPECT().GetPayment(gomock.Any(), gomock.Eq(paymentID)).Return(current, nil)

	rr := suite.do("DELETE", "/"+paymentID.String(), &payment.DeleteRequest{ExpectedVersion: 1})
	suite.Assert().Equal(http.StatusConflict, rr.Code)
	suite.Assert().Equal("payment_not_terminal", suite.errorCode(rr))
}

func (suite *ControllersTestSuite) TestDeleteTerminal() {
	paymentID := uuid.NewV4()
	current := &payment.Payment{ID: paymentID, Status: payment.Voided, RowVersion: 2}

	suite.mockDS.EXPECT().GetPayment(gomock.Any(), gomock.Eq(paymentID)).Return(current, nil)
	suite.mockDS.EXPECT().SoftDeletePayment(gomock.Any(), gomock.Eq(paymentID), gomock.Eq(2), gomock.Eq("ops")).Return(nil)

	rr := suite.do("DELETE", "/"+paymentID.String(), &payment.DeleteRequest{ExpectedVersion: 2, DeletedBy: "ops"})
	suite.Assert().Equal(http.StatusNoContent, rr.Code)
}

func (suite *ControllersTestSuite) TestGetHistoryByNewStatus() {
	reason := "card declined"
	entries := []payment.StatusHistory{
		{
			ID:            uuid.NewV4(),
			PaymentID:     uuid.NewV4(),
			NewStatus:     payment.Failed,
			ChangedBy:     "gateway-worker",
			FailureReason: &reason,
		},
	}
	suite.mockDS.EXPECT().GetHistoryByNewStatus(gomock.Any(), gomock.Eq(payment.Failed), gomock.Any()).
		Return(entries, nil)

	rr := suite.do("GET", "/history?status=FAILED&page=0&items=25", nil)
	suite.Require().Equal(http.StatusOK, rr.Code)

	var got []payment.StatusHistory
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &got))
	suite.Require().Len(got, 1)
	suite.Require().NotNil(got[0].FailureReason)
	suite.Assert().Equal(reason, *got[0].FailureReason)
}

func (suite *ControllersTestSuite) TestGetHistoryByNewStatusBadStatus() {
	rr := suite.do("GET", "/history?status=nope", nil)
	suite.Assert().Equal(http.StatusBadRequest, rr.Code)
}

func (suite *ControllersTestSuite) TestGetStatusCatalog() {
	statuses := []payment.PaymentStatusInfo{
		{Code: payment.Pending, Description: "Payment created, awaiting authorization", IsTerminal: false},
		{Code: payment.Voided, Description: "Payment cancelled before capture", IsTerminal: true},
	}
	suite.mockDS.EXPECT().GetPaymentStatuses(gomock.Any()).Return(statuses, nil)

	rr := suite.do("GET", "/statuses", nil)
	suite.Require().Equal(http.StatusOK, rr.Code)

	var got []payment.PaymentStatusInfo
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &got))
	suite.Assert().Len(got, 2)
}
