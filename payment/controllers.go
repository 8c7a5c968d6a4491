package payment

import (
	"errors"
	"net/http"
	"time"

	"github.com/asaskevich/govalidator"
	errorutils "github.com/ebuy-platform/payment-go/libs/errors"
	"github.com/ebuy-platform/payment-go/libs/handlers"
	"github.com/ebuy-platform/payment-go/libs/inputs"
	"github.com/ebuy-platform/payment-go/libs/middleware"
	"github.com/ebuy-platform/payment-go/libs/requestutils"
	"github.com/go-chi/chi"
	uuid "github.com/satori/go.uuid"
)

// Router for payment endpoints
func Router(service *Service) chi.Router {
	r := chi.NewRouter()
	r.Method("POST", "/", middleware.InstrumentHandler("CreatePayment", CreatePayment(service)))
	r.Method("GET", "/", middleware.InstrumentHandler("ListPayments", ListPayments(service)))
	r.Method("GET", "/statuses", middleware.InstrumentHandler("GetPaymentStatuses", GetPaymentStatuses(service)))
	r.Method("GET", "/methods", middleware.InstrumentHandler("GetMethodTypes", GetMethodTypes(service)))
	r.Method("GET", "/currencies", middleware.InstrumentHandler("GetCurrencyCodes", GetCurrencyCodes(service)))
	r.Method("GET", "/correlation/{correlationId}", middleware.InstrumentHandler("GetPaymentByCorrelationID", GetPaymentByCorrelationID(service)))
	r.Method("GET", "/history", middleware.InstrumentHandler("GetHistoryByNewStatus", GetHistoryByNewStatus(service)))
	r.Method("GET", "/{paymentId}", middleware.InstrumentHandler("GetPayment", GetPayment(service)))
	r.Method("PATCH", "/{paymentId}/status", middleware.InstrumentHandler("UpdatePaymentStatus", UpdatePaymentStatus(service)))
	r.Method("DELETE", "/{paymentId}", middleware.InstrumentHandler("DeletePayment", DeletePayment(service)))
	r.Method("GET", "/{paymentId}/history", middleware.InstrumentHandler("GetStatusHistory", GetStatusHistory(service)))
	return r
}

// OrdersRouter exposes payment lookups nested under an order
func OrdersRouter(service *Service) chi.Router {
	r := chi.NewRouter()
	r.Method("GET", "/{orderId}/payments", middleware.InstrumentHandler("GetPaymentsByOrderID", GetPaymentsByOrderID(service)))
	return r
}

// appErrorFromService maps service and datastore errors onto JSON error responses
func appErrorFromService(err error, msg string) *handlers.AppError {
	switch {
	case errors.Is(err, errorutils.ErrNotFound):
		return &handlers.AppError{
			Cause:     err,
			Message:   "payment not found",
			ErrorCode: "not_found",
			Code:      http.StatusNotFound,
		}
	case errors.Is(err, errorutils.ErrConcurrencyConflict):
		return &handlers.AppError{
			Cause:     err,
			Message:   "payment was modified concurrently, refetch and retry",
			ErrorCode: "concurrency_conflict",
			Code:      http.StatusConflict,
			Data:      bundleData(err),
		}
	case errors.Is(err, errorutils.ErrInvalidTransition):
		return &handlers.AppError{
			Cause:     err,
			Message:   err.Error(),
			ErrorCode: "invalid_transition",
			Code:      http.StatusConflict,
			Data:      bundleData(err),
		}
	case errors.Is(err, errorutils.ErrPaymentNotTerminal):
		return &handlers.AppError{
			Cause:     err,
			Message:   err.Error(),
			ErrorCode: "payment_not_terminal",
			Code:      http.StatusConflict,
			Data:      bundleData(err),
		}
	case errors.Is(err, errorutils.ErrPaymentMethodInactive),
		errors.Is(err, errorutils.ErrInvalidAmount),
		errors.Is(err, errorutils.ErrBadRequest):
		return &handlers.AppError{
			Cause:     err,
			Message:   err.Error(),
			ErrorCode: "bad_request",
			Code:      http.StatusBadRequest,
			Data:      bundleData(err),
		}
	}
	return handlers.WrapError(err, msg, http.StatusInternalServerError)
}

func bundleData(err error) interface{} {
	var bundle *errorutils.ErrorBundle
	if errors.As(err, &bundle) {
		return bundle.Data()
	}
	return nil
}

func paymentIDParam(r *http.Request) (uuid.UUID, *handlers.AppError) {
	raw := chi.URLParam(r, "paymentId")
	if raw == "" || !govalidator.IsUUIDv4(raw) {
		return uuid.Nil, handlers.ValidationError("request url parameter", map[string]string{
			"paymentId": "paymentId must be a uuidv4",
		})
	}
	id, err := uuid.FromString(raw)
	if err != nil {
		panic(err) // Should not be possible
	}
	return id, nil
}

// CreatePayment is the handler for creating a payment
func CreatePayment(service *Service) handlers.AppHandler {
	return handlers.AppHandler(func(w http.ResponseWriter, r *http.Request) *handlers.AppError {
		var req CreateRequest
		err := requestutils.ReadJSON(r.Context(), r.Body, &req)
		if err != nil {
			return handlers.WrapError(err, "Error in request body", http.StatusBadRequest)
		}

		_, err = govalidator.ValidateStruct(req)
		if err != nil {
			return handlers.WrapValidationError(err)
		}
		if !req.Amount.IsPositive() {
			return handlers.ValidationError("request body", map[string]string{
				"amount": "amount must be greater than 0",
			})
		}

		payment, err := service.CreatePayment(r.Context(), &req)
		if err != nil {
			return appErrorFromService(err, "Error creating payment")
		}

		return handlers.RenderContent(r.Context(), payment, w, http.StatusCreated)
	})
}

// GetPayment is the handler for fetching one payment by id
func GetPayment(service *Service) handlers.AppHandler {
	return handlers.AppHandler(func(w http.ResponseWriter, r *http.Request) *handlers.AppError {
		paymentID, appErr := paymentIDParam(r)
		if appErr != nil {
			return appErr
		}

		payment, err := service.GetPayment(r.Context(), paymentID)
		if err != nil {
			return appErrorFromService(err, "Error getting payment")
		}

		return handlers.RenderContent(r.Context(), payment, w, http.StatusOK)
	})
}

// GetPaymentByCorrelationID is the handler for fetching one payment by correlation id
func GetPaymentByCorrelationID(service *Service) handlers.AppHandler {
	return handlers.AppHandler(func(w http.ResponseWriter, r *http.Request) *handlers.AppError {
		correlationID := chi.URLParam(r, "correlationId")
		if correlationID == "" {
			return handlers.ValidationError("request url parameter", map[string]string{
				"correlationId": "correlationId must not be empty",
			})
		}

		payment, err := service.GetPaymentByCorrelationID(r.Context(), correlationID)
		if err != nil {
			return appErrorFromService(err, "Error getting payment")
		}

		return handlers.RenderContent(r.Context(), payment, w, http.StatusOK)
	})
}

// GetPaymentsByOrderID is the handler for listing the payments made against an order
func GetPaymentsByOrderID(service *Service) handlers.AppHandler {
	return handlers.AppHandler(func(w http.ResponseWriter, r *http.Request) *handlers.AppError {
		raw := chi.URLParam(r, "orderId")
		if raw == "" || !govalidator.IsUUIDv4(raw) {
			return handlers.ValidationError("request url parameter", map[string]string{
				"orderId": "orderId must be a uuidv4",
			})
		}
		orderID, err := uuid.FromString(raw)
		if err != nil {
			panic(err) // Should not be possible
		}

		payments, err := service.GetPaymentsByOrderID(r.Context(), orderID)
		if err != nil {
			return appErrorFromService(err, "Error getting payments for order")
		}

		return handlers.RenderContent(r.Context(), payments, w, http.StatusOK)
	})
}

// ListPayments is the handler for listing payments with pagination and
// optional status and creation date filters
func ListPayments(service *Service) handlers.AppHandler {
	return handlers.AppHandler(func(w http.ResponseWriter, r *http.Request) *handlers.AppError {
		var (
			q   = r.URL.Query()
			ctx = r.Context()
		)

		if rawStatus := q.Get("status"); rawStatus != "" {
			status, err := ParseStatus(rawStatus)
			if err != nil {
				return handlers.ValidationError("request query parameter", map[string]string{
					"status": err.Error(),
				})
			}
			payments, err := service.GetPaymentsByStatus(ctx, status)
			if err != nil {
				return appErrorFromService(err, "Error getting payments by status")
			}
			return handlers.RenderContent(ctx, payments, w, http.StatusOK)
		}

		if q.Get("from") != "" || q.Get("to") != "" {
			from, err := time.Parse(time.RFC3339, q.Get("from"))
			if err != nil {
				return handlers.ValidationError("request query parameter", map[string]string{
					"from": "from must be an RFC3339 timestamp",
				})
			}
			to, err := time.Parse(time.RFC3339, q.Get("to"))
			if err != nil {
				return handlers.ValidationError("request query parameter", map[string]string{
					"to": "to must be an RFC3339 timestamp",
				})
			}
			payments, err := service.GetPaymentsByDateRange(ctx, from, to)
			if err != nil {
				return appErrorFromService(err, "Error getting payments by date range")
			}
			return handlers.RenderContent(ctx, payments, w, http.StatusOK)
		}

		// pagination only allows ordering on attributes of the payment model
		ctx, pagination, err := inputs.NewPagination(ctx, r.URL.String(), new(Payment))
		if err != nil {
			return handlers.WrapError(err, "Error parsing pagination parameters", http.StatusBadRequest)
		}

		payments, err := service.ListPayments(ctx, pagination)
		if err != nil {
			return appErrorFromService(err, "Error listing payments")
		}

		return handlers.RenderContent(ctx, payments, w, http.StatusOK)
	})
}

// UpdatePaymentStatus is the handler for transitioning a payment to a new status
func UpdatePaymentStatus(service *Service) handlers.AppHandler {
	return handlers.AppHandler(func(w http.ResponseWriter, r *http.Request) *handlers.AppError {
		paymentID, appErr := paymentIDParam(r)
		if appErr != nil {
			return appErr
		}

		var req UpdateStatusRequest
		err := requestutils.ReadJSON(r.Context(), r.Body, &req)
		if err != nil {
			return handlers.WrapError(err, "Error in request body", http.StatusBadRequest)
		}

		_, err = govalidator.ValidateStruct(req)
		if err != nil {
			return handlers.WrapValidationError(err)
		}
		if req.ExpectedVersion < 1 {
			return handlers.ValidationError("request body", map[string]string{
				"expectedVersion": "expectedVersion must be greater than or equal to 1",
			})
		}

		payment, err := service.UpdateStatus(r.Context(), paymentID, &req)
		if err != nil {
			return appErrorFromService(err, "Error updating payment status")
		}

		return handlers.RenderContent(r.Context(), payment, w, http.StatusOK)
	})
}

// DeleteRequest is the payload for soft deleting a payment
type DeleteRequest struct {
	ExpectedVersion int    `json:"expectedVersion" valid:"-"`
	DeletedBy       string `json:"deletedBy" valid:"-"`
}

// DeletePayment is the handler for soft deleting a terminal payment
func DeletePayment(service *Service) handlers.AppHandler {
	return handlers.AppHandler(func(w http.ResponseWriter, r *http.Request) *handlers.AppError {
		paymentID, appErr := paymentIDParam(r)
		if appErr != nil {
			return appErr
		}

		var req DeleteRequest
		err := requestutils.ReadJSON(r.Context(), r.Body, &req)
		if err != nil {
			return handlers.WrapError(err, "Error in request body", http.StatusBadRequest)
		}

		err = service.SoftDeletePayment(r.Context(), paymentID, req.ExpectedVersion, req.DeletedBy)
		if err != nil {
			return appErrorFromService(err, "Error deleting payment")
		}

		w.WriteHeader(http.StatusNoContent)
		return nil
	})
}

// GetHistoryByNewStatus is the handler for listing transitions into a given
// status across all payments, paginated
func GetHistoryByNewStatus(service *Service) handlers.AppHandler {
	return handlers.AppHandler(func(w http.ResponseWriter, r *http.Request) *handlers.AppError {
		status, err := ParseStatus(r.URL.Query().Get("status"))
		if err != nil {
			return handlers.ValidationError("request query parameter", map[string]string{
				"status": err.Error(),
			})
		}

		// pagination only allows ordering on attributes of the history model
		ctx, pagination, err := inputs.NewPagination(r.Context(), r.URL.String(), new(StatusHistory))
		if err != nil {
			return handlers.WrapError(err, "Error parsing pagination parameters", http.StatusBadRequest)
		}

		history, err := service.GetHistoryByNewStatus(ctx, status, pagination)
		if err != nil {
			return appErrorFromService(err, "Error getting history by status")
		}

		return handlers.RenderContent(ctx, history, w, http.StatusOK)
	})
}

// GetStatusHistory is the handler for fetching the status change history of a payment
func GetStatusHistory(service *Service) handlers.AppHandler {
	return handlers.AppHandler(func(w http.ResponseWriter, r *http.Request) *handlers.AppError {
		paymentID, appErr := paymentIDParam(r)
		if appErr != nil {
			return appErr
		}

		history, err := service.GetStatusHistory(r.Context(), paymentID)
		if err != nil {
			return appErrorFromService(err, "Error getting payment history")
		}

		return handlers.RenderContent(r.Context(), history, w, http.StatusOK)
	})
}

// GetPaymentStatuses is the handler for the status catalog
func GetPaymentStatuses(service *Service) handlers.AppHandler {
	return handlers.AppHandler(func(w http.ResponseWriter, r *http.Request) *handlers.AppError {
		statuses, err := service.GetPaymentStatuses(r.Context())
		if err != nil {
			return appErrorFromService(err, "Error getting payment statuses")
		}
		return handlers.RenderContent(r.Context(), statuses, w, http.StatusOK)
	})
}

// GetMethodTypes is the handler for the payment method type catalog
func GetMethodTypes(service *Service) handlers.AppHandler {
	return handlers.AppHandler(func(w http.ResponseWriter, r *http.Request) *handlers.AppError {
		methods, err := service.GetMethodTypes(r.Context())
		if err != nil {
			return appErrorFromService(err, "Error getting payment method types")
		}
		return handlers.RenderContent(r.Context(), methods, w, http.StatusOK)
	})
}

// GetCurrencyCodes is the handler for the currency catalog
func GetCurrencyCodes(service *Service) handlers.AppHandler {
	return handlers.AppHandler(func(w http.ResponseWriter, r *http.Request) *handlers.AppError {
		currencies, err := service.GetCurrencyCodes(r.Context())
		if err != nil {
			return appErrorFromService(err, "Error getting currency codes")
		}
		return handlers.RenderContent(r.Context(), currencies, w, http.StatusOK)
	})
}
