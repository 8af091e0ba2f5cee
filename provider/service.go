package provider

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mstgnz/checkout/infra/logger"
	"github.com/mstgnz/checkout/infra/metrics"
	"github.com/mstgnz/checkout/infra/validate"
)

// CheckoutService runs requests through a Provider, adding validation,
// caching of method lists, call records and metrics
type CheckoutService struct {
	provider     Provider
	providerName string
	callLogger   CallLogger
	cache        MethodsCache
	validate     *validator.Validate
}

// ServiceOption configures a CheckoutService
type ServiceOption func(*CheckoutService)

// WithCallLogger sets where call records are written
func WithCallLogger(l CallLogger) ServiceOption {
	return func(s *CheckoutService) {
		if l != nil {
			s.callLogger = l
		}
	}
}

// WithMethodsCache enables caching of payment method lists
func WithMethodsCache(c MethodsCache) ServiceOption {
	return func(s *CheckoutService) { s.cache = c }
}

// WithValidator replaces the request validator
func WithValidator(v *validator.Validate) ServiceOption {
	return func(s *CheckoutService) {
		if v != nil {
			s.validate = v
		}
	}
}

// WithProviderName sets the name used in call records and metrics
func WithProviderName(name string) ServiceOption {
	return func(s *CheckoutService) { s.providerName = name }
}

// NewCheckoutService creates a service around p
func NewCheckoutService(p Provider, opts ...ServiceOption) *CheckoutService {
	v := validator.New(validator.WithRequiredStructEnabled())
	validate.CustomValidate(v)

	s := &CheckoutService{
		provider:     p,
		providerName: "webtopay",
		callLogger:   NopCallLogger{},
		validate:     v,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProviderName returns the name the service records calls under
func (s *CheckoutService) ProviderName() string {
	return s.providerName
}

// CacheStats returns the methods cache statistics, false without a cache
func (s *CheckoutService) CacheStats() (CacheStats, bool) {
	if s.cache == nil {
		return CacheStats{}, false
	}
	return s.cache.Stats(), true
}

// GetPaymentMethods returns the methods of a project, limited to the selected countries
func (s *CheckoutService) GetPaymentMethods(ctx context.Context, request PaymentMethodsRequest) (PaymentMethodCountries, error) {
	if err := s.validate.StructCtx(ctx, request); err != nil {
		return nil, fromValidator(err)
	}
	if request.Language == "" {
		request.Language = DefaultLanguage
	}

	if s.cache != nil {
		if countries := s.cache.Get(request); countries != nil {
			metrics.ObserveCacheLookup(true)
			return countries.Filter(request.SelectedCountries), nil
		}
		metrics.ObserveCacheLookup(false)
	}

	start := time.Now()
	countries, err := s.provider.GetPaymentMethods(ctx, request)
	s.record(ctx, start, CallRecord{
		Operation: OperationPaymentMethods,
		ProjectID: request.ProjectID,
		Request:   SanitizeForLog(request),
		Response:  map[string]any{"countries": countries.Codes()},
	}, err)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(request, countries)
	}

	return countries.Filter(request.SelectedCountries), nil
}

// GetPaymentRedirect returns where the payer has to be sent for the order
func (s *CheckoutService) GetPaymentRedirect(ctx context.Context, request PaymentRedirectRequest) (*PaymentRedirectResponse, error) {
	if err := s.validate.StructCtx(ctx, request); err != nil {
		return nil, fromValidator(err)
	}

	start := time.Now()
	response, err := s.provider.GetPaymentRedirect(ctx, request)
	record := CallRecord{
		Operation: OperationPaymentRedirect,
		ProjectID: request.ProjectID,
		OrderID:   request.Order.OrderID,
		Request:   SanitizeForLog(request),
	}
	if response != nil {
		record.Response = map[string]any{"redirectUrl": response.RedirectURL}
	}
	s.record(ctx, start, record, err)

	return response, err
}

// GetPaymentCallbackValidatedData verifies and parses callback parameters
func (s *CheckoutService) GetPaymentCallbackValidatedData(ctx context.Context, request PaymentCallbackValidationRequest) (*PaymentCallbackValidationResponse, error) {
	if err := s.validate.StructCtx(ctx, request); err != nil {
		return nil, fromValidator(err)
	}

	start := time.Now()
	response, err := s.provider.GetPaymentCallbackValidatedData(ctx, request)
	record := CallRecord{
		Operation: OperationCallbackValidation,
		ProjectID: request.ProjectID,
		Request:   SanitizeForLog(request),
	}
	if response != nil {
		if response.Order != nil {
			record.OrderID = response.Order.OrderID
		}
		record.Response = map[string]any{
			"status": response.Status.String(),
			"test":   response.Test,
		}
	}
	s.record(ctx, start, record, err)

	return response, err
}

// IsMerchantOrderPaid reports whether the callback confirms full payment of order.
// The callback may carry the amount in the order currency or in the currency the
// payer actually paid in, either one is accepted.
func (s *CheckoutService) IsMerchantOrderPaid(callback *PaymentCallbackValidationResponse, order *Order) bool {
	if callback == nil || order == nil || callback.Order == nil {
		return false
	}
	if callback.Status != StatusSuccess || callback.Order.OrderID != order.OrderID {
		return false
	}

	if callback.Order.Amount == order.Amount && callback.Order.Currency == order.Currency {
		return true
	}
	return callback.PaymentCurrency != "" &&
		callback.PaymentAmount == order.Amount &&
		callback.PaymentCurrency == order.Currency
}

func (s *CheckoutService) record(ctx context.Context, start time.Time, record CallRecord, err error) {
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		record.ErrorMessage = err.Error()
		if code, ok := ErrorCodeOf(err); ok {
			record.ErrorCode = string(code)
			outcome = string(code)
		}
		record.Response = nil
	}
	metrics.ObserveProviderCall(s.providerName, record.Operation, outcome, elapsed)

	record.Timestamp = start.UTC()
	record.Provider = s.providerName
	record.RequestID = RequestIDFromContext(ctx)
	record.ProcessingMs = elapsed.Milliseconds()

	if err != nil {
		var perr *ProviderError
		logCtx := logger.LogContext{
			Provider:  s.providerName,
			RequestID: record.RequestID,
			Fields:    map[string]any{"operation": record.Operation},
		}
		if errors.As(err, &perr) && perr.Unwrap() != nil {
			logCtx.Fields["cause"] = perr.Unwrap().Error()
		}
		logger.Error("Provider call failed", err, logCtx)
	}

	if logErr := s.callLogger.LogCall(ctx, record); logErr != nil {
		logger.Warn("Failed to log provider call", logger.LogContext{
			Provider:  s.providerName,
			RequestID: record.RequestID,
			Fields: map[string]any{
				"operation": record.Operation,
				"error":     logErr.Error(),
			},
		})
	}
}
