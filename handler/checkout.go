package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mstgnz/checkout/infra/config"
	"github.com/mstgnz/checkout/infra/logger"
	"github.com/mstgnz/checkout/infra/response"
	"github.com/mstgnz/checkout/provider"
)

// CheckoutServiceInterface defines the checkout operations the handlers need
type CheckoutServiceInterface interface {
	GetPaymentMethods(ctx context.Context, request provider.PaymentMethodsRequest) (provider.PaymentMethodCountries, error)
	GetPaymentRedirect(ctx context.Context, request provider.PaymentRedirectRequest) (*provider.PaymentRedirectResponse, error)
	GetPaymentCallbackValidatedData(ctx context.Context, request provider.PaymentCallbackValidationRequest) (*provider.PaymentCallbackValidationResponse, error)
	IsMerchantOrderPaid(callback *provider.PaymentCallbackValidationResponse, order *provider.Order) bool
}

// ProjectResolver looks up merchant projects by name
type ProjectResolver interface {
	GetProject(ctx context.Context, name string) (*config.Project, error)
}

// CheckoutHandler handles checkout related HTTP requests
type CheckoutHandler struct {
	service   CheckoutServiceInterface
	projects  ProjectResolver
	validate  *validator.Validate
	publicURL string
	timeout   time.Duration
}

// NewCheckoutHandler creates a new checkout handler. publicURL is used to build
// the default callback address of redirect requests.
func NewCheckoutHandler(service CheckoutServiceInterface, projects ProjectResolver, validate *validator.Validate, publicURL string) *CheckoutHandler {
	return &CheckoutHandler{
		service:   service,
		projects:  projects,
		validate:  validate,
		publicURL: strings.TrimRight(publicURL, "/"),
		timeout:   30 * time.Second,
	}
}

// RedirectRequest is the body of a redirect request. Credentials come from the project.
type RedirectRequest struct {
	AcceptURL    string          `json:"acceptUrl" validate:"required,http_url"`
	CancelURL    string          `json:"cancelUrl" validate:"required,http_url"`
	CallbackURL  string          `json:"callbackUrl,omitempty" validate:"omitempty,http_url"`
	Order        *provider.Order `json:"order" validate:"required"`
	Language     string          `json:"language,omitempty" validate:"omitempty,language"`
	Payment      string          `json:"payment,omitempty"`
	Country      string          `json:"country,omitempty"`
	PaymentText  string          `json:"paymentText,omitempty"`
	TimeLimit    string          `json:"timeLimit,omitempty"`
	PersonCode   string          `json:"personCode,omitempty"`
	Test         bool            `json:"test,omitempty"`
	BuyerConsent bool            `json:"buyerConsent,omitempty"`
}

// CallbackData holds the parameters the provider attaches to a callback
type CallbackData struct {
	Data string `json:"data" validate:"required"`
	SS1  string `json:"ss1,omitempty"`
	SS2  string `json:"ss2,omitempty"`
	SS3  string `json:"ss3,omitempty"`
}

// OrderPaidRequest asks whether a callback confirms payment of a merchant order
type OrderPaidRequest struct {
	Callback CallbackData    `json:"callback"`
	Order    *provider.Order `json:"order" validate:"required"`
}

// GetPaymentMethods lists the payment methods available to a project
func (h *CheckoutHandler) GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	project, ok := h.resolveProject(ctx, w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	amount := 0
	if raw := query.Get("amount"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid amount", err)
			return
		}
		amount = parsed
	}

	request := provider.NewPaymentMethodsRequest(project.ProjectID, amount, strings.ToUpper(query.Get("currency")))
	request.Language = query.Get("lang")
	request.SelectedCountries = splitList(query.Get("countries"))

	countries, err := h.service.GetPaymentMethods(ctx, request)
	if err != nil {
		writeServiceError(w, "Failed to get payment methods", err)
		return
	}

	response.Success(w, http.StatusOK, "Payment methods retrieved", map[string]any{
		"project":   project.Name,
		"count":     len(countries),
		"countries": countries,
	})
}

// CreateRedirect builds the address the payer has to be sent to
func (h *CheckoutHandler) CreateRedirect(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	project, ok := h.resolveProject(ctx, w, r)
	if !ok {
		return
	}

	var req RedirectRequest
	if !h.decode(w, r, &req) {
		return
	}

	callbackURL := req.CallbackURL
	if callbackURL == "" {
		callbackURL = h.publicURL + "/callback/" + project.Name
	}

	request := provider.NewPaymentRedirectRequest(project.ProjectID, project.Password, req.AcceptURL, req.CancelURL, callbackURL, req.Order)
	request.Language = req.Language
	request.Payment = req.Payment
	request.Country = req.Country
	request.PaymentText = req.PaymentText
	request.TimeLimit = req.TimeLimit
	request.PersonCode = req.PersonCode
	request.Test = req.Test
	request.BuyerConsent = req.BuyerConsent

	resp, err := h.service.GetPaymentRedirect(ctx, *request)
	if err != nil {
		writeServiceError(w, "Failed to build payment redirect", err)
		return
	}

	response.Success(w, http.StatusOK, "Payment redirect created", resp)
}

// ValidateCallback verifies callback parameters and returns the parsed payment
func (h *CheckoutHandler) ValidateCallback(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	project, ok := h.resolveProject(ctx, w, r)
	if !ok {
		return
	}

	var req CallbackData
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.GetPaymentCallbackValidatedData(ctx, callbackRequest(project, req))
	if err != nil {
		writeServiceError(w, "Callback validation failed", err)
		return
	}

	response.Success(w, http.StatusOK, "Callback validated", resp)
}

// CheckOrderPaid validates a callback and compares it with the merchant order
func (h *CheckoutHandler) CheckOrderPaid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	project, ok := h.resolveProject(ctx, w, r)
	if !ok {
		return
	}

	var req OrderPaidRequest
	if !h.decode(w, r, &req) {
		return
	}

	callback, err := h.service.GetPaymentCallbackValidatedData(ctx, callbackRequest(project, req.Callback))
	if err != nil {
		writeServiceError(w, "Callback validation failed", err)
		return
	}

	response.Success(w, http.StatusOK, "Order payment checked", map[string]any{
		"paid":     h.service.IsMerchantOrderPaid(callback, req.Order),
		"status":   callback.Status.String(),
		"callback": callback,
	})
}

// HandleCallback receives the provider's server to server notification.
// The provider expects a plain "OK" body once the callback is accepted.
func (h *CheckoutHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	project, err := h.projects.GetProject(ctx, chi.URLParam(r, "project"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, config.ErrProjectNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, "unknown project", status)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid callback parameters", http.StatusBadRequest)
		return
	}

	data := CallbackData{
		Data: r.Form.Get("data"),
		SS1:  r.Form.Get("ss1"),
		SS2:  r.Form.Get("ss2"),
		SS3:  r.Form.Get("ss3"),
	}
	if data.Data == "" {
		http.Error(w, "missing data parameter", http.StatusBadRequest)
		return
	}

	callback, err := h.service.GetPaymentCallbackValidatedData(ctx, callbackRequest(project, data))
	if err != nil {
		logger.Warn("Rejected payment callback", logger.LogContext{
			ProjectID: project.Name,
			RequestID: provider.RequestIDFromContext(ctx),
			Fields:    map[string]any{"error": err.Error()},
		})
		http.Error(w, "callback validation failed", http.StatusBadRequest)
		return
	}

	fields := map[string]any{
		"status": callback.Status.String(),
		"test":   callback.Test,
	}
	if callback.Order != nil {
		fields["order_id"] = callback.Order.OrderID
		fields["amount"] = callback.Order.Amount
		fields["currency"] = callback.Order.Currency
	}
	logger.Info("Payment callback accepted", logger.LogContext{
		ProjectID: project.Name,
		RequestID: provider.RequestIDFromContext(ctx),
		Fields:    fields,
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *CheckoutHandler) resolveProject(ctx context.Context, w http.ResponseWriter, r *http.Request) (*config.Project, bool) {
	name := chi.URLParam(r, "project")
	if name == "" {
		response.Error(w, http.StatusBadRequest, "Project parameter is required", nil)
		return nil, false
	}

	project, err := h.projects.GetProject(ctx, name)
	if err != nil {
		if errors.Is(err, config.ErrProjectNotFound) {
			response.Error(w, http.StatusNotFound, "Project not found", err)
			return nil, false
		}
		response.Error(w, http.StatusInternalServerError, "Failed to load project", err)
		return nil, false
	}
	return project, true
}

func (h *CheckoutHandler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := h.validate.Struct(target); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation error", err)
		return false
	}
	return true
}

func callbackRequest(project *config.Project, data CallbackData) provider.PaymentCallbackValidationRequest {
	request := provider.NewPaymentCallbackValidationRequest(project.ProjectID, project.Password, data.Data)
	request.SS1 = data.SS1
	request.SS2 = data.SS2
	request.SS3 = data.SS3
	return *request
}

// writeServiceError maps checkout errors to HTTP answers
func writeServiceError(w http.ResponseWriter, message string, err error) {
	var verrs provider.ValidationErrors
	var perr *provider.ProviderError

	switch {
	case errors.As(err, &verrs):
		response.ErrorWithCode(w, http.StatusBadRequest, message, string(provider.ErrCodeValidation), err, verrs)
	case errors.As(err, &perr):
		response.ErrorWithCode(w, http.StatusBadGateway, message, string(perr.Code()), err, nil)
	case errors.Is(err, context.DeadlineExceeded):
		response.Error(w, http.StatusGatewayTimeout, message, err)
	default:
		if code, ok := provider.ErrorCodeOf(err); ok {
			response.ErrorWithCode(w, http.StatusBadGateway, message, string(code), err, nil)
			return
		}
		response.Error(w, http.StatusInternalServerError, message, err)
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
