package webtopay

import (
	"strconv"

	"github.com/mstgnz/checkout/provider"
)

// PaymentRedirectRequestNormalizer maps a redirect request to the library request parameters
type PaymentRedirectRequestNormalizer struct{}

// Normalize returns the parameters BuildRequest expects. Empty optional values are left out.
func (PaymentRedirectRequestNormalizer) Normalize(request provider.PaymentRedirectRequest) map[string]string {
	order := request.Order
	if order == nil {
		order = &provider.Order{}
	}

	params := map[string]string{
		"orderid":       strconv.Itoa(order.OrderID),
		"amount":        strconv.Itoa(order.Amount),
		"currency":      order.Currency,
		"accepturl":     request.AcceptURL,
		"cancelurl":     request.CancelURL,
		"callbackurl":   request.CallbackURL,
		"version":       Version,
		"test":          boolFlag(request.Test),
		"buyer_consent": boolFlag(request.BuyerConsent),
	}

	optional := map[string]string{
		"payment":       request.Payment,
		"p_firstname":   order.PayerFirstName,
		"p_lastname":    order.PayerLastName,
		"p_email":       order.PayerEmail,
		"p_street":      order.PayerStreet,
		"p_city":        order.PayerCity,
		"p_state":       order.PayerState,
		"p_zip":         order.PayerZip,
		"p_countrycode": order.PayerCountryCode,
		"lang":          request.Language,
		"country":       request.Country,
		"paytext":       request.PaymentText,
		"time_limit":    request.TimeLimit,
		"personcode":    request.PersonCode,
	}
	for key, value := range optional {
		if value != "" {
			params[key] = value
		}
	}

	return params
}

// PaymentCallbackValidationRequestNormalizer maps a callback request to the query the library validates
type PaymentCallbackValidationRequestNormalizer struct{}

func (PaymentCallbackValidationRequestNormalizer) Normalize(request provider.PaymentCallbackValidationRequest) map[string]string {
	query := map[string]string{"data": request.Data}
	if request.SS1 != "" {
		query["ss1"] = request.SS1
	}
	if request.SS2 != "" {
		query["ss2"] = request.SS2
	}
	if request.SS3 != "" {
		query["ss3"] = request.SS3
	}
	return query
}

// PaymentValidationResponseNormalizer maps the fields parsed from a callback back into a response
type PaymentValidationResponseNormalizer struct{}

// Denormalize builds the callback response. Numeric fields that do not parse
// fail with *provider.InvalidTypeError, absent ones stay zero.
func (PaymentValidationResponseNormalizer) Denormalize(data map[string]string) (*provider.PaymentCallbackValidationResponse, error) {
	p := fieldParser{data: data}

	projectID := p.int("projectid")
	orderID := p.int("orderid")
	amount := p.int("amount")
	status := p.int("status")
	payAmount := p.int("payamount")
	if p.err != nil {
		return nil, p.err
	}

	order := provider.NewOrder(orderID, amount, data["currency"]).
		WithPayerFirstName(data["p_firstname"]).
		WithPayerLastName(data["p_lastname"]).
		WithPayerEmail(data["p_email"]).
		WithPayerStreet(data["p_street"]).
		WithPayerCity(data["p_city"]).
		WithPayerState(data["p_state"]).
		WithPayerZip(data["p_zip"]).
		WithPayerCountryCode(data["p_countrycode"])

	return &provider.PaymentCallbackValidationResponse{
		ProjectID:           projectID,
		Order:               order,
		Status:              provider.PaymentStatus(status),
		Language:            data["lang"],
		Payment:             data["payment"],
		Country:             data["country"],
		PaymentText:         data["paytext"],
		OriginalPaymentText: data["original_paytext"],
		Name:                data["name"],
		Surname:             data["surename"],
		RequestID:           data["requestid"],
		Account:             data["account"],
		Type:                data["type"],
		Version:             data["version"],
		PaymentAmount:       payAmount,
		PaymentCurrency:     data["paycurrency"],
		Test:                data["test"] == "1" || data["test"] == "true",
	}, nil
}

// fieldParser keeps the first conversion error
type fieldParser struct {
	data map[string]string
	err  error
}

func (p *fieldParser) int(key string) int {
	raw, ok := p.data[key]
	if !ok || raw == "" || p.err != nil {
		return 0
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		p.err = &provider.InvalidTypeError{Field: key, Expected: "integer", Value: raw}
		return 0
	}
	return v
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
