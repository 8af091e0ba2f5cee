package provider

import "strings"

// PaymentStatus is the payment state reported in a provider callback
type PaymentStatus int

const (
	StatusNotExecuted            PaymentStatus = 0
	StatusSuccess                PaymentStatus = 1
	StatusAccepted               PaymentStatus = 2
	StatusAdditionalInfo         PaymentStatus = 3
	StatusExecutedWithoutConfirm PaymentStatus = 4
)

// String returns a readable status name
func (s PaymentStatus) String() string {
	switch s {
	case StatusNotExecuted:
		return "not_executed"
	case StatusSuccess:
		return "success"
	case StatusAccepted:
		return "accepted"
	case StatusAdditionalInfo:
		return "additional_info"
	case StatusExecutedWithoutConfirm:
		return "executed_without_confirmation"
	default:
		return "unknown"
	}
}

// DefaultLanguage is used for method titles when the request names none
const DefaultLanguage = "lt"

// Order is the merchant order being paid. Amount is in minor units.
type Order struct {
	OrderID          int    `json:"orderId" validate:"required,gt=0"`
	Amount           int    `json:"amount" validate:"required,gt=0"`
	Currency         string `json:"currency" validate:"required,currency"`
	PayerFirstName   string `json:"payerFirstName,omitempty"`
	PayerLastName    string `json:"payerLastName,omitempty"`
	PayerEmail       string `json:"payerEmail,omitempty" validate:"omitempty,email"`
	PayerStreet      string `json:"payerStreet,omitempty"`
	PayerCity        string `json:"payerCity,omitempty"`
	PayerState       string `json:"payerState,omitempty"`
	PayerZip         string `json:"payerZip,omitempty"`
	PayerCountryCode string `json:"payerCountryCode,omitempty" validate:"omitempty,len=2"`
}

// NewOrder creates an order with the required fields set
func NewOrder(orderID, amount int, currency string) *Order {
	return &Order{
		OrderID:  orderID,
		Amount:   amount,
		Currency: currency,
	}
}

func (o *Order) WithPayerFirstName(v string) *Order   { o.PayerFirstName = v; return o }
func (o *Order) WithPayerLastName(v string) *Order    { o.PayerLastName = v; return o }
func (o *Order) WithPayerEmail(v string) *Order       { o.PayerEmail = v; return o }
func (o *Order) WithPayerStreet(v string) *Order      { o.PayerStreet = v; return o }
func (o *Order) WithPayerCity(v string) *Order        { o.PayerCity = v; return o }
func (o *Order) WithPayerState(v string) *Order       { o.PayerState = v; return o }
func (o *Order) WithPayerZip(v string) *Order         { o.PayerZip = v; return o }
func (o *Order) WithPayerCountryCode(v string) *Order { o.PayerCountryCode = v; return o }

// PaymentMethodsRequest asks for the payment methods available to a project
type PaymentMethodsRequest struct {
	ProjectID         int      `json:"projectId" validate:"required,gt=0"`
	Amount            int      `json:"amount" validate:"gte=0"`
	Currency          string   `json:"currency" validate:"required,currency"`
	Language          string   `json:"language,omitempty" validate:"omitempty,language"`
	SelectedCountries []string `json:"selectedCountries,omitempty" validate:"dive,len=2"`
}

// NewPaymentMethodsRequest creates a request with the default language
func NewPaymentMethodsRequest(projectID, amount int, currency string) PaymentMethodsRequest {
	return PaymentMethodsRequest{
		ProjectID: projectID,
		Amount:    amount,
		Currency:  currency,
		Language:  DefaultLanguage,
	}
}

// PaymentRedirectRequest contains everything needed to send the payer to the provider
type PaymentRedirectRequest struct {
	ProjectID       int    `json:"projectId" validate:"required,gt=0"`
	ProjectPassword string `json:"projectPassword" validate:"required"`
	AcceptURL       string `json:"acceptUrl" validate:"required"`
	CancelURL       string `json:"cancelUrl" validate:"required"`
	CallbackURL     string `json:"callbackUrl" validate:"required"`
	Order           *Order `json:"order" validate:"required"`
	Language        string `json:"language,omitempty" validate:"omitempty,language"`
	Payment         string `json:"payment,omitempty"`
	Country         string `json:"country,omitempty" validate:"omitempty,len=2"`
	PaymentText     string `json:"paymentText,omitempty"`
	TimeLimit       string `json:"timeLimit,omitempty"`
	PersonCode      string `json:"personCode,omitempty"`
	Test            bool   `json:"test,omitempty"`
	BuyerConsent    bool   `json:"buyerConsent,omitempty"`
}

// NewPaymentRedirectRequest creates a redirect request with the required fields set
func NewPaymentRedirectRequest(projectID int, password, acceptURL, cancelURL, callbackURL string, order *Order) *PaymentRedirectRequest {
	return &PaymentRedirectRequest{
		ProjectID:       projectID,
		ProjectPassword: password,
		AcceptURL:       acceptURL,
		CancelURL:       cancelURL,
		CallbackURL:     callbackURL,
		Order:           order,
	}
}

// PaymentRedirectResponse is where the payer has to be sent
type PaymentRedirectResponse struct {
	RedirectURL string `json:"redirectUrl"`
	Data        string `json:"data"`
}

// PaymentCallbackValidationRequest carries the raw callback parameters
type PaymentCallbackValidationRequest struct {
	ProjectID       int    `json:"projectId" validate:"required,gt=0"`
	ProjectPassword string `json:"projectPassword" validate:"required"`
	Data            string `json:"data" validate:"required"`
	SS1             string `json:"ss1,omitempty"`
	SS2             string `json:"ss2,omitempty"`
	SS3             string `json:"ss3,omitempty"`
}

// NewPaymentCallbackValidationRequest creates a callback validation request
func NewPaymentCallbackValidationRequest(projectID int, password, data string) *PaymentCallbackValidationRequest {
	return &PaymentCallbackValidationRequest{
		ProjectID:       projectID,
		ProjectPassword: password,
		Data:            data,
	}
}

// PaymentCallbackValidationResponse is the verified callback content
type PaymentCallbackValidationResponse struct {
	ProjectID           int           `json:"projectId"`
	Order               *Order        `json:"order"`
	Status              PaymentStatus `json:"status"`
	Language            string        `json:"language,omitempty"`
	Payment             string        `json:"payment,omitempty"`
	Country             string        `json:"country,omitempty"`
	PaymentText         string        `json:"paymentText,omitempty"`
	OriginalPaymentText string        `json:"originalPaymentText,omitempty"`
	Name                string        `json:"name,omitempty"`
	Surname             string        `json:"surname,omitempty"`
	RequestID           string        `json:"requestId,omitempty"`
	Account             string        `json:"account,omitempty"`
	Type                string        `json:"type,omitempty"`
	Version             string        `json:"version,omitempty"`
	PaymentAmount       int           `json:"paymentAmount,omitempty"`
	PaymentCurrency     string        `json:"paymentCurrency,omitempty"`
	Test                bool          `json:"test"`
}

// Translations maps a language code to a text
type Translations map[string]string

// Get returns the text for lang, then for fallback, then any text at all
func (t Translations) Get(lang, fallback string) string {
	if v, ok := t[lang]; ok {
		return v
	}
	if v, ok := t[fallback]; ok {
		return v
	}
	for _, v := range t {
		return v
	}
	return ""
}

// PaymentMethod is a single way to pay
type PaymentMethod struct {
	Key          string       `json:"key"`
	MinAmount    *int         `json:"minAmount,omitempty"`
	MaxAmount    *int         `json:"maxAmount,omitempty"`
	Currency     string       `json:"currency,omitempty"`
	BaseCurrency string       `json:"baseCurrency,omitempty"`
	IsIban       bool         `json:"isIban"`
	Titles       Translations `json:"titles"`
	Logos        Translations `json:"logos,omitempty"`
}

// PaymentMethodGroup groups methods, e.g. banks or cards
type PaymentMethodGroup struct {
	Key     string          `json:"key"`
	Titles  Translations    `json:"titles"`
	Methods []PaymentMethod `json:"methods"`
}

// PaymentMethodCountry lists method groups available in one country
type PaymentMethodCountry struct {
	Code   string               `json:"code"`
	Titles Translations         `json:"titles"`
	Groups []PaymentMethodGroup `json:"groups"`
}

// PaymentMethodCountries is the collection returned for a methods request
type PaymentMethodCountries []PaymentMethodCountry

// Clone returns a deep copy that shares no slices or maps with c
func (c PaymentMethodCountries) Clone() PaymentMethodCountries {
	if c == nil {
		return nil
	}
	out := make(PaymentMethodCountries, len(c))
	for i, country := range c {
		out[i] = country.Clone()
	}
	return out
}

// Clone returns a deep copy of the country
func (c PaymentMethodCountry) Clone() PaymentMethodCountry {
	out := c
	out.Titles = c.Titles.Clone()
	if c.Groups != nil {
		out.Groups = make([]PaymentMethodGroup, len(c.Groups))
		for i, group := range c.Groups {
			out.Groups[i] = group.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the group
func (g PaymentMethodGroup) Clone() PaymentMethodGroup {
	out := g
	out.Titles = g.Titles.Clone()
	if g.Methods != nil {
		out.Methods = make([]PaymentMethod, len(g.Methods))
		for i, method := range g.Methods {
			out.Methods[i] = method.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the method
func (m PaymentMethod) Clone() PaymentMethod {
	out := m
	out.MinAmount = cloneInt(m.MinAmount)
	out.MaxAmount = cloneInt(m.MaxAmount)
	out.Titles = m.Titles.Clone()
	out.Logos = m.Logos.Clone()
	return out
}

// Clone returns a copy of the map
func (t Translations) Clone() Translations {
	if t == nil {
		return nil
	}
	out := make(Translations, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

// Filter keeps only the given country codes in a new collection. No codes
// keeps everything.
func (c PaymentMethodCountries) Filter(codes []string) PaymentMethodCountries {
	if len(codes) == 0 {
		return append(PaymentMethodCountries{}, c...)
	}

	wanted := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		wanted[strings.ToLower(code)] = struct{}{}
	}

	filtered := make(PaymentMethodCountries, 0, len(c))
	for _, country := range c {
		if _, ok := wanted[strings.ToLower(country.Code)]; ok {
			filtered = append(filtered, country)
		}
	}
	return filtered
}

// Get returns the country with the given code
func (c PaymentMethodCountries) Get(code string) (PaymentMethodCountry, bool) {
	for _, country := range c {
		if strings.EqualFold(country.Code, code) {
			return country, true
		}
	}
	return PaymentMethodCountry{}, false
}

// Codes returns the country codes in collection order
func (c PaymentMethodCountries) Codes() []string {
	codes := make([]string, 0, len(c))
	for _, country := range c {
		codes = append(codes, country.Code)
	}
	return codes
}
