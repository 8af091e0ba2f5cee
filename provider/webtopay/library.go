package webtopay

//go:generate mockgen -source library.go -destination mock_library.go -package webtopay

import (
	"context"
	"fmt"
)

// Version is the protocol version sent with every payment request
const Version = "1.6"

// Library is the call surface of the WebToPay library
type Library interface {
	// GetPaymentMethodList returns the method tree available for the project, amount and currency
	GetPaymentMethodList(ctx context.Context, projectID, amount int, currency string) (*MethodList, error)

	// RequestBuilder returns a builder signing requests for the project
	RequestBuilder(projectID int, password string) (RequestBuilder, error)

	// URLBuilder returns the builder of payment page URLs
	URLBuilder() (URLBuilder, error)

	// ValidateAndParseData verifies the callback signature and returns the decoded fields
	ValidateAndParseData(ctx context.Context, query map[string]string, projectID int, password string) (map[string]string, error)
}

// RequestBuilder turns payment parameters into a signed request (data, sign)
type RequestBuilder interface {
	BuildRequest(ctx context.Context, params map[string]string) (map[string]string, error)
}

// URLBuilder builds the payment page URL for a signed request
type URLBuilder interface {
	BuildForRequest(ctx context.Context, request map[string]string) (string, error)
}

// MethodList is the payment method tree of a project
type MethodList struct {
	ProjectID       int             `json:"projectId"`
	Currency        string          `json:"currency"`
	DefaultLanguage string          `json:"defaultLanguage"`
	Countries       []MethodCountry `json:"countries"`
}

// MethodCountry is one country of a MethodList
type MethodCountry struct {
	Code            string            `json:"code"`
	Titles          map[string]string `json:"titles"`
	DefaultLanguage string            `json:"defaultLanguage"`
	Groups          []MethodGroup     `json:"groups"`
}

// MethodGroup is one group of a MethodCountry
type MethodGroup struct {
	Key             string            `json:"key"`
	Titles          map[string]string `json:"titles"`
	DefaultLanguage string            `json:"defaultLanguage"`
	Methods         []Method          `json:"methods"`
}

// Method is a single payment method
type Method struct {
	Key          string            `json:"key"`
	MinAmount    *int              `json:"minAmount,omitempty"`
	MaxAmount    *int              `json:"maxAmount,omitempty"`
	Currency     string            `json:"currency,omitempty"`
	BaseCurrency string            `json:"baseCurrency,omitempty"`
	IsIban       bool              `json:"isIban"`
	Titles       map[string]string `json:"titles"`
	Logos        map[string]string `json:"logoUrls,omitempty"`
}

// LibraryError is an error raised inside the library. It remembers where it was raised.
type LibraryError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	File    string `json:"file"`
	Line    int    `json:"line"`
}

func (e *LibraryError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
	}
	return e.Message
}

// Location reports the file and line the library raised the error at
func (e *LibraryError) Location() (string, int) {
	return e.File, e.Line
}
