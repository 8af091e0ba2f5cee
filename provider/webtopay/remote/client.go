// Package remote reaches the WebToPay library through an HTTP bridge that
// hosts it. The bridge does the signing and URL building, this package only
// moves the library calls over the wire.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mstgnz/checkout/provider"
	"github.com/mstgnz/checkout/provider/webtopay"
)

const (
	endpointPaymentMethods = "/payment-methods"
	endpointBuildRequest   = "/build-request"
	endpointBuildURL       = "/build-url"
	endpointValidate       = "/validate"
)

// Client implements webtopay.Library against a bridge
type Client struct {
	http *provider.ProviderHTTPClient
}

// NewClient creates a bridge client for baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: provider.NewProviderHTTPClient(provider.CreateHTTPClientConfig(baseURL, timeout)),
	}
}

type paymentMethodsPayload struct {
	ProjectID int    `json:"projectId"`
	Amount    int    `json:"amount"`
	Currency  string `json:"currency"`
}

type buildRequestPayload struct {
	ProjectID int               `json:"projectId"`
	Password  string            `json:"password"`
	Params    map[string]string `json:"params"`
}

type buildRequestResult struct {
	Request map[string]string `json:"request"`
}

type buildURLPayload struct {
	Request map[string]string `json:"request"`
}

type buildURLResult struct {
	URL string `json:"url"`
}

type validatePayload struct {
	Query     map[string]string `json:"query"`
	ProjectID int               `json:"projectId"`
	Password  string            `json:"password"`
}

type validateResult struct {
	Data map[string]string `json:"data"`
}

type errorEnvelope struct {
	Error *webtopay.LibraryError `json:"error"`
}

func (c *Client) GetPaymentMethodList(ctx context.Context, projectID, amount int, currency string) (*webtopay.MethodList, error) {
	var list webtopay.MethodList
	if err := c.call(ctx, endpointPaymentMethods, paymentMethodsPayload{
		ProjectID: projectID,
		Amount:    amount,
		Currency:  currency,
	}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) RequestBuilder(projectID int, password string) (webtopay.RequestBuilder, error) {
	return &requestBuilder{client: c, projectID: projectID, password: password}, nil
}

func (c *Client) URLBuilder() (webtopay.URLBuilder, error) {
	return &urlBuilder{client: c}, nil
}

func (c *Client) ValidateAndParseData(ctx context.Context, query map[string]string, projectID int, password string) (map[string]string, error) {
	var result validateResult
	if err := c.call(ctx, endpointValidate, validatePayload{
		Query:     query,
		ProjectID: projectID,
		Password:  password,
	}, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

type requestBuilder struct {
	client    *Client
	projectID int
	password  string
}

func (b *requestBuilder) BuildRequest(ctx context.Context, params map[string]string) (map[string]string, error) {
	var result buildRequestResult
	if err := b.client.call(ctx, endpointBuildRequest, buildRequestPayload{
		ProjectID: b.projectID,
		Password:  b.password,
		Params:    params,
	}, &result); err != nil {
		return nil, err
	}
	return result.Request, nil
}

type urlBuilder struct {
	client *Client
}

func (b *urlBuilder) BuildForRequest(ctx context.Context, request map[string]string) (string, error) {
	var result buildURLResult
	if err := b.client.call(ctx, endpointBuildURL, buildURLPayload{Request: request}, &result); err != nil {
		return "", err
	}
	return result.URL, nil
}

// call posts payload to endpoint and decodes the answer into out. A library
// failure reported by the bridge comes back as *webtopay.LibraryError.
func (c *Client) call(ctx context.Context, endpoint string, payload, out any) error {
	resp, err := c.http.PostJSON(ctx, endpoint, payload)
	if err != nil {
		var statusErr *provider.HTTPStatusError
		if errors.As(err, &statusErr) {
			var envelope errorEnvelope
			if json.Unmarshal(statusErr.Body, &envelope) == nil && envelope.Error != nil {
				return envelope.Error
			}
		}
		return fmt.Errorf("bridge %s: %w", endpoint, err)
	}

	if err := c.http.ParseJSONResponse(resp, out); err != nil {
		return fmt.Errorf("bridge %s: %w", endpoint, err)
	}
	return nil
}
