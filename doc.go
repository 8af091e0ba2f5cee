// Package checkout exposes the Paysera WebToPay checkout flow as a small HTTP
// service and a Go library.
//
// # Overview
//
// A merchant integration needs three things from WebToPay: the list of payment
// methods a project accepts, a signed redirect to the payment page, and the
// verification of the callback Paysera sends once the payer is done. Checkout
// wraps the WebToPay library behind one Provider interface and translates its
// data into plain Go types.
//
//	┌─────────────────┐    ┌─────────────────┐    ┌─────────────────┐
//	│                 │    │                 │    │                 │
//	│  Merchant App   │◄──►│    Checkout     │◄──►│ WebToPay bridge │
//	│                 │    │                 │    │                 │
//	└─────────────────┘    └─────────────────┘    └─────────────────┘
//
// # Library Usage
//
//	import (
//	    "github.com/mstgnz/checkout/provider"
//	    _ "github.com/mstgnz/checkout/provider/webtopay/remote" // registers "webtopay"
//	)
//
//	p, err := provider.CreateProvider("webtopay", map[string]string{
//	    "bridgeUrl": "http://localhost:8088",
//	})
//	if err != nil {
//	    return err
//	}
//
//	service := provider.NewCheckoutService(p)
//	order := provider.NewOrder(1001, 2500, "EUR").WithPayerEmail("payer@example.com")
//	redirect, err := service.GetPaymentRedirect(ctx, *provider.NewPaymentRedirectRequest(
//	    123, "secret",
//	    "https://shop.example/accept",
//	    "https://shop.example/cancel",
//	    "https://shop.example/callback",
//	    order,
//	))
//
// # HTTP API
//
// Projects hold the Paysera project id and password and are stored in SQLite.
// All /v1 routes require "Authorization: Bearer <API_KEY>".
//
//	GET    /v1/projects/{project}/payment-methods?amount=2500&currency=EUR&lang=en
//	POST   /v1/projects/{project}/redirect
//	POST   /v1/projects/{project}/callback/validate
//	POST   /v1/projects/{project}/orders/paid
//	GET    /v1/logs/{provider}
//
// Paysera posts its callbacks to /callback/{project}, which answers "OK" once
// the signature has been verified.
//
// # Errors
//
// Failures coming from the WebToPay library are reported as ProviderError with
// the E_PROVIDER_ISSUE code. Invalid requests fail with ValidationErrors.
//
// For more examples, see the examples directory.
package checkout
