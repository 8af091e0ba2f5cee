// Package provider defines the checkout data model and the Provider
// abstraction over payment libraries.
//
// # Core Concepts
//
//   - Provider: methods list, payment redirect and callback validation
//   - CheckoutService: wraps a Provider with validation, caching, call records and metrics
//   - ProviderRegistry: maps provider names to factories
//   - ProviderError: any failure raised inside the payment library
//
// # Registering a Provider
//
// Implementations register a factory from an init function:
//
//	func init() {
//	    provider.Register("webtopay", NewProvider)
//	}
//
// and are created by name:
//
//	p, err := provider.CreateProvider("webtopay", map[string]string{"bridgeUrl": url})
//
// # Amounts
//
// Amounts are integers in minor units of the currency (cents).
//
// # Callbacks
//
//	callback, err := service.GetPaymentCallbackValidatedData(ctx, request)
//	if err != nil {
//	    return err
//	}
//	if service.IsMerchantOrderPaid(callback, order) {
//	    // ship it
//	}
package provider
