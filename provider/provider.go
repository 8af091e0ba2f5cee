package provider

import "context"

// Provider adapts a payment library into the checkout request/response types
type Provider interface {
	// GetPaymentMethods returns the payment methods of a project grouped by country
	GetPaymentMethods(ctx context.Context, request PaymentMethodsRequest) (PaymentMethodCountries, error)

	// GetPaymentRedirect builds the signed request and the URL the payer is sent to
	GetPaymentRedirect(ctx context.Context, request PaymentRedirectRequest) (*PaymentRedirectResponse, error)

	// GetPaymentCallbackValidatedData verifies callback parameters and parses them
	GetPaymentCallbackValidatedData(ctx context.Context, request PaymentCallbackValidationRequest) (*PaymentCallbackValidationResponse, error)
}

// ProviderFactory creates a ready to use Provider from its configuration
type ProviderFactory func(config map[string]string) (Provider, error)
