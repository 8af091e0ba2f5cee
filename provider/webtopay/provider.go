package webtopay

import (
	"context"

	"github.com/mstgnz/checkout/provider"
)

// ProviderName is the name the provider registers under
const ProviderName = "webtopay"

// WebToPayProvider implements provider.Provider on top of a Library
type WebToPayProvider struct {
	library              Library
	countryAdapter       PaymentMethodCountryAdapter
	validationNormalizer PaymentValidationResponseNormalizer
	redirectNormalizer   PaymentRedirectRequestNormalizer
	callbackNormalizer   PaymentCallbackValidationRequestNormalizer
}

// NewProvider creates a WebToPay provider calling library
func NewProvider(library Library) *WebToPayProvider {
	return &WebToPayProvider{library: library}
}

// GetPaymentMethods returns the project methods grouped by country
func (p *WebToPayProvider) GetPaymentMethods(ctx context.Context, request provider.PaymentMethodsRequest) (provider.PaymentMethodCountries, error) {
	list, err := guard(func() (*MethodList, error) {
		return p.library.GetPaymentMethodList(ctx, request.ProjectID, request.Amount, request.Currency)
	})
	if err != nil {
		return nil, err
	}

	countries := provider.PaymentMethodCountries{}
	if list == nil {
		return countries, nil
	}
	for _, country := range list.Countries {
		countries = append(countries, p.countryAdapter.Convert(country))
	}
	return countries, nil
}

// GetPaymentRedirect signs the request and builds the payment page URL
func (p *WebToPayProvider) GetPaymentRedirect(ctx context.Context, request provider.PaymentRedirectRequest) (*provider.PaymentRedirectResponse, error) {
	params := p.redirectNormalizer.Normalize(request)

	return guard(func() (*provider.PaymentRedirectResponse, error) {
		builder, err := p.library.RequestBuilder(request.ProjectID, request.ProjectPassword)
		if err != nil {
			return nil, err
		}
		signed, err := builder.BuildRequest(ctx, params)
		if err != nil {
			return nil, err
		}

		urlBuilder, err := p.library.URLBuilder()
		if err != nil {
			return nil, err
		}
		redirectURL, err := urlBuilder.BuildForRequest(ctx, signed)
		if err != nil {
			return nil, err
		}

		return &provider.PaymentRedirectResponse{
			RedirectURL: redirectURL,
			Data:        signed["data"],
		}, nil
	})
}

// GetPaymentCallbackValidatedData verifies the callback and parses its fields
func (p *WebToPayProvider) GetPaymentCallbackValidatedData(ctx context.Context, request provider.PaymentCallbackValidationRequest) (*provider.PaymentCallbackValidationResponse, error) {
	query := p.callbackNormalizer.Normalize(request)

	data, err := guard(func() (map[string]string, error) {
		return p.library.ValidateAndParseData(ctx, query, request.ProjectID, request.ProjectPassword)
	})
	if err != nil {
		return nil, err
	}

	return p.validationNormalizer.Denormalize(data)
}
