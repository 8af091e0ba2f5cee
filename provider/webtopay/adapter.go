package webtopay

import "github.com/mstgnz/checkout/provider"

// PaymentMethodAdapter converts a library method
type PaymentMethodAdapter struct{}

func (PaymentMethodAdapter) Convert(m Method) provider.PaymentMethod {
	return provider.PaymentMethod{
		Key:          m.Key,
		MinAmount:    m.MinAmount,
		MaxAmount:    m.MaxAmount,
		Currency:     m.Currency,
		BaseCurrency: m.BaseCurrency,
		IsIban:       m.IsIban,
		Titles:       copyTranslations(m.Titles),
		Logos:        copyTranslations(m.Logos),
	}
}

// PaymentMethodGroupAdapter converts a library group and its methods
type PaymentMethodGroupAdapter struct {
	methods PaymentMethodAdapter
}

func (a PaymentMethodGroupAdapter) Convert(g MethodGroup) provider.PaymentMethodGroup {
	methods := make([]provider.PaymentMethod, 0, len(g.Methods))
	for _, m := range g.Methods {
		methods = append(methods, a.methods.Convert(m))
	}

	return provider.PaymentMethodGroup{
		Key:     g.Key,
		Titles:  copyTranslations(g.Titles),
		Methods: methods,
	}
}

// PaymentMethodCountryAdapter converts a library country with all its groups
type PaymentMethodCountryAdapter struct {
	groups PaymentMethodGroupAdapter
}

func (a PaymentMethodCountryAdapter) Convert(c MethodCountry) provider.PaymentMethodCountry {
	groups := make([]provider.PaymentMethodGroup, 0, len(c.Groups))
	for _, g := range c.Groups {
		groups = append(groups, a.groups.Convert(g))
	}

	return provider.PaymentMethodCountry{
		Code:   c.Code,
		Titles: copyTranslations(c.Titles),
		Groups: groups,
	}
}

func copyTranslations(src map[string]string) provider.Translations {
	if src == nil {
		return nil
	}
	dst := make(provider.Translations, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
