package webtopay

import (
	"testing"

	"github.com/mstgnz/checkout/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestPaymentMethodCountryAdapter_Convert(t *testing.T) {
	country := MethodCountry{
		Code:   "lt",
		Titles: map[string]string{"lt": "Lietuva", "en": "Lithuania"},
		Groups: []MethodGroup{
			{
				Key:    "e-banking",
				Titles: map[string]string{"en": "E-banking"},
				Methods: []Method{
					{
						Key:       "hanza",
						MinAmount: intPtr(100),
						MaxAmount: intPtr(1000000),
						Currency:  "EUR",
						Titles:    map[string]string{"en": "Swedbank"},
						Logos:     map[string]string{"en": "https://bank.test/swedbank.png"},
					},
					{Key: "iban", IsIban: true, BaseCurrency: "EUR"},
				},
			},
			{Key: "other"},
		},
	}

	converted := PaymentMethodCountryAdapter{}.Convert(country)

	assert.Equal(t, "lt", converted.Code)
	assert.Equal(t, "Lithuania", converted.Titles.Get("en", "lt"))
	require.Len(t, converted.Groups, 2)

	group := converted.Groups[0]
	assert.Equal(t, "e-banking", group.Key)
	require.Len(t, group.Methods, 2)
	assert.Equal(t, provider.PaymentMethod{
		Key:       "hanza",
		MinAmount: intPtr(100),
		MaxAmount: intPtr(1000000),
		Currency:  "EUR",
		Titles:    provider.Translations{"en": "Swedbank"},
		Logos:     provider.Translations{"en": "https://bank.test/swedbank.png"},
	}, group.Methods[0])
	assert.True(t, group.Methods[1].IsIban)
	assert.Equal(t, "EUR", group.Methods[1].BaseCurrency)
	assert.Nil(t, group.Methods[1].Titles)

	assert.NotNil(t, converted.Groups[1].Methods)
	assert.Empty(t, converted.Groups[1].Methods)
}

func TestCopyTranslations_DoesNotAlias(t *testing.T) {
	src := map[string]string{"en": "Banks"}
	dst := copyTranslations(src)
	src["en"] = "changed"

	assert.Equal(t, "Banks", dst["en"])
}
