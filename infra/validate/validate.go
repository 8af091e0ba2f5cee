package validate

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	slugPattern     = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	languagePattern = regexp.MustCompile(`^[A-Za-z]{2,3}$`)
)

// CustomValidate registers the project specific tags on v:
//
//	slug      lower case letters, digits, '-' and '_', starting alphanumeric
//	currency  three upper case letters
//	language  two or three letters ("lt", "ENG")
func CustomValidate(v *validator.Validate) {
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return currencyPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		return languagePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
}
