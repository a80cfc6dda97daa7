package core

import (
	"reflect"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Date layouts shared by validators, services and repositories.
const (
	DateLayout      = "2006-01-02"
	YearMonthLayout = "2006-01"
)

var (
	// custom validation tags & texts
	dateOnlyTag  = "dateonly"
	dateOnlyText = "must be a calendar date in YYYY-MM-DD format"

	yearMonthTag  = "yearmonth"
	yearMonthText = "must be a month in YYYY-MM format"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(dateOnlyTag, dateOnlyValidation)
	RegisterCustomTranslation(validate, translator, dateOnlyTag, dateOnlyText)

	_ = validate.RegisterValidation(yearMonthTag, yearMonthValidation)
	RegisterCustomTranslation(validate, translator, yearMonthTag, yearMonthText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// dateOnlyValidation only allows unambiguous YYYY-MM-DD calendar dates.
func dateOnlyValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

// yearMonthValidation only allows YYYY-MM months.
func yearMonthValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(YearMonthLayout, fl.Field().String())
	return err == nil
}
