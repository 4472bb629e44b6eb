package medclient

import (
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/nyaruka/phonenumbers"
)

// defaultPhoneRegion resolves numbers entered without a country prefix.
const defaultPhoneRegion = "US"

// NormalizePhone parses a free-form phone number and returns it in E.164
// form. Numbers without an international prefix are resolved against region,
// falling back to the default region when region is empty.
func NormalizePhone(raw, region string) (string, error) {
	if region == "" {
		region = defaultPhoneRegion
	}

	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "unable to parse phone number")
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", goerrors.New("invalid phone number", goerrors.CategoryValidation)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// phoneRule is an ozzo rule that accepts empty values and otherwise requires
// a parseable, valid number.
func phoneRule(region string) validation.RuleFunc {
	return func(value any) error {
		raw, _ := value.(string)
		if raw == "" {
			return nil
		}
		_, err := NormalizePhone(raw, region)
		return err
	}
}
