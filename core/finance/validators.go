package finance

import (
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gateway/core"
)

var (
	// custom validation tags & texts
	cardNumberTag   = "cardnumber"
	cardNumberText  = "{0} must be 13-19 digits"
	cardNumberRegex = regexp.MustCompile(`^[0-9]{13,19}$`)

	expiryTag   = "expiry"
	expiryText  = "{0} must be MM/YY"
	expiryRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

	zipCodeTag   = "zipcode"
	zipCodeText  = "{0} must be a ZIP code"
	zipCodeRegex = regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$`)

	cardSeparators = strings.NewReplacer(" ", "", "-", "")

	messages = core.FieldMessages{
		"amount.gt":                "Payment amount must be greater than 0",
		"card_name.required":       "Cardholder name is required",
		"card_number.required":     "Card number is required",
		"card_number.cardnumber":   "Card number must be 13-19 digits",
		"expiry.required":          "Expiry date is required",
		"expiry.expiry":            "Expiry date must be MM/YY",
		"cvv.required":             "CVV is required",
		"cvv.numeric":              "CVV must be 3-4 digits",
		"cvv.min":                  "CVV must be 3-4 digits",
		"cvv.max":                  "CVV must be 3-4 digits",
		"billing_address.required": "Billing address is required",
		"city.required":            "City is required",
		"state.required":           "State is required",
		"state.len":                "State must be a 2-letter code",
		"state.alpha":              "State must be a 2-letter code",
		"zip_code.required":        "ZIP code is required",
		"zip_code.zipcode":         "Enter a valid ZIP code",
	}
)

// PaymentRequest is the payment form.
type PaymentRequest struct {
	Amount         float64 `json:"amount" validate:"gt=0"`
	CardName       string  `json:"card_name" validate:"required"`
	CardNumber     string  `json:"card_number" validate:"required,cardnumber"`
	Expiry         string  `json:"expiry" validate:"required,expiry"`
	CVV            string  `json:"cvv" validate:"required,numeric,min=3,max=4"`
	BillingAddress string  `json:"billing_address" validate:"required"`
	City           string  `json:"city" validate:"required"`
	State          string  `json:"state" validate:"required,len=2,alpha"`
	ZipCode        string  `json:"zip_code" validate:"required,zipcode"`
}

// InitValidators registers the payment validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(cardNumberTag, regexValidation(cardNumberRegex))
	core.RegisterCustomTranslation(validate, translator, cardNumberTag, cardNumberText)

	_ = validate.RegisterValidation(expiryTag, regexValidation(expiryRegex))
	core.RegisterCustomTranslation(validate, translator, expiryTag, expiryText)

	_ = validate.RegisterValidation(zipCodeTag, regexValidation(zipCodeRegex))
	core.RegisterCustomTranslation(validate, translator, zipCodeTag, zipCodeText)
}

func regexValidation(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func (r *PaymentRequest) Validate(validate *validator.Validate, translator ut.Translator) error {
	r.Amount = core.Round(r.Amount, 2)
	r.CardName = core.CleanString(r.CardName)
	r.CardNumber = cardSeparators.Replace(core.CleanString(r.CardNumber))
	r.Expiry = core.CleanString(r.Expiry)
	r.CVV = core.CleanString(r.CVV)
	r.BillingAddress = core.CleanString(r.BillingAddress)
	r.City = core.CleanString(r.City)
	r.State = strings.ToUpper(core.CleanString(r.State))
	r.ZipCode = core.CleanString(r.ZipCode)
	return core.ValidateStruct(validate, translator, r, messages)
}

// CardLast4 returns the last 4 digits of the card number.
func (r PaymentRequest) CardLast4() string {
	if len(r.CardNumber) < 4 {
		return r.CardNumber
	}
	return r.CardNumber[len(r.CardNumber)-4:]
}
