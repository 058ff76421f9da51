package suppliers

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cjovignot/orderNow/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// Form carries the supplier form fields as submitted.
type Form struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	TaxID   string `json:"taxId" validate:"required"`
}

// normalized trims surrounding whitespace so that blank input fails the
// required checks.
func (f Form) normalized() Form {
	f.Name = strings.TrimSpace(f.Name)
	f.Address = strings.TrimSpace(f.Address)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.TaxID = strings.TrimSpace(f.TaxID)
	return f
}

func (f Form) validate() domain.FieldErrors {
	errs := domain.FieldErrors{}
	if err := validate.Struct(f); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errs[fieldErr.Field()] = messageFor(fieldErr)
		}
	}
	return errs
}

func messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "email":
		return "email is invalid"
	default:
		return fieldErr.Field() + " is invalid"
	}
}
