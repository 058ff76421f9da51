package catalog

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

// Form carries the product form fields as submitted. Price stays optional;
// a blank or non-positive value is stored as absent.
type Form struct {
	Name       string   `json:"name" validate:"required"`
	Barcode    string   `json:"barcode" validate:"required"`
	SupplierID string   `json:"supplierId" validate:"required"`
	Quantity   int      `json:"quantity" validate:"gt=0"`
	Price      *float64 `json:"price,omitempty"`
}

func (f Form) normalized() Form {
	f.Name = strings.TrimSpace(f.Name)
	f.Barcode = strings.TrimSpace(f.Barcode)
	f.SupplierID = strings.TrimSpace(f.SupplierID)
	return f
}

// validateForm runs the struct checks plus the relational ones: the
// supplier must exist and the barcode may not be reused within the same
// supplier's catalog. Caller holds the service lock.
func (s *Service) validateForm(form Form, excludeID string) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if err := validate.Struct(form); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errs[fieldErr.Field()] = messageFor(fieldErr)
		}
	}
	if _, ok := errs["supplierId"]; !ok && !s.suppliers.Exists(form.SupplierID) {
		errs["supplierId"] = "supplier does not exist"
	}
	if _, ok := errs["barcode"]; !ok {
		for _, p := range s.items {
			if p.ID != excludeID && p.SupplierID == form.SupplierID && p.Barcode == form.Barcode {
				errs["barcode"] = "barcode already used for this supplier"
				break
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "gt":
		return "quantity must be greater than 0"
	default:
		return fieldErr.Field() + " is invalid"
	}
}
