package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-playground/validator/v10"
)

// requiredFields holds the write-request fields that must be present and non-empty.
type requiredFields struct {
	Status string `json:"status" validate:"required"`
	Skills string `json:"skills" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return v
}

// checkRequired validates the present request fields and returns one
// error detail per failing field, in declaration order.
func checkRequired(fields map[string]string) []error {
	err := validate.Struct(requiredFields{
		Status: fields["status"],
		Skills: fields["skills"],
	})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{&huma.ErrorDetail{Message: err.Error(), Location: "body"}}
	}
	details := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		details = append(details, &huma.ErrorDetail{
			Message:  message(fe.Tag(), strings.ToUpper(name[:1])+name[1:]),
			Location: "body." + name,
		})
	}
	return details
}

func message(tag, field string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
