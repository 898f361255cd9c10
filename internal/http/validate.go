package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindErrors turns a gin binding failure into the list of human-readable
// messages the API returns with 422.
func bindErrors(err error) []string {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		return []string{"invalid json payload"}
	}
	out := make([]string, 0, len(verr))
	for _, fe := range verr {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("%q is required", field))
		case "oneof":
			out = append(out, fmt.Sprintf("%q must be one of [%s]", field, fe.Param()))
		default:
			out = append(out, fmt.Sprintf("%q is invalid", field))
		}
	}
	return out
}
