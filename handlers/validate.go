package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobly/apperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON decodes the request body into a typed struct. A value of the
// wrong type for a field (say a string where a number belongs) fails here,
// before any store is touched.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return apperr.BadRequest(fmt.Sprintf("%s is not of a type(s) %s", typeErr.Field, typeErr.Type))
		}
		return apperr.BadRequest("Invalid request payload: " + err.Error())
	}
	return nil
}

// checkStruct runs the declared validation rules and reports every
// violated one in a single message.
func checkStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.BadRequest(err.Error())
	}

	rules := make([]string, len(verrs))
	for i, fe := range verrs {
		rules[i] = fmt.Sprintf("%s does not satisfy rule %q", fe.Field(), fe.Tag())
	}
	return apperr.BadRequest(strings.Join(rules, "; "))
}
