package schema

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/doodlesbykumbi/substack-in-go/pkg/apperr"
	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Bind decodes the JSON body of r into dst and validates it. Failures are
// returned as *apperr.Error with status 422.
func Bind(r *http.Request, dst interface{}) error {
	return bind(r, dst, false)
}

// BindOptional is Bind for endpoints whose body may be omitted entirely.
func BindOptional(r *http.Request, dst interface{}) error {
	return bind(r, dst, true)
}

func bind(r *http.Request, dst interface{}, optional bool) error {
	if r.Body == nil {
		if optional {
			return nil
		}
		return apperr.Validation(map[string]string{"body": "Field required"})
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return apperr.BadRequest("Could not read request body")
	}
	if len(data) == 0 || string(data) == "null" {
		if optional {
			return nil
		}
		return apperr.Validation(map[string]string{"body": "Field required"})
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return decodeError(data, dst, err)
	}
	if n, ok := dst.(interface{ Normalize() }); ok {
		n.Normalize()
	}
	return Validate(dst)
}

// valueMessages describe the accepted input of types that decode themselves.
var valueMessages = map[reflect.Type]string{
	reflect.TypeOf(model.BillingCycle(0)): "must be one of: " + strings.Join(model.BillingCycleStrings(), ", "),
	reflect.TypeOf(model.Currency(0)):     "must be one of: " + strings.Join(model.CurrencyStrings(), ", "),
	reflect.TypeOf(model.Date{}):          "must be a valid date in YYYY-MM-DD format",
}

func decodeError(data []byte, dst interface{}, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return apperr.Validation(map[string]string{"body": "JSON decode error"})
	}
	if fields := memberErrors(data, dst); len(fields) > 0 {
		return apperr.Validation(fields)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperr.Validation(map[string]string{typeErr.Field: typeMessage(typeErr.Type)})
	}
	return apperr.Validation(map[string]string{"body": "Input should be a valid JSON object"})
}

// memberErrors decodes each top-level member of data on its own into the
// matching field of dst and reports the ones that fail, keyed by JSON name.
func memberErrors(data []byte, dst interface{}) map[string]string {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil
	}
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	fields := make(map[string]string)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		raw, ok := members[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, reflect.New(f.Type).Interface()); err != nil {
			fields[name] = typeMessage(f.Type)
		}
	}
	return fields
}

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if msg, ok := valueMessages[t]; ok {
		return msg
	}
	switch t.Kind() {
	case reflect.String:
		return "Input should be a valid string"
	case reflect.Bool:
		return "Input should be a valid boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "Input should be a valid integer"
	case reflect.Float32, reflect.Float64:
		return "Input should be a valid number"
	default:
		return "Input is not valid"
	}
}

// Validate runs struct validation and converts failures to a 422 error.
func Validate(obj interface{}) error {
	err := Validator().Struct(obj)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal(err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = fieldMessage(fe)
		}
	}
	return apperr.Validation(fields)
}
