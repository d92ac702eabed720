package schema

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

var (
	validatorOnce sync.Once
	validate      *validator.Validate
)

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	digitPattern    = regexp.MustCompile(`\d`)
	specialPattern  = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// Validator returns the shared validator with the custom tags registered:
// sfsymbol, colorhex, password, timezone and notpast.
func Validator() *validator.Validate {
	validatorOnce.Do(func() {
		validate = validator.New()

		custom := map[string]validator.Func{
			"sfsymbol": func(fl validator.FieldLevel) bool { return model.IsSFSymbol(fl.Field().String()) },
			"colorhex": func(fl validator.FieldLevel) bool { return hexColorPattern.MatchString(fl.Field().String()) },
			"password": func(fl validator.FieldLevel) bool { return PasswordProblem(fl.Field().String()) == "" },
			"timezone": func(fl validator.FieldLevel) bool { return ValidTimezone(fl.Field().String()) },
			"notpast":  notPast,
		}
		for tag, fn := range custom {
			if err := validate.RegisterValidation(tag, fn); err != nil {
				logrus.Fatalf("Unexpected err %v", err)
			}
		}

		// Dates validate as their underlying time so that notpast can see them.
		validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
			if d, ok := v.Interface().(model.Date); ok {
				return d.Time
			}
			return nil
		}, model.Date{})

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// PasswordProblem describes why pw is too weak, or returns "" when it is acceptable.
func PasswordProblem(pw string) string {
	switch {
	case len(pw) < 8:
		return "Password must be at least 8 characters long"
	case !digitPattern.MatchString(pw):
		return "Password must contain at least one number"
	case !specialPattern.MatchString(pw):
		return "Password must contain at least one special character"
	}
	return ""
}

// ValidTimezone reports whether name is an IANA zone name.
func ValidTimezone(name string) bool {
	if name == "" || name == "Local" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

func notPast(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !model.NewDate(t).Before(model.Today())
}

// fieldMessage renders a single validation failure for clients.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "password":
		return PasswordProblem(fmt.Sprint(fe.Value()))
	case "timezone":
		return fmt.Sprintf("Invalid timezone: %v", fe.Value())
	case "sfsymbol":
		return fmt.Sprintf("Invalid SF Symbol: %v. Must be one of the allowed symbols.", fe.Value())
	case "colorhex":
		return "Invalid hex color. Must be in format #RRGGBB (e.g., #FF5733)"
	case "notpast":
		return "Next billing date cannot be in the past"
	default:
		return fmt.Sprintf("%s is not valid", fe.Field())
	}
}
