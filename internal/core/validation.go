// AngelaMos | 2026
// validation.go

package core

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	DateLayout = "2006-01-02"
)

type FieldError struct {
	Type     string `json:"type"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// NewValidator reports fields by their JSON names and knows the
// "isodate" tag (YYYY-MM-DD or RFC 3339) and "notblank", which rejects
// whitespace-only text.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	//nolint:errcheck // tag name is a constant and the func is non-nil
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, ok := ParseDate(fl.Field().String())
		return ok
	})

	//nolint:errcheck // tag name is a constant and the func is non-nil
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	return v
}

func ParseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ValidationErrors turns validator output into field errors. messages
// is keyed by "field.tag" first and then "field"; anything unmapped
// gets a generic message.
func ValidationErrors(err error, messages map[string]string) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{
			Type:     "field",
			Msg:      "Invalid request",
			Location: "body",
		}}
	}

	out := make([]FieldError, 0, len(verrs))
	seen := make(map[string]struct{}, len(verrs))

	for _, fe := range verrs {
		field := fe.Field()
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}

		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg, ok = messages[field]
		}
		if !ok {
			msg = "Invalid value"
		}

		out = append(out, FieldError{
			Type:     "field",
			Msg:      msg,
			Path:     field,
			Location: "body",
		})
	}

	return out
}

// DecodeJSON decodes the request body into dst. An empty body decodes
// as an empty object so that validation reports the missing fields.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}

	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
