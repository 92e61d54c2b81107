// AngelaMos | 2026
// dto.go

package donation

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bakerycrew/crew-backend/internal/core"
)

type CreateDonationRequest struct {
	Title       string  `json:"title"       validate:"required,notblank,max=200"`
	Description string  `json:"description" validate:"required,notblank,max=5000"`
	Deadline    *string `json:"deadline"    validate:"omitempty,isodate"`
}

var createMessages = map[string]string{
	"title.required":       "Title is required",
	"title.notblank":       "Title is required",
	"title":                "Title must be at most 200 characters",
	"description.required": "Description is required",
	"description.notblank": "Description is required",
	"description":          "Description must be at most 5000 characters",
	"deadline":             "Invalid date",
}

// ConfirmPaymentRequest keeps the amount raw so that a missing value,
// a non-numeric value and a non-positive number can be told apart.
type ConfirmPaymentRequest struct {
	Amount json.RawMessage `json:"amount"`
}

// ListFilter narrows the full donation listing. Zero values mean "any".
type ListFilter struct {
	Status       string
	CreatedAfter *time.Time
}

// Bounds of donation_applications.amount, a NUMERIC(12,2) that must be
// positive.
const (
	minAmount = 0.01
	maxAmount = 9_999_999_999.99
)

type amountError struct {
	fields []core.FieldError
}

func (e *amountError) Error() string {
	return e.fields[0].Msg
}

func amountFieldError(msg string) *amountError {
	return &amountError{fields: []core.FieldError{{
		Type:     "field",
		Msg:      msg,
		Path:     "amount",
		Location: "body",
	}}}
}

// decimalAmount is plain decimal notation with an optional exponent.
// Hex floats, Inf and NaN spellings fall outside it.
var decimalAmount = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseAmount accepts a JSON number or a numeric string in decimal
// notation. Shape problems come back as *amountError. A well-formed
// amount below one cent or above the column limit is
// core.ErrInvalidInput, since amounts are stored to the cent and must
// be positive.
func ParseAmount(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, amountFieldError("Amount is required")
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, amountFieldError("Amount must be a number")
		}
		text = strings.TrimSpace(text)
	} else {
		text = string(raw)
	}

	if !decimalAmount.MatchString(text) {
		return 0, amountFieldError("Amount must be a number")
	}

	amount, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(amount, 0) {
		return 0, amountFieldError("Amount must be a number")
	}

	if amount < minAmount || amount > maxAmount {
		return 0, core.ErrInvalidInput
	}

	return math.Round(amount*100) / 100, nil
}
