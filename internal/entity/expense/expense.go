package expense

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DateLayout is the fixed textual date format on every input and output
// surface. Not locale-sensitive.
const DateLayout = "01/02/2006"

const amountScale = 2

var (
	ErrInvalidDateFormat   = errors.New("invalid date format")
	ErrEmptyDescription    = errors.New("empty description")
	ErrEmptyAmount         = errors.New("empty amount")
	ErrInvalidAmountFormat = errors.New("invalid amount format")
	ErrNegativeAmount      = errors.New("negative amount")
)

// Record is one expense entry. ID is a session-scoped identifier assigned
// by the store when the record enters memory; it is never persisted and
// does not participate in structural equality.
type Record struct {
	ID          int64
	Date        time.Time
	Category    Category
	Description string
	Amount      decimal.Decimal
}

func New(date time.Time, category Category, description string, amount decimal.Decimal) (Record, error) {
	if description == "" {
		return Record{}, errors.Wrap(ErrEmptyDescription, "new record")
	}
	if amount.IsNegative() {
		return Record{}, errors.Wrap(ErrNegativeAmount, "new record")
	}
	return Record{
		Date:        date,
		Category:    category,
		Description: description,
		Amount:      amount.RoundBank(amountScale),
	}, nil
}

// Equal reports structural equality over date, category, description and
// amount. IDs are deliberately excluded.
func (r Record) Equal(other Record) bool {
	return r.Date.Equal(other.Date) &&
		r.Category == other.Category &&
		r.Description == other.Description &&
		r.Amount.Equal(other.Amount)
}

// ParseDate parses a MM/dd/yyyy date, normalized to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidDateFormat, "%q", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseAmount parses a decimal amount, rejecting empty input, malformed
// numbers and negative values. The result is rounded half-even to cents.
func ParseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, errors.Wrap(ErrEmptyAmount, "parse amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(ErrInvalidAmountFormat, "%q", s)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, errors.Wrapf(ErrNegativeAmount, "%q", s)
	}
	return d.RoundBank(amountScale), nil
}

// FormatAmount renders an amount for display, two fractional digits with
// a dollar prefix.
func FormatAmount(d decimal.Decimal) string {
	return "$" + d.StringFixed(amountScale)
}
