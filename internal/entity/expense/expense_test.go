package expense

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_OnParseDate_ShouldAcceptFixedLayout(t *testing.T) {
	d, err := ParseDate("01/15/2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), d)
}

func Test_OnParseDate_ShouldRejectOtherLayouts(t *testing.T) {
	for _, in := range []string{"2024-01-15", "15/01/2024x", "January 15", ""} {
		_, err := ParseDate(in)
		assert.True(t, errors.Is(err, ErrInvalidDateFormat), in)
	}
}

func Test_OnFormatDate_ShouldRoundTrip(t *testing.T) {
	d, err := ParseDate("02/01/2024")
	require.NoError(t, err)
	assert.Equal(t, "02/01/2024", FormatDate(d))
}

func Test_OnParseAmount_ShouldRoundToCents(t *testing.T) {
	a, err := ParseAmount("12.505")
	require.NoError(t, err)
	assert.Equal(t, "12.50", a.StringFixed(2))

	a, err = ParseAmount("12.5")
	require.NoError(t, err)
	assert.Equal(t, "12.50", a.StringFixed(2))
}

func Test_OnParseAmount_ShouldRejectBadInput(t *testing.T) {
	_, err := ParseAmount("")
	assert.True(t, errors.Is(err, ErrEmptyAmount))

	_, err = ParseAmount("twelve")
	assert.True(t, errors.Is(err, ErrInvalidAmountFormat))

	_, err = ParseAmount("-5")
	assert.True(t, errors.Is(err, ErrNegativeAmount))
}

func Test_OnParseCategory_ShouldAcceptClosedSetOnly(t *testing.T) {
	c, err := ParseCategory("Food")
	require.NoError(t, err)
	assert.Equal(t, Food, c)

	_, err = ParseCategory("food")
	assert.True(t, errors.Is(err, ErrUnknownCategory))

	_, err = ParseCategory("Groceries")
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}

func Test_OnNew_ShouldValidateDescription(t *testing.T) {
	date, err := ParseDate("01/15/2024")
	require.NoError(t, err)

	_, err = New(date, Food, "", decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, ErrEmptyDescription))
}

func Test_OnEqual_ShouldIgnoreIDs(t *testing.T) {
	date, err := ParseDate("01/15/2024")
	require.NoError(t, err)

	a, err := New(date, Food, "Lunch", decimal.RequireFromString("12.50"))
	require.NoError(t, err)
	b := a
	b.ID = 42

	assert.True(t, a.Equal(b))

	b.Amount = decimal.RequireFromString("12.51")
	assert.False(t, a.Equal(b))
}

func Test_OnFormatAmount_ShouldUseDollarPrefix(t *testing.T) {
	assert.Equal(t, "$45.25", FormatAmount(decimal.RequireFromString("45.25")))
	assert.Equal(t, "$2.00", FormatAmount(decimal.NewFromInt(2)))
}
