// Package report computes category-wise totals and percentages from a
// record collection.
package report

import (
	"sort"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/pranusri1903/expense-tracker/internal/entity/expense"
)

const percentScale = 1

var ErrUnknownPeriod = errors.New("unknown report period")

// Period boundaries are computed in UTC because record dates are UTC
// midnights; a local-zone boundary would shift the first day of the
// period in or out depending on the host timezone.
var periodFilters = map[string]func() time.Time{
	"":      func() time.Time { return time.Time{} },
	"week":  func() time.Time { return now.New(time.Now().UTC()).BeginningOfWeek() },
	"month": func() time.Time { return now.New(time.Now().UTC()).BeginningOfMonth() },
	"year":  func() time.Time { return now.New(time.Now().UTC()).BeginningOfYear() },
}

// Summarize groups the records by category, summing amounts. Categories
// with no records never appear in the result.
func Summarize(records []expense.Record) map[expense.Category]decimal.Decimal {
	m := make(map[expense.Category]decimal.Decimal)
	for _, rec := range records {
		m[rec.Category] = m[rec.Category].Add(rec.Amount)
	}
	return m
}

type Row struct {
	Category   expense.Category
	Amount     decimal.Decimal
	Percentage decimal.Decimal
}

// Summary is the per-category breakdown, rows ordered by amount
// descending, plus the grand total. An empty collection yields an empty
// summary with no rows at all.
type Summary struct {
	Rows  []Row
	Total decimal.Decimal
}

// BuildSummary derives the summary from the per-category totals. The
// percentage is round-half-even at one fractional digit; when the grand
// total is zero the computation is skipped entirely.
func BuildSummary(records []expense.Record) Summary {
	totals := Summarize(records)

	total := decimal.Zero
	for _, amount := range totals {
		total = total.Add(amount)
	}
	if total.IsZero() {
		return Summary{Rows: []Row{}}
	}

	rows := make([]Row, 0, len(totals))
	hundred := decimal.NewFromInt(100)
	for category, amount := range totals {
		rows = append(rows, Row{
			Category:   category,
			Amount:     amount,
			Percentage: amount.Mul(hundred).Div(total).RoundBank(percentScale),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Amount.Equal(rows[j].Amount) {
			return rows[i].Amount.GreaterThan(rows[j].Amount)
		}
		return rows[i].Category < rows[j].Category
	})
	return Summary{Rows: rows, Total: total}
}

// FilterPeriod keeps the records dated on or after the start of the
// given period ("week", "month" or "year"; empty keeps everything).
func FilterPeriod(records []expense.Record, period string) ([]expense.Record, error) {
	boundary, ok := periodFilters[period]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPeriod, "%q", period)
	}
	after := boundary()

	res := make([]expense.Record, 0, len(records))
	for _, rec := range records {
		if !rec.Date.Before(after) {
			res = append(res, rec)
		}
	}
	return res, nil
}

func Periods() []string {
	res := make([]string, 0, len(periodFilters))
	for k := range periodFilters {
		if k != "" {
			res = append(res, k)
		}
	}
	sort.Strings(res)
	return res
}
