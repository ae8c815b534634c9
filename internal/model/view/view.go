// Package view produces the display projection of a record collection:
// category filter, stable sort, running total. The projection is never
// persisted and, for a given input, filter and mode, is byte-identical
// across runs.
package view

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/pranusri1903/expense-tracker/internal/entity/expense"
)

type SortMode int

const (
	DateDescending SortMode = iota
	DateAscending
	AmountDescending
	CategoryAscending
)

var ErrUnknownSortMode = errors.New("unknown sort mode")

var sortModeNames = map[string]SortMode{
	"date-desc":   DateDescending,
	"date-asc":    DateAscending,
	"amount-desc": AmountDescending,
	"category":    CategoryAscending,
}

func ParseSortMode(s string) (SortMode, error) {
	mode, ok := sortModeNames[s]
	if !ok {
		return DateDescending, errors.Wrapf(ErrUnknownSortMode, "%q", s)
	}
	return mode, nil
}

func SortModeNames() []string {
	names := make([]string, 0, len(sortModeNames))
	for name := range sortModeNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// View is an ordered projection plus the total over its rows. The total
// belongs to a synthetic summary row, kept apart from the data rows so
// rendering never mistakes it for an expense.
type View struct {
	Rows  []expense.Record
	Total decimal.Decimal
}

// Build filters the records by category ("All" disables filtering),
// stable-sorts them per mode and computes the total of the filtered set.
func Build(records []expense.Record, category string, mode SortMode) View {
	rows := filter(records, category)

	sort.SliceStable(rows, less(rows, mode))

	total := decimal.Zero
	for _, rec := range rows {
		total = total.Add(rec.Amount)
	}
	return View{Rows: rows, Total: total}
}

func filter(records []expense.Record, category string) []expense.Record {
	res := make([]expense.Record, 0, len(records))
	for _, rec := range records {
		if category == expense.FilterAll || string(rec.Category) == category {
			res = append(res, rec)
		}
	}
	return res
}

func less(rows []expense.Record, mode SortMode) func(i, j int) bool {
	switch mode {
	case DateAscending:
		return func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) }
	case AmountDescending:
		return func(i, j int) bool { return rows[i].Amount.GreaterThan(rows[j].Amount) }
	case CategoryAscending:
		return func(i, j int) bool { return rows[i].Category < rows[j].Category }
	default:
		return func(i, j int) bool { return rows[i].Date.After(rows[j].Date) }
	}
}
