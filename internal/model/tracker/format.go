package tracker

import (
	"fmt"
	"strings"

	"github.com/pranusri1903/expense-tracker/internal/entity/expense"
	"github.com/pranusri1903/expense-tracker/internal/model/report"
	"github.com/pranusri1903/expense-tracker/internal/model/view"
)

func formatView(v view.View) string {
	res := make([]string, 0, len(v.Rows)+2)
	for _, rec := range v.Rows {
		res = append(res, fmt.Sprintf("[%d] %s  %-14s  %s  %s",
			rec.ID,
			expense.FormatDate(rec.Date),
			rec.Category,
			expense.FormatAmount(rec.Amount),
			rec.Description))
	}
	res = append(res, "", fmt.Sprintf("%s %s", totalLabel, expense.FormatAmount(v.Total)))
	return strings.Join(res, "\n")
}

func formatSummary(s report.Summary) string {
	res := make([]string, 0, len(s.Rows)+2)
	for _, row := range s.Rows {
		res = append(res, fmt.Sprintf("%s: %s (%s%%)",
			row.Category,
			expense.FormatAmount(row.Amount),
			row.Percentage.StringFixed(1)))
	}
	res = append(res, "", fmt.Sprintf("%s: %s (100.0%%)", totalLabel, expense.FormatAmount(s.Total)))
	return strings.Join(res, "\n")
}
