package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/aminrz/kharj_bot/pkg/jalali"
	"github.com/aminrz/kharj_bot/pkg/money"
)

// Summary represents aggregated totals for a user within a time period.
type Summary struct {
	From time.Time
	To   time.Time

	Count int

	// TotalsByKind always carries all three kinds, zero when absent.
	TotalsByKind map[RecordKind]string
	// PersonTotals is ordered by total, descending.
	PersonTotals []PersonTotal
	// DailyTotals is ordered by day, ascending.
	DailyTotals []DayTotal
}

// PersonTotal represents the summed amount for one counterparty.
type PersonTotal struct {
	Person string
	Total  string
}

// DayTotal represents the summed amount for one day.
type DayTotal struct {
	Day   time.Time
	Total string
}

// Net returns receivable minus payable totals.
func (s *Summary) Net() money.Money {
	receivable, _ := money.NewFromString(s.TotalsByKind[ReceivableRecordKind])
	payable, _ := money.NewFromString(s.TotalsByKind[PayableRecordKind])

	receivable.Sub(payable)
	return receivable
}

// FormatSummaryOptions represents options for formatting a summary reply.
type FormatSummaryOptions struct {
	Title     string
	MaxPeople int
	MaxDays   int
}

// Format renders the summary as a plain text bot reply. Dates are shown
// in dual Gregorian (Jalali) format.
func (s *Summary) Format(opts FormatSummaryOptions) string {
	lines := []string{
		fmt.Sprintf("%s, %s to %s", opts.Title, jalali.FormatDual(s.From), jalali.FormatDual(s.To)),
	}

	if s.Count <= 0 {
		lines = append(lines, "No records in this period.")
		return strings.Join(lines, "\n")
	}

	lines = append(lines,
		fmt.Sprintf("Records: %d", s.Count),
		"",
		"Totals",
		fmt.Sprintf("- Expense: %s", groupedAmount(s.TotalsByKind[ExpenseRecordKind])),
		fmt.Sprintf("- You owe: %s", groupedAmount(s.TotalsByKind[PayableRecordKind])),
		fmt.Sprintf("- Owed to you: %s", groupedAmount(s.TotalsByKind[ReceivableRecordKind])),
		fmt.Sprintf("- Net: %s", s.Net().Grouped()),
	)

	if len(s.PersonTotals) != 0 {
		lines = append(lines, "", "Top people (all kinds)")

		shown := s.PersonTotals
		if opts.MaxPeople > 0 && len(shown) > opts.MaxPeople {
			shown = shown[:opts.MaxPeople]
		}
		for index, personTotal := range shown {
			lines = append(lines, fmt.Sprintf("%d. %s: %s", index+1, personTotal.Person, groupedAmount(personTotal.Total)))
		}

		if remaining := len(s.PersonTotals) - len(shown); remaining > 0 {
			lines = append(lines, fmt.Sprintf("... and %d more", remaining))
		}
	}

	if len(s.DailyTotals) != 0 {
		lines = append(lines, "")
		lines = append(lines, s.formatDailyTotals(opts.MaxDays)...)
	}

	return strings.Join(lines, "\n")
}

// formatDailyTotals renders one line per day of the trailing window,
// including days without records.
func (s *Summary) formatDailyTotals(maxDays int) []string {
	totalsByDay := make(map[string]string, len(s.DailyTotals))
	for _, dayTotal := range s.DailyTotals {
		totalsByDay[dayTotal.Day.UTC().Format("2006-01-02")] = dayTotal.Total
	}

	endDay := time.Date(s.To.UTC().Year(), s.To.UTC().Month(), s.To.UTC().Day(), 0, 0, 0, 0, time.UTC)
	startDay := time.Date(s.From.UTC().Year(), s.From.UTC().Month(), s.From.UTC().Day(), 0, 0, 0, 0, time.UTC)

	if maxDays > 0 {
		if earliest := endDay.AddDate(0, 0, -(maxDays - 1)); earliest.After(startDay) {
			startDay = earliest
		}
	}

	spanDays := int(endDay.Sub(startDay).Hours()/24) + 1

	lines := make([]string, 0, spanDays+1)
	lines = append(lines, fmt.Sprintf("Last %d days (all kinds)", spanDays))
	for i := 0; i < spanDays; i++ {
		day := startDay.AddDate(0, 0, i)
		lines = append(lines, fmt.Sprintf("- %s: %s", jalali.FormatDual(day), groupedAmount(totalsByDay[day.Format("2006-01-02")])))
	}

	return lines
}

func groupedAmount(value string) string {
	amount, err := money.NewFromString(value)
	if err != nil {
		return value
	}
	return amount.Grouped()
}
