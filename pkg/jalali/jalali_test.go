package jalali

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromGregorian(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		desc     string
		year     int
		month    int
		day      int
		expected Date
	}{
		{
			desc:     "positive: Nowruz 2024",
			year:     2024,
			month:    3,
			day:      20,
			expected: Date{Year: 1403, Month: 1, Day: 1},
		},
		{
			desc:     "positive: Nowruz 2021",
			year:     2021,
			month:    3,
			day:      21,
			expected: Date{Year: 1400, Month: 1, Day: 1},
		},
		{
			desc:     "positive: first day of Mehr 2023",
			year:     2023,
			month:    9,
			day:      23,
			expected: Date{Year: 1402, Month: 7, Day: 1},
		},
		{
			desc:     "positive: unix epoch",
			year:     1970,
			month:    1,
			day:      1,
			expected: Date{Year: 1348, Month: 10, Day: 11},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			actual := FromGregorian(tc.year, tc.month, tc.day)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestFromGregorian_Deterministic(t *testing.T) {
	t.Parallel()

	first := FromGregorian(2024, 3, 20)
	second := FromGregorian(2024, 3, 20)
	assert.Equal(t, first, second)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		desc     string
		format   func(time.Time) string
		input    time.Time
		expected string
	}{
		{
			desc:     "positive: jalali date format",
			format:   FormatDate,
			input:    time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
			expected: "1403/01/01",
		},
		{
			desc:     "positive: jalali datetime format",
			format:   FormatDateTime,
			input:    time.Date(2024, 3, 20, 14, 30, 5, 0, time.UTC),
			expected: "1403/01/01 14:30:05",
		},
		{
			desc:     "positive: dual gregorian and jalali format",
			format:   FormatDual,
			input:    time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
			expected: "2024-03-20 (1403/01/01)",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.format(tc.input))
		})
	}
}
