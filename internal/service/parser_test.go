package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aminrz/kharj_bot/internal/models"
	"github.com/aminrz/kharj_bot/pkg/logger"
)

func newTestParser() *parserService {
	return NewParser(&ParserOptions{
		Logger: logger.New(logger.Options{LogLevel: "disabled"}),
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		desc     string
		text     string
		expected *models.ParsedRecord
	}{
		{
			desc: "positive: simple expense with currency and description",
			text: "100 تومن پول نون",
			expected: &models.ParsedRecord{
				Amount:       "100",
				Kind:         models.ExpenseRecordKind,
				CurrencyUnit: "تومن",
				Description:  "پول نون",
				Raw:          "100 تومن پول نون",
			},
		},
		{
			desc: "positive: payable with person after به",
			text: "220 تومن به ممد باید بدم",
			expected: &models.ParsedRecord{
				Amount:       "220",
				Kind:         models.PayableRecordKind,
				Counterparty: "ممد",
				CurrencyUnit: "تومن",
				Description:  "به ممد باید بدم",
				Raw:          "220 تومن به ممد باید بدم",
			},
		},
		{
			desc: "positive: shorthand amount به person becomes payable",
			text: "۲۲۰ به ممد",
			expected: &models.ParsedRecord{
				Amount:       "220",
				Kind:         models.PayableRecordKind,
				Counterparty: "ممد",
				CurrencyUnit: "تومان",
				Description:  "به ممد",
				Raw:          "۲۲۰ به ممد",
			},
		},
		{
			desc: "positive: receivable with person before باید",
			text: "150 تومن ممد باید بهم بده",
			expected: &models.ParsedRecord{
				Amount:       "150",
				Kind:         models.ReceivableRecordKind,
				Counterparty: "ممد",
				CurrencyUnit: "تومن",
				Description:  "ممد باید بهم بده",
				Raw:          "150 تومن ممد باید بهم بده",
			},
		},
		{
			desc: "positive: pronoun بهم is not taken for a person",
			text: "500 تومن بهم بدهکاره",
			expected: &models.ParsedRecord{
				Amount:       "500",
				Kind:         models.ReceivableRecordKind,
				CurrencyUnit: "تومن",
				Description:  "بهم بدهکاره",
				Raw:          "500 تومن بهم بدهکاره",
			},
		},
		{
			desc: "positive: arabic digits are normalized",
			text: "٣٥ ریال شارژ",
			expected: &models.ParsedRecord{
				Amount:       "35",
				Kind:         models.ExpenseRecordKind,
				CurrencyUnit: "ریال",
				Description:  "شارژ",
				Raw:          "٣٥ ریال شارژ",
			},
		},
		{
			desc: "positive: first digit run wins when several are present",
			text: "100 تومن نون و 200 تومن شیر",
			expected: &models.ParsedRecord{
				Amount:       "100",
				Kind:         models.ExpenseRecordKind,
				CurrencyUnit: "تومن",
				Description:  "نون و 200 شیر",
				Raw:          "100 تومن نون و 200 تومن شیر",
			},
		},
		{
			desc: "positive: numbered list prefix is not the amount",
			text: "1. 100 تومن نون",
			expected: &models.ParsedRecord{
				Amount:       "100",
				Kind:         models.ExpenseRecordKind,
				CurrencyUnit: "تومن",
				Description:  "نون",
				Raw:          "1. 100 تومن نون",
			},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			actual, err := newTestParser().Parse(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestParse_noAmount(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		desc string
		text string
	}{
		{
			desc: "negative: text without digits",
			text: "پول نون",
		},
		{
			desc: "negative: empty text",
			text: "   ",
		},
		{
			desc: "negative: zero amount",
			text: "0 تومن نون",
		},
		{
			desc: "negative: digit run longer than an amount can be",
			text: "1234567890123456789 تومن",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			actual, err := newTestParser().Parse(tc.text)
			assert.Nil(t, actual)
			assert.ErrorIs(t, err, ErrNoAmountFound)
		})
	}
}

func TestDetectRecordKind_ambiguous(t *testing.T) {
	t.Parallel()

	// Both debt directions in one message cannot be resolved.
	kind := newTestParser().detectRecordKind("باید بدم و ممد باید بهم بده")

	assert.Equal(t, models.ExpenseRecordKind, kind)
}
