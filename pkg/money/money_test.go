package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_MathOperation(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		desc            string
		initialAmount   Money
		amountOperation func(initialAmount *Money)
		expected        Money
	}{
		{
			desc:          "Should increase initial amount by 10",
			initialAmount: NewFromInt(10),
			amountOperation: func(initialAmount *Money) {
				initialAmount.Inc(NewFromInt(10))
			},
			expected: NewFromInt(20),
		},
		{
			desc:          "Should decrease initial amount by 10",
			initialAmount: NewFromInt(10),
			amountOperation: func(initialAmount *Money) {
				initialAmount.Sub(NewFromInt(10))
			},
			expected: NewFromInt(0),
		},
		{
			desc:          "Should go negative when subtracting more than available",
			initialAmount: NewFromInt(100),
			amountOperation: func(initialAmount *Money) {
				initialAmount.Sub(NewFromInt(250))
			},
			expected: NewFromInt(-150),
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			tc.amountOperation(&tc.initialAmount)
			assert.True(t, tc.expected.Equal(tc.initialAmount))
		})
	}
}

func TestMoney_NewFromString(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		desc        string
		input       string
		expected    Money
		expectError bool
	}{
		{
			desc:     "positive: parsed integer amount",
			input:    "150000",
			expected: NewFromInt(150000),
		},
		{
			desc:     "positive: empty string parsed as zero",
			input:    "",
			expected: Zero,
		},
		{
			desc:        "negative: not a number",
			input:       "abc",
			expectError: true,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			actual, err := NewFromString(tc.input)
			if tc.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(actual))
		})
	}
}

func TestMoney_Grouped(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		desc     string
		amount   Money
		expected string
	}{
		{
			desc:     "positive: amount below thousand has no separator",
			amount:   NewFromInt(400),
			expected: "400",
		},
		{
			desc:     "positive: amount with separators",
			amount:   NewFromInt(150000),
			expected: "150,000",
		},
		{
			desc:     "positive: negative amount keeps sign",
			amount:   NewFromInt(-1234567),
			expected: "-1,234,567",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.amount.Grouped())
		})
	}
}
