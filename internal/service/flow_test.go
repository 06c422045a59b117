package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aminrz/kharj_bot/internal/models"
)

func newTestFlowState(flow models.Flow, draft models.Draft) *models.State {
	return &models.State{
		ID:     "test-state-id",
		UserID: 1,
		ChatID: 1,
		Flow:   flow,
		Steps:  models.FlowSteps{models.StartFlowStep, models.AwaitingTypeFlowStep},
		Draft:  draft,
	}
}

func TestProcessFlowStep_addDebtRecord(t *testing.T) {
	t.Parallel()

	state := newTestFlowState(models.AddRecordFlow, models.Draft{})

	result, err := processFlowStep(state, "Payable")
	require.NoError(t, err)
	assert.Equal(t, models.AwaitingPersonFlowStep, state.GetCurrentStep())
	assert.Equal(t, models.PayableRecordKind, state.Draft.Kind)
	assert.False(t, result.commit)

	result, err = processFlowStep(state, "ممد")
	require.NoError(t, err)
	assert.Equal(t, models.AwaitingAmountFlowStep, state.GetCurrentStep())
	assert.Equal(t, "ممد", state.Draft.Counterparty)
	assert.False(t, result.commit)

	result, err = processFlowStep(state, "150,000")
	require.NoError(t, err)
	assert.Equal(t, models.AwaitingDescriptionFlowStep, state.GetCurrentStep())
	assert.Equal(t, "150000", state.Draft.Amount)
	assert.False(t, result.commit)

	result, err = processFlowStep(state, "قرض ناهار")
	require.NoError(t, err)
	assert.Equal(t, models.AwaitingConfirmFlowStep, state.GetCurrentStep())
	assert.Equal(t, "قرض ناهار", state.Draft.Description)
	assert.Contains(t, result.reply, "150,000")
	assert.Contains(t, result.reply, "ممد")

	result, err = processFlowStep(state, "Yes")
	require.NoError(t, err)
	assert.True(t, result.commit)
	assert.False(t, result.discard)
	assert.True(t, state.IsFlowFinished())
}

func TestProcessFlowStep_expenseSkipsPersonStep(t *testing.T) {
	t.Parallel()

	state := newTestFlowState(models.AddRecordFlow, models.Draft{Counterparty: "ممد"})

	_, err := processFlowStep(state, "Expense")
	require.NoError(t, err)

	assert.Equal(t, models.AwaitingAmountFlowStep, state.GetCurrentStep())
	assert.Empty(t, state.Draft.Counterparty)
}

func TestProcessFlowStep_skipDescription(t *testing.T) {
	t.Parallel()

	state := newTestFlowState(models.AddRecordFlow, models.Draft{})
	state.AdvanceTo(models.AwaitingDescriptionFlowStep)
	state.Draft.Kind = models.ExpenseRecordKind
	state.Draft.Amount = "100"

	_, err := processFlowStep(state, "Skip")
	require.NoError(t, err)

	assert.Equal(t, models.AwaitingConfirmFlowStep, state.GetCurrentStep())
	assert.Empty(t, state.Draft.Description)
}

func TestProcessFlowStep_discardOnConfirmStep(t *testing.T) {
	t.Parallel()

	state := newTestFlowState(models.AddRecordFlow, models.Draft{
		Kind:   models.ExpenseRecordKind,
		Amount: "100",
	})
	state.AdvanceTo(models.AwaitingConfirmFlowStep)

	result, err := processFlowStep(state, "No")
	require.NoError(t, err)

	assert.True(t, result.discard)
	assert.False(t, result.commit)
	assert.True(t, state.IsFlowFinished())
}

func TestProcessFlowStep_cancelFromAnyStep(t *testing.T) {
	t.Parallel()

	steps := [...]models.FlowStep{
		models.AwaitingTypeFlowStep,
		models.AwaitingPersonFlowStep,
		models.AwaitingAmountFlowStep,
		models.AwaitingDescriptionFlowStep,
		models.AwaitingConfirmFlowStep,
	}
	for _, step := range steps {
		step := step
		t.Run(string(step), func(t *testing.T) {
			t.Parallel()

			state := newTestFlowState(models.AddRecordFlow, models.Draft{})
			state.AdvanceTo(step)

			result, err := processFlowStep(state, "/cancel")
			require.NoError(t, err)

			assert.True(t, result.discard)
			assert.True(t, state.IsFlowFinished())
		})
	}
}

func TestProcessFlowStep_validationErrors(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		desc        string
		step        models.FlowStep
		input       string
		expectedErr error
	}{
		{
			desc:        "negative: unknown record type",
			step:        models.AwaitingTypeFlowStep,
			input:       "lunch",
			expectedErr: ErrInvalidRecordType,
		},
		{
			desc:        "negative: person name with digits",
			step:        models.AwaitingPersonFlowStep,
			input:       "ممد123",
			expectedErr: ErrInvalidPersonName,
		},
		{
			desc:        "negative: amount is not a number",
			step:        models.AwaitingAmountFlowStep,
			input:       "صد تومن",
			expectedErr: ErrInvalidAmount,
		},
		{
			desc:        "negative: amount is zero",
			step:        models.AwaitingAmountFlowStep,
			input:       "0",
			expectedErr: ErrInvalidAmount,
		},
		{
			desc:        "negative: confirm step input is neither yes nor no",
			step:        models.AwaitingConfirmFlowStep,
			input:       "maybe",
			expectedErr: ErrInvalidConfirmation,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			state := newTestFlowState(models.AddRecordFlow, models.Draft{})
			state.AdvanceTo(tc.step)

			result, err := processFlowStep(state, tc.input)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tc.expectedErr)
			// The flow stays on the same step after a validation failure.
			assert.Equal(t, tc.step, state.GetCurrentStep())
		})
	}
}

func TestParseFlowAmount(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		desc     string
		input    string
		expected string
		ok       bool
	}{
		{
			desc:     "positive: plain number",
			input:    "150000",
			expected: "150000",
			ok:       true,
		},
		{
			desc:     "positive: thousand separators are ignored",
			input:    "150,000",
			expected: "150000",
			ok:       true,
		},
		{
			desc:     "positive: persian digits",
			input:    "۱۲۳",
			expected: "123",
			ok:       true,
		},
		{
			desc:     "positive: spaces between digit groups",
			input:    "12 000",
			expected: "12000",
			ok:       true,
		},
		{
			desc:  "negative: not a number",
			input: "صد",
		},
		{
			desc:  "negative: empty input",
			input: "",
		},
		{
			desc:  "negative: zero",
			input: "0",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			actual, ok := parseFlowAmount(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, actual)
		})
	}
}
