package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aminrz/kharj_bot/internal/models"
	"github.com/aminrz/kharj_bot/internal/service"
	"github.com/aminrz/kharj_bot/internal/store"
)

func TestState_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background() //nolint: forbidigo

	testCaseDB := createTestDB(t, "state_create")
	stateStore := store.NewState(testCaseDB)

	const userID = int64(1)

	err := stateStore.Create(ctx, &models.State{
		ID:     uuid.NewString(),
		UserID: userID,
		ChatID: userID,
		Flow:   models.AddRecordFlow,
		Steps:  models.FlowSteps{models.StartFlowStep, models.AwaitingTypeFlowStep},
	})
	require.NoError(t, err)

	// Only one state may exist per user.
	err = stateStore.Create(ctx, &models.State{
		ID:     uuid.NewString(),
		UserID: userID,
		ChatID: userID,
		Flow:   models.EditRecordFlow,
		Steps:  models.FlowSteps{models.StartFlowStep},
	})
	assert.Error(t, err)
}

func TestState_Get(t *testing.T) {
	t.Parallel()

	ctx := context.Background() //nolint: forbidigo

	testCaseDB := createTestDB(t, "state_get")
	stateStore := store.NewState(testCaseDB)

	const userID = int64(2)

	expected := &models.State{
		ID:     uuid.NewString(),
		UserID: userID,
		ChatID: userID,
		Flow:   models.EditRecordFlow,
		Steps:  models.FlowSteps{models.StartFlowStep, models.AwaitingTypeFlowStep},
		Draft: models.Draft{
			TargetRecordID: 3,
			Kind:           models.PayableRecordKind,
			Counterparty:   "ممد",
			Amount:         "220",
			CurrencyUnit:   "تومن",
			Description:    "قرض ناهار",
		},
	}

	err := stateStore.Create(ctx, expected)
	require.NoError(t, err)

	actual, err := stateStore.Get(ctx, service.GetStateFilter{UserID: userID})
	require.NoError(t, err)
	require.NotNil(t, actual)

	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.Flow, actual.Flow)
	assert.Equal(t, expected.Steps, actual.Steps)
	assert.Equal(t, expected.Draft, actual.Draft)
	assert.False(t, actual.UpdatedAt.IsZero())

	actual, err = stateStore.Get(ctx, service.GetStateFilter{UserID: userID + 1})
	require.NoError(t, err)
	assert.Nil(t, actual)
}

func TestState_Update(t *testing.T) {
	t.Parallel()

	ctx := context.Background() //nolint: forbidigo

	testCaseDB := createTestDB(t, "state_update")
	stateStore := store.NewState(testCaseDB)

	const userID = int64(3)

	state := &models.State{
		ID:     uuid.NewString(),
		UserID: userID,
		ChatID: userID,
		Flow:   models.AddRecordFlow,
		Steps:  models.FlowSteps{models.StartFlowStep, models.AwaitingTypeFlowStep},
	}

	err := stateStore.Create(ctx, state)
	require.NoError(t, err)

	state.Steps = append(state.Steps, models.AwaitingAmountFlowStep)
	state.Draft = models.Draft{
		Kind:   models.ExpenseRecordKind,
		Amount: "100",
	}

	updatedState, err := stateStore.Update(ctx, state)
	require.NoError(t, err)

	assert.Equal(t, state.ID, updatedState.ID)
	assert.Equal(t, state.Steps, updatedState.Steps)
	assert.Equal(t, state.Draft, updatedState.Draft)
}

func TestState_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background() //nolint: forbidigo

	testCaseDB := createTestDB(t, "state_delete")
	stateStore := store.NewState(testCaseDB)

	const userID = int64(4)

	state := &models.State{
		ID:     uuid.NewString(),
		UserID: userID,
		ChatID: userID,
		Flow:   models.AddRecordFlow,
		Steps:  models.FlowSteps{models.StartFlowStep},
	}

	err := stateStore.Create(ctx, state)
	require.NoError(t, err)

	err = stateStore.Delete(ctx, state.ID)
	require.NoError(t, err)

	actual, err := stateStore.Get(ctx, service.GetStateFilter{UserID: userID})
	require.NoError(t, err)
	assert.Nil(t, actual)
}
