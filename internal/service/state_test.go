package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aminrz/kharj_bot/internal/models"
	"github.com/aminrz/kharj_bot/pkg/logger"
)

type stubStateStore struct {
	states map[int64]*models.State
}

var _ StateStore = (*stubStateStore)(nil)

func newStubStateStore() *stubStateStore {
	return &stubStateStore{states: make(map[int64]*models.State)}
}

func (s *stubStateStore) Create(_ context.Context, state *models.State) error {
	if _, ok := s.states[state.UserID]; ok {
		return fmt.Errorf("state for user %d already exists", state.UserID)
	}

	copied := *state
	s.states[state.UserID] = &copied

	return nil
}

func (s *stubStateStore) Get(_ context.Context, filter GetStateFilter) (*models.State, error) {
	state, ok := s.states[filter.UserID]
	if !ok {
		return nil, nil
	}

	copied := *state

	return &copied, nil
}

func (s *stubStateStore) Update(_ context.Context, state *models.State) (*models.State, error) {
	copied := *state
	s.states[state.UserID] = &copied

	return state, nil
}

func (s *stubStateStore) Delete(_ context.Context, stateID string) error {
	for userID, state := range s.states {
		if state.ID == stateID {
			delete(s.states, userID)
		}
	}

	return nil
}

func newTestStateService(store StateStore) *stateService {
	return NewState(&StateOptions{
		Logger: logger.New(logger.Options{LogLevel: "disabled"}),
		Stores: &Stores{State: store},
	})
}

func TestStateService_GetActive(t *testing.T) {
	t.Parallel()

	now := time.Now()

	testCases := [...]struct {
		desc          string
		state         *models.State
		expectedFound bool
	}{
		{
			desc: "positive: live state is returned",
			state: &models.State{
				ID:        "state-live",
				UserID:    10,
				ChatID:    10,
				Flow:      models.AddRecordFlow,
				Steps:     models.FlowSteps{models.StartFlowStep, models.AwaitingTypeFlowStep},
				CreatedAt: now,
				UpdatedAt: now,
			},
			expectedFound: true,
		},
		{
			desc: "negative: state inactive for more than a day is dropped",
			state: &models.State{
				ID:        "state-stale",
				UserID:    10,
				ChatID:    10,
				Flow:      models.AddRecordFlow,
				Steps:     models.FlowSteps{models.StartFlowStep, models.AwaitingAmountFlowStep},
				CreatedAt: now.Add(-26 * time.Hour),
				UpdatedAt: now.Add(-25 * time.Hour),
			},
		},
		{
			desc: "negative: finished state is dropped",
			state: &models.State{
				ID:        "state-finished",
				UserID:    10,
				ChatID:    10,
				Flow:      models.AddRecordFlow,
				Steps:     models.FlowSteps{models.StartFlowStep, models.EndFlowStep},
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			store := newStubStateStore()
			require.NoError(t, store.Create(context.Background(), tc.state))

			actual, err := newTestStateService(store).GetActive(context.Background(), tc.state.UserID)
			require.NoError(t, err)

			remaining, err := store.Get(context.Background(), GetStateFilter{UserID: tc.state.UserID})
			require.NoError(t, err)

			if tc.expectedFound {
				require.NotNil(t, actual)
				assert.Equal(t, tc.state.ID, actual.ID)
				assert.NotNil(t, remaining)

				return
			}

			assert.Nil(t, actual)
			// Stale states are removed from the store, not just hidden.
			assert.Nil(t, remaining)
		})
	}
}

func TestStateService_GetActive_noState(t *testing.T) {
	t.Parallel()

	actual, err := newTestStateService(newStubStateStore()).GetActive(context.Background(), 10)
	require.NoError(t, err)
	assert.Nil(t, actual)
}

func TestStateService_Start(t *testing.T) {
	t.Parallel()

	now := time.Now()

	testCases := [...]struct {
		desc              string
		existing          *models.State
		expectedRestarted bool
	}{
		{
			desc: "positive: no previous flow",
		},
		{
			desc: "positive: unfinished flow is discarded and reported",
			existing: &models.State{
				ID:        "state-unfinished",
				UserID:    10,
				ChatID:    10,
				Flow:      models.AddRecordFlow,
				Steps:     models.FlowSteps{models.StartFlowStep, models.AwaitingAmountFlowStep},
				CreatedAt: now,
				UpdatedAt: now,
			},
			expectedRestarted: true,
		},
		{
			desc: "positive: expired flow is replaced silently",
			existing: &models.State{
				ID:        "state-expired",
				UserID:    10,
				ChatID:    10,
				Flow:      models.AddRecordFlow,
				Steps:     models.FlowSteps{models.StartFlowStep, models.AwaitingAmountFlowStep},
				CreatedAt: now.Add(-26 * time.Hour),
				UpdatedAt: now.Add(-25 * time.Hour),
			},
		},
		{
			desc: "positive: finished flow is replaced silently",
			existing: &models.State{
				ID:        "state-done",
				UserID:    10,
				ChatID:    10,
				Flow:      models.AddRecordFlow,
				Steps:     models.FlowSteps{models.StartFlowStep, models.EndFlowStep},
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			store := newStubStateStore()
			if tc.existing != nil {
				require.NoError(t, store.Create(context.Background(), tc.existing))
			}

			state, restarted, err := newTestStateService(store).Start(context.Background(), StartFlowOptions{
				UserID: 10,
				ChatID: 20,
				Flow:   models.AddRecordFlow,
			})
			require.NoError(t, err)
			require.NotNil(t, state)

			assert.Equal(t, tc.expectedRestarted, restarted)
			assert.Equal(t, models.AwaitingTypeFlowStep, state.GetCurrentStep())

			stored, err := store.Get(context.Background(), GetStateFilter{UserID: 10})
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, state.ID, stored.ID)
			if tc.existing != nil {
				assert.NotEqual(t, tc.existing.ID, stored.ID)
			}
		})
	}
}
