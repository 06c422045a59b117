package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aminrz/kharj_bot/internal/models"
	"github.com/aminrz/kharj_bot/pkg/logger"
)

// Abandoned flows are dropped after this long.
const stateTTL = 24 * time.Hour

type stateService struct {
	logger *logger.Logger
	stores *Stores
}

var _ StateService = (*stateService)(nil)

// StateOptions represents input options for a new instance of state service.
type StateOptions struct {
	Logger *logger.Logger
	Stores *Stores
}

// NewState returns a new instance of state service.
func NewState(opts *StateOptions) *stateService {
	return &stateService{
		logger: opts.Logger,
		stores: opts.Stores,
	}
}

func (s stateService) GetActive(ctx context.Context, userID int64) (*models.State, error) {
	logger := s.logger.With().Str("name", "stateService.GetActive").Logger()

	state, err := s.stores.State.Get(ctx, GetStateFilter{UserID: userID})
	if err != nil {
		logger.Error().Err(err).Msg("get state from store")
		return nil, fmt.Errorf("get state from store: %w", err)
	}
	if state == nil {
		return nil, nil
	}

	if state.IsFlowFinished() || state.IsExpired(time.Now(), stateTTL) {
		err := s.stores.State.Delete(ctx, state.ID)
		if err != nil {
			logger.Error().Err(err).Msg("delete stale state from store")
			return nil, fmt.Errorf("delete stale state from store: %w", err)
		}

		logger.Debug().Any("state", state).Msg("dropped stale state")
		return nil, nil
	}

	return state, nil
}

func (s stateService) Start(ctx context.Context, opts StartFlowOptions) (*models.State, bool, error) {
	logger := s.logger.With().Str("name", "stateService.Start").Logger()

	existing, err := s.stores.State.Get(ctx, GetStateFilter{UserID: opts.UserID})
	if err != nil {
		logger.Error().Err(err).Msg("get state from store")
		return nil, false, fmt.Errorf("get state from store: %w", err)
	}

	restarted := false
	if existing != nil {
		restarted = !existing.IsFlowFinished() && !existing.IsExpired(time.Now(), stateTTL)

		err := s.stores.State.Delete(ctx, existing.ID)
		if err != nil {
			logger.Error().Err(err).Msg("delete state from store")
			return nil, false, fmt.Errorf("delete state from store: %w", err)
		}
	}

	now := time.Now()
	state := &models.State{
		ID:        uuid.NewString(),
		UserID:    opts.UserID,
		ChatID:    opts.ChatID,
		Flow:      opts.Flow,
		Steps:     models.FlowSteps{models.StartFlowStep, models.AwaitingTypeFlowStep},
		Draft:     opts.Draft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.stores.State.Create(ctx, state)
	if err != nil {
		logger.Error().Err(err).Msg("create state in store")
		return nil, false, fmt.Errorf("create state in store: %w", err)
	}

	logger.Debug().Any("state", state).Msg("started flow")
	return state, restarted, nil
}

func (s stateService) Save(ctx context.Context, state *models.State) error {
	logger := s.logger.With().Str("name", "stateService.Save").Logger()

	state.UpdatedAt = time.Now()

	_, err := s.stores.State.Update(ctx, state)
	if err != nil {
		logger.Error().Err(err).Msg("update state in store")
		return fmt.Errorf("update state in store: %w", err)
	}

	return nil
}

func (s stateService) Finish(ctx context.Context, state *models.State) error {
	logger := s.logger.With().Str("name", "stateService.Finish").Logger()

	err := s.stores.State.Delete(ctx, state.ID)
	if err != nil {
		logger.Error().Err(err).Msg("delete state from store")
		return fmt.Errorf("delete state from store: %w", err)
	}

	return nil
}
