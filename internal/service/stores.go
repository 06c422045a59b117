package service

import (
	"context"
	"time"

	"github.com/aminrz/kharj_bot/internal/models"
)

// Stores represents all stores.
type Stores struct {
	Record RecordStore
	State  StateStore
}

// RecordStore provides functionality for work with finance records.
type RecordStore interface {
	// Create creates a new record and returns its user-scoped id.
	Create(ctx context.Context, record *models.Record) (int64, error)
	// Get returns a record that matches the filter, or nil if none exists.
	Get(ctx context.Context, filter GetRecordFilter) (*models.Record, error)
	// Update updates the record fields by user id and record id. Returns
	// false when the record does not exist.
	Update(ctx context.Context, record *models.Record) (bool, error)
	// Delete removes a record by user id and record id. Returns false
	// when the record does not exist.
	Delete(ctx context.Context, userID, recordID int64) (bool, error)
	// List returns records that match the filter.
	List(ctx context.Context, filter ListRecordsFilter) ([]models.Record, error)
	// Aggregate builds a summary of the records that match the filter.
	Aggregate(ctx context.Context, filter AggregateRecordsFilter) (*models.Summary, error)
}

// GetRecordFilter represents a filter for the Get record method.
type GetRecordFilter struct {
	UserID   int64
	RecordID int64
}

// ListRecordsFilter represents a filter for the List records method.
type ListRecordsFilter struct {
	UserID              int64
	Limit               int
	SortByCreatedAtDesc bool
}

// AggregateRecordsFilter represents a filter for the Aggregate records method.
type AggregateRecordsFilter struct {
	UserID int64
	From   time.Time
	To     time.Time
}

// StateStore provides functionality for work with conversation states.
type StateStore interface {
	// Create creates a new state.
	Create(ctx context.Context, state *models.State) error
	// Get returns a state that matches the filter, or nil if none exists.
	Get(ctx context.Context, filter GetStateFilter) (*models.State, error)
	// Update updates the state and returns the updated value.
	Update(ctx context.Context, state *models.State) (*models.State, error)
	// Delete removes a state by its id.
	Delete(ctx context.Context, stateID string) error
}

// GetStateFilter represents a filter for the Get state method.
type GetStateFilter struct {
	UserID int64
}
