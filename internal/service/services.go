package service

import (
	"context"

	"github.com/aminrz/kharj_bot/internal/models"
)

// Services represents all services.
type Services struct {
	Event   EventService
	Handler HandlerService
	State   StateService
	Parser  ParserService
}

// EventService provides functionality for receiving and dispatching bot events.
type EventService interface {
	// Listen receives all updates from the messenger API and dispatches
	// them to the handler service. Blocks until the context is canceled.
	Listen(ctx context.Context)
}

// HandlerService provides functionality for handling bot events.
type HandlerService interface {
	// HandleEventStart greets the user and shows the default keyboard.
	HandleEventStart(ctx context.Context, msg Message) error
	// HandleEventHelp sends the list of supported commands.
	HandleEventHelp(ctx context.Context, msg Message) error
	// HandleEventAddRecord starts the guided add record flow.
	HandleEventAddRecord(ctx context.Context, msg Message) error
	// HandleEventEditRecord starts the guided edit flow for an existing record.
	HandleEventEditRecord(ctx context.Context, msg Message) error
	// HandleEventDeleteRecord deletes a record by its id.
	HandleEventDeleteRecord(ctx context.Context, msg Message) error
	// HandleEventUndo deletes the most recently created record.
	HandleEventUndo(ctx context.Context, msg Message) error
	// HandleEventListRecent lists the most recently created records.
	HandleEventListRecent(ctx context.Context, msg Message) error
	// HandleEventWeekSummary sends a summary of the last 7 days.
	HandleEventWeekSummary(ctx context.Context, msg Message) error
	// HandleEventMonthSummary sends a summary of the last 30 days.
	HandleEventMonthSummary(ctx context.Context, msg Message) error
	// HandleEventMyID replies with the sender's numeric id.
	HandleEventMyID(ctx context.Context, msg Message) error
	// HandleEventMenu shows the default keyboard.
	HandleEventMenu(ctx context.Context, msg Message) error
	// HandleEventHideMenu hides the reply keyboard.
	HandleEventHideMenu(ctx context.Context, msg Message) error
	// HandleEventCancel cancels the active flow, if any.
	HandleEventCancel(ctx context.Context, msg Message) error
	// HandleEventFreeText processes non-command text. When a flow is
	// active the text feeds the current flow step, otherwise it is parsed
	// as a free-text record.
	HandleEventFreeText(ctx context.Context, msg Message) error
	// HandleError sends a generic error message to the user.
	HandleError(ctx context.Context, msg Message) error
}

// StateService provides functionality for work with conversation states.
type StateService interface {
	// GetActive returns the user's active flow state, or nil when the user
	// has no state or the state is expired or finished. Expired and
	// finished states are removed.
	GetActive(ctx context.Context, userID int64) (*models.State, error)
	// Start creates a new flow state for the user, replacing any existing
	// one. Reports whether an unfinished flow was discarded.
	Start(ctx context.Context, opts StartFlowOptions) (*models.State, bool, error)
	// Save persists the updated state.
	Save(ctx context.Context, state *models.State) error
	// Finish removes the state.
	Finish(ctx context.Context, state *models.State) error
}

// StartFlowOptions represents input options for the Start method.
type StartFlowOptions struct {
	UserID int64
	ChatID int64
	Flow   models.Flow
	Draft  models.Draft
}

// ParserService provides functionality for parsing free-text finance messages.
type ParserService interface {
	// Parse extracts a record from a free-text message.
	Parse(text string) (*models.ParsedRecord, error)
}
