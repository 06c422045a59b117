package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aminrz/kharj_bot/internal/models"
	"github.com/aminrz/kharj_bot/pkg/errs"
	"github.com/aminrz/kharj_bot/pkg/logger"
	"github.com/aminrz/kharj_bot/pkg/worker"
)

// Updates from different users are processed concurrently, updates from the
// same user are serialized by the pool.
const updateWorkersCount = 4

type eventService struct {
	logger         *logger.Logger
	apis           APIs
	services       Services
	allowedUserIDs map[int64]struct{}
}

var _ EventService = (*eventService)(nil)

// EventOptions represents input options for a new instance of event service.
type EventOptions struct {
	Logger   *logger.Logger
	APIs     APIs
	Services Services
	// AllowedUserIDs restricts the bot to the listed telegram user ids.
	// An empty list allows everyone.
	AllowedUserIDs []int64
}

// NewEvent returns a new instance of event service.
func NewEvent(opts *EventOptions) *eventService {
	allowed := make(map[int64]struct{}, len(opts.AllowedUserIDs))
	for _, id := range opts.AllowedUserIDs {
		allowed[id] = struct{}{}
	}

	return &eventService{
		logger:         opts.Logger,
		apis:           opts.APIs,
		services:       opts.Services,
		allowedUserIDs: allowed,
	}
}

func (e eventService) Listen(ctx context.Context) {
	logger := e.logger.With().Str("name", "eventService.Listen").Logger()

	messages := make(chan Message)
	updateErrors := make(chan error)

	pool := worker.NewPool(updateWorkersCount, e.processMessage, func(key string, err error) {
		logger.Error().Err(err).Str("userID", key).Msg("process incoming message")
	})
	pool.Start(ctx)
	defer pool.Stop()

	go e.apis.Messenger.ReadUpdates(messages, updateErrors)

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("stopped listening for updates")
			return
		case msg := <-messages:
			pool.AddJob(ctx, strconv.FormatInt(msg.GetSenderID(), 10), msg)
		case err := <-updateErrors:
			logger.Error().Err(err).Msg("read updates from messenger")
		}
	}
}

func (e eventService) processMessage(ctx context.Context, key string, msg Message) (err error) {
	logger := e.logger.With().Str("name", "eventService.processMessage").Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Any("panic", r).Str("userID", key).Msg("recovered from panic")
			err = e.services.Handler.HandleError(ctx, msg)
		}
	}()

	event := getEventFromMessage(msg)
	logger.Debug().
		Str("event", string(event)).
		Int64("userID", msg.GetSenderID()).
		Msg("got event from incoming message")

	// The id event stays reachable so users can find the id to be allowed with.
	if !e.isAllowedUser(msg.GetSenderID()) && event != models.MyIDEvent {
		logger.Info().Int64("userID", msg.GetSenderID()).Msg("dropped message from not allowed user")
		return nil
	}

	if !msg.IsPrivateChat() {
		return e.apis.Messenger.SendMessage(
			msg.GetChatID(),
			"For privacy, please talk to me in a private chat.",
		)
	}

	return e.ReactOnEvent(ctx, event, msg)
}

func (e eventService) isAllowedUser(userID int64) bool {
	if len(e.allowedUserIDs) == 0 {
		return true
	}

	_, ok := e.allowedUserIDs[userID]
	return ok
}

// ReactOnEvent routes the event to its handler. Expected errors are replied
// to the user as is, unexpected ones produce a generic error message.
func (e eventService) ReactOnEvent(ctx context.Context, event models.Event, msg Message) error {
	logger := e.logger.With().Str("name", "eventService.ReactOnEvent").Logger()

	var err error

	switch event {
	case models.StartEvent:
		err = e.services.Handler.HandleEventStart(ctx, msg)
	case models.HelpEvent:
		err = e.services.Handler.HandleEventHelp(ctx, msg)
	case models.AddRecordEvent:
		err = e.services.Handler.HandleEventAddRecord(ctx, msg)
	case models.EditRecordEvent:
		err = e.services.Handler.HandleEventEditRecord(ctx, msg)
	case models.DeleteRecordEvent:
		err = e.services.Handler.HandleEventDeleteRecord(ctx, msg)
	case models.UndoEvent:
		err = e.services.Handler.HandleEventUndo(ctx, msg)
	case models.ListRecentEvent:
		err = e.services.Handler.HandleEventListRecent(ctx, msg)
	case models.WeekSummaryEvent:
		err = e.services.Handler.HandleEventWeekSummary(ctx, msg)
	case models.MonthSummaryEvent:
		err = e.services.Handler.HandleEventMonthSummary(ctx, msg)
	case models.MyIDEvent:
		err = e.services.Handler.HandleEventMyID(ctx, msg)
	case models.MenuEvent:
		err = e.services.Handler.HandleEventMenu(ctx, msg)
	case models.HideMenuEvent:
		err = e.services.Handler.HandleEventHideMenu(ctx, msg)
	case models.CancelEvent:
		err = e.services.Handler.HandleEventCancel(ctx, msg)
	case models.FreeTextEvent:
		err = e.services.Handler.HandleEventFreeText(ctx, msg)
	default:
		logger.Warn().Str("event", string(event)).Msg("got unknown event")
		return nil
	}

	if err == nil {
		return nil
	}

	if errs.IsExpected(err) {
		logger.Info().Err(err).Msg("handled expected error")
		return e.apis.Messenger.SendMessage(msg.GetChatID(), err.Error())
	}

	logger.Error().Err(err).Str("event", string(event)).Msg("handle event")

	handleErr := e.services.Handler.HandleError(ctx, msg)
	if handleErr != nil {
		logger.Error().Err(handleErr).Msg("send error message")
	}

	return fmt.Errorf("handle event %q: %w", event, err)
}

func getEventFromMessage(msg Message) models.Event {
	command := models.CommandFromText(msg.GetText())
	if command == "" {
		return models.FreeTextEvent
	}

	event, ok := models.CommandToEvent[command]
	if !ok {
		return models.FreeTextEvent
	}

	return event
}
