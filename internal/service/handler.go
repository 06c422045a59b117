package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aminrz/kharj_bot/internal/models"
	"github.com/aminrz/kharj_bot/pkg/errs"
	"github.com/aminrz/kharj_bot/pkg/jalali"
	"github.com/aminrz/kharj_bot/pkg/logger"
)

var (
	// ErrNothingToCancel happens when /cancel arrives without an active flow.
	ErrNothingToCancel = errs.New("Nothing to cancel, you have no entry in progress.")
	// ErrNoRecordsToUndo happens when /undo arrives and the user has no records.
	ErrNoRecordsToUndo = errs.New("You have no records to undo.")
	// ErrUnknownCommand happens when a message starts with an unsupported command.
	ErrUnknownCommand = errs.New("I don't know that command. Send /help to see what I can do.")
	// ErrEditCommandUsage happens when /edit arrives without a valid record id.
	ErrEditCommandUsage = errs.New("Usage: /edit <record id>\nYou can find record ids with /last.")
	// ErrDeleteCommandUsage happens when /delete arrives without a valid record id.
	ErrDeleteCommandUsage = errs.New("Usage: /delete <record id>\nYou can find record ids with /last.")
	// ErrLastCommandUsage happens when /last arrives with a non-numeric argument.
	ErrLastCommandUsage = errs.New("Usage: /last [count]")
	// ErrLooksLikeCommand happens when a free text message resembles a mistyped command.
	ErrLooksLikeCommand = errs.New("It looks like you tried to use a command.\nSend /help or one of these:\n- /last\n- /edit <id>\n- /delete <id>\n- /add")
)

// probablyCommandRegexp catches inputs like "2. edit 3" or ".add" where the
// user most likely mistyped a command. Saving them as records would be wrong.
var probablyCommandRegexp = regexp.MustCompile(
	`(?i)^\s*(?:[.]+|[0-9]+\s*[.])\s*(?:add|edit|delete|undo|last|week|month|help|menu|hide|id|cancel|start)\b`,
)

const defaultCurrencyUnit = "تومان"

const (
	defaultRecentRecordsCount = 5
	maxRecentRecordsCount     = 50
)

const (
	weekSummaryWindow  = 7 * 24 * time.Hour
	monthSummaryWindow = 30 * 24 * time.Hour
)

const helpMessage = `Here's what I can do:

/add - Add a record step by step
/edit <id> - Edit a record
/delete <id> - Delete a record
/undo - Delete the most recent record
/last [count] - Show recent records
/week - Summary of the last 7 days
/month - Summary of the last 30 days
/id - Show your telegram id
/menu - Show the command keyboard
/hide - Hide the command keyboard
/cancel - Cancel the entry in progress

You can also just send me a message like:
100 تومن پول نون
220 تومن به ممد باید بدم`

type handlerService struct {
	logger   *logger.Logger
	services Services
	stores   Stores
	apis     APIs
}

var _ HandlerService = (*handlerService)(nil)

// HandlerOptions represents input options for a new instance of handler service.
type HandlerOptions struct {
	Logger   *logger.Logger
	Services Services
	Stores   Stores
	APIs     APIs
}

// NewHandler returns a new instance of handler service.
func NewHandler(opts *HandlerOptions) *handlerService {
	return &handlerService{
		logger:   opts.Logger,
		services: opts.Services,
		stores:   opts.Stores,
		apis:     opts.APIs,
	}
}

func (h handlerService) HandleEventStart(ctx context.Context, msg Message) error {
	message := "Hi! I keep track of your expenses and debts.\n\n" +
		"Send me a message like: 100 تومن پول نون\n" +
		"Or use /add to enter a record step by step."

	err := h.apis.Messenger.SendWithKeyboard(SendWithKeyboardOptions{
		ChatID:   msg.GetChatID(),
		Message:  message,
		Keyboard: defaultKeyboardRows,
	})
	if err != nil {
		return fmt.Errorf("send welcome message: %w", err)
	}

	return nil
}

func (h handlerService) HandleEventHelp(ctx context.Context, msg Message) error {
	err := h.apis.Messenger.SendWithKeyboard(SendWithKeyboardOptions{
		ChatID:   msg.GetChatID(),
		Message:  helpMessage,
		Keyboard: defaultKeyboardRows,
	})
	if err != nil {
		return fmt.Errorf("send help message: %w", err)
	}

	return nil
}

func (h handlerService) HandleEventAddRecord(ctx context.Context, msg Message) error {
	logger := h.logger.With().Str("name", "handlerService.HandleEventAddRecord").Logger()

	_, restarted, err := h.services.State.Start(ctx, StartFlowOptions{
		UserID: msg.GetSenderID(),
		ChatID: msg.GetChatID(),
		Flow:   models.AddRecordFlow,
	})
	if err != nil {
		logger.Error().Err(err).Msg("start add record flow")
		return fmt.Errorf("start add record flow: %w", err)
	}

	message := "What kind of record is this?"
	if restarted {
		message = "Your previous unfinished entry was discarded.\n\n" + message
	}

	err = h.apis.Messenger.SendWithKeyboard(SendWithKeyboardOptions{
		ChatID:   msg.GetChatID(),
		Message:  message,
		Keyboard: recordTypeKeyboardRows,
	})
	if err != nil {
		return fmt.Errorf("send record type prompt: %w", err)
	}

	return nil
}

func (h handlerService) HandleEventEditRecord(ctx context.Context, msg Message) error {
	logger := h.logger.With().Str("name", "handlerService.HandleEventEditRecord").Logger()

	recordID, err := parseRecordIDArg(msg.GetText())
	if err != nil {
		return ErrEditCommandUsage
	}

	record, err := h.stores.Record.Get(ctx, GetRecordFilter{
		UserID:   msg.GetSenderID(),
		RecordID: recordID,
	})
	if err != nil {
		logger.Error().Err(err).Msg("get record from store")
		return fmt.Errorf("get record from store: %w", err)
	}
	if record == nil {
		return errs.New(fmt.Sprintf("Record #%d not found.", recordID))
	}

	_, restarted, err := h.services.State.Start(ctx, StartFlowOptions{
		UserID: msg.GetSenderID(),
		ChatID: msg.GetChatID(),
		Flow:   models.EditRecordFlow,
		Draft: models.Draft{
			TargetRecordID: record.ID,
			Kind:           record.Kind,
			Counterparty:   record.Counterparty,
			Amount:         record.Amount,
			CurrencyUnit:   record.CurrencyUnit,
			Description:    record.Description,
		},
	})
	if err != nil {
		logger.Error().Err(err).Msg("start edit record flow")
		return fmt.Errorf("start edit record flow: %w", err)
	}

	message := fmt.Sprintf(
		"Editing record #%d. What kind of record is this?\nCurrent value: %s",
		record.ID, record.Kind.GetName(),
	)
	if restarted {
		message = "Your previous unfinished entry was discarded.\n\n" + message
	}

	err = h.apis.Messenger.SendWithKeyboard(SendWithKeyboardOptions{
		ChatID:   msg.GetChatID(),
		Message:  message,
		Keyboard: recordTypeKeyboardRows,
	})
	if err != nil {
		return fmt.Errorf("send record type prompt: %w", err)
	}

	return nil
}

func (h handlerService) HandleEventDeleteRecord(ctx context.Context, msg Message) error {
	logger := h.logger.With().Str("name", "handlerService.HandleEventDeleteRecord").Logger()

	recordID, err := parseRecordIDArg(msg.GetText())
	if err != nil {
		return ErrDeleteCommandUsage
	}

	deleted, err := h.stores.Record.Delete(ctx, msg.GetSenderID(), recordID)
	if err != nil {
		logger.Error().Err(err).Msg("delete record from store")
		return fmt.Errorf("delete record from store: %w", err)
	}
	if !deleted {
		return errs.New(fmt.Sprintf("Record #%d not found.", recordID))
	}

	err = h.apis.Messenger.SendMessage(msg.GetChatID(), fmt.Sprintf("Record #%d deleted.", recordID))
	if err != nil {
		return fmt.Errorf("send record deleted message: %w", err)
	}

	return nil
}

func (h handlerService) HandleEventUndo(ctx context.Context, msg Message) error {
	logger := h.logger.With().Str("name", "handlerService.HandleEventUndo").Logger()

	records, err := h.stores.Record.List(ctx, ListRecordsFilter{
		UserID:              msg.GetSenderID(),
		Limit:               1,
		SortByCreatedAtDesc: true,
	})
	if err != nil {
		logger.Error().Err(err).Msg("list records from store")
		return fmt.Errorf("list records from store: %w", err)
	}
	if len(records) == 0 {
		return ErrNoRecordsToUndo
	}

	record := records[0]

	deleted, err := h.stores.Record.Delete(ctx, msg.GetSenderID(), record.ID)
	if err != nil {
		logger.Error().Err(err).Msg("delete record from store")
		return fmt.Errorf("delete record from store: %w", err)
	}
	if !deleted {
		return ErrNoRecordsToUndo
	}

	err = h.apis.Messenger.SendMessage(
		msg.GetChatID(),
		fmt.Sprintf("Removed record #%d:\n%s", record.ID, formatRecordLine(record)),
	)
	if err != nil {
		return fmt.Errorf("send record removed message: %w", err)
	}

	return nil
}

func (h handlerService) HandleEventListRecent(ctx context.Context, msg Message) error {
	logger := h.logger.With().Str("name", "handlerService.HandleEventListRecent").Logger()

	count := defaultRecentRecordsCount
	if args := models.CommandArgs(msg.GetText()); len(args) != 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			return ErrLastCommandUsage
		}

		count = parsed
	}
	if count > maxRecentRecordsCount {
		count = maxRecentRecordsCount
	}

	records, err := h.stores.Record.List(ctx, ListRecordsFilter{
		UserID:              msg.GetSenderID(),
		Limit:               count,
		SortByCreatedAtDesc: true,
	})
	if err != nil {
		logger.Error().Err(err).Msg("list records from store")
		return fmt.Errorf("list records from store: %w", err)
	}
	if len(records) == 0 {
		return errs.New("You have no records yet. Send /add to create one.")
	}

	err = h.apis.Messenger.SendMessage(msg.GetChatID(), formatRecentRecords(records))
	if err != nil {
		return fmt.Errorf("send recent records message: %w", err)
	}

	return nil
}

func (h handlerService) HandleEventWeekSummary(ctx context.Context, msg Message) error {
	return h.sendSummary(ctx, msg, "Last 7 days", weekSummaryWindow)
}

func (h handlerService) HandleEventMonthSummary(ctx context.Context, msg Message) error {
	return h.sendSummary(ctx, msg, "Last 30 days", monthSummaryWindow)
}

func (h handlerService) sendSummary(ctx context.Context, msg Message, title string, window time.Duration) error {
	logger := h.logger.With().Str("name", "handlerService.sendSummary").Logger()

	now := time.Now()

	summary, err := h.stores.Record.Aggregate(ctx, AggregateRecordsFilter{
		UserID: msg.GetSenderID(),
		From:   now.Add(-window),
		To:     now,
	})
	if err != nil {
		logger.Error().Err(err).Msg("aggregate records in store")
		return fmt.Errorf("aggregate records in store: %w", err)
	}

	message := summary.Format(models.FormatSummaryOptions{
		Title:     title,
		MaxPeople: 5,
		MaxDays:   int(window / (24 * time.Hour)),
	})

	err = h.apis.Messenger.SendMessage(msg.GetChatID(), message)
	if err != nil {
		return fmt.Errorf("send summary message: %w", err)
	}

	return nil
}

func (h handlerService) HandleEventMyID(ctx context.Context, msg Message) error {
	err := h.apis.Messenger.SendMessage(
		msg.GetChatID(),
		fmt.Sprintf("Your telegram id: %d", msg.GetSenderID()),
	)
	if err != nil {
		return fmt.Errorf("send telegram id message: %w", err)
	}

	return nil
}

func (h handlerService) HandleEventMenu(ctx context.Context, msg Message) error {
	err := h.apis.Messenger.SendWithKeyboard(SendWithKeyboardOptions{
		ChatID:   msg.GetChatID(),
		Message:  "Choose a command:",
		Keyboard: defaultKeyboardRows,
	})
	if err != nil {
		return fmt.Errorf("send menu keyboard: %w", err)
	}

	return nil
}

func (h handlerService) HandleEventHideMenu(ctx context.Context, msg Message) error {
	err := h.apis.Messenger.RemoveKeyboard(
		msg.GetChatID(),
		"Keyboard hidden. Send /menu to bring it back.",
	)
	if err != nil {
		return fmt.Errorf("hide menu keyboard: %w", err)
	}

	return nil
}

func (h handlerService) HandleEventCancel(ctx context.Context, msg Message) error {
	logger := h.logger.With().Str("name", "handlerService.HandleEventCancel").Logger()

	state, err := h.services.State.GetActive(ctx, msg.GetSenderID())
	if err != nil {
		logger.Error().Err(err).Msg("get active state")
		return fmt.Errorf("get active state: %w", err)
	}
	if state == nil {
		return ErrNothingToCancel
	}

	err = h.services.State.Finish(ctx, state)
	if err != nil {
		logger.Error().Err(err).Msg("finish flow")
		return fmt.Errorf("finish flow: %w", err)
	}

	err = h.apis.Messenger.SendWithKeyboard(SendWithKeyboardOptions{
		ChatID:   msg.GetChatID(),
		Message:  fmt.Sprintf("%s canceled. Nothing was saved.", state.GetFlowName()),
		Keyboard: defaultKeyboardRows,
	})
	if err != nil {
		return fmt.Errorf("send flow canceled message: %w", err)
	}

	return nil
}

func (h handlerService) HandleEventFreeText(ctx context.Context, msg Message) error {
	logger := h.logger.With().Str("name", "handlerService.HandleEventFreeText").Logger()

	state, err := h.services.State.GetActive(ctx, msg.GetSenderID())
	if err != nil {
		logger.Error().Err(err).Msg("get active state")
		return fmt.Errorf("get active state: %w", err)
	}

	text := strings.TrimSpace(msg.GetText())

	if strings.HasPrefix(text, "/") {
		return ErrUnknownCommand
	}
	if probablyCommandRegexp.MatchString(digitNormalizer.Replace(text)) {
		return ErrLooksLikeCommand
	}

	if state != nil {
		return h.handleFlowInput(ctx, msg, state, text)
	}

	if isGreeting(text) {
		err := h.apis.Messenger.SendMessage(
			msg.GetChatID(),
			"سلام! Send me an expense like: 100 تومن پول نون\nOr use /add to enter a record step by step.",
		)
		if err != nil {
			return fmt.Errorf("send greeting message: %w", err)
		}

		return nil
	}

	parsed, err := h.services.Parser.Parse(text)
	if err != nil {
		return err
	}

	record := &models.Record{
		UserID:       msg.GetSenderID(),
		Kind:         parsed.Kind,
		Amount:       parsed.Amount,
		CurrencyUnit: parsed.CurrencyUnit,
		Counterparty: parsed.Counterparty,
		Description:  parsed.Description,
		Raw:          parsed.Raw,
	}

	recordID, err := h.stores.Record.Create(ctx, record)
	if err != nil {
		logger.Error().Err(err).Msg("create record in store")
		return fmt.Errorf("create record in store: %w", err)
	}
	record.ID = recordID

	err = h.apis.Messenger.SendMessage(msg.GetChatID(), formatRecordSaved(record))
	if err != nil {
		return fmt.Errorf("send record saved message: %w", err)
	}

	return nil
}

// handleFlowInput feeds one user message into the active flow and persists,
// commits or discards the state depending on the outcome.
func (h handlerService) handleFlowInput(ctx context.Context, msg Message, state *models.State, text string) error {
	logger := h.logger.With().Str("name", "handlerService.handleFlowInput").Logger()

	result, err := processFlowStep(state, text)
	if err != nil {
		if !errs.IsExpected(err) {
			logger.Error().Err(err).Msg("process flow step")
			return fmt.Errorf("process flow step: %w", err)
		}

		// Validation failure, re-prompt with the keyboard of the current step.
		sendErr := h.apis.Messenger.SendWithKeyboard(SendWithKeyboardOptions{
			ChatID:   msg.GetChatID(),
			Message:  err.Error(),
			Keyboard: stepKeyboard(state),
		})
		if sendErr != nil {
			return fmt.Errorf("send flow validation message: %w", sendErr)
		}

		return nil
	}

	switch {
	case result.commit:
		return h.commitFlowDraft(ctx, msg, state)
	case result.discard:
		err := h.services.State.Finish(ctx, state)
		if err != nil {
			logger.Error().Err(err).Msg("finish flow")
			return fmt.Errorf("finish flow: %w", err)
		}
	default:
		err := h.services.State.Save(ctx, state)
		if err != nil {
			logger.Error().Err(err).Msg("save flow state")
			return fmt.Errorf("save flow state: %w", err)
		}
	}

	err = h.apis.Messenger.SendWithKeyboard(SendWithKeyboardOptions{
		ChatID:   msg.GetChatID(),
		Message:  result.reply,
		Keyboard: result.keyboard,
	})
	if err != nil {
		return fmt.Errorf("send flow step message: %w", err)
	}

	return nil
}

func (h handlerService) commitFlowDraft(ctx context.Context, msg Message, state *models.State) error {
	logger := h.logger.With().Str("name", "handlerService.commitFlowDraft").Logger()

	draft := state.Draft

	currencyUnit := draft.CurrencyUnit
	if currencyUnit == "" {
		currencyUnit = defaultCurrencyUnit
	}

	record := &models.Record{
		ID:           draft.TargetRecordID,
		UserID:       state.UserID,
		Kind:         draft.Kind,
		Amount:       draft.Amount,
		CurrencyUnit: currencyUnit,
		Counterparty: draft.Counterparty,
		Description:  draft.Description,
		// Guided entries have no original message to keep.
		Raw: "guided",
	}

	switch state.Flow {
	case models.EditRecordFlow:
		updated, err := h.stores.Record.Update(ctx, record)
		if err != nil {
			logger.Error().Err(err).Msg("update record in store")
			return fmt.Errorf("update record in store: %w", err)
		}
		if !updated {
			finishErr := h.services.State.Finish(ctx, state)
			if finishErr != nil {
				logger.Error().Err(finishErr).Msg("finish flow")
			}

			return errs.New(fmt.Sprintf("Record #%d no longer exists.", record.ID))
		}
	default:
		recordID, err := h.stores.Record.Create(ctx, record)
		if err != nil {
			logger.Error().Err(err).Msg("create record in store")
			return fmt.Errorf("create record in store: %w", err)
		}
		record.ID = recordID
	}

	err := h.services.State.Finish(ctx, state)
	if err != nil {
		logger.Error().Err(err).Msg("finish flow")
		return fmt.Errorf("finish flow: %w", err)
	}

	message := formatRecordSaved(record)
	if state.Flow == models.EditRecordFlow {
		message = fmt.Sprintf("Updated record #%d:\n%s", record.ID, formatRecordLine(*record))
	}

	err = h.apis.Messenger.SendWithKeyboard(SendWithKeyboardOptions{
		ChatID:   msg.GetChatID(),
		Message:  message,
		Keyboard: defaultKeyboardRows,
	})
	if err != nil {
		return fmt.Errorf("send record saved message: %w", err)
	}

	return nil
}

func (h handlerService) HandleError(ctx context.Context, msg Message) error {
	err := h.apis.Messenger.SendMessage(
		msg.GetChatID(),
		"Something went wrong!\nPlease try again later or see supported commands with /help",
	)
	if err != nil {
		return fmt.Errorf("send error message: %w", err)
	}

	return nil
}

func parseRecordIDArg(text string) (int64, error) {
	args := models.CommandArgs(text)
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one argument, got %d", len(args))
	}

	recordID, err := strconv.ParseInt(digitNormalizer.Replace(args[0]), 10, 64)
	if err != nil || recordID < 1 {
		return 0, fmt.Errorf("invalid record id %q", args[0])
	}

	return recordID, nil
}

var greetings = map[string]struct{}{
	"سلام":  {},
	"درود":  {},
	"hi":    {},
	"hello": {},
	"hey":   {},
}

func isGreeting(text string) bool {
	cleaned := strings.ToLower(strings.Trim(text, " \t!.؟?،,"))

	_, ok := greetings[cleaned]
	return ok
}

func formatRecordSaved(record *models.Record) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "Saved record #%d:\n", record.ID)
	fmt.Fprintf(&builder, "Type: %s\n", record.Kind.GetName())
	if record.Counterparty != "" {
		fmt.Fprintf(&builder, "Person: %s\n", record.Counterparty)
	}
	fmt.Fprintf(&builder, "Amount: %s %s\n", groupedAmount(record.Amount), record.CurrencyUnit)
	if record.Description != "" {
		fmt.Fprintf(&builder, "Description: %s\n", record.Description)
	}
	fmt.Fprintf(&builder, "Date: %s", jalali.FormatDual(recordTimestamp(record)))

	return builder.String()
}

func formatRecentRecords(records []models.Record) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "Your last %d record(s):\n", len(records))
	for _, record := range records {
		builder.WriteString("\n")
		fmt.Fprintf(&builder, "#%d %s\n%s", record.ID, jalali.FormatDual(record.CreatedAt), formatRecordLine(record))
		builder.WriteString("\n")
	}

	return builder.String()
}

func formatRecordLine(record models.Record) string {
	line := fmt.Sprintf("%s: %s %s", record.Kind.GetName(), groupedAmount(record.Amount), record.CurrencyUnit)
	if record.Counterparty != "" {
		line += fmt.Sprintf(" (%s)", record.Counterparty)
	}
	if record.Description != "" {
		line += fmt.Sprintf(" - %s", record.Description)
	}

	return line
}

func recordTimestamp(record *models.Record) time.Time {
	if record.CreatedAt.IsZero() {
		return time.Now()
	}

	return record.CreatedAt
}
