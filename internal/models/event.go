package models

// Event represents the type of event that occurs during bot interaction.
type Event string

const (
	// StartEvent represents the event when user starts interacting with the bot
	StartEvent Event = "start"
	// HelpEvent represents the event for showing the help text
	HelpEvent Event = "help"
	// AddRecordEvent represents the event for starting the guided record entry
	AddRecordEvent Event = "record/add"
	// EditRecordEvent represents the event for editing a record
	EditRecordEvent Event = "record/edit"
	// DeleteRecordEvent represents the event for deleting a record by id
	DeleteRecordEvent Event = "record/delete"
	// UndoEvent represents the event for deleting the last record
	UndoEvent Event = "record/undo"
	// ListRecentEvent represents the event for showing recent records
	ListRecentEvent Event = "record/list_recent"
	// WeekSummaryEvent represents the event for the weekly summary
	WeekSummaryEvent Event = "summary/week"
	// MonthSummaryEvent represents the event for the monthly summary
	MonthSummaryEvent Event = "summary/month"
	// MyIDEvent represents the event for showing the sender's user id
	MyIDEvent Event = "my_id"
	// MenuEvent represents the event for showing the command keyboard
	MenuEvent Event = "menu"
	// HideMenuEvent represents the event for hiding the command keyboard
	HideMenuEvent Event = "hide_menu"
	// CancelEvent represents the event for canceling the current flow
	CancelEvent Event = "cancel"
	// FreeTextEvent represents a non-command message: either a guided flow
	// input or a free-form record to parse
	FreeTextEvent Event = "free_text"
)

// CommandToEvent maps bot commands to their corresponding events.
var CommandToEvent = map[string]Event{
	BotStartCommand:        StartEvent,
	BotHelpCommand:         HelpEvent,
	BotAddRecordCommand:    AddRecordEvent,
	BotEditRecordCommand:   EditRecordEvent,
	BotDeleteRecordCommand: DeleteRecordEvent,
	BotUndoCommand:         UndoEvent,
	BotListRecentCommand:   ListRecentEvent,
	BotWeekSummaryCommand:  WeekSummaryEvent,
	BotMonthSummaryCommand: MonthSummaryEvent,
	BotMyIDCommand:         MyIDEvent,
	BotMenuCommand:         MenuEvent,
	BotHideMenuCommand:     HideMenuEvent,
	BotCancelCommand:       CancelEvent,
}
