package models

import "strings"

// Commands that we can receive from bot.
const (
	// BotStartCommand represents the command to start the bot
	BotStartCommand string = "/start"
	// BotHelpCommand represents the command to show the help text
	BotHelpCommand string = "/help"
	// BotAddRecordCommand represents the command to start the guided record entry
	BotAddRecordCommand string = "/add"
	// BotEditRecordCommand represents the command to edit a record by id
	BotEditRecordCommand string = "/edit"
	// BotDeleteRecordCommand represents the command to delete a record by id
	BotDeleteRecordCommand string = "/delete"
	// BotUndoCommand represents the command to delete the last record
	BotUndoCommand string = "/undo"
	// BotListRecentCommand represents the command to show recent records
	BotListRecentCommand string = "/last"
	// BotWeekSummaryCommand represents the command to show the weekly summary
	BotWeekSummaryCommand string = "/week"
	// BotMonthSummaryCommand represents the command to show the monthly summary
	BotMonthSummaryCommand string = "/month"
	// BotMyIDCommand represents the command to show the sender's telegram user id
	BotMyIDCommand string = "/id"
	// BotMenuCommand represents the command to show the command keyboard
	BotMenuCommand string = "/menu"
	// BotHideMenuCommand represents the command to hide the command keyboard
	BotHideMenuCommand string = "/hide"
	// BotCancelCommand represents the command that will cancel the current flow
	BotCancelCommand string = "/cancel"
)

// Guided flow keyboard labels. The reply keyboard sends the label back as a
// plain text message, so these are matched as flow inputs.
const (
	// BotExpenseTypeCommand selects the expense kind during the type step
	BotExpenseTypeCommand string = "Expense"
	// BotPayableTypeCommand selects the payable kind during the type step
	BotPayableTypeCommand string = "Payable"
	// BotReceivableTypeCommand selects the receivable kind during the type step
	BotReceivableTypeCommand string = "Receivable"
	// BotSkipCommand skips the description step
	BotSkipCommand string = "Skip"
	// BotConfirmCommand commits the collected record
	BotConfirmCommand string = "Yes"
	// BotDiscardCommand discards the collected record
	BotDiscardCommand string = "No"
	// BotCancelFlowCommand cancels the flow from a keyboard button
	BotCancelFlowCommand string = "Cancel"
)

// AvailableCommands is a list of all available bot commands.
var AvailableCommands = []string{
	BotStartCommand, BotHelpCommand,
	BotAddRecordCommand, BotEditRecordCommand, BotDeleteRecordCommand,
	BotUndoCommand, BotListRecentCommand,
	BotWeekSummaryCommand, BotMonthSummaryCommand,
	BotMyIDCommand, BotMenuCommand, BotHideMenuCommand,
	BotCancelCommand,
}

// CommandFromText extracts the leading bot command from the message text.
// Returns an empty string when the text does not start with a known command.
func CommandFromText(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}

	command := fields[0]
	// Group chats may address commands as /add@bot_name.
	command, _, _ = strings.Cut(command, "@")

	for _, c := range AvailableCommands {
		if c == command {
			return c
		}
	}

	return ""
}

// CommandArgs returns the whitespace-separated arguments that follow the command.
func CommandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return nil
	}

	return fields[1:]
}
