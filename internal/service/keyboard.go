package service

import "github.com/aminrz/kharj_bot/internal/models"

var defaultKeyboardRows = []KeyboardRow{
	{
		Buttons: []string{models.BotAddRecordCommand},
	},
	{
		Buttons: []string{models.BotWeekSummaryCommand, models.BotMonthSummaryCommand},
	},
	{
		Buttons: []string{models.BotListRecentCommand, models.BotUndoCommand},
	},
	{
		Buttons: []string{models.BotMyIDCommand, models.BotHelpCommand, models.BotHideMenuCommand},
	},
}

var recordTypeKeyboardRows = []KeyboardRow{
	{
		Buttons: []string{
			models.BotExpenseTypeCommand,
			models.BotPayableTypeCommand,
			models.BotReceivableTypeCommand,
		},
	},
	{
		Buttons: []string{models.BotCancelFlowCommand},
	},
}

var cancelKeyboardRows = []KeyboardRow{
	{
		Buttons: []string{models.BotCancelFlowCommand},
	},
}

var skipKeyboardRows = []KeyboardRow{
	{
		Buttons: []string{models.BotSkipCommand, models.BotCancelFlowCommand},
	},
}

var confirmKeyboardRows = []KeyboardRow{
	{
		Buttons: []string{models.BotConfirmCommand, models.BotDiscardCommand},
	},
}
