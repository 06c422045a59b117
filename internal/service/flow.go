package service

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aminrz/kharj_bot/internal/models"
	"github.com/aminrz/kharj_bot/pkg/errs"
	"github.com/aminrz/kharj_bot/pkg/money"
)

var (
	// ErrInvalidRecordType happens when the flow input is not a known record type.
	ErrInvalidRecordType = errs.New("Please choose a record type: Expense, Payable or Receivable.")
	// ErrInvalidPersonName happens when the flow input is not a usable person name.
	ErrInvalidPersonName = errs.New("Please send the person's name as plain text, up to 40 characters.")
	// ErrInvalidAmount happens when the flow input is not a positive number.
	ErrInvalidAmount = errs.New("Please send the amount as a positive number, for example: 150000")
	// ErrDescriptionTooLong happens when the flow input exceeds the description limit.
	ErrDescriptionTooLong = errs.New("That description is too long. Please keep it under 200 characters.")
	// ErrInvalidConfirmation happens when the confirm step input is neither yes nor no.
	ErrInvalidConfirmation = errs.New("Please answer Yes to save or No to discard.")
)

const maxPersonNameLength = 40

const maxDescriptionLength = 200

var flowAmountCleaner = strings.NewReplacer(",", "", "_", "", ".", "", " ", "", "٬", "")

// flowStepResult represents the outcome of feeding one user input into an
// active flow.
type flowStepResult struct {
	reply    string
	keyboard []KeyboardRow
	// commit is set when the draft is complete and confirmed.
	commit bool
	// discard is set when the flow ended without saving.
	discard bool
}

// processFlowStep advances the flow state with the user input. The state is
// mutated in place, persisting it is up to the caller. Validation failures
// are returned as expected errors and leave the state untouched.
func processFlowStep(state *models.State, input string) (*flowStepResult, error) {
	input = strings.TrimSpace(input)

	if isCancelInput(input) {
		state.AdvanceTo(models.EndFlowStep)

		return &flowStepResult{
			reply:    "Canceled. Nothing was saved.",
			keyboard: defaultKeyboardRows,
			discard:  true,
		}, nil
	}

	switch state.GetCurrentStep() {
	case models.AwaitingTypeFlowStep:
		return processTypeStep(state, input)
	case models.AwaitingPersonFlowStep:
		return processPersonStep(state, input)
	case models.AwaitingAmountFlowStep:
		return processAmountStep(state, input)
	case models.AwaitingDescriptionFlowStep:
		return processDescriptionStep(state, input)
	case models.AwaitingConfirmFlowStep:
		return processConfirmStep(state, input)
	default:
		return nil, fmt.Errorf("unexpected flow step %q", state.GetCurrentStep())
	}
}

func processTypeStep(state *models.State, input string) (*flowStepResult, error) {
	kind := models.ParseRecordKind(input)
	if kind == "" {
		return nil, ErrInvalidRecordType
	}

	state.Draft.Kind = kind
	if kind.IsDebt() {
		state.AdvanceTo(models.AwaitingPersonFlowStep)

		return &flowStepResult{
			reply:    personPrompt(state.Draft),
			keyboard: cancelKeyboardRows,
		}, nil
	}

	// An expense has no counterparty, drop one left over from a prefilled draft.
	state.Draft.Counterparty = ""
	state.AdvanceTo(models.AwaitingAmountFlowStep)

	return &flowStepResult{
		reply:    amountPrompt(state.Draft),
		keyboard: cancelKeyboardRows,
	}, nil
}

func processPersonStep(state *models.State, input string) (*flowStepResult, error) {
	if !isValidPersonName(input) {
		return nil, ErrInvalidPersonName
	}

	state.Draft.Counterparty = input
	state.AdvanceTo(models.AwaitingAmountFlowStep)

	return &flowStepResult{
		reply:    amountPrompt(state.Draft),
		keyboard: cancelKeyboardRows,
	}, nil
}

func processAmountStep(state *models.State, input string) (*flowStepResult, error) {
	amount, ok := parseFlowAmount(input)
	if !ok {
		return nil, ErrInvalidAmount
	}

	state.Draft.Amount = amount
	state.AdvanceTo(models.AwaitingDescriptionFlowStep)

	return &flowStepResult{
		reply:    "What was it for? Send a short description, or Skip.",
		keyboard: skipKeyboardRows,
	}, nil
}

func processDescriptionStep(state *models.State, input string) (*flowStepResult, error) {
	description := ""
	if !isSkipInput(input) {
		description = strings.Join(strings.Fields(input), " ")
		if utf8.RuneCountInString(description) > maxDescriptionLength {
			return nil, ErrDescriptionTooLong
		}
	}

	state.Draft.Description = description
	state.AdvanceTo(models.AwaitingConfirmFlowStep)

	return &flowStepResult{
		reply:    formatDraftReview(state.Draft),
		keyboard: confirmKeyboardRows,
	}, nil
}

func processConfirmStep(state *models.State, input string) (*flowStepResult, error) {
	switch {
	case isConfirmInput(input):
		state.AdvanceTo(models.EndFlowStep)

		return &flowStepResult{
			keyboard: defaultKeyboardRows,
			commit:   true,
		}, nil
	case isDiscardInput(input):
		state.AdvanceTo(models.EndFlowStep)

		return &flowStepResult{
			reply:    "Discarded. Nothing was saved.",
			keyboard: defaultKeyboardRows,
			discard:  true,
		}, nil
	default:
		return nil, ErrInvalidConfirmation
	}
}

// stepKeyboard returns the keyboard that belongs to the current flow step,
// used to re-prompt after a validation failure.
func stepKeyboard(state *models.State) []KeyboardRow {
	switch state.GetCurrentStep() {
	case models.AwaitingTypeFlowStep:
		return recordTypeKeyboardRows
	case models.AwaitingDescriptionFlowStep:
		return skipKeyboardRows
	case models.AwaitingConfirmFlowStep:
		return confirmKeyboardRows
	default:
		return cancelKeyboardRows
	}
}

func personPrompt(draft models.Draft) string {
	prompt := "Who is the other side of this debt? Send their name."
	if draft.Counterparty != "" {
		prompt += fmt.Sprintf("\nCurrent value: %s", draft.Counterparty)
	}

	return prompt
}

func amountPrompt(draft models.Draft) string {
	prompt := "How much? Send the amount as a number, for example: 150000"
	if draft.Amount != "" {
		prompt += fmt.Sprintf("\nCurrent value: %s", groupedAmount(draft.Amount))
	}

	return prompt
}

func formatDraftReview(draft models.Draft) string {
	var builder strings.Builder

	builder.WriteString("Here's what I got:\n")
	fmt.Fprintf(&builder, "Type: %s\n", draft.Kind.GetName())
	if draft.Counterparty != "" {
		fmt.Fprintf(&builder, "Person: %s\n", draft.Counterparty)
	}
	fmt.Fprintf(&builder, "Amount: %s\n", groupedAmount(draft.Amount))
	if draft.Description != "" {
		fmt.Fprintf(&builder, "Description: %s\n", draft.Description)
	}
	builder.WriteString("\nSave this record?")

	return builder.String()
}

// parseFlowAmount parses an amount typed during a flow. Persian and Arabic
// digits are accepted, thousand separators are ignored.
func parseFlowAmount(input string) (string, bool) {
	cleaned := flowAmountCleaner.Replace(digitNormalizer.Replace(input))
	if cleaned == "" || !isDigits(cleaned) {
		return "", false
	}

	cleaned = strings.TrimLeft(cleaned, "0")
	if cleaned == "" {
		return "", false
	}

	return cleaned, true
}

func isValidPersonName(input string) bool {
	if input == "" || utf8.RuneCountInString(input) > maxPersonNameLength {
		return false
	}
	if strings.ContainsAny(input, "\n\r") {
		return false
	}

	for _, r := range input {
		if unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

func isCancelInput(input string) bool {
	return equalsAnyFold(input, models.BotCancelCommand, models.BotCancelFlowCommand, "لغو")
}

func isSkipInput(input string) bool {
	return equalsAnyFold(input, models.BotSkipCommand, "-", "رد")
}

func isConfirmInput(input string) bool {
	return equalsAnyFold(input, models.BotConfirmCommand, "y", "yes", "بله", "آره")
}

func isDiscardInput(input string) bool {
	return equalsAnyFold(input, models.BotDiscardCommand, "n", "no", "نه")
}

func equalsAnyFold(input string, values ...string) bool {
	for _, value := range values {
		if strings.EqualFold(input, value) {
			return true
		}
	}

	return false
}

func groupedAmount(amount string) string {
	value, err := money.NewFromString(amount)
	if err != nil {
		return amount
	}

	return value.Grouped()
}
