package models

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// State represents the current state of a user's interaction with the bot.
// Exactly one state may exist per user at a time.
type State struct {
	ID     string `db:"id"`
	UserID int64  `db:"user_id"`
	ChatID int64  `db:"chat_id"`

	Flow  Flow      `db:"flow"`
	Steps FlowSteps `db:"steps"`

	Draft Draft `db:"draft"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// GetFlowName returns the flow name in pretty format.
func (s *State) GetFlowName() string {
	parts := strings.Split(string(s.Flow), "_")

	var result string
	for index, part := range parts {
		if index == 0 {
			caser := cases.Title(language.English)
			result += caser.String(part)

			continue
		}

		result += " " + part
	}

	return result
}

// GetCurrentStep returns the current step in the flow.
func (s *State) GetCurrentStep() FlowStep {
	return s.Steps[len(s.Steps)-1]
}

// AdvanceTo appends the next step to the flow history.
func (s *State) AdvanceTo(step FlowStep) {
	s.Steps = append(s.Steps, step)
}

// IsFlowFinished checks if the current flow has reached its end.
func (s *State) IsFlowFinished() bool {
	return s.GetCurrentStep() == EndFlowStep
}

// IsExpired reports whether the state has been inactive for longer
// than the given ttl.
func (s *State) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.UpdatedAt) > ttl
}

// Flow represents the type of interaction flow currently active.
type Flow string

const (
	// AddRecordFlow represents the guided flow for creating a new record.
	AddRecordFlow Flow = "add_record"
	// EditRecordFlow represents the guided flow for editing an existing record.
	EditRecordFlow Flow = "edit_record"
)

// FlowStep represents a specific step within a flow.
type FlowStep string

const (
	// StartFlowStep represents the initial step of any flow.
	StartFlowStep FlowStep = "start"
	// EndFlowStep represents the final step of any flow.
	EndFlowStep FlowStep = "end"

	// AwaitingTypeFlowStep represents the step for choosing the record kind.
	AwaitingTypeFlowStep FlowStep = "awaiting_type"
	// AwaitingPersonFlowStep represents the step for entering the counterparty name.
	AwaitingPersonFlowStep FlowStep = "awaiting_person"
	// AwaitingAmountFlowStep represents the step for entering the amount.
	AwaitingAmountFlowStep FlowStep = "awaiting_amount"
	// AwaitingDescriptionFlowStep represents the step for entering the description.
	AwaitingDescriptionFlowStep FlowStep = "awaiting_description"
	// AwaitingConfirmFlowStep represents the step for confirming the collected record.
	AwaitingConfirmFlowStep FlowStep = "awaiting_confirm"
)
