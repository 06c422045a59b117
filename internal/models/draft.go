package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Draft represents the partial record collected so far during a guided flow.
type Draft struct {
	// TargetRecordID is set only during the edit flow.
	TargetRecordID int64 `json:"targetRecordId,omitempty"`

	Kind         RecordKind `json:"kind,omitempty"`
	Counterparty string     `json:"counterparty,omitempty"`
	Amount       string     `json:"amount,omitempty"`
	CurrencyUnit string     `json:"currencyUnit,omitempty"`
	Description  string     `json:"description,omitempty"`
}

// Value implements the driver.Valuer interface.
func (d Draft) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface.
func (d *Draft) Scan(value any) error {
	if value == nil {
		*d = Draft{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}

	return json.Unmarshal(bytes, d)
}

// FlowSteps represents the ordered history of steps a flow went through.
type FlowSteps []FlowStep

// Value implements the driver.Valuer interface.
func (s FlowSteps) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface.
func (s *FlowSteps) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}

	return json.Unmarshal(bytes, s)
}
