package model

import "time"

// ScenarioInput is one raw scenario in a generation request.
type ScenarioInput struct {
	Text        string `json:"text"`
	ProductCode string `json:"product_code"`
}

// GenerateRequest is a batch of scenarios plus optional proposal overrides.
type GenerateRequest struct {
	Scenarios         []ScenarioInput   `json:"scenarios"`
	ProposalOverrides ProposalQuestions `json:"proposal_overrides,omitempty"`
}

// ScenarioError reports a scenario-scoped failure. Failures are isolated:
// one bad scenario does not abort the batch.
type ScenarioError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// GenerateResponse is the outcome of one generation run.
type GenerateResponse struct {
	RunID       string             `json:"run_id"`
	CurrentDate string             `json:"current_date"`
	Records     []TestRecord       `json:"records"`
	Validations []ValidationResult `json:"validations"`
	Failures    []ScenarioError    `json:"failures,omitempty"`
}

// Run is a persisted generation run for the local history store.
type Run struct {
	ID            string           `json:"id"`
	ScenarioCount int              `json:"scenario_count"`
	RecordCount   int              `json:"record_count"`
	FailureCount  int              `json:"failure_count"`
	Request       GenerateRequest  `json:"request"`
	Response      GenerateResponse `json:"response"`
	CreatedAt     time.Time        `json:"created_at"`
}
