package model

// IssueKind classifies a validation finding.
type IssueKind string

const (
	IssueMandatory IssueKind = "mandatory"
	IssuePattern   IssueKind = "pattern"
	IssueCondition IssueKind = "condition"
	IssueSync      IssueKind = "sync"
)

// Issue is one validation error and, paired 1:1, the fix that repaired it.
type Issue struct {
	Field    string    `json:"field"`
	Kind     IssueKind `json:"kind"`
	Message  string    `json:"message"`
	OldValue string    `json:"old_value,omitempty"`
	NewValue string    `json:"new_value,omitempty"`
}

// ValidationResult is the outcome of the validate/repair pass. Record is the
// corrected record and is always populated, valid or not — the engine
// normalizes, it does not gatekeep.
type ValidationResult struct {
	IsValid bool       `json:"is_valid"`
	Errors  []Issue    `json:"errors"`
	Fixes   []Issue    `json:"fixes"`
	Record  TestRecord `json:"record"`
}
