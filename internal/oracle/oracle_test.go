package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyforge/casegen/internal/model"
	"github.com/policyforge/casegen/pkg/anthropic"
)

type fakeAI struct {
	response string
	err      error
	lastReq  anthropic.MessageRequest
}

func (f *fakeAI) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: f.response}},
	}, nil
}

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no language", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSON(tt.in))
		})
	}
}

func TestDecodeResult(t *testing.T) {
	raw := "```json\n" + `{
		"scenarios": [
			{"journey_type": "Rollover", "manufacturing_year": 2015, "expiry_days": "95"}
		],
		"proposal_questions": {"valid_puc": "Yes"}
	}` + "\n```"

	result, err := DecodeResult(raw)
	require.NoError(t, err)
	require.Len(t, result.Scenarios, 1)
	assert.Equal(t, "Rollover", result.Scenarios[0].JourneyType)
	assert.Equal(t, float64(2015), result.Scenarios[0].ManufacturingYear)
	assert.Equal(t, "95", result.Scenarios[0].ExpiryDays)
	assert.Equal(t, "Yes", result.ProposalQuestions.StringValue("valid_puc"))
}

func TestDecodeResultMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "I could not parse that."},
		{"empty scenarios", `{"scenarios": [], "proposal_questions": {}}`},
		{"missing proposal questions", `{"scenarios": [{"journey_type": "Rollover"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeResult(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestParseScenarios(t *testing.T) {
	ai := &fakeAI{response: `{
		"scenarios": [{"journey_type": "New Business", "product_code": "X"}],
		"proposal_questions": {"valid_puc": "Yes"}
	}`}
	o := New(ai, "test-model", 0)

	in := model.ScenarioInput{Text: "brand new car", ProductCode: "GODIGIT_PC_COMPREHENSIVE"}
	result, err := o.ParseScenarios(context.Background(), ParseRequest{
		Scenarios:         []EnrichedScenario{NewEnriched(in, "4W", "Go Digit General Insurance", model.HintSet{})},
		AvailableInsurers: []string{"Go Digit General Insurance"},
		Addons:            []string{"ZERO_DEPRECIATION_COVER"},
		Discounts:         []string{"NCB_PROTECTION"},
		ProposalDefaults:  model.ProposalQuestions{"valid_puc": "Yes"},
		CurrentDate:       model.NewDate(2025, 9, 1),
	})
	require.NoError(t, err)
	require.Len(t, result.Scenarios, 1)
	assert.Equal(t, "New Business", result.Scenarios[0].JourneyType)

	// The prompt carries the scenario text and catalog facts.
	prompt := ai.lastReq.Messages[0].Content
	assert.Contains(t, prompt, "brand new car")
	assert.Contains(t, prompt, "ZERO_DEPRECIATION_COVER")
	assert.Contains(t, prompt, "Go Digit General Insurance")
	assert.Contains(t, prompt, "01/09/2025")
	assert.Equal(t, int64(2000), ai.lastReq.MaxTokens)
}

func TestParseScenariosUpstreamError(t *testing.T) {
	ai := &fakeAI{err: assert.AnError}
	o := New(ai, "test-model", 500)

	_, err := o.ParseScenarios(context.Background(), ParseRequest{})
	assert.Error(t, err)
}
