// Package oracle calls the LLM to turn scenario text into a best-effort
// structured guess. The output is untrusted: the pipeline validates and
// repairs everything downstream, and a failed oracle call degrades to
// hint-only derivation rather than failing the request.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/policyforge/casegen/internal/model"
	"github.com/policyforge/casegen/pkg/anthropic"
)

// ErrMalformedResponse marks oracle output that could not be decoded into the
// expected structure.
var ErrMalformedResponse = eris.New("malformed oracle response")

// EnrichedScenario is one scenario as presented to the model: sanitized text
// plus the catalog facts and hints already resolved locally.
type EnrichedScenario struct {
	Text             string      `json:"text"`
	ProductCode      string      `json:"product_code"`
	VehicleType      string      `json:"vehicle_type"`
	InsuranceCompany string      `json:"insurance_company"`
	Hints            hintPayload `json:"hints"`
}

type hintPayload struct {
	VehicleAge         *int     `json:"vehicle_age,omitempty"`
	ExpiryDays         *int     `json:"expiry_days,omitempty"`
	IncludeAllAddons   bool     `json:"include_all_addons,omitempty"`
	SpecifiedAddons    []string `json:"specified_addons,omitempty"`
	SpecifiedDiscounts []string `json:"specified_discounts,omitempty"`
	Model              string   `json:"model,omitempty"`
	Variant            string   `json:"variant,omitempty"`
	JourneyType        string   `json:"journey_type,omitempty"`
	OwnedBy            string   `json:"owned_by,omitempty"`
}

// NewEnriched bundles a scenario input with its extracted hints.
func NewEnriched(in model.ScenarioInput, vehicleType, insurerName string, h model.HintSet) EnrichedScenario {
	return EnrichedScenario{
		Text:             in.Text,
		ProductCode:      in.ProductCode,
		VehicleType:      vehicleType,
		InsuranceCompany: insurerName,
		Hints: hintPayload{
			VehicleAge:         h.VehicleAgeYears,
			ExpiryDays:         h.ExpiryDays,
			IncludeAllAddons:   h.IncludeAllAddons,
			SpecifiedAddons:    h.SpecifiedAddons,
			SpecifiedDiscounts: h.SpecifiedDiscounts,
			Model:              h.Model,
			Variant:            h.Variant,
			JourneyType:        string(h.JourneyType),
			OwnedBy:            string(h.OwnedBy),
		},
	}
}

// ParseRequest is one oracle invocation covering a whole batch.
type ParseRequest struct {
	Scenarios         []EnrichedScenario
	AvailableInsurers []string
	Addons            []string
	Discounts         []string
	ProposalDefaults  model.ProposalQuestions
	CurrentDate       model.Date
}

// ParseResult is the decoded oracle payload.
type ParseResult struct {
	Scenarios         []model.RawScenario     `json:"scenarios"`
	ProposalQuestions model.ProposalQuestions `json:"proposal_questions"`
	Usage             anthropic.TokenUsage    `json:"-"`
}

// Oracle extracts structured scenarios from free text.
type Oracle interface {
	ParseScenarios(ctx context.Context, req ParseRequest) (*ParseResult, error)
}

const systemText = "Output valid JSON only, strictly adhering to the provided schema. Parse natural language scenarios for 4W/2W motor insurance test cases, using context and hints to extract fields. No explanations, no Markdown."

const promptTemplate = `Parse the natural language scenarios for 4W/2W motor insurance test cases, extracting relevant fields based on context and insurance domain knowledge. Use the provided hints to guide interpretation.

Inputs:
- Scenarios: %s
- Known addons: %s
- Known discounts: %s
- Available insurers: %s
- Current date: %s
- Proposal question defaults: %s

Instructions:
- Interpret each scenario's text and hints to determine journey type, vehicle age, policy status, addons and discounts.
- For vehicle age (e.g. "10 years old"), set manufacturing_year to the current year minus the age, and registration_date within manufacturing_year or manufacturing_year + 1.
- For expiry (e.g. "expired more than 90 days"), set expiry_days accordingly.
- Use vehicle_type and insurance_company from the scenario input.
- Ensure registration_date (DD/MM/YYYY) is on or after manufacturing_year and before the current date.
- Defaults when unspecified: previous_ncb "0%%", is_inspection_required "No", idv 500000, owned_by "Individual", model null, variant null.
- For addons/discounts, use specified_addons/specified_discounts as "" when "without" is mentioned, or an array when specific ones are listed.

Output: one JSON object {"scenarios": [...], "proposal_questions": {...}} where each scenario has the keys testcase_id, journey_type, product_code, is_inspection_required, previous_ncb, manufacturing_year, vehicle_type, claim_taken, ownership_changed, idv, insurance_company, expiry_days, include_all_addons, specified_addons, specified_discounts, specified_kyc, owned_by, model, variant, registration_date.`

// client is the Anthropic-backed Oracle.
type client struct {
	ai        anthropic.Client
	model     string
	maxTokens int64
}

// New creates an Oracle backed by the given Anthropic client.
func New(ai anthropic.Client, modelID string, maxTokens int64) Oracle {
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	return &client{ai: ai, model: modelID, maxTokens: maxTokens}
}

func (c *client) ParseScenarios(ctx context.Context, req ParseRequest) (*ParseResult, error) {
	scenariosJSON, err := json.Marshal(req.Scenarios)
	if err != nil {
		return nil, eris.Wrap(err, "oracle: marshal scenarios")
	}
	defaultsJSON, err := json.Marshal(req.ProposalDefaults)
	if err != nil {
		return nil, eris.Wrap(err, "oracle: marshal proposal defaults")
	}

	prompt := fmt.Sprintf(promptTemplate,
		scenariosJSON,
		strings.Join(req.Addons, ", "),
		strings.Join(req.Discounts, ", "),
		strings.Join(req.AvailableInsurers, ", "),
		req.CurrentDate,
		defaultsJSON,
	)

	resp, err := c.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    systemText,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "oracle: parse scenarios")
	}
	resp.Usage.LogUsage(c.model, "parse")

	result, err := DecodeResult(resp.Text())
	if err != nil {
		return nil, err
	}
	result.Usage = resp.Usage
	return result, nil
}

var fenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*\n?|```\\s*$")

// CleanJSON strips markdown code fences and surrounding whitespace from a
// model response.
func CleanJSON(raw string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(strings.TrimSpace(raw), ""))
}

// DecodeResult decodes a raw oracle response body into a ParseResult.
// Missing scenarios or proposal_questions make the payload malformed.
func DecodeResult(raw string) (*ParseResult, error) {
	cleaned := CleanJSON(raw)

	var result ParseResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		zap.L().Error("oracle: response is not valid JSON",
			zap.String("content", truncate(cleaned, 500)),
			zap.Error(err),
		)
		return nil, eris.Wrap(ErrMalformedResponse, "oracle: decode")
	}
	if len(result.Scenarios) == 0 || result.ProposalQuestions == nil {
		return nil, eris.Wrap(ErrMalformedResponse, "oracle: missing scenarios or proposal_questions")
	}
	return &result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
