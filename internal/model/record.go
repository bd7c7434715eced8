package model

import "encoding/json"

// AddonSelection is one selected insurance cover on a record.
type AddonSelection struct {
	InsuranceCoverCode string `json:"insurance_cover_code"`
}

// DiscountSelection is one selected discount on a record.
type DiscountSelection struct {
	DiscountCode string `json:"discount_code"`
	SumAssured   string `json:"sa"`
}

// AddonList carries the three-state addon selection: nil serializes as "",
// which downstream readers treat as "no information"; an empty non-nil list
// serializes as [] and means "explicitly none".
type AddonList []AddonSelection

func (l AddonList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return json.Marshal("")
	}
	return json.Marshal([]AddonSelection(l))
}

func (l *AddonList) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = nil
		return nil
	}
	var items []AddonSelection
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	if items == nil {
		items = []AddonSelection{}
	}
	*l = items
	return nil
}

// DiscountList mirrors AddonList for discounts.
type DiscountList []DiscountSelection

func (l DiscountList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return json.Marshal("")
	}
	return json.Marshal([]DiscountSelection(l))
}

func (l *DiscountList) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = nil
		return nil
	}
	var items []DiscountSelection
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	if items == nil {
		items = []DiscountSelection{}
	}
	*l = items
	return nil
}

// ProposalQuestions is the named-field set of the insurance application form.
// Values are strings except the nested address object.
type ProposalQuestions map[string]any

// Clone returns a shallow copy one level deep (nested address map copied).
func (p ProposalQuestions) Clone() ProposalQuestions {
	out := make(ProposalQuestions, len(p))
	for k, v := range p {
		if m, ok := v.(map[string]any); ok {
			nested := make(map[string]any, len(m))
			for nk, nv := range m {
				nested[nk] = nv
			}
			out[k] = nested
			continue
		}
		out[k] = v
	}
	return out
}

// StringValue returns the field as a string, "" for absent or non-string.
func (p ProposalQuestions) StringValue(key string) string {
	s, _ := p[key].(string)
	return s
}

// KYCOption is one supported identity-document bundle, keyed by format name.
type KYCOption map[string]map[string]string

// TestRecord is the final generated artifact for one scenario.
type TestRecord struct {
	TestcaseID                  string            `json:"Testcase_id"`
	Category                    string            `json:"category"`
	JourneyType                 JourneyType       `json:"journey_type"`
	RegistrationNumber          string            `json:"registration_number"`
	MakeModel                   string            `json:"make_model"`
	Variant                     string            `json:"variant"`
	RegistrationDate            string            `json:"registration_date"`
	RTO                         string            `json:"rto"`
	OwnedBy                     OwnedBy           `json:"owned_by"`
	IsOwnershipChanged          string            `json:"is_ownership_changed"`
	PreviousExpiryDate          string            `json:"previous_expiry_date"`
	OffsetPreviousExpiryDate    string            `json:"offset_previous_expiry_date"`
	PreviousInsurer             string            `json:"previous_insurer"`
	PreviousTpExpiryDate        string            `json:"previous_tp_expiry_date"`
	OffsetPreviousTpExpiryDate  string            `json:"offset_previous_tp_expiry_date"`
	PreviousTpStartDate         string            `json:"previous_tp_start_date"`
	PreviousTpInsurer           string            `json:"previous_tp_insurer"`
	NotSure                     string            `json:"not_sure"`
	KnowPreviousTpExpiryDate    string            `json:"know_previous_tp_expiry_date"`
	NotSurePreviousTpExpiryDate string            `json:"not_sure_previous_tp_expiry_date"`
	ClaimTaken                  string            `json:"claim_taken"`
	PreviousNcb                 string            `json:"previous_ncb"`
	ProductCode                 string            `json:"product_code"`
	CustomerName                string            `json:"customer_name"`
	ContactNumber               string            `json:"contact_number"`
	IDV                         int               `json:"idv"`
	NCBTwo                      string            `json:"NCB_two"`
	Addons                      AddonList         `json:"addons"`
	Discounts                   DiscountList      `json:"discounts"`
	SelectTab                   string            `json:"select_tab"`
	Email                       string            `json:"email"`
	KYC                         []KYCOption       `json:"kyc"`
	KYCVerification             string            `json:"kyc_verification"`
	PucExpiryDate               string            `json:"puc_expiry_date"`
	ProposalQuestions           ProposalQuestions `json:"proposal_questions"`
	IsInspectionRequired        string            `json:"is_inspection_required"`
	CarrierName                 string            `json:"carrier_name"`
}
