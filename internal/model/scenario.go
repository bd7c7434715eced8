package model

// JourneyType distinguishes first-time issuance from renewal.
type JourneyType string

const (
	JourneyNewBusiness JourneyType = "New Business"
	JourneyRollover    JourneyType = "Rollover"
	JourneyNotSure     JourneyType = "Not Sure"
)

// OwnedBy identifies the registered owner kind.
type OwnedBy string

const (
	OwnedByIndividual OwnedBy = "Individual"
	OwnedByCompany    OwnedBy = "Company"
)

// VehicleType is the motor segment of a product.
type VehicleType string

const (
	Vehicle2W VehicleType = "2W"
	Vehicle4W VehicleType = "4W"
)

// RawScenario is the untrusted, loosely-typed scenario guess returned by the
// AI oracle (or synthesized from hints alone when the oracle is unavailable).
// Numeric fields arrive as string or number depending on the model's mood, so
// they are `any` and coerced during normalization.
type RawScenario struct {
	TestcaseID           string `json:"testcase_id"`
	Text                 string `json:"text,omitempty"`
	JourneyType          string `json:"journey_type"`
	ProductCode          string `json:"product_code"`
	IsInspectionRequired string `json:"is_inspection_required"`
	PreviousNcb          string `json:"previous_ncb"`
	ManufacturingYear    any    `json:"manufacturing_year"`
	VehicleType          string `json:"vehicle_type"`
	ClaimTaken           string `json:"claim_taken"`
	OwnershipChanged     string `json:"ownership_changed"`
	IDV                  any    `json:"idv"`
	InsuranceCompany     string `json:"insurance_company"`
	ExpiryDays           any    `json:"expiry_days"`
	IncludeAllAddons     bool   `json:"include_all_addons"`
	SpecifiedAddons      any    `json:"specified_addons"`
	SpecifiedDiscounts   any    `json:"specified_discounts"`
	SpecifiedKyc         string `json:"specified_kyc"`
	OwnedBy              string `json:"owned_by"`
	Model                string `json:"model"`
	Variant              string `json:"variant"`
	RegistrationDate     string `json:"registration_date"`
}

// Scenario is the canonical, normalized description of one desired test case.
// Addons/Discounts keep the nil-vs-empty distinction: nil means unspecified,
// an empty non-nil slice means the text explicitly asked for none.
type Scenario struct {
	TestcaseID           string      `json:"testcase_id"`
	JourneyType          JourneyType `json:"journey_type"`
	ProductCode          string      `json:"product_code"`
	VehicleType          VehicleType `json:"vehicle_type"`
	InsurerName          string      `json:"insurance_company"`
	ManufacturingYear    int         `json:"manufacturing_year"`
	RegistrationDate     Date        `json:"registration_date"`
	ClaimTaken           bool        `json:"claim_taken"`
	PreviousNcb          string      `json:"previous_ncb"`
	IDV                  int         `json:"idv"`
	OwnedBy              OwnedBy     `json:"owned_by"`
	Addons               []string    `json:"addons"`
	Discounts            []string    `json:"discounts"`
	SpecifiedKyc         string      `json:"specified_kyc,omitempty"`
	ExpiryDays           *int        `json:"expiry_days"`
	Model                string      `json:"model,omitempty"`
	Variant              string      `json:"variant,omitempty"`
	IsInspectionRequired string      `json:"is_inspection_required"`
	OwnershipChanged     string      `json:"ownership_changed"`
}

// IsRollover reports whether prior-policy fields apply.
func (s Scenario) IsRollover() bool { return s.JourneyType == JourneyRollover }

// HasAddon reports whether the scenario carries the given addon code.
func (s Scenario) HasAddon(code string) bool {
	for _, a := range s.Addons {
		if a == code {
			return true
		}
	}
	return false
}
