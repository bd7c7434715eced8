package catalog

// Named proposal-question key sets. The field filter drops a key when any
// applicable rule selects it, and the validator uses the same sets to enforce
// the new-business empty invariant.
var (
	// NomineeQuestions apply only when a personal-accident cover names a
	// nominee.
	NomineeQuestions = []string{
		"nominee_salutation",
		"nominee_last_name",
		"nominee_first_name",
		"nominee_dob",
		"nominee_age",
		"nominee_gender",
		"nominee_relation",
		"nominee_details",
	}

	// PreviousPolicyQuestions apply only to rollover journeys.
	PreviousPolicyQuestions = []string{
		"previous_policy_details",
		"previous_policy_status",
		"previous_policy_claim_taken",
		"previous_policy_expiry_period",
		"previous_policy_expiry_date",
		"previous_policy_ncb",
		"previous_policy_carrier_code",
		"previous_policy_number",
		"previous_policy_type",
		"previous_tp_policy_expiry_date",
		"previous_tp_policy_start_date",
		"previous_tp_policy_number",
		"previous_tp_policy_carrier_code",
	}

	// CompanyQuestions identify a corporate owner.
	CompanyQuestions = []string{
		"company_details",
		"company_name",
		"company_gstin",
		"company_date_of_incorporation",
		"gstin",
	}

	// CustomerQuestions identify an individual owner.
	CustomerQuestions = []string{
		"individual_details",
		"proposer_first_name",
		"proposer_last_name",
		"proposer_salutation",
		"proposer_dob",
		"proposer_age",
		"proposer_alternate_number",
		"proposer_marital_status",
		"proposer_pan",
		"proposer_gstin",
		"proposer_annual_income",
		"proposer_occupation",
		"proposer_title",
	}

	// NoPACoverQuestions justify declining the personal-accident cover.
	NoPACoverQuestions = []string{
		"additional_info",
		"NO_PA_Cover",
	}

	// AdditionalODQuestions apply only after a first own-damage term.
	AdditionalODQuestions = []string{
		"additional_od_info",
	}

	// NotSureODQuestions are dropped when the customer cannot state the
	// prior policy on comprehensive and third-party products.
	NotSureODQuestions = []string{
		"previous_policy_expiry_date",
		"previous_policy_type",
		"previous_policy_expiry_period",
		"previous_policy_number",
		"previous_policy_carrier_code",
	}
)
