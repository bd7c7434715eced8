package pipeline

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/policyforge/casegen/internal/catalog"
	"github.com/policyforge/casegen/internal/idgen"
	"github.com/policyforge/casegen/internal/model"
)

// GeneratedIdentifiers are the per-record identifiers injected after
// filtering.
type GeneratedIdentifiers struct {
	RegistrationNumber string
	EngineNumber       string
	ChassisNumber      string
	GSTIN              string
}

// NewIdentifiers draws a fresh identifier set.
func NewIdentifiers(rng *rand.Rand, pan string) GeneratedIdentifiers {
	return GeneratedIdentifiers{
		RegistrationNumber: idgen.RegistrationNumber(rng),
		EngineNumber:       idgen.EngineNumber(rng),
		ChassisNumber:      idgen.ChassisNumber(rng),
		GSTIN:              idgen.GSTIN(rng, pan),
	}
}

// FilterProposal applies the exclusion rules for the scenario and then
// injects generated identifiers and derived values. A field is dropped when
// ANY applicable rule selects it — the rules are additive. Injection only
// ever overwrites keys that survived filtering, so the filter never
// introduces a key absent from the input set.
func FilterProposal(all model.ProposalQuestions, sc model.Scenario, dates ResolvedDates, ids GeneratedIdentifiers) model.ProposalQuestions {
	out := all.Clone()

	isNewBusiness := sc.JourneyType == model.JourneyNewBusiness
	isNotSure := sc.JourneyType == model.JourneyNotSure &&
		(strings.Contains(sc.ProductCode, "COMPREHENSIVE") || strings.Contains(sc.ProductCode, "THIRD_PARTY"))
	hasPA := sc.HasAddon(catalog.AddonPersonalAccident)

	var rejected []string
	if isNewBusiness || isNotSure {
		rejected = append(rejected, catalog.PreviousPolicyQuestions...)
	}
	if isNotSure {
		rejected = append(rejected, catalog.NotSureODQuestions...)
	}
	if sc.OwnedBy == model.OwnedByIndividual {
		rejected = append(rejected, catalog.CompanyQuestions...)
	}
	if sc.OwnedBy == model.OwnedByCompany {
		rejected = append(rejected, catalog.CustomerQuestions...)
	}
	if !hasPA || sc.OwnedBy == model.OwnedByCompany {
		rejected = append(rejected, catalog.NomineeQuestions...)
	}
	if hasPA || sc.OwnedBy == model.OwnedByCompany {
		rejected = append(rejected, catalog.NoPACoverQuestions...)
	}
	if isNewBusiness {
		rejected = append(rejected, catalog.AdditionalODQuestions...)
	}

	for _, key := range rejected {
		delete(out, key)
	}

	setIfPresent(out, "registration_number", ids.RegistrationNumber)
	setIfPresent(out, "engine_number", ids.EngineNumber)
	setIfPresent(out, "chassis_number", ids.ChassisNumber)
	setIfPresent(out, "gstin", ids.GSTIN)
	setIfPresent(out, "company_gstin", ids.GSTIN)
	setIfPresent(out, "manufacturing_year", strconv.Itoa(sc.ManufacturingYear))

	if sc.IsRollover() {
		setIfPresent(out, "previous_policy_expiry_date", dates.PreviousPolicyExpiry.String())
		setIfPresent(out, "previous_tp_policy_expiry_date", dates.PreviousTpExpiry.String())
		setIfPresent(out, "previous_tp_policy_start_date", dates.PreviousTpStart.String())
	}

	return out
}

func setIfPresent(p model.ProposalQuestions, key, value string) {
	if _, ok := p[key]; ok {
		p[key] = value
	}
}
